package cli

import (
	"context"
	"sync"

	"github.com/spf13/cobra"

	"github.com/angelbloop/dossier/internal/adapters/driven/storage/memory"
	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
	"github.com/angelbloop/dossier/internal/core/services"
)

// stubAnalysis is a hand-written driving.AnalysisService.
type stubAnalysis struct {
	mu     sync.Mutex
	inputs []string
	result *domain.DossierResult
	err    error
}

func (s *stubAnalysis) Analyze(_ context.Context, input string) (*domain.DossierResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inputs = append(s.inputs, input)
	return s.result, s.err
}

func (s *stubAnalysis) Inputs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.inputs...)
}

// setupTestServices wires a stub analysis and in-memory settings into the
// package-level services and returns a cleanup restoring the previous state.
func setupTestServices() (*stubAnalysis, *services.SettingsService, func()) {
	prevAnalysis, prevSettings := analysisService, settingsService
	prevSession, prevWatcher := newSession, configWatcher
	resetCommandContexts(rootCmd)

	analysis := &stubAnalysis{
		result: &domain.DossierResult{
			Text: "## Summary\nAda Lovelace was a mathematician.",
			Sources: []domain.Source{
				{URI: "https://en.wikipedia.org/wiki/Ada_Lovelace", Title: "Ada Lovelace - Wikipedia"},
				{URI: "https://example.org/ada"},
			},
		},
	}
	store := memory.NewConfigStore()
	settings := services.NewSettingsService(store)

	SetServices(Services{
		Analysis: analysis,
		Settings: settings,
		NewSession: func() driving.SessionController {
			return services.NewSession(analysis)
		},
		Watcher: store,
	})

	return analysis, settings, func() {
		analysisService, settingsService = prevAnalysis, prevSettings
		newSession, configWatcher = prevSession, prevWatcher
		analyzeJSON = false
		serveAddr = ""
		resetCommandContexts(rootCmd)
	}
}

// resetCommandContexts drops the contexts cobra stores on each command
// during Execute. A subcommand only inherits the root context while its own
// is nil, so a stale one would outlive the run that set it.
func resetCommandContexts(cmd *cobra.Command) {
	//nolint:staticcheck // SA1012: nil clears the stored context.
	cmd.SetContext(nil)
	for _, sub := range cmd.Commands() {
		resetCommandContexts(sub)
	}
}
