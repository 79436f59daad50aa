package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/core/services"
)

// stubAnalysis is a hand-written driving.AnalysisService.
type stubAnalysis struct {
	mu     sync.Mutex
	calls  int
	inputs []string
	result *domain.DossierResult
	err    error
}

func (s *stubAnalysis) Analyze(_ context.Context, input string) (*domain.DossierResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.inputs = append(s.inputs, input)
	return s.result, s.err
}

func (s *stubAnalysis) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// newTestServer returns a server over a real session with sequential entry IDs.
func newTestServer(analysis *stubAnalysis) (*Server, *services.Session) {
	n := 0
	session := services.NewSession(analysis, services.WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("entry-%d", n)
	}))
	server, err := NewServer(&Ports{Session: session})
	if err != nil {
		panic(err)
	}
	return server, session
}

func sampleResult() *domain.DossierResult {
	return &domain.DossierResult{
		Text: "## Summary\nAda Lovelace was a mathematician.",
		Sources: []domain.Source{
			{URI: "https://en.wikipedia.org/wiki/Ada_Lovelace", Title: "Ada Lovelace - Wikipedia"},
			{URI: "https://example.org/ada"},
		},
	}
}
