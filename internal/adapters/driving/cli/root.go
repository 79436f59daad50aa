// Package cli provides the cobra command tree for dossier.
// Commands drive the core services through package-level ports set by main.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/angelbloop/dossier/internal/core/ports/driven"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
	"github.com/angelbloop/dossier/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

var verbose bool

// Services consumed by commands. Nil services surface as "not configured" errors.
var (
	analysisService driving.AnalysisService
	settingsService driving.SettingsService
	newSession      func() driving.SessionController
	configWatcher   driven.ConfigWatcher
)

// Services holds the core services the commands drive.
type Services struct {
	// Analysis runs one grounded analysis.
	Analysis driving.AnalysisService

	// Settings reads and updates the TOML configuration.
	Settings driving.SettingsService

	// NewSession creates the state container for one interactive surface.
	NewSession func() driving.SessionController

	// Watcher reloads the configuration on external edits. Optional.
	Watcher driven.ConfigWatcher
}

// SetServices injects the core services.
func SetServices(s Services) {
	analysisService = s.Analysis
	settingsService = s.Settings
	newSession = s.NewSession
	configWatcher = s.Watcher
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "dossier",
	Short: "Web-grounded dossiers on a person from free text",
	Long: `Dossier sends what you know about a person to Gemini with web search
grounding and presents the resulting dossier with its cited sources.

Run without a subcommand to open the terminal UI. The credential is read from
GEMINI_API_KEY (or the variable named by provider.api_key_env in
~/.dossier/config.toml) when the first analysis starts.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
}

// Execute runs the command tree with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
