package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for dossier.
This is also what runs when no subcommand is given.

Controls:
  ctrl+s       - Generate dossier
  ctrl+l       - Clear input
  tab          - Switch between input and history
  ↑/k, ↓/j     - Navigate history
  Enter        - Show selected history entry
  pgup/pgdown  - Scroll the report
  Esc          - Menu
  ctrl+c       - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if newSession == nil || analysisService == nil {
		return errors.New("analysis service not configured")
	}

	ports := tui.NewPorts(newSession(), analysisService, settingsService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
