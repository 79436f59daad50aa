package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/angelbloop/dossier/internal/adapters/driving/tui/components/report"
	"github.com/angelbloop/dossier/internal/core/domain"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze [text|-]",
	Short: "Analyze a person and print the dossier",
	Long: `Runs one grounded analysis and prints the dossier followed by its sources.
Arguments are joined with spaces; pass "-" to read the text from stdin.

Markdown is rendered when stdout is a terminal and printed raw otherwise.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output the result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if newSession == nil {
		return errors.New("analysis service not configured")
	}

	text, err := readAnalyzeInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	result, err := newSession().SubmitText(cmd.Context(), text)
	if err != nil {
		if errors.Is(err, domain.ErrConfiguration) {
			return fmt.Errorf("%w\nexport the variable or set provider.api_key_env, then retry", err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analyzeJSON {
		return outputAnalyzeJSON(cmd, result)
	}
	return outputAnalyzeText(cmd, result)
}

func readAnalyzeInput(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	return strings.Join(args, " "), nil
}

func outputAnalyzeJSON(cmd *cobra.Command, result *domain.DossierResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputAnalyzeText(cmd *cobra.Command, result *domain.DossierResult) error {
	out := cmd.OutOrStdout()

	// Stdout carries the report so it can be piped; cobra's Print helpers go to stderr.
	if isTerminal(out) {
		fmt.Fprint(out, report.RenderMarkdown(result.Text, wordWrap()))
	} else {
		fmt.Fprintln(out, result.Text)
	}

	if !result.HasSources() {
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Verified Sources:")
	for i, src := range result.Sources {
		fmt.Fprintf(out, "  [%d] %s\n", i+1, src.DisplayTitle())
		fmt.Fprintf(out, "      %s (%s)\n", src.URI, src.Host())
	}
	return nil
}

func wordWrap() int {
	if settingsService == nil {
		return domain.DefaultWordWrap
	}
	cfg, err := settingsService.Get()
	if err != nil || cfg.UI.WordWrap <= 0 {
		return domain.DefaultWordWrap
	}
	return cfg.UI.WordWrap
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
