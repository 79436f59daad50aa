package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/angelbloop/dossier/internal/core/domain"
)

// knownModels are offered by the interactive prompts; any other id can be typed.
var knownModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.5-flash-lite",
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the model, the credential variable and other options.

Settings are stored in ~/.dossier/config.toml. The credential itself is never
stored; only the name of the environment variable it is read from.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to choose the model and the credential variable.`,
	RunE:  runSettingsWizard,
}

var settingsModelCmd = &cobra.Command{
	Use:   "model [model-id]",
	Short: "Set the Gemini model",
	Long: `Set the model used for analyses. Without an argument a list is offered.

The model must support Google Search grounding.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsModel,
}

var settingsKeyEnvCmd = &cobra.Command{
	Use:   "key-env [VAR]",
	Short: "Set the environment variable holding the API key",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsKeyEnv,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsModelCmd)
	settingsCmd.AddCommand(settingsKeyEnvCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Provider]")
	cmd.Printf("  Model: %s\n", settings.Provider.Model)
	cmd.Printf("  API Key Variable: %s\n", settings.Provider.APIKeyEnv)
	if key, ok := os.LookupEnv(settings.Provider.APIKeyEnv); ok && key != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(key))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	cmd.Println()

	cmd.Println("[Web]")
	cmd.Printf("  Address: %s\n", settings.Web.Addr)
	if len(settings.Web.AllowedOrigins) == 0 {
		cmd.Printf("  Allowed Origins: same-origin only\n")
	} else {
		cmd.Printf("  Allowed Origins: %s\n", strings.Join(settings.Web.AllowedOrigins, ", "))
	}
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Word Wrap: %d\n", settings.UI.WordWrap)

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Dossier Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Select Model")
	cmd.Println("--------------------")
	model := promptModel(cmd, reader)
	if err := settingsService.SetModel(model); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}
	cmd.Printf("Set model to: %s\n\n", model)

	cmd.Println("Step 2: API Key Variable")
	cmd.Println("------------------------")
	current := domain.DefaultAPIKeyEnv
	if settings, err := settingsService.Get(); err == nil && settings.Provider.APIKeyEnv != "" {
		current = settings.Provider.APIKeyEnv
	}
	cmd.Printf("Environment variable [%s]: ", current)
	name := readLine(reader)
	if name == "" {
		name = current
	}
	if err := settingsService.SetAPIKeyEnv(name); err != nil {
		return fmt.Errorf("failed to set API key variable: %w", err)
	}
	cmd.Println()

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if key, ok := os.LookupEnv(name); !ok || key == "" {
		cmd.Printf("Warning: %s is not set. Export it before running an analysis.\n", name)
	} else {
		cmd.Println("All settings are saved.")
	}

	return nil
}

func runSettingsModel(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var model string
	if len(args) == 1 {
		model = strings.TrimSpace(args[0])
	} else {
		model = promptModel(cmd, bufio.NewReader(cmd.InOrStdin()))
	}

	if err := settingsService.SetModel(model); err != nil {
		return fmt.Errorf("failed to set model: %w", err)
	}
	cmd.Printf("Model set to: %s\n", model)
	return nil
}

func runSettingsKeyEnv(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	name := strings.TrimSpace(args[0])
	if err := settingsService.SetAPIKeyEnv(name); err != nil {
		return fmt.Errorf("failed to set API key variable: %w", err)
	}
	cmd.Printf("API key variable set to: %s\n", name)
	return nil
}

// promptModel lists knownModels plus a custom entry and returns the choice.
func promptModel(cmd *cobra.Command, reader *bufio.Reader) string {
	for i, m := range knownModels {
		cmd.Printf("  %d. %s\n", i+1, m)
	}
	custom := len(knownModels) + 1
	cmd.Printf("  %d. Other\n", custom)
	cmd.Print("\nEnter choice [1]: ")

	choice := parseChoice(readLine(reader), custom, 1)
	if choice != custom {
		return knownModels[choice-1]
	}

	cmd.Print("Model id: ")
	model := readLine(reader)
	if model == "" {
		return domain.DefaultModel
	}
	return model
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
