// Command dossier builds web-grounded dossiers on a person from free text.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/angelbloop/dossier/internal/adapters/driven/config/env"
	"github.com/angelbloop/dossier/internal/adapters/driven/config/file"
	"github.com/angelbloop/dossier/internal/adapters/driven/llm/gemini"
	"github.com/angelbloop/dossier/internal/adapters/driving/cli"
	"github.com/angelbloop/dossier/internal/core/ports/driving"
	"github.com/angelbloop/dossier/internal/core/services"
)

// version is injected with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompts: %w", err)
	}

	settingsService := services.NewSettingsService(configStore)

	// The variable name is resolved per analysis so `settings key-env` and
	// edits picked up by the watcher apply without a restart.
	credentials := env.NewCredentialProvider(settingsService.APIKeyEnv)

	analysisService := services.NewAnalysisService(
		credentials,
		gemini.NewFactory(gemini.Config{}),
		settingsService,
	)
	analysisService.SetPromptStore(promptStore)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Analysis: analysisService,
		Settings: settingsService,
		NewSession: func() driving.SessionController {
			return services.NewSession(analysisService)
		},
		Watcher: configStore,
	})

	return cli.Execute(ctx)
}
