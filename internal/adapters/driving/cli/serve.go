package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/angelbloop/dossier/internal/adapters/driving/web"
	"github.com/angelbloop/dossier/internal/core/domain"
	"github.com/angelbloop/dossier/internal/logger"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web client",
	Long: `Serve the browser client and the JSON API under /api/v1.

The listen address defaults to web.addr from the config file. Edits to the
config file are picked up while the server runs; the model shown in the page
header follows provider.model.

Examples:
  dossier serve
  dossier serve --addr 127.0.0.1:9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from web.addr)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if newSession == nil {
		return errors.New("analysis service not configured")
	}

	cfg := domain.DefaultAppSettings()
	if settingsService != nil {
		loaded, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		cfg = *loaded
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Web.Addr
	}

	server, err := web.NewServer(&web.Ports{
		Session:  newSession(),
		Settings: settingsService,
	}, web.Options{AllowedOrigins: cfg.Web.AllowedOrigins})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if configWatcher != nil {
		go func() {
			err := configWatcher.Watch(ctx, func() {
				logger.Info("settings reloaded")
			})
			if err != nil {
				logger.Warn("config watch stopped: %v", err)
			}
		}()
	}

	cmd.Printf("Dossier listening on %s\n", addr)
	return server.ListenAndServe(ctx, addr)
}
