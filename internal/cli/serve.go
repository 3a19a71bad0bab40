package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovenbird/keyed/internal/config"
	"github.com/ovenbird/keyed/internal/web"
)

// NewServeCommand creates the serve command that runs the shop API.
func NewServeCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the pieshop HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level, cfg.Log.Format, os.Stderr)
			slog.SetDefault(logger)

			container, err := BuildContainer(cfg)
			if err != nil {
				return fmt.Errorf("build container: %w", err)
			}
			defer func() {
				if err := container.Close(context.Background()); err != nil {
					logger.Error("container close failed", "error", err)
				}
			}()

			server := &http.Server{
				Addr:    cfg.Listen,
				Handler: web.New(container, cfg, logger),
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", cfg.Listen, "repository", cfg.Repository, "notifier", cfg.Notifier)
				errCh <- server.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("server: %w", err)
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}

func loadConfig(opts *RootOptions) (*config.Config, error) {
	if opts.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.Load(opts.ConfigPath)
}
