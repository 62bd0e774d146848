package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"logo-guess-service/internal/app"
	"logo-guess-service/internal/config"
	"logo-guess-service/internal/seed"
	transport "logo-guess-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, logger, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	b, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer b.Close()

	if cfg.Catalog.SeedOnStart {
		seedIfEmpty(ctx, cfg, b.catalog, logger)
	}

	games := app.NewGameService(b.catalog, b.sessions, cfg.Game.BatchSize, logger)
	handler := transport.NewHandler(b.catalog, games, logger)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler.Router(),
		ReadTimeout:  config.TTLDuration(cfg.Server.ReadTimeout, 15*time.Second),
		WriteTimeout: config.TTLDuration(cfg.Server.WriteTimeout, 15*time.Second),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting logo guess service", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		logger.Info("shutting down server")
	case <-ctx.Done():
		logger.Info("context canceled, shutting down server")
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedIfEmpty fills an empty catalog; failures are logged and the server starts anyway.
func seedIfEmpty(ctx context.Context, cfg config.Config, catalog *app.CatalogService, logger *slog.Logger) {
	empty, err := catalog.Empty(ctx)
	if err != nil {
		logger.Warn("catalog check failed, skipping seed", "error", err)
		return
	}
	if !empty {
		return
	}
	n, err := runSeed(ctx, cfg, catalog, logger)
	if err != nil {
		logger.Warn("seeding failed", "error", err)
		return
	}
	logger.Info("catalog seeded", "inserted", n)
}

func runSeed(ctx context.Context, cfg config.Config, catalog *app.CatalogService, logger *slog.Logger) (int, error) {
	src := seed.NewSource(cfg.Catalog.SeedURL, 15*time.Second, logger)
	builder := seed.Builder{
		ImageBaseURL: cfg.Catalog.ImageBaseURL,
		Limit:        config.IntOr(cfg.Catalog.SeedLimit, seed.DefaultLimit),
	}
	return seed.Run(ctx, src, builder, catalog)
}
