package cli

import (
	"context"

	"github.com/spf13/cobra"

	"logo-guess-service/internal/config"
)

// NewSeedCmd loads the car-logos dataset into the catalog.
func NewSeedCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Import brands from the car-logos dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cfg, logger, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			b, err := openBackend(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer b.Close()

			n, err := runSeed(ctx, cfg, b.catalog, logger)
			if err != nil {
				return err
			}
			logger.Info("catalog seeded", "inserted", n)
			if n > 0 && !cacheShared(cfg) {
				logger.Warn("brand cache is per process; a running server keeps serving its cached pools until cache_ttl expires",
					"cache_ttl", cfg.Catalog.CacheTTL)
			}
			return nil
		},
	}
}

// cacheShared reports whether the brand cache lives in Redis, where a seed run
// from another process invalidates it for every server.
func cacheShared(cfg config.Config) bool {
	return cfg.Redis.Addr != ""
}
