package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"logo-guess-service/internal/app"
	"logo-guess-service/internal/config"
	"logo-guess-service/internal/infra/kafka"
	"logo-guess-service/internal/infra/memory"
	pgloader "logo-guess-service/internal/infra/postgres"
	rediscache "logo-guess-service/internal/infra/redis"
	"logo-guess-service/internal/infra/sqlstore"
	"logo-guess-service/internal/infra/sqlstore/migrations"
)

// backend holds the wired stores and everything that must be closed on exit.
type backend struct {
	catalog  *app.CatalogService
	sessions app.SessionRepository
	closers  []func() error
	logger   *slog.Logger
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			b.logger.Warn("close failed", "error", err)
		}
	}
}

// openSQL picks Postgres over SQLite; nil means neither is configured.
func openSQL(cfg config.Config) (*bun.DB, error) {
	switch {
	case cfg.Postgres.URL != "":
		return sqlstore.OpenPostgres(cfg.Postgres.URL), nil
	case cfg.SQLite.Path != "":
		return sqlstore.OpenSQLite(cfg.SQLite.Path)
	default:
		return nil, nil
	}
}

// openBackend wires the catalog store, brand cache, session store and score
// publisher from cfg. Unset backends fall back to in-process implementations.
func openBackend(ctx context.Context, cfg config.Config, logger *slog.Logger) (*backend, error) {
	b := &backend{logger: logger}
	ok := false
	defer func() {
		if !ok {
			b.Close()
		}
	}()

	var (
		store       app.CatalogStore
		brandLoader memory.BrandLoader
	)
	db, err := openSQL(cfg)
	if err != nil {
		return nil, err
	}
	if db != nil {
		b.closers = append(b.closers, db.Close)
		if err := migrations.Apply(ctx, db); err != nil {
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		sqlStore := sqlstore.New(db)
		store, brandLoader = sqlStore, sqlStore
		logger.Info("catalog store ready", "dialect", dialectName(cfg))
	} else {
		mem := memory.NewCatalogStore()
		store, brandLoader = mem, mem
		logger.Warn("no database configured, catalog kept in memory")
	}

	if cfg.Postgres.URL != "" {
		pool, err := pgloader.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, closePool(pool))
		brandLoader = pgloader.NewBrandLoader(pool)
	}

	cacheTTL := config.TTLDuration(cfg.Catalog.CacheTTL, 10*time.Minute)
	sessionTTL := config.TTLDuration(cfg.Game.SessionTTL, time.Hour)

	var brands app.BrandRepository
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		b.closers = append(b.closers, client.Close)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("ping redis: %w", err)
		}
		brands = rediscache.NewBrandCache(client, brandLoader, cacheTTL)
		b.sessions = rediscache.NewSessionStore(client, config.TTLDuration(cfg.Redis.TTL, sessionTTL))
	} else {
		brands = memory.NewBrandCache(brandLoader, cacheTTL)
		b.sessions = memory.NewSessionStore(sessionTTL)
	}

	opts := []app.CatalogOption{
		app.WithBrandRepository(brands),
		app.WithLimits(cfg.Catalog.DefaultLimit, cfg.Catalog.MaxLimit),
		app.WithLeaderboardSize(cfg.Scores.LeaderboardSize),
	}
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		publisher, err := kafka.Dial(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		b.closers = append(b.closers, publisher.Close)
		opts = append(opts, app.WithScorePublisher(publisher))
	}

	b.catalog = app.NewCatalogService(store, logger, opts...)
	ok = true
	return b, nil
}

func closePool(pool *pgxpool.Pool) func() error {
	return func() error {
		pool.Close()
		return nil
	}
}

func dialectName(cfg config.Config) string {
	if cfg.Postgres.URL != "" {
		return "postgres"
	}
	return "sqlite"
}
