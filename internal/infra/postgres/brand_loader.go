package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"logo-guess-service/internal/domain"
)

// BrandLoader reads tier pools straight from the brands table for the caches.
type BrandLoader struct {
	pool *pgxpool.Pool
}

func NewBrandLoader(pool *pgxpool.Pool) *BrandLoader {
	return &BrandLoader{pool: pool}
}

// Connect opens a pgx pool and checks it is reachable.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// LoadBrands returns every brand of tier, or the whole catalog for an empty tier.
func (l *BrandLoader) LoadBrands(ctx context.Context, tier domain.Tier) ([]domain.Brand, error) {
	const base = `SELECT id, name, slug, image_url, difficulty, has_text FROM brands`
	var (
		query = base + ` ORDER BY id`
		args  []interface{}
	)
	if tier != "" {
		query = base + ` WHERE difficulty = $1 ORDER BY id`
		args = append(args, string(tier))
	}

	rows, err := l.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load brands: %w", err)
	}
	defer rows.Close()

	brands := make([]domain.Brand, 0)
	for rows.Next() {
		var (
			b          domain.Brand
			difficulty string
		)
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.ImageURL, &difficulty, &b.HasText); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		b.Difficulty = domain.Tier(difficulty)
		brands = append(brands, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load brands: %w", err)
	}
	return brands, nil
}
