package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"logo-guess-service/internal/domain"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// OpenPostgres connects bun to Postgres through pgdriver.
func OpenPostgres(dsn string) *bun.DB {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	return bun.NewDB(sqldb, pgdialect.New())
}

// OpenSQLite opens (or creates) the SQLite database at path.
func OpenSQLite(path string) (*bun.DB, error) {
	if !strings.HasPrefix(path, "file:") {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
	}
	sqldb, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one writer at a time; also keeps ":memory:" on a single connection
	sqldb.SetMaxOpenConns(1)
	if _, err := sqldb.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// Store implements app.CatalogStore on top of bun, for Postgres and SQLite alike.
type Store struct {
	db *bun.DB
}

func New(db *bun.DB) *Store {
	return &Store{db: db}
}

// DB exposes the bun handle for migrations.
func (s *Store) DB() *bun.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ListBrands draws a random batch straight from the database.
func (s *Store) ListBrands(ctx context.Context, filter domain.BrandFilter) ([]domain.Brand, error) {
	var rows []brandModel
	q := s.db.NewSelect().Model(&rows).OrderExpr("RANDOM()")
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", string(filter.Difficulty))
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select brands: %w", err)
	}
	return brandsToDomain(rows), nil
}

// LoadBrands returns the whole pool of tier (every brand when tier is empty).
func (s *Store) LoadBrands(ctx context.Context, tier domain.Tier) ([]domain.Brand, error) {
	var rows []brandModel
	q := s.db.NewSelect().Model(&rows).OrderExpr("id ASC")
	if tier != "" {
		q = q.Where("difficulty = ?", string(tier))
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("load brands: %w", err)
	}
	return brandsToDomain(rows), nil
}

func (s *Store) CountBrands(ctx context.Context) (int, error) {
	n, err := s.db.NewSelect().Model((*brandModel)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count brands: %w", err)
	}
	return n, nil
}

func (s *Store) CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	if taken, err := s.slugTaken(ctx, brand.Slug); err != nil {
		return domain.Brand{}, err
	} else if taken {
		return domain.Brand{}, domain.ErrDuplicateSlug
	}

	m := brandFromDomain(brand)
	if _, err := s.db.NewInsert().Model(&m).Returning("*").Exec(ctx); err != nil {
		// lost a race against a concurrent insert of the same slug
		if taken, _ := s.slugTaken(ctx, brand.Slug); taken {
			return domain.Brand{}, domain.ErrDuplicateSlug
		}
		return domain.Brand{}, fmt.Errorf("insert brand: %w", err)
	}
	return m.toDomain(), nil
}

// SeedBrands inserts brands, skipping slugs that already exist.
func (s *Store) SeedBrands(ctx context.Context, brands []domain.Brand) (int, error) {
	if len(brands) == 0 {
		return 0, nil
	}
	rows := make([]brandModel, 0, len(brands))
	for _, b := range brands {
		rows = append(rows, brandFromDomain(b))
	}

	res, err := s.db.NewInsert().
		Model(&rows).
		On("CONFLICT (slug) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("seed brands: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("seed brands: %w", err)
	}
	return int(n), nil
}

func (s *Store) CreateScore(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	m := scoreModel{
		PlayerName: record.PlayerName,
		Score:      record.Score,
		Difficulty: string(record.Difficulty),
	}
	if _, err := s.db.NewInsert().Model(&m).Returning("*").Exec(ctx); err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("insert score: %w", err)
	}
	return m.toDomain(), nil
}

// TopScores orders by score descending, earlier entries first on ties.
func (s *Store) TopScores(ctx context.Context, limit int) ([]domain.ScoreRecord, error) {
	var rows []scoreModel
	q := s.db.NewSelect().Model(&rows).OrderExpr("score DESC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("select scores: %w", err)
	}
	out := make([]domain.ScoreRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (s *Store) slugTaken(ctx context.Context, slug string) (bool, error) {
	exists, err := s.db.NewSelect().Model((*brandModel)(nil)).Where("slug = ?", slug).Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("check slug: %w", err)
	}
	return exists, nil
}

func brandsToDomain(rows []brandModel) []domain.Brand {
	out := make([]domain.Brand, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out
}
