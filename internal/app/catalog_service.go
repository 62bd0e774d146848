package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"logo-guess-service/internal/domain"
)

// CatalogStore is the persistent home of brands and scores (SQL or in-memory).
type CatalogStore interface {
	ListBrands(ctx context.Context, filter domain.BrandFilter) ([]domain.Brand, error)
	CountBrands(ctx context.Context) (int, error)
	CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error)
	SeedBrands(ctx context.Context, brands []domain.Brand) (int, error)
	CreateScore(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error)
	TopScores(ctx context.Context, limit int) ([]domain.ScoreRecord, error)
}

// BrandRepository answers random brand batches, usually from a cache in front of the store.
type BrandRepository interface {
	ListBrands(ctx context.Context, filter domain.BrandFilter) ([]domain.Brand, error)
}

// CacheInvalidator is implemented by brand caches that must forget stale pools after seeding.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// ScorePublisher announces saved scores to other systems.
type ScorePublisher interface {
	PublishScore(ctx context.Context, record domain.ScoreRecord) error
}

// CatalogOption customizes a CatalogService.
type CatalogOption func(*CatalogService)

// WithBrandRepository serves brand batches from repo instead of the store.
func WithBrandRepository(repo BrandRepository) CatalogOption {
	return func(s *CatalogService) { s.brands = repo }
}

// WithScorePublisher publishes every stored score.
func WithScorePublisher(p ScorePublisher) CatalogOption {
	return func(s *CatalogService) { s.publisher = p }
}

// WithLimits sets the default and maximum brand batch size.
func WithLimits(defaultLimit, maxLimit int) CatalogOption {
	return func(s *CatalogService) {
		if defaultLimit > 0 {
			s.defaultLimit = defaultLimit
		}
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

// WithLeaderboardSize sets how many scores ListScores returns.
func WithLeaderboardSize(n int) CatalogOption {
	return func(s *CatalogService) {
		if n > 0 {
			s.leaderboardSize = n
		}
	}
}

// CatalogService owns the brand catalog and the leaderboard.
type CatalogService struct {
	store     CatalogStore
	brands    BrandRepository
	publisher ScorePublisher
	logger    *slog.Logger

	defaultLimit    int
	maxLimit        int
	leaderboardSize int
}

func NewCatalogService(store CatalogStore, logger *slog.Logger, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{
		store:           store,
		brands:          store,
		logger:          logger,
		defaultLimit:    10,
		maxLimit:        150,
		leaderboardSize: 10,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListBrands returns a random batch, optionally restricted to one tier.
func (s *CatalogService) ListBrands(ctx context.Context, filter domain.BrandFilter) ([]domain.Brand, error) {
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		return nil, &domain.ValidationError{Field: "difficulty", Message: "difficulty must be one of easy, medium, hard, impossible"}
	}
	switch {
	case filter.Limit < 0:
		return nil, &domain.ValidationError{Field: "limit", Message: "limit must be a positive integer"}
	case filter.Limit == 0:
		filter.Limit = s.defaultLimit
	case filter.Limit > s.maxLimit:
		filter.Limit = s.maxLimit
	}

	brands, err := s.brands.ListBrands(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	if brands == nil {
		brands = []domain.Brand{}
	}
	return brands, nil
}

// CreateScore validates and stores a leaderboard entry.
func (s *CatalogService) CreateScore(ctx context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	record.Normalize()
	if err := record.Validate(); err != nil {
		return domain.ScoreRecord{}, err
	}

	stored, err := s.store.CreateScore(ctx, record)
	if err != nil {
		return domain.ScoreRecord{}, fmt.Errorf("create score: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishScore(ctx, stored); err != nil {
			s.logger.Warn("publish score failed", "score_id", stored.ID, "error", err)
		}
	}
	return stored, nil
}

// ListScores returns the leaderboard, best score first.
func (s *CatalogService) ListScores(ctx context.Context) ([]domain.ScoreRecord, error) {
	scores, err := s.store.TopScores(ctx, s.leaderboardSize)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	if scores == nil {
		scores = []domain.ScoreRecord{}
	}
	return scores, nil
}

// CreateBrand stores a single brand; a taken slug yields domain.ErrDuplicateSlug.
func (s *CatalogService) CreateBrand(ctx context.Context, brand domain.Brand) (domain.Brand, error) {
	brand = normalizeBrand(brand)
	if err := brand.Validate(); err != nil {
		return domain.Brand{}, err
	}
	stored, err := s.store.CreateBrand(ctx, brand)
	if err != nil {
		return domain.Brand{}, err
	}
	s.invalidate(ctx)
	return stored, nil
}

// SeedCatalog inserts brands whose slug is not stored yet and reports how many were added.
// Invalid records and repeated slugs are skipped.
func (s *CatalogService) SeedCatalog(ctx context.Context, brands []domain.Brand) (int, error) {
	seen := make(map[string]struct{}, len(brands))
	batch := make([]domain.Brand, 0, len(brands))
	for _, b := range brands {
		b = normalizeBrand(b)
		if err := b.Validate(); err != nil {
			s.logger.Warn("skipping invalid seed brand", "slug", b.Slug, "error", err)
			continue
		}
		if _, dup := seen[b.Slug]; dup {
			continue
		}
		seen[b.Slug] = struct{}{}
		batch = append(batch, b)
	}
	if len(batch) == 0 {
		return 0, nil
	}

	inserted, err := s.store.SeedBrands(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("seed catalog: %w", err)
	}
	if inserted > 0 {
		s.invalidate(ctx)
	}
	return inserted, nil
}

// Empty reports whether no brand has been stored yet.
func (s *CatalogService) Empty(ctx context.Context) (bool, error) {
	n, err := s.store.CountBrands(ctx)
	if err != nil {
		return false, fmt.Errorf("count brands: %w", err)
	}
	return n == 0, nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	inv, ok := s.brands.(CacheInvalidator)
	if !ok {
		return
	}
	if err := inv.Invalidate(ctx); err != nil {
		s.logger.Warn("brand cache invalidation failed", "error", err)
	}
}

func normalizeBrand(b domain.Brand) domain.Brand {
	b.Name = strings.TrimSpace(b.Name)
	b.Slug = strings.ToLower(strings.TrimSpace(b.Slug))
	b.ImageURL = strings.TrimSpace(b.ImageURL)
	return b
}
