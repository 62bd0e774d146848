package memory

import (
	"context"
	"sort"
	"sync"

	"logo-guess-service/internal/domain"
)

// CatalogStore is an in-memory implementation of app.CatalogStore, used when
// no database is configured and in tests.
type CatalogStore struct {
	mu          sync.RWMutex
	brands      []domain.Brand
	slugs       map[string]struct{}
	scores      []domain.ScoreRecord
	nextBrandID int64
	nextScoreID int64
}

func NewCatalogStore() *CatalogStore {
	return &CatalogStore{slugs: make(map[string]struct{})}
}

func (s *CatalogStore) ListBrands(ctx context.Context, filter domain.BrandFilter) ([]domain.Brand, error) {
	pool, err := s.LoadBrands(ctx, filter.Difficulty)
	if err != nil {
		return nil, err
	}
	return domain.SampleBrands(nil, pool, filter.Limit), nil
}

// LoadBrands returns every brand of tier, or all brands for an empty tier.
func (s *CatalogStore) LoadBrands(_ context.Context, tier domain.Tier) ([]domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		if tier == "" || b.Difficulty == tier {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *CatalogStore) CountBrands(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.brands), nil
}

func (s *CatalogStore) CreateBrand(_ context.Context, brand domain.Brand) (domain.Brand, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.slugs[brand.Slug]; ok {
		return domain.Brand{}, domain.ErrDuplicateSlug
	}
	return s.insertLocked(brand), nil
}

func (s *CatalogStore) SeedBrands(_ context.Context, brands []domain.Brand) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inserted := 0
	for _, b := range brands {
		if _, ok := s.slugs[b.Slug]; ok {
			continue
		}
		s.insertLocked(b)
		inserted++
	}
	return inserted, nil
}

func (s *CatalogStore) CreateScore(_ context.Context, record domain.ScoreRecord) (domain.ScoreRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextScoreID++
	record.ID = s.nextScoreID
	s.scores = append(s.scores, record)
	return record, nil
}

// TopScores orders by score descending, earlier entries first on ties.
func (s *CatalogStore) TopScores(_ context.Context, limit int) ([]domain.ScoreRecord, error) {
	s.mu.RLock()
	out := make([]domain.ScoreRecord, len(s.scores))
	copy(out, s.scores)
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *CatalogStore) insertLocked(brand domain.Brand) domain.Brand {
	s.nextBrandID++
	brand.ID = s.nextBrandID
	s.brands = append(s.brands, brand)
	s.slugs[brand.Slug] = struct{}{}
	return brand
}
