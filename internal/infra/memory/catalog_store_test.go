package memory

import (
	"context"
	"errors"
	"testing"

	"logo-guess-service/internal/domain"
)

func TestCatalogStoreSeedIsIdempotent(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()

	n, err := store.SeedBrands(ctx, sampleBrands())
	if err != nil || n != 4 {
		t.Fatalf("first seed: n=%d err=%v", n, err)
	}
	n, err = store.SeedBrands(ctx, append(sampleBrands(), domain.Brand{Name: "Kia", Slug: "kia", ImageURL: "kia.png", Difficulty: domain.TierEasy}))
	if err != nil || n != 1 {
		t.Fatalf("second seed: n=%d err=%v", n, err)
	}
	if count, _ := store.CountBrands(ctx); count != 5 {
		t.Fatalf("expected 5 brands, got %d", count)
	}

	_, err = store.CreateBrand(ctx, domain.Brand{Name: "Toyota", Slug: "toyota"})
	if !errors.Is(err, domain.ErrDuplicateSlug) {
		t.Fatalf("expected duplicate slug error, got %v", err)
	}
}

func TestCatalogStoreTopScores(t *testing.T) {
	store := NewCatalogStore()
	ctx := context.Background()
	for i, score := range []int{5, 40, 15, 40, 0, 25, 10, 35, 30, 20, 45, 50} {
		rec, err := store.CreateScore(ctx, domain.ScoreRecord{PlayerName: "P", Score: score, Difficulty: domain.TierEasy})
		if err != nil {
			t.Fatalf("create score %d: %v", i, err)
		}
		if rec.ID != int64(i+1) {
			t.Fatalf("expected id %d, got %d", i+1, rec.ID)
		}
	}

	top, err := store.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 10 {
		t.Fatalf("expected 10 scores, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Score > top[i-1].Score {
			t.Fatalf("scores not descending at %d: %+v", i, top)
		}
	}
	if top[0].Score != 50 || top[2].ID != 2 || top[3].ID != 4 {
		t.Fatalf("unexpected order %+v", top)
	}
}
