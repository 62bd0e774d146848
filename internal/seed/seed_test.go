package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logo-guess-service/internal/domain"
)

func TestSourceFetchesDataset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"name": "Volvo", "slug": "volvo", "image": map[string]string{"optimized": "https://cdn/volvo.png"}},
			{"name": "Tesla", "slug": "tesla"},
		})
	}))
	defer srv.Close()

	entries := NewSource(srv.URL, time.Second, discardLogger()).Entries(context.Background())
	require.Len(t, entries, 2)
	assert.Equal(t, "volvo", entries[0].Slug)
	assert.Equal(t, "https://cdn/volvo.png", entries[0].Image.Optimized)
}

func TestSourceFallsBack(t *testing.T) {
	tests := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		},
		"bad json": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not json"))
		},
		"empty": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("[]"))
		},
	}
	for name, handler := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()
			entries := NewSource(srv.URL, time.Second, discardLogger()).Entries(context.Background())
			assert.Equal(t, Fallback, entries)
		})
	}

	entries := NewSource("", time.Second, discardLogger()).Entries(context.Background())
	assert.Len(t, entries, 10)
}

func TestBuilderAssignsTiers(t *testing.T) {
	entries := []Entry{
		{Name: "Toyota", Slug: "toyota"},
		{Name: "Volvo", Slug: "Volvo"},
		{Name: "Tesla", Slug: "tesla"},
		{Name: "Polestar", Slug: "polestar"},
		{Name: "", Slug: "blank"},
	}
	for i := 0; i < 40; i++ {
		entries = append(entries, Entry{Name: fmt.Sprintf("Obscure %d", i), Slug: fmt.Sprintf("obscure-%d", i)})
	}

	brands := Builder{ImageBaseURL: "https://img/", Rand: rand.New(rand.NewSource(5))}.Build(entries)
	require.Len(t, brands, 42)

	tiers := map[domain.Tier]int{}
	for _, b := range brands {
		require.NoError(t, b.Validate())
		assert.True(t, b.HasText)
		assert.Equal(t, "https://img/"+b.Slug+".png", b.ImageURL)
		assert.NotEqual(t, "tesla", b.Slug)
		switch b.Slug {
		case "toyota":
			assert.Equal(t, domain.TierEasy, b.Difficulty)
		case "volvo":
			assert.Equal(t, domain.TierMedium, b.Difficulty)
		}
		tiers[b.Difficulty]++
	}
	assert.Positive(t, tiers[domain.TierHard])
	assert.Positive(t, tiers[domain.TierImpossible])
}

func TestBuilderLimit(t *testing.T) {
	var entries []Entry
	for i := 0; i < 200; i++ {
		entries = append(entries, Entry{Name: fmt.Sprintf("Brand %d", i), Slug: fmt.Sprintf("brand-%d", i)})
	}
	assert.Len(t, Builder{}.Build(entries), DefaultLimit)
	assert.Len(t, Builder{Limit: 12}.Build(entries), 12)
}

func TestRunSeedsFromSource(t *testing.T) {
	seeder := &recordingSeeder{}
	src := NewSource("", time.Second, discardLogger())

	n, err := Run(context.Background(), src, Builder{ImageBaseURL: "https://img"}, seeder)
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Len(t, seeder.brands, 10)
}

type recordingSeeder struct {
	brands []domain.Brand
}

func (s *recordingSeeder) SeedCatalog(_ context.Context, brands []domain.Brand) (int, error) {
	s.brands = append(s.brands, brands...)
	return len(brands), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
