package http

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"logo-guess-service/internal/app"
	"logo-guess-service/internal/domain"
	"logo-guess-service/internal/infra/memory"
)

func newTestHandler(t *testing.T, brands []domain.Brand) *Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	catalog := app.NewCatalogService(memory.NewCatalogStore(), logger)
	if len(brands) > 0 {
		if _, err := catalog.SeedCatalog(context.Background(), brands); err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
	games := app.NewGameService(catalog, memory.NewSessionStore(time.Minute), 10, logger)
	return NewHandler(catalog, games, logger)
}

func sampleBrands() []domain.Brand {
	return []domain.Brand{
		{Name: "Toyota", Slug: "toyota", ImageURL: "toyota.png", Difficulty: domain.TierEasy, HasText: true},
		{Name: "Honda", Slug: "honda", ImageURL: "honda.png", Difficulty: domain.TierEasy, HasText: true},
		{Name: "Ford", Slug: "ford", ImageURL: "ford.png", Difficulty: domain.TierEasy, HasText: true},
		{Name: "Mazda", Slug: "mazda", ImageURL: "mazda.png", Difficulty: domain.TierEasy, HasText: true},
		{Name: "Volvo", Slug: "volvo", ImageURL: "volvo.png", Difficulty: domain.TierMedium, HasText: true},
	}
}
