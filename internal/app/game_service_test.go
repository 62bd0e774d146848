package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"logo-guess-service/internal/app"
	"logo-guess-service/internal/domain"
	"logo-guess-service/internal/game"
	"logo-guess-service/internal/infra/memory"
)

func newGameService(t *testing.T) (*app.GameService, *app.CatalogService, *memory.SessionStore) {
	t.Helper()
	catalog := app.NewCatalogService(memory.NewCatalogStore(), discardLogger())
	if _, err := catalog.SeedCatalog(context.Background(), sampleBrands()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sessions := memory.NewSessionStore(time.Hour)
	return app.NewGameService(catalog, sessions, 10, discardLogger()), catalog, sessions
}

func TestGamePlayThroughAndFinish(t *testing.T) {
	ctx := context.Background()
	games, catalog, sessions := newGameService(t)

	round, err := games.Start(ctx, domain.TierEasy, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if round.SessionID == "" || round.Total != 4 || len(round.Options) != 4 {
		t.Fatalf("expected a 4-brand easy session with 4 options, got %+v", round)
	}

	if _, err := games.Finish(ctx, round.SessionID, "AA"); !errors.Is(err, domain.ErrSessionActive) {
		t.Fatalf("expected session still active, got %v", err)
	}

	expected := 0
	for round.State == game.StatePlaying {
		snap, err := sessions.Load(ctx, round.SessionID)
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		answer := snap.Brands[snap.Index].Name

		outcome, err := games.Answer(ctx, round.SessionID, answer)
		if err != nil {
			t.Fatalf("answer: %v", err)
		}
		expected += game.Points(domain.TierEasy)
		if !outcome.Correct || outcome.Score != expected {
			t.Fatalf("unexpected outcome %+v, want score %d", outcome, expected)
		}

		if round, err = games.Next(ctx, round.SessionID); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	if round.State != game.StateEnded {
		t.Fatalf("expected ended, got %s", round.State)
	}

	rec, err := games.Finish(ctx, round.SessionID, "Racer")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if rec.Score != expected || rec.Difficulty != domain.TierEasy {
		t.Fatalf("unexpected record %+v", rec)
	}

	if _, err := games.Resume(ctx, round.SessionID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected finished session gone, got %v", err)
	}

	top, err := catalog.ListScores(ctx)
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(top) != 1 || top[0].PlayerName != "Racer" {
		t.Fatalf("unexpected leaderboard %+v", top)
	}
}

func TestGameFinishScoresOnce(t *testing.T) {
	ctx := context.Background()
	games, catalog, _ := newGameService(t)
	id := lostGame(t, games)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		saved int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := games.Finish(ctx, id, "Twice")
			switch {
			case err == nil:
				mu.Lock()
				saved++
				mu.Unlock()
			case !errors.Is(err, domain.ErrSessionNotFound):
				t.Errorf("finish: %v", err)
			}
		}()
	}
	wg.Wait()

	if saved != 1 {
		t.Fatalf("expected exactly one finish to save, got %d", saved)
	}
	top, err := catalog.ListScores(ctx)
	if err != nil {
		t.Fatalf("list scores: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("expected one score for the session, got %+v", top)
	}
}

func TestGameFinishKeepsSessionOnInvalidName(t *testing.T) {
	ctx := context.Background()
	games, _, _ := newGameService(t)
	id := lostGame(t, games)

	if _, err := games.Finish(ctx, id, "   "); !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := games.Finish(ctx, id, "Retry"); err != nil {
		t.Fatalf("finish after fixing the name: %v", err)
	}
}

func TestGameHardestTierUsesFullPool(t *testing.T) {
	ctx := context.Background()
	games, _, _ := newGameService(t)

	round, err := games.Start(ctx, domain.TierImpossible, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if round.Total != 5 || !round.FreeText || len(round.Options) != 0 || round.Blur != game.BlurMax {
		t.Fatalf("unexpected hardest-tier round %+v", round)
	}
}

func TestGameLosesAllLives(t *testing.T) {
	ctx := context.Background()
	games, _, _ := newGameService(t)
	id := lostGame(t, games)

	round, err := games.Resume(ctx, id)
	if err != nil {
		t.Fatalf("resume: %v", err)
	}
	if round.State != game.StateEnded || round.Lives != 0 {
		t.Fatalf("expected game over, got %+v", round)
	}

	if _, err := games.Answer(ctx, id, "Toyota"); !errors.Is(err, domain.ErrSessionEnded) {
		t.Fatalf("expected session ended, got %v", err)
	}

	rec, err := games.Finish(ctx, id, "Zero")
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if rec.Score != 0 {
		t.Fatalf("expected zero score, got %d", rec.Score)
	}
}

func TestGameErrors(t *testing.T) {
	ctx := context.Background()
	games, _, _ := newGameService(t)

	if _, err := games.Start(ctx, "warp", 0); !domain.IsValidationError(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := games.Answer(ctx, "missing", "Toyota"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	round, err := games.Start(ctx, domain.TierHard, 0)
	if !errors.Is(err, domain.ErrNoBrands) || round.SessionID != "" {
		t.Fatalf("expected no hard brands, got %+v (%v)", round, err)
	}

	round, err = games.Start(ctx, domain.TierMedium, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := games.Next(ctx, round.SessionID); !errors.Is(err, domain.ErrNotRevealed) {
		t.Fatalf("expected not revealed, got %v", err)
	}
}

// lostGame plays an impossible-tier session until every life is gone.
func lostGame(t *testing.T, games *app.GameService) string {
	t.Helper()
	ctx := context.Background()
	round, err := games.Start(ctx, domain.TierImpossible, 0)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < game.StartingLives; i++ {
		outcome, err := games.Answer(ctx, round.SessionID, "definitely not a car")
		if err != nil {
			t.Fatalf("answer: %v", err)
		}
		if outcome.State == game.StateEnded {
			break
		}
		if _, err := games.Next(ctx, round.SessionID); err != nil {
			t.Fatalf("next: %v", err)
		}
	}
	return round.SessionID
}
