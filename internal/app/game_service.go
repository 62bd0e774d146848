package app

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"logo-guess-service/internal/domain"
	"logo-guess-service/internal/game"
)

// SessionRepository abstracts how game sessions are stored (in-memory, Redis, etc).
// Implementations keep copies, so callers never share a live session.
type SessionRepository interface {
	Save(ctx context.Context, snap game.Snapshot) error
	Load(ctx context.Context, id string) (game.Snapshot, error)
	// Take atomically loads and removes a session; only one caller gets it.
	Take(ctx context.Context, id string) (game.Snapshot, error)
}

// GameService drives quiz sessions on behalf of clients.
type GameService struct {
	catalog   *CatalogService
	sessions  SessionRepository
	batchSize int
	newID     func() string
	logger    *slog.Logger
}

func NewGameService(catalog *CatalogService, sessions SessionRepository, batchSize int, logger *slog.Logger) *GameService {
	if batchSize <= 0 {
		batchSize = 10
	}
	return &GameService{
		catalog:   catalog,
		sessions:  sessions,
		batchSize: batchSize,
		newID:     uuid.NewString,
		logger:    logger,
	}
}

// Start draws a batch for tier and opens a session on its first brand.
// The hardest tier draws from every tier, like the web client does.
func (s *GameService) Start(ctx context.Context, tier domain.Tier, limit int) (game.Round, error) {
	if !tier.Valid() {
		return game.Round{}, &domain.ValidationError{Field: "difficulty", Message: "difficulty must be one of easy, medium, hard, impossible"}
	}
	if limit <= 0 {
		limit = s.batchSize
	}
	filter := domain.BrandFilter{Difficulty: tier, Limit: limit}
	if tier.Hardest() {
		filter.Difficulty = ""
	}

	brands, err := s.catalog.ListBrands(ctx, filter)
	if err != nil {
		return game.Round{}, err
	}
	session, err := game.New(s.newID(), tier, brands, nil)
	if err != nil {
		return game.Round{}, err
	}
	if err := s.sessions.Save(ctx, session.Snapshot()); err != nil {
		return game.Round{}, err
	}
	s.logger.Debug("game started", "session_id", session.ID(), "difficulty", tier, "brands", session.Total())
	return session.Round(), nil
}

// Resume returns the current round of a stored session.
func (s *GameService) Resume(ctx context.Context, id string) (game.Round, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return game.Round{}, err
	}
	return session.Round(), nil
}

// Answer submits a guess for the current round.
func (s *GameService) Answer(ctx context.Context, id, candidate string) (game.Outcome, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return game.Outcome{}, err
	}
	outcome, err := session.Submit(candidate)
	if err != nil {
		return game.Outcome{}, err
	}
	if err := s.sessions.Save(ctx, session.Snapshot()); err != nil {
		return game.Outcome{}, err
	}
	return outcome, nil
}

// Next advances past a revealed round.
func (s *GameService) Next(ctx context.Context, id string) (game.Round, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return game.Round{}, err
	}
	if err := session.Advance(); err != nil {
		return game.Round{}, err
	}
	if err := s.sessions.Save(ctx, session.Snapshot()); err != nil {
		return game.Round{}, err
	}
	return session.Round(), nil
}

// Finish stores the final score of an ended session and forgets the session.
// The session is claimed before the score is written, so it scores once.
func (s *GameService) Finish(ctx context.Context, id, playerName string) (domain.ScoreRecord, error) {
	session, err := s.load(ctx, id)
	if err != nil {
		return domain.ScoreRecord{}, err
	}
	if session.State() != game.StateEnded {
		return domain.ScoreRecord{}, domain.ErrSessionActive
	}
	record := domain.ScoreRecord{PlayerName: playerName, Score: session.Score(), Difficulty: session.Tier()}
	record.Normalize()
	if err := record.Validate(); err != nil {
		return domain.ScoreRecord{}, err
	}

	snap, err := s.sessions.Take(ctx, id)
	if err != nil {
		// another caller finished it first
		return domain.ScoreRecord{}, err
	}
	stored, err := s.catalog.CreateScore(ctx, record)
	if err != nil {
		if restoreErr := s.sessions.Save(ctx, snap); restoreErr != nil {
			s.logger.Warn("restore session after failed save", "session_id", id, "error", restoreErr)
		}
		return domain.ScoreRecord{}, err
	}
	return stored, nil
}

func (s *GameService) load(ctx context.Context, id string) (*game.Session, error) {
	snap, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return game.Restore(snap, nil)
}
