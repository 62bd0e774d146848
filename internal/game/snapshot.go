package game

import (
	"fmt"
	"math/rand"
	"time"

	"logo-guess-service/internal/domain"
)

// Snapshot is the serializable form of a Session.
type Snapshot struct {
	ID         string         `json:"id"`
	Difficulty domain.Tier    `json:"difficulty"`
	Brands     []domain.Brand `json:"brands"`
	Index      int            `json:"index"`
	Score      int            `json:"score"`
	Lives      int            `json:"lives"`
	State      State          `json:"state"`
	Options    []domain.Brand `json:"options,omitempty"`
	Guess      string         `json:"guess,omitempty"`
	Correct    bool           `json:"correct,omitempty"`
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	brands := make([]domain.Brand, len(s.brands))
	copy(brands, s.brands)
	return Snapshot{
		ID:         s.id,
		Difficulty: s.tier,
		Brands:     brands,
		Index:      s.index,
		Score:      s.score,
		Lives:      s.lives,
		State:      s.state,
		Options:    s.Options(),
		Guess:      s.guess,
		Correct:    s.correct,
	}
}

// Restore rebuilds a session from snap. A nil rnd gets a time-seeded source.
func Restore(snap Snapshot, rnd *rand.Rand) (*Session, error) {
	if !snap.Difficulty.Valid() {
		return nil, fmt.Errorf("restore session %s: unknown tier %q", snap.ID, snap.Difficulty)
	}
	if snap.Index < 0 || snap.Index >= len(snap.Brands) {
		return nil, fmt.Errorf("restore session %s: position %d out of range", snap.ID, snap.Index)
	}
	switch snap.State {
	case StatePlaying, StateRevealed, StateEnded:
	default:
		return nil, fmt.Errorf("restore session %s: unknown state %q", snap.ID, snap.State)
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Session{
		id:      snap.ID,
		tier:    snap.Difficulty,
		brands:  append([]domain.Brand(nil), snap.Brands...),
		index:   snap.Index,
		score:   snap.Score,
		lives:   snap.Lives,
		state:   snap.State,
		guess:   snap.Guess,
		correct: snap.Correct,
		rnd:     rnd,
	}
	if snap.Options != nil {
		s.options = append([]domain.Brand(nil), snap.Options...)
	}
	return s, nil
}
