package game

import (
	"fmt"
	"math/rand"
	"time"

	"logo-guess-service/internal/domain"
)

// State is the phase of the current round.
type State string

const (
	StatePlaying  State = "playing"
	StateRevealed State = "revealed"
	StateEnded    State = "ended"
)

// StartingLives is how many wrong answers a player may give.
const StartingLives = 3

// Session walks one player through a batch of brands. It is not safe for
// concurrent use; stores hand out independent copies via Snapshot.
type Session struct {
	id      string
	tier    domain.Tier
	brands  []domain.Brand
	index   int
	score   int
	lives   int
	state   State
	options []domain.Brand
	guess   string
	correct bool
	rnd     *rand.Rand
}

// Outcome is the result of one submitted answer.
type Outcome struct {
	Correct bool   `json:"correct"`
	Awarded int    `json:"awarded"`
	Guess   string `json:"guess"`
	Answer  string `json:"answer"`
	Score   int    `json:"score"`
	Lives   int    `json:"lives"`
	State   State  `json:"state"`
}

// Round is what a client needs to render the current question.
type Round struct {
	SessionID  string      `json:"sessionId"`
	Difficulty domain.Tier `json:"difficulty"`
	Position   int         `json:"position"`
	Total      int         `json:"total"`
	Score      int         `json:"score"`
	Lives      int         `json:"lives"`
	State      State       `json:"state"`
	ImageURL   string      `json:"imageUrl"`
	Blur       int         `json:"blur"`
	FreeText   bool        `json:"freeText"`
	Options    []string    `json:"options,omitempty"`
	Guess      string      `json:"guess,omitempty"`
	Answer     string      `json:"answer,omitempty"`
}

// New starts a session on the first brand of batch. A nil rnd gets a time-seeded source.
func New(id string, tier domain.Tier, batch []domain.Brand, rnd *rand.Rand) (*Session, error) {
	if !tier.Valid() {
		return nil, fmt.Errorf("new session: unknown tier %q", tier)
	}
	if len(batch) == 0 {
		return nil, domain.ErrNoBrands
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	brands := make([]domain.Brand, len(batch))
	copy(brands, batch)

	s := &Session{
		id:     id,
		tier:   tier,
		brands: brands,
		lives:  StartingLives,
		rnd:    rnd,
	}
	s.beginRound()
	return s, nil
}

func (s *Session) ID() string            { return s.id }
func (s *Session) Tier() domain.Tier     { return s.tier }
func (s *Session) Score() int            { return s.score }
func (s *Session) Lives() int            { return s.lives }
func (s *Session) State() State          { return s.state }
func (s *Session) Position() int         { return s.index }
func (s *Session) Total() int            { return len(s.brands) }
func (s *Session) Current() domain.Brand { return s.brands[s.index] }

// Options returns the candidate set of the current round; nil on free-text tiers.
func (s *Session) Options() []domain.Brand {
	if s.options == nil {
		return nil
	}
	out := make([]domain.Brand, len(s.options))
	copy(out, s.options)
	return out
}

// Submit evaluates candidate against the current brand and reveals the round.
func (s *Session) Submit(candidate string) (Outcome, error) {
	switch s.state {
	case StateEnded:
		return Outcome{}, domain.ErrSessionEnded
	case StateRevealed:
		return Outcome{}, domain.ErrAnswerRevealed
	}

	brand := s.Current()
	s.guess = candidate
	s.correct = domain.NormalizeName(candidate) == domain.NormalizeName(brand.Name)
	s.state = StateRevealed

	awarded := 0
	if s.correct {
		awarded = Points(s.tier)
		s.score += awarded
	} else {
		s.lives--
		if s.lives <= 0 {
			s.lives = 0
			s.state = StateEnded
		}
	}

	return Outcome{
		Correct: s.correct,
		Awarded: awarded,
		Guess:   candidate,
		Answer:  brand.Name,
		Score:   s.score,
		Lives:   s.lives,
		State:   s.state,
	}, nil
}

// Advance moves past a revealed round, ending the session after the last brand.
func (s *Session) Advance() error {
	switch s.state {
	case StateEnded:
		return domain.ErrSessionEnded
	case StatePlaying:
		return domain.ErrNotRevealed
	}
	if s.index+1 >= len(s.brands) {
		s.state = StateEnded
		return nil
	}
	s.index++
	s.beginRound()
	return nil
}

// Round renders the current question. The answer is included once revealed.
func (s *Session) Round() Round {
	brand := s.Current()
	r := Round{
		SessionID:  s.id,
		Difficulty: s.tier,
		Position:   s.index + 1,
		Total:      len(s.brands),
		Score:      s.score,
		Lives:      s.lives,
		State:      s.state,
		ImageURL:   brand.ImageURL,
		FreeText:   !MultipleChoice(s.tier),
	}
	for _, opt := range s.options {
		r.Options = append(r.Options, opt.Name)
	}
	if s.state == StatePlaying {
		r.Blur = BlurLevel(s.tier, brand.HasText)
	} else {
		r.Guess = s.guess
		r.Answer = brand.Name
	}
	return r
}

func (s *Session) beginRound() {
	s.state = StatePlaying
	s.guess = ""
	s.correct = false
	s.options = nil
	if MultipleChoice(s.tier) {
		s.options = Candidates(s.rnd, s.brands, s.Current())
	}
}
