package domain

import (
	"math/rand"
	"strings"
	"unicode/utf8"
)

// MaxPlayerNameLength bounds the leaderboard display name.
const MaxPlayerNameLength = 15

// Brand is a car maker whose logo is guessed.
type Brand struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Slug       string `json:"slug"`
	ImageURL   string `json:"imageUrl"`
	Difficulty Tier   `json:"difficulty"`
	HasText    bool   `json:"hasText"`
}

// Validate checks a brand before it is stored.
func (b Brand) Validate() error {
	switch {
	case strings.TrimSpace(b.Name) == "":
		return invalid("name", "name is required")
	case strings.TrimSpace(b.Slug) == "":
		return invalid("slug", "slug is required")
	case strings.TrimSpace(b.ImageURL) == "":
		return invalid("imageUrl", "imageUrl is required")
	case !b.Difficulty.Valid():
		return invalid("difficulty", "difficulty must be one of easy, medium, hard, impossible")
	}
	return nil
}

// ScoreRecord is one leaderboard entry.
type ScoreRecord struct {
	ID         int64  `json:"id"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
	Difficulty Tier   `json:"difficulty"`
}

// Normalize trims the player name in place. Difficulty is left as sent and
// must already be one of the lowercase tier names.
func (s *ScoreRecord) Normalize() {
	s.PlayerName = strings.TrimSpace(s.PlayerName)
}

// Validate returns the first violated constraint, in field order.
func (s ScoreRecord) Validate() error {
	name := strings.TrimSpace(s.PlayerName)
	switch {
	case name == "":
		return invalid("playerName", "playerName is required")
	case utf8.RuneCountInString(name) > MaxPlayerNameLength:
		return invalid("playerName", "playerName must be at most 15 characters")
	case s.Score < 0:
		return invalid("score", "score must be a non-negative integer")
	case !s.Difficulty.Valid():
		return invalid("difficulty", "difficulty must be one of easy, medium, hard, impossible")
	}
	return nil
}

// BrandFilter selects a random batch of brands. An empty Difficulty means the full pool.
type BrandFilter struct {
	Difficulty Tier
	Limit      int
}

// NormalizeName is the comparison form used for answers and distractors.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SampleBrands returns up to limit brands from pool in random order. pool is not modified.
// A nil rnd uses the package-level source.
func SampleBrands(rnd *rand.Rand, pool []Brand, limit int) []Brand {
	out := make([]Brand, len(pool))
	copy(out, pool)
	shuffle := rand.Shuffle
	if rnd != nil {
		shuffle = rnd.Shuffle
	}
	shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
