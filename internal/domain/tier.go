package domain

import (
	"fmt"
	"strings"
)

// Tier is one of the four ordered difficulty levels.
type Tier string

const (
	TierEasy       Tier = "easy"
	TierMedium     Tier = "medium"
	TierHard       Tier = "hard"
	TierImpossible Tier = "impossible"
)

// Tiers lists every tier from easiest to hardest.
var Tiers = []Tier{TierEasy, TierMedium, TierHard, TierImpossible}

// ParseTier accepts a tier name in any case.
func ParseTier(raw string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if !t.Valid() {
		return "", invalid("difficulty", fmt.Sprintf("difficulty must be one of easy, medium, hard, impossible (got %q)", raw))
	}
	return t, nil
}

// Valid reports whether t is one of the recognized tiers.
func (t Tier) Valid() bool {
	return t.Rank() >= 0
}

// Rank is the zero-based position of t in Tiers, or -1.
func (t Tier) Rank() int {
	for i, candidate := range Tiers {
		if candidate == t {
			return i
		}
	}
	return -1
}

// Hardest reports whether t is the top tier, which is played with free text.
func (t Tier) Hardest() bool {
	return t == Tiers[len(Tiers)-1]
}

func (t Tier) String() string {
	return string(t)
}
