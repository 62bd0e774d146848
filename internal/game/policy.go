package game

import "logo-guess-service/internal/domain"

// Blur intensities applied to the logo while a round is unanswered.
const (
	BlurNone     = 0
	BlurModerate = 10
	BlurHeavy    = 15
	BlurMax      = 20
)

// Points is the award for a correct answer; it grows strictly with the tier.
func Points(tier domain.Tier) int {
	switch tier {
	case domain.TierEasy:
		return 5
	case domain.TierMedium:
		return 10
	case domain.TierHard:
		return 15
	case domain.TierImpossible:
		return 20
	}
	return 0
}

// BlurLevel picks the obfuscation for a logo. On the easiest tier only
// artwork that spells out the brand name is blurred.
func BlurLevel(tier domain.Tier, hasText bool) int {
	switch tier {
	case domain.TierImpossible:
		return BlurMax
	case domain.TierHard:
		return BlurHeavy
	case domain.TierMedium:
		return BlurModerate
	}
	if hasText {
		return BlurModerate
	}
	return BlurNone
}

// MultipleChoice reports whether rounds on tier offer candidate answers.
func MultipleChoice(tier domain.Tier) bool {
	return tier.Valid() && !tier.Hardest()
}
