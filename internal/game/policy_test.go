package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"logo-guess-service/internal/domain"
)

func TestPointsGrowWithTier(t *testing.T) {
	prev := 0
	for _, tier := range domain.Tiers {
		p := Points(tier)
		assert.Greater(t, p, prev, "tier %s", tier)
		prev = p
	}
	assert.Zero(t, Points("unknown"))
}

func TestBlurLevel(t *testing.T) {
	tests := []struct {
		tier    domain.Tier
		hasText bool
		want    int
	}{
		{domain.TierEasy, false, BlurNone},
		{domain.TierEasy, true, BlurModerate},
		{domain.TierMedium, false, BlurModerate},
		{domain.TierHard, true, BlurHeavy},
		{domain.TierImpossible, false, BlurMax},
		{domain.TierImpossible, true, BlurMax},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BlurLevel(tt.tier, tt.hasText), "%s hasText=%v", tt.tier, tt.hasText)
	}
}

func TestCandidatesAreUniqueAndIncludeCorrect(t *testing.T) {
	batch := sampleBrands()
	batch = append(batch, domain.Brand{ID: 9, Name: "toyota "})
	rnd := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		correct := batch[i%len(sampleBrands())]
		got := Candidates(rnd, batch, correct)
		assert.Len(t, got, DistractorCount+1)
		names := map[string]bool{}
		for _, b := range got {
			n := domain.NormalizeName(b.Name)
			assert.False(t, names[n], "duplicate candidate %q", b.Name)
			names[n] = true
		}
		assert.True(t, names[domain.NormalizeName(correct.Name)])
	}
}

func TestCandidatesSmallBatch(t *testing.T) {
	batch := sampleBrands()[:2]
	got := Candidates(rand.New(rand.NewSource(1)), batch, batch[0])
	assert.Len(t, got, 2)
}
