package seed

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"logo-guess-service/internal/domain"
)

// DefaultLimit caps how many brands one seeding run stores.
const DefaultLimit = 150

var (
	electricMakers = set("tesla", "rivian", "lucid", "nio", "xpeng", "byd", "rimac", "polestar")

	easyBrands = set(
		"toyota", "honda", "ford", "chevrolet", "bmw", "mercedes-benz", "audi", "volkswagen",
		"nissan", "hyundai", "kia", "mazda", "subaru", "jeep", "ferrari", "lamborghini", "porsche",
	)

	mediumBrands = set(
		"volvo", "lexus", "acura", "infiniti", "cadillac", "lincoln", "buick", "jaguar", "land-rover",
		"mini", "mitsubishi", "peugeot", "renault", "fiat", "alfa-romeo", "maserati", "aston-martin",
		"bentley", "rolls-royce", "mclaren", "bugatti",
	)
)

// impossibleShare is the chance that an obscure brand lands in the hardest tier.
const impossibleShare = 0.2

// Builder turns dataset entries into catalog brands.
type Builder struct {
	ImageBaseURL string
	Limit        int
	Rand         *rand.Rand
}

// Build skips electric-only makers, shuffles the rest and assigns tiers by popularity.
func (b Builder) Build(entries []Entry) []domain.Brand {
	rnd := b.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	limit := b.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	shuffled := append([]Entry(nil), entries...)
	rnd.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	brands := make([]domain.Brand, 0, limit)
	for _, e := range shuffled {
		if len(brands) >= limit {
			break
		}
		slug := strings.ToLower(strings.TrimSpace(e.Slug))
		name := strings.TrimSpace(e.Name)
		if slug == "" || name == "" {
			continue
		}
		if _, ev := electricMakers[slug]; ev {
			continue
		}
		brands = append(brands, domain.Brand{
			Name:       name,
			Slug:       slug,
			ImageURL:   b.imageURL(e, slug),
			Difficulty: classify(slug, rnd),
			HasText:    true,
		})
	}
	return brands
}

func (b Builder) imageURL(e Entry, slug string) string {
	if b.ImageBaseURL == "" && e.Image.Optimized != "" {
		return e.Image.Optimized
	}
	return strings.TrimRight(b.ImageBaseURL, "/") + "/" + slug + ".png"
}

func classify(slug string, rnd *rand.Rand) domain.Tier {
	if _, ok := easyBrands[slug]; ok {
		return domain.TierEasy
	}
	if _, ok := mediumBrands[slug]; ok {
		return domain.TierMedium
	}
	if rnd.Float64() < impossibleShare {
		return domain.TierImpossible
	}
	return domain.TierHard
}

// Seeder stores brands idempotently.
type Seeder interface {
	SeedCatalog(ctx context.Context, brands []domain.Brand) (int, error)
}

// Run downloads (or falls back), builds and stores the catalog. It returns the number of new rows.
func Run(ctx context.Context, src *Source, b Builder, seeder Seeder) (int, error) {
	return seeder.SeedCatalog(ctx, b.Build(src.Entries(ctx)))
}

func set(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
