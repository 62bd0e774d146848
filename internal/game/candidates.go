package game

import (
	"math/rand"

	"logo-guess-service/internal/domain"
)

// DistractorCount is the number of wrong answers offered next to the right one.
const DistractorCount = 3

// Candidates draws DistractorCount other brands from batch without replacement,
// adds correct and shuffles the result. Brands sharing a name with correct or
// with an already chosen distractor are skipped, so every entry is unique.
func Candidates(rnd *rand.Rand, batch []domain.Brand, correct domain.Brand) []domain.Brand {
	seen := map[string]struct{}{domain.NormalizeName(correct.Name): {}}
	pool := make([]domain.Brand, 0, len(batch))
	for _, b := range batch {
		if _, dup := seen[domain.NormalizeName(b.Name)]; dup {
			continue
		}
		pool = append(pool, b)
	}

	rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	out := make([]domain.Brand, 0, DistractorCount+1)
	for _, b := range pool {
		if len(out) == DistractorCount {
			break
		}
		name := domain.NormalizeName(b.Name)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, b)
	}
	out = append(out, correct)
	rnd.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
