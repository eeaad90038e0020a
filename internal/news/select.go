package news

import (
	"math/rand"
	"time"

	"github.com/samber/lo"
)

// Select narrows candidates to the freshest window, shuffles them with
// the caller's randomness and truncates to limit. The rand source is
// injected so tests can pin a seed.
func Select(candidates []Article, now time.Time, window time.Duration, limit int, rng *rand.Rand) []Article {
	cutoff := now.UTC().Add(-window)

	fresh := lo.Filter(candidates, func(a Article, _ int) bool {
		return !a.PublishedAt.Before(cutoff)
	})

	rng.Shuffle(len(fresh), func(i, j int) {
		fresh[i], fresh[j] = fresh[j], fresh[i]
	})

	if len(fresh) > limit {
		fresh = fresh[:limit]
	}
	return fresh
}
