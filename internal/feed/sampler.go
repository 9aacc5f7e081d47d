// Package feed implements the live-feed simulation pipeline: the
// category-balanced sampler and the synthetic recency labels.
package feed

import (
	"math/rand"
	"strings"
	"sync"

	"github.com/globeview/globeview/internal/model"
)

// Sampler draws a category-balanced random subset of updates. Balancing
// caps what each category may contribute so a dominant category cannot
// crowd a small sample; within a category selection is uniform, across
// categories the share is capped, not proportional. Sample is safe for
// concurrent use; the rng must not be shared with other components.
type Sampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a Sampler drawing from rng. Tests pass a fixed
// seed; production uses a time-seeded source.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// PerCategory is the cap on how many records one category may
// contribute to a sample: ceil(limit / categories), at least 1.
func PerCategory(limit, categories int) int {
	if categories <= 0 {
		return limit
	}
	per := (limit + categories - 1) / categories
	if per < 1 {
		per = 1
	}
	return per
}

// Sample returns at most limit updates. Records are grouped by
// lower-cased category, each group is shuffled and sliced to the
// PerCategory cap, and the concatenation is shuffled again before
// truncation. The input is never mutated; an empty result is a valid
// outcome, not an error.
func (s *Sampler) Sample(updates []model.IntelligenceUpdate, limit int) []model.IntelligenceUpdate {
	if limit <= 0 || len(updates) == 0 {
		return []model.IntelligenceUpdate{}
	}

	// rand.Rand is not safe for concurrent use and handlers call
	// Sample from concurrent requests.
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := make(map[string][]model.IntelligenceUpdate)
	var order []string
	for _, u := range updates {
		key := strings.ToLower(u.Category)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], u)
	}

	per := PerCategory(limit, len(groups))

	mixed := make([]model.IntelligenceUpdate, 0, limit)
	for _, key := range order {
		group := append([]model.IntelligenceUpdate(nil), groups[key]...)
		s.rng.Shuffle(len(group), func(i, j int) {
			group[i], group[j] = group[j], group[i]
		})
		take := per
		if take > len(group) {
			take = len(group)
		}
		mixed = append(mixed, group[:take]...)
	}

	s.rng.Shuffle(len(mixed), func(i, j int) {
		mixed[i], mixed[j] = mixed[j], mixed[i]
	})

	if len(mixed) > limit {
		mixed = mixed[:limit]
	}
	return mixed
}
