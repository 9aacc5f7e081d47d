package feed_test

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/globeview/globeview/internal/feed"
	"github.com/globeview/globeview/internal/model"
)

func makeUpdates(counts map[string]int) []model.IntelligenceUpdate {
	var updates []model.IntelligenceUpdate
	id := 1
	for category, n := range counts {
		for i := 0; i < n; i++ {
			updates = append(updates, model.IntelligenceUpdate{
				ID:       id,
				Category: category,
				Status:   model.StatusActive,
			})
			id++
		}
	}
	return updates
}

func TestSampleCardinality(t *testing.T) {
	// conflict:5, economy:5, security:5, limit 6 => at most 6 records
	// and no category above ceil(6/3) = 2.
	updates := makeUpdates(map[string]int{"conflict": 5, "economy": 5, "security": 5})
	sampler := feed.NewSampler(rand.New(rand.NewSource(1)))

	for trial := 0; trial < 50; trial++ {
		sample := sampler.Sample(updates, 6)
		if len(sample) > 6 {
			t.Fatalf("expected at most 6 records, got %d", len(sample))
		}

		perCategory := map[string]int{}
		for _, u := range sample {
			perCategory[strings.ToLower(u.Category)]++
		}
		for category, n := range perCategory {
			if n > 2 {
				t.Fatalf("category %q contributed %d records, cap is 2", category, n)
			}
		}
	}
}

func TestSampleDominantCategoryCapped(t *testing.T) {
	updates := makeUpdates(map[string]int{"conflict": 40, "economy": 3})
	sampler := feed.NewSampler(rand.New(rand.NewSource(2)))

	maxShare := feed.PerCategory(10, 2)
	for trial := 0; trial < 50; trial++ {
		sample := sampler.Sample(updates, 10)
		conflict := 0
		for _, u := range sample {
			if u.Category == "conflict" {
				conflict++
			}
		}
		if conflict > maxShare {
			t.Fatalf("conflict contributed %d records, cap is %d", conflict, maxShare)
		}
	}
}

func TestSampleDoesNotMutateInput(t *testing.T) {
	updates := makeUpdates(map[string]int{"conflict": 4, "economy": 4})
	sampler := feed.NewSampler(rand.New(rand.NewSource(3)))

	sampler.Sample(updates, 5)
	sampler.Sample(updates, 5)

	for i, u := range updates {
		if u.Status != model.StatusActive {
			t.Fatalf("update %d status mutated to %q", i, u.Status)
		}
		if !u.Timestamp.IsZero() {
			t.Fatalf("update %d timestamp mutated", i)
		}
	}
	if updates[0].ID != 1 {
		t.Fatal("input order mutated")
	}
}

func TestSampleMixesCategoriesCaseInsensitively(t *testing.T) {
	updates := []model.IntelligenceUpdate{
		{ID: 1, Category: "Conflict"},
		{ID: 2, Category: "conflict"},
		{ID: 3, Category: "CONFLICT"},
	}
	sampler := feed.NewSampler(rand.New(rand.NewSource(4)))

	// One logical category, so the cap is ceil(2/1) = 2.
	sample := sampler.Sample(updates, 2)
	if len(sample) != 2 {
		t.Fatalf("expected 2 records, got %d", len(sample))
	}
}

func TestSampleEmptyInput(t *testing.T) {
	sampler := feed.NewSampler(rand.New(rand.NewSource(5)))

	sample := sampler.Sample(nil, 10)
	if sample == nil || len(sample) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", sample)
	}
}

func TestSampleConcurrentUse(t *testing.T) {
	// Handlers share one Sampler across requests; overlapping calls
	// must not race on the rng.
	updates := makeUpdates(map[string]int{"conflict": 5, "economy": 5, "security": 5})
	sampler := feed.NewSampler(rand.New(rand.NewSource(6)))

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if sample := sampler.Sample(updates, 6); len(sample) > 6 {
					panic("cardinality violated")
				}
			}
		}()
	}
	wg.Wait()
}

func TestPerCategory(t *testing.T) {
	cases := []struct {
		limit, categories, want int
	}{
		{6, 3, 2},
		{10, 3, 4},
		{1, 5, 1},
		{50, 7, 8},
	}
	for _, c := range cases {
		if got := feed.PerCategory(c.limit, c.categories); got != c.want {
			t.Errorf("PerCategory(%d, %d) = %d, want %d", c.limit, c.categories, got, c.want)
		}
	}
}
