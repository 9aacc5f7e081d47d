// Package seed generates demo data: randomized intelligence updates
// and the static analysis report set.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/globeview/globeview/internal/importer"
	"github.com/globeview/globeview/internal/model"
	"github.com/globeview/globeview/internal/store"
)

type region struct {
	name string
	lat  float64
	lng  float64
}

var regions = []region{
	{"Eastern Europe", 50.45, 30.52},
	{"Middle East", 31.77, 35.21},
	{"East Asia", 39.91, 116.40},
	{"Southeast Asia", 13.75, 100.50},
	{"Africa", -1.29, 36.82},
	{"North America", 38.90, -77.03},
	{"South America", -15.79, -47.88},
	{"Western Europe", 48.85, 2.35},
	{"South Asia", 28.61, 77.21},
	{"Central Asia", 43.22, 76.85},
}

type source struct {
	name string
	kind string
	icon string
}

var sources = []source{
	{"Global Intelligence Network", "verified", "government"},
	{"OSINT Watch Telegram", "osint", "telegram"},
	{"Strategic Analysis Group", "analysis", "satellite"},
	{"Reuters", "media", "news"},
	{"Global Affairs Monitor", "verified", "government"},
	{"Diplomatic Observer", "analysis", "news"},
	{"Security Insights", "osint", "satellite"},
	{"Resource Monitor", "verified", "satellite"},
}

var headlines = []string{
	"Military convoy movement reported near %s border",
	"Emergency diplomatic session convened over %s tensions",
	"Sanctions package targeting %s trade routes announced",
	"Humanitarian corridor established in %s region",
	"Cyber intrusion detected at %s infrastructure operator",
	"Energy supply disruption spreads across %s markets",
	"Naval exercises expand in waters off %s",
	"Grain export agreement reshapes %s trade flows",
}

// Updates writes n active and archived randomized records to the
// store. Roughly a third are archived so the rotation loop has supply
// from the start.
func Updates(st *store.Store, n int, rng *rand.Rand) (int, error) {
	now := time.Now()
	for i := 0; i < n; i++ {
		reg := regions[rng.Intn(len(regions))]
		src := sources[rng.Intn(len(sources))]
		category := model.Categories[rng.Intn(len(model.Categories))]
		title := fmt.Sprintf(headlines[rng.Intn(len(headlines))], reg.name)

		status := model.StatusActive
		if i%3 == 2 {
			status = model.StatusArchived
		}

		content := fmt.Sprintf(
			"%s. Analysts in the %s region are monitoring developments closely; follow-on reporting is expected within hours.",
			title, reg.name,
		)
		excerpt := content
		if len(excerpt) > 100 {
			excerpt = excerpt[:100] + "..."
		}

		_, err := st.CreateUpdate(model.IntelligenceUpdate{
			Title:    title,
			Category: category,
			Location: model.Location{
				Lat: reg.lat + (rng.Float64()-0.5)*4,
				Lng: reg.lng + (rng.Float64()-0.5)*4,
			},
			Source:     src.name,
			SourceType: src.kind,
			SourceIcon: src.icon,
			Excerpt:    excerpt,
			Content:    content,
			Icon:       importer.IconForCategory(category),
			Timestamp:  now.Add(-time.Duration(rng.Intn(72)) * time.Hour),
			Status:     status,
		})
		if err != nil {
			return i, err
		}
	}
	return n, nil
}

// Webhook registers a demo webhook so the ingestion endpoint can be
// exercised out of the box.
func Webhook(st *store.Store, secret string) (model.Webhook, error) {
	return st.CreateWebhook("demo-feed", "https://example.com/hooks/globeview", secret)
}
