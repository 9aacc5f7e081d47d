package seed

import (
	"time"

	"github.com/globeview/globeview/internal/model"
)

// Reports returns the static analysis report set. Reports are seed
// data; nothing in the sampler or rotation pipeline mutates them.
func Reports() []model.AnalysisReport {
	return []model.AnalysisReport{
		{
			ID:       1,
			Title:    "The Deepening Russia-Iran Military Partnership",
			Author:   "Dr. Nadia Kazemi",
			Position: "Senior Iran Analyst",
			Date:     "2026-08-12",
			Category: "security",
			Excerpt:  "Defense cooperation between Moscow and Tehran has moved from transactional arms deals to structural alignment, with consequences for regional security dynamics.",
			Content: `Defense cooperation between Moscow and Tehran has moved from transactional arms deals to structural alignment. Joint production agreements, shared targeting data, and reciprocal sanctions-evasion networks now bind the two defense establishments together.

Policymakers should prepare for a sustained and deepening relationship that will increasingly shape regional security dynamics. Diplomatic responses must account for this new reality while seeking to address the specific security concerns that drive the partnership.`,
			Slug:     "russia-iran-military-partnership",
			Likes:    128,
			Comments: 2,
			ReadTime: "8 min",
			CommentsList: []model.Comment{
				{ID: 1, AuthorName: "M. Osei", Content: "The sanctions-evasion angle deserves its own piece. The financial plumbing matters more than the hardware.", Date: time.Date(2026, 8, 13, 9, 14, 0, 0, time.UTC), Likes: 11},
				{ID: 2, AuthorName: "L. Fontaine", Content: "How durable is this alignment if leadership changes in either capital?", Date: time.Date(2026, 8, 14, 18, 2, 0, 0, time.UTC), Likes: 4},
			},
		},
		{
			ID:       2,
			Title:    "Grain Diplomacy: The Russia-India Agricultural Pivot",
			Author:   "Michael Chen",
			Position: "Global Economics Analyst",
			Date:     "2026-08-19",
			Category: "economy",
			Excerpt:  "A $4.2 billion annual agricultural agreement signals a strategic pivot for both nations amid changing global trade patterns and food security concerns.",
			Content: `Russia and India have signed a major agricultural cooperation agreement that will significantly increase grain exports to the South Asian nation. The deal, valued at approximately $4.2 billion annually, also includes provisions for technology sharing in agricultural automation and crop science.

Analysts suggest this represents a strategic pivot for both nations amid changing global trade patterns and food security concerns. Watch the rupee-rouble settlement mechanism: its success or failure will tell us more about the durability of this arrangement than the headline volume figures.`,
			Slug:     "russia-india-agricultural-pivot",
			Likes:    86,
			Comments: 1,
			ReadTime: "6 min",
			CommentsList: []model.Comment{
				{ID: 1, AuthorName: "R. Veldkamp", Content: "The technology-sharing clauses look more consequential than the grain volumes to me.", Date: time.Date(2026, 8, 20, 7, 41, 0, 0, time.UTC), Likes: 7},
			},
		},
		{
			ID:       3,
			Title:    "Climate Stress Points: Five Regions to Watch",
			Author:   "Sarah Reynolds",
			Position: "Climate Security Researcher",
			Date:     "2026-08-24",
			Category: "environment",
			Excerpt:  "Five regions have been identified as primary climate security concerns, where water stress, migration pressure, and contested resources intersect.",
			Content: `Five regions have been identified as primary climate security concerns: the Sahel, the Mekong basin, the South Asian subcontinent, the Horn of Africa, and the Central American dry corridor.

In each, water stress, climate-driven migration pressures, and contested resources intersect with existing political fault lines. The South Asian subcontinent carries the additional weight of nuclear security concerns. Expect climate impact assessments to move from annex material to the core of security planning documents within the next planning cycle.`,
			Slug:     "climate-stress-points",
			Likes:    54,
			Comments: 0,
			ReadTime: "5 min",
		},
	}
}
