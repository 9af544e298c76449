package feed

import (
	"time"

	"eventhub/internal/model"
)

// CategorySection is one renderable category row: the category plus its
// matching events. Categories with no matching events never become
// sections.
type CategorySection struct {
	Category model.Category `json:"category"`
	Events   []model.Event  `json:"events"`
}

// Snapshot is the fully aggregated home feed, ready for presentation.
type Snapshot struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Trending    *model.Event             `json:"trending,omitempty"`
	TimeBuckets map[string][]model.Event `json:"time_buckets"`
	Sections    []CategorySection        `json:"sections"`
}

// Home assembles the complete feed snapshot from raw inputs: the trending
// pick, the time-window buckets and the per-category sections, in the
// categories' given order. Pure function of its inputs and now.
func Home(now time.Time, events []model.Event, categories []model.Category) Snapshot {
	groups := ByCategory(events)

	sections := make([]CategorySection, 0, len(categories))
	for _, cat := range categories {
		items := SectionFor(cat, groups)
		if len(items) == 0 {
			continue
		}
		sections = append(sections, CategorySection{Category: cat, Events: items})
	}

	return Snapshot{
		GeneratedAt: now,
		Trending:    Trending(events),
		TimeBuckets: TimeBuckets(now, events),
		Sections:    sections,
	}
}
