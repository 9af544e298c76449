package feed

import "eventhub/internal/model"

// OtherBucket is the reserved group for events that carry no category
// reference.
const OtherBucket = "Other"

// ByCategory groups events by their raw category reference, preserving
// input order within each group. Events without a reference land in the
// reserved OtherBucket group.
func ByCategory(events []model.Event) map[string][]model.Event {
	out := make(map[string][]model.Event)
	for _, ev := range events {
		key := ev.CategoryID
		if key == "" {
			key = OtherBucket
		}
		out[key] = append(out[key], ev)
	}
	return out
}

// SectionFor resolves the events for a category against a ByCategory
// grouping, trying the category's identity key first and its short key
// second. A nil result means the category has nothing to render and should
// be skipped.
func SectionFor(cat model.Category, groups map[string][]model.Event) []model.Event {
	if items, ok := groups[cat.ID]; ok && len(items) > 0 {
		return items
	}
	if cat.Key != "" {
		if items, ok := groups[cat.Key]; ok && len(items) > 0 {
			return items
		}
	}
	return nil
}

// CategoryName resolves an event's category reference to a display name.
// Matching tries identity, then short key, then exact name (model.Category
// matching order); unmatched or empty references display as "Other".
func CategoryName(categories []model.Category, ref string) string {
	if ref == "" {
		return OtherBucket
	}
	for i := range categories {
		if categories[i].Matches(ref) {
			return categories[i].DisplayName()
		}
	}
	return OtherBucket
}
