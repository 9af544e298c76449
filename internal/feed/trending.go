package feed

import (
	"sort"

	"eventhub/internal/model"
)

// Trending picks at most one event to feature. Heuristic: highest rating
// wins if anything is rated above zero; otherwise the event with the
// soonest date. Ties keep input order (stable sort), dateless events lose
// to dated ones, and an empty input yields nil.
//
// This is a full re-sort on every call; input volumes are a single
// client's event list, so no incremental maintenance is warranted.
func Trending(events []model.Event) *model.Event {
	if len(events) == 0 {
		return nil
	}

	byRating := make([]model.Event, len(events))
	copy(byRating, events)
	sort.SliceStable(byRating, func(i, j int) bool {
		return byRating[i].RatingOrZero() > byRating[j].RatingOrZero()
	})
	if top := byRating[0]; top.RatingOrZero() > 0 {
		return &top
	}

	// Nothing rated: fall back to the soonest-dated event.
	byDate := make([]model.Event, len(events))
	copy(byDate, events)
	sort.SliceStable(byDate, func(i, j int) bool {
		di, dj := byDate[i].Date, byDate[j].Date
		switch {
		case di == nil:
			return false
		case dj == nil:
			return true
		default:
			return di.Before(*dj)
		}
	})
	pick := byDate[0]
	return &pick
}
