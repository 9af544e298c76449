// Package feed turns a flat event list into presentation-ready groupings:
// time-window buckets, category buckets and a single trending pick. All of
// it is pure - no I/O, no mutation of inputs, no errors. Malformed or
// missing fields are handled by omission, never by failing the aggregation.
package feed

import (
	"time"

	"eventhub/internal/model"
)

// Time bucket labels, in render order.
const (
	BucketThisWeekend = "This Weekend"
	BucketThisWeek    = "This Week"
	BucketNextWeek    = "Next Week"
	BucketThisMonth   = "This Month"
)

// BucketOrder is the fixed render order for time buckets.
var BucketOrder = []string{BucketThisWeekend, BucketThisWeek, BucketNextWeek, BucketThisMonth}

// TimeBuckets computes the four time-window buckets relative to now.
// Buckets overlap by design (a Saturday event sits in both "This Weekend"
// and "This Week"); each preserves input order. Buckets with no qualifying
// events are omitted from the map entirely, so callers can treat presence
// as significant. Events without a parseable date are silently skipped.
//
// Week convention: weeks start on Monday, so "this week" ends on the
// upcoming (or current) Sunday and "next week" is the seven days after it.
func TimeBuckets(now time.Time, events []model.Event) map[string][]model.Event {
	today := civilDate(now)

	monday := today.AddDate(0, 0, -daysSinceMonday(today))
	saturday := monday.AddDate(0, 0, 5)
	sunday := monday.AddDate(0, 0, 6)
	nextMonday := sunday.AddDate(0, 0, 1)
	nextSunday := nextMonday.AddDate(0, 0, 6)
	monthEnd := time.Date(today.Year(), today.Month()+1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	var weekend, week, next, month []model.Event
	for _, ev := range events {
		if !ev.HasDate() {
			continue
		}
		d := *ev.Date

		// This Weekend: the current week's Saturday/Sunday, not yet past.
		if !d.Before(today) && (d.Equal(saturday) || d.Equal(sunday)) {
			weekend = append(weekend, ev)
		}
		// This Week: today through Sunday inclusive.
		if !d.Before(today) && !d.After(sunday) {
			week = append(week, ev)
		}
		// Next Week: the seven days after this Sunday.
		if !d.Before(nextMonday) && !d.After(nextSunday) {
			next = append(next, ev)
		}
		// This Month: today through the end of the calendar month.
		if !d.Before(today) && !d.After(monthEnd) {
			month = append(month, ev)
		}
	}

	out := make(map[string][]model.Event)
	if len(weekend) > 0 {
		out[BucketThisWeekend] = weekend
	}
	if len(week) > 0 {
		out[BucketThisWeek] = week
	}
	if len(next) > 0 {
		out[BucketNextWeek] = next
	}
	if len(month) > 0 {
		out[BucketThisMonth] = month
	}
	return out
}

// civilDate strips now down to its calendar date, zone-naive (midnight
// UTC), matching how event dates are normalized at ingestion.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysSinceMonday returns how many days d is past the Monday of its week.
func daysSinceMonday(d time.Time) int {
	return (int(d.Weekday()) + 6) % 7
}
