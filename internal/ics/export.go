// Package ics exports fetched marketplace events as an iCalendar payload so
// they can be imported into a regular calendar app.
package ics

import (
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	appLog "eventhub/internal/log"
	"eventhub/internal/model"
)

const prodID = "-//eventhub//events//EN"

// Export renders the given events as an iCalendar document. Events without
// a date are skipped (there is nothing to put them on a calendar with).
// Events with a parseable HH:MM time become one-hour timed entries;
// everything else is all-day.
func Export(events []model.Event) []byte {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(prodID)

	exported := 0
	for _, ev := range events {
		if !ev.HasDate() {
			continue
		}

		ve := cal.AddEvent(ev.ID + "@eventhub")
		ve.SetSummary(ev.Title)
		if ev.Description != "" {
			ve.SetDescription(ev.Description)
		}
		if ev.OrganizerName != "" {
			ve.SetLocation(ev.OrganizerName)
		}

		if start, ok := timedStart(*ev.Date, ev.Time); ok {
			ve.SetStartAt(start)
			ve.SetEndAt(start.Add(time.Hour))
		} else {
			ve.SetAllDayStartAt(*ev.Date)
			ve.SetAllDayEndAt(ev.Date.AddDate(0, 0, 1))
		}
		exported++
	}

	appLog.Info("ics export", "events", exported, "skipped", len(events)-exported)
	return []byte(cal.Serialize())
}

// timedStart combines a calendar date with a free-form time-of-day string.
// Only "HH:MM" (optionally with seconds) is recognized; anything else
// falls back to all-day.
func timedStart(date time.Time, tod string) (time.Time, bool) {
	tod = strings.TrimSpace(tod)
	if tod == "" {
		return time.Time{}, false
	}
	parts := strings.Split(tod, ":")
	if len(parts) < 2 {
		return time.Time{}, false
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hour < 0 || hour > 23 {
		return time.Time{}, false
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC), true
}
