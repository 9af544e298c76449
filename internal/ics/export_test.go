package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"eventhub/internal/model"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestExport(t *testing.T) {
	events := []model.Event{
		{ID: "1", Title: "Beach Cleanup", Date: datePtr(2024, time.March, 9)},
		{ID: "2", Title: "Food Festival", Description: "street food", Date: datePtr(2024, time.March, 10), Time: "18:30"},
		{ID: "3", Title: "dateless, skipped"},
	}

	out := string(Export(events))

	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Beach Cleanup")
	assert.Contains(t, out, "SUMMARY:Food Festival")
	assert.Contains(t, out, "UID:1@eventhub")
	assert.NotContains(t, out, "dateless")

	// The timed event carries its start time, the all-day one does not.
	assert.Contains(t, out, "20240310T183000")
}

func TestExportEmpty(t *testing.T) {
	out := string(Export(nil))
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestTimedStart(t *testing.T) {
	base := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		tod  string
		ok   bool
		hour int
	}{
		{tod: "18:30", ok: true, hour: 18},
		{tod: "09:00:00", ok: true, hour: 9},
		{tod: "", ok: false},
		{tod: "evening", ok: false},
		{tod: "25:00", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.tod, func(t *testing.T) {
			got, ok := timedStart(base, tt.tod)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.hour, got.Hour())
			}
		})
	}
}
