package model

import (
	"encoding/json"
	"strings"
	"time"
)

// RawEvent mirrors the event record as the backend actually sends it.
// Older records use "desc" instead of "description" and inline the
// organizer name; newer ones nest it under organizerInfo.
type RawEvent struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Desc        string   `json:"desc,omitempty"`
	Image       string   `json:"image,omitempty"`
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	CategoryID  string   `json:"categoryId,omitempty"`
	OrganizerID string   `json:"organizerId,omitempty"`

	OrganizerName string `json:"organizerName,omitempty"`
	OrganizerInfo *struct {
		ID   string `json:"_id,omitempty"`
		Name string `json:"name,omitempty"`
	} `json:"organizerInfo,omitempty"`
}

// RawCategory mirrors the category record on the wire.
type RawCategory struct {
	ID    string          `json:"_id"`
	Label string          `json:"label,omitempty"`
	Name  json.RawMessage `json:"name,omitempty"`
	Key   string          `json:"key,omitempty"`
}

// dateLayouts are the wire formats accepted for event dates, tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
	"2006-01-02",
}

// NormalizeEvent converts a wire event into the canonical Event, resolving
// field-name synonyms exactly once:
//
//   - description wins over desc when both are present
//   - organizerInfo.name wins over organizerName
//   - the date string is parsed into a zone-naive calendar date; failures
//     leave Date nil rather than erroring
func NormalizeEvent(raw RawEvent) Event {
	ev := Event{
		ID:          raw.ID,
		Title:       raw.Title,
		Description: raw.Description,
		Image:       raw.Image,
		Time:        raw.Time,
		Rating:      raw.Rating,
		CategoryID:  raw.CategoryID,
		OrganizerID: raw.OrganizerID,
	}

	if ev.Description == "" {
		ev.Description = raw.Desc
	}

	ev.OrganizerName = raw.OrganizerName
	if raw.OrganizerInfo != nil && raw.OrganizerInfo.Name != "" {
		ev.OrganizerName = raw.OrganizerInfo.Name
	}
	if ev.OrganizerID == "" && raw.OrganizerInfo != nil {
		ev.OrganizerID = raw.OrganizerInfo.ID
	}

	ev.Date = parseEventDate(raw.Date)
	return ev
}

// NormalizeEvents maps NormalizeEvent over a wire payload.
func NormalizeEvents(raw []RawEvent) []Event {
	out := make([]Event, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeEvent(r))
	}
	return out
}

// NormalizeCategory converts a wire category into the canonical Category.
// The name field has been observed as both a string and a non-string value;
// only string names participate in matching.
func NormalizeCategory(raw RawCategory) Category {
	c := Category{
		ID:    raw.ID,
		Label: raw.Label,
		Key:   raw.Key,
	}
	if len(raw.Name) > 0 {
		var s string
		if err := json.Unmarshal(raw.Name, &s); err == nil {
			c.Name = s
		}
	}
	return c
}

// NormalizeCategories maps NormalizeCategory over a wire payload.
func NormalizeCategories(raw []RawCategory) []Category {
	out := make([]Category, 0, len(raw))
	for _, r := range raw {
		out = append(out, NormalizeCategory(r))
	}
	return out
}

// parseEventDate parses a wire date string into a zone-naive calendar date
// at midnight UTC. Returns nil when the string is empty or unparseable.
func parseEventDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}
