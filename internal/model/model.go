package model

import "time"

// Event is the canonical, normalized representation of a marketplace event.
// Wire payloads are messier (two spellings of the description field,
// organizer name either inline or nested); normalization happens once at
// ingestion (see normalize.go) so downstream grouping logic never re-derives
// field precedence.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`

	// Date is the event's calendar date, zone-naive for bucketing purposes
	// (stored at midnight UTC). Nil when the backend sent no date or an
	// unparseable one; such events are excluded from time buckets but stay
	// eligible for category grouping and trending.
	Date *time.Time `json:"date,omitempty"`

	// Time is the free-form time-of-day string ("19:00", "7 PM"), if any.
	Time string `json:"time,omitempty"`

	// Rating is nil when the event has never been rated. A zero rating is
	// distinct from an absent one.
	Rating *float64 `json:"rating,omitempty"`

	CategoryID    string `json:"category_id,omitempty"`
	OrganizerID   string `json:"organizer_id,omitempty"`
	OrganizerName string `json:"organizer_name,omitempty"`
}

// HasDate reports whether the event carries a usable calendar date.
func (e *Event) HasDate() bool {
	return e != nil && e.Date != nil
}

// RatingOrZero returns the rating, treating absence as zero.
func (e *Event) RatingOrZero() float64 {
	if e == nil || e.Rating == nil {
		return 0
	}
	return *e.Rating
}

// Category is a marketplace category. Identity does not always line up
// across feeds, so a category can be referenced by its ID, its short Key,
// or its exact Name.
type Category struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
	Name  string `json:"name,omitempty"`
	Key   string `json:"key,omitempty"`
}

// DisplayName returns the human-readable heading for the category:
// Label preferred, Name as fallback.
func (c *Category) DisplayName() string {
	if c == nil {
		return "Other"
	}
	if c.Label != "" {
		return c.Label
	}
	if c.Name != "" {
		return c.Name
	}
	return "Other"
}

// Matches reports whether ref refers to this category. Matching tries
// identity, then short key, then exact name, in that fixed priority order.
func (c *Category) Matches(ref string) bool {
	if c == nil || ref == "" {
		return false
	}
	if c.ID != "" && c.ID == ref {
		return true
	}
	if c.Key != "" && c.Key == ref {
		return true
	}
	return c.Name != "" && c.Name == ref
}

// OrganizerProfile is an organizer's public profile.
type OrganizerProfile struct {
	ID      string `json:"_id,omitempty"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Image   string `json:"image"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Bio     string `json:"bio,omitempty"`
	Website string `json:"website,omitempty"`
}

// Complete reports whether the profile has every required field filled in.
// Bio and Website are optional and do not affect completeness. A nil
// profile is never complete.
func (p *OrganizerProfile) Complete() bool {
	if p == nil {
		return false
	}
	return p.Name != "" && p.Address != "" && p.Image != "" && p.Phone != "" && p.Email != ""
}
