// Package api exposes the typed backend endpoints. Every call goes through
// the gateway; responses are normalized into canonical model types at this
// boundary so nothing downstream sees wire-level field synonyms.
package api

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"eventhub/internal/gateway"
	"eventhub/internal/model"
)

// Client is the typed API surface over the gateway.
type Client struct {
	gw       *gateway.Gateway
	validate *validator.Validate
}

// NewClient builds a Client over the given gateway.
func NewClient(gw *gateway.Gateway) *Client {
	return &Client{
		gw:       gw,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ListEvents fetches the full event list, normalized.
func (c *Client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var raw []model.RawEvent
	if err := c.gw.GetJSON(ctx, "/events", &raw); err != nil {
		return nil, err
	}
	return model.NormalizeEvents(raw), nil
}

// ListCategories fetches the category list, normalized.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var raw []model.RawCategory
	if err := c.gw.GetJSON(ctx, "/categories", &raw); err != nil {
		return nil, err
	}
	return model.NormalizeCategories(raw), nil
}

// EventDraft is the payload for creating a new event.
type EventDraft struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	CategoryID  string `json:"categoryId,omitempty"`
}

// CreateEvent creates an event owned by the signed-in organizer.
func (c *Client) CreateEvent(ctx context.Context, draft EventDraft) (model.Event, error) {
	if err := c.validate.Struct(draft); err != nil {
		return model.Event{}, fmt.Errorf("event draft: %w", err)
	}
	var raw model.RawEvent
	if err := c.gw.PostJSON(ctx, "/events", draft, &raw); err != nil {
		return model.Event{}, err
	}
	return model.NormalizeEvent(raw), nil
}

// EventPatch is a partial event update. Nil fields are left untouched by
// the backend.
type EventPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
	Date        *string `json:"date,omitempty"`
	Time        *string `json:"time,omitempty"`
	CategoryID  *string `json:"categoryId,omitempty"`
}

// UpdateEvent applies a partial update to an event by id.
func (c *Client) UpdateEvent(ctx context.Context, id string, patch EventPatch) (model.Event, error) {
	var raw model.RawEvent
	if err := c.gw.PutJSON(ctx, "/events/"+id, patch, &raw); err != nil {
		return model.Event{}, err
	}
	return model.NormalizeEvent(raw), nil
}

// DeleteEvent removes an event by id.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.gw.DeleteJSON(ctx, "/events/"+id, nil)
}

// MyProfile fetches the signed-in organizer's profile. A missing profile
// comes back from the backend as 404, which surfaces here as a gateway
// status error; use gateway.IsStatus(err, 404) to distinguish "not created
// yet" from real failures.
func (c *Client) MyProfile(ctx context.Context) (*model.OrganizerProfile, error) {
	var profile model.OrganizerProfile
	if err := c.gw.GetJSON(ctx, "/organizer/my-profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ProfileDraft is the payload for creating an organizer profile. The
// required fields mirror profile completeness: bio and website stay
// optional.
type ProfileDraft struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Image   string `json:"image" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Bio     string `json:"bio,omitempty"`
	Website string `json:"website,omitempty"`
}

// CreateProfile creates the organizer profile for the current credential.
// The draft is validated locally before the request goes out.
func (c *Client) CreateProfile(ctx context.Context, draft ProfileDraft) (*model.OrganizerProfile, error) {
	if err := c.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("profile draft: %w", err)
	}
	var profile model.OrganizerProfile
	if err := c.gw.PostJSON(ctx, "/organizer", draft, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
