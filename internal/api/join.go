package api

import (
	"context"

	appLog "eventhub/internal/log"
	"eventhub/internal/model"
)

// The screens fan independent fetches out concurrently and join them all
// before using any result. Two disciplines exist:
//
//   - all-or-nothing: both results are required for the screen to render
//     meaningfully, so any single failure fails the whole operation
//   - best-effort: each fetch's outcome is captured in its own slot and a
//     failed slot degrades to a zero value instead of aborting the others
//
// Each fetch writes into its own slot and all slots are joined before being
// read, so no locking is needed.

// HomeData is everything the browse screen needs.
type HomeData struct {
	Events     []model.Event
	Categories []model.Category
}

// FetchHome fetches the event and category lists concurrently with
// all-or-nothing semantics: if either fetch fails, the whole call fails
// (events take reporting priority when both do).
func (c *Client) FetchHome(ctx context.Context) (HomeData, error) {
	var (
		events  []model.Event
		cats    []model.Category
		evErr   error
		catsErr error
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		cats, catsErr = c.ListCategories(ctx)
	}()
	events, evErr = c.ListEvents(ctx)
	<-done

	if evErr != nil {
		return HomeData{}, evErr
	}
	if catsErr != nil {
		return HomeData{}, catsErr
	}
	return HomeData{Events: events, Categories: cats}, nil
}

// DashboardData is everything the organizer dashboard needs. Per-slot
// errors are captured so callers can inspect what degraded; a nil Profile
// with a nil ProfileErr simply means the backend had no profile payload.
type DashboardData struct {
	Events  []model.Event
	Profile *model.OrganizerProfile

	EventsErr  error
	ProfileErr error
}

// FetchDashboard fetches the organizer's events and profile concurrently
// with best-effort semantics: a failed slot is logged, recorded on the
// result, and degraded to its zero value. The call itself never returns an
// error - partial data renders as partial data.
func (c *Client) FetchDashboard(ctx context.Context) DashboardData {
	var out DashboardData

	done := make(chan struct{})
	go func() {
		defer close(done)
		out.Profile, out.ProfileErr = c.MyProfile(ctx)
	}()
	out.Events, out.EventsErr = c.ListEvents(ctx)
	<-done

	if out.EventsErr != nil {
		appLog.Warn("dashboard: events fetch degraded", "err", out.EventsErr)
		out.Events = nil
	}
	if out.ProfileErr != nil {
		appLog.Warn("dashboard: profile fetch degraded", "err", out.ProfileErr)
		out.Profile = nil
	}
	return out
}
