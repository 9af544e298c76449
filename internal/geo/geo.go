// Package geo resolves the feed header's location label. The chain is
// device permission -> coordinates -> reverse geocoding (primary provider,
// secondary fallback) -> hard default. Failures anywhere in the chain
// produce the default label; they never block the feed from loading.
package geo

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	appLog "eventhub/internal/log"
)

// ErrPermissionDenied is returned by a LocationSource when the user has
// not granted location access.
var ErrPermissionDenied = errors.New("geo: location permission denied")

// Coordinates is a WGS84 coordinate pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

// LocationSource abstracts how current coordinates are obtained. Real
// deployments wrap a platform location service; development uses the
// static or denied sources below.
type LocationSource interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// Geocoder turns coordinates into a human-readable "City, Country" label.
type Geocoder interface {
	Label(ctx context.Context, c Coordinates) (string, error)
}

// Resolver runs the full chain and always produces a label.
type Resolver struct {
	source       LocationSource
	geocoders    []Geocoder
	defaultLabel string
}

// NewResolver builds a Resolver. Geocoders are tried in order; pass the
// primary first. defaultLabel is used on permission denial or when every
// geocoder fails.
func NewResolver(source LocationSource, defaultLabel string, geocoders ...Geocoder) *Resolver {
	return &Resolver{
		source:       source,
		geocoders:    geocoders,
		defaultLabel: defaultLabel,
	}
}

// Label resolves the location label. It never returns an error; any
// failure falls back to the default label.
func (r *Resolver) Label(ctx context.Context) string {
	if r.source == nil {
		return r.defaultLabel
	}

	coords, err := r.source.Locate(ctx)
	if err != nil {
		if !errors.Is(err, ErrPermissionDenied) {
			appLog.Warn("geo: locate failed", "err", err)
		}
		return r.defaultLabel
	}

	for _, gc := range r.geocoders {
		label, err := gc.Label(ctx, coords)
		if err != nil {
			appLog.Warn("geo: reverse geocode failed", "err", err)
			continue
		}
		if label != "" {
			return label
		}
	}
	return r.defaultLabel
}

// staticSource always reports the same coordinates.
type staticSource struct {
	coords Coordinates
}

// NewStaticSource builds a LocationSource pinned to fixed coordinates,
// for development and tests.
func NewStaticSource(c Coordinates) LocationSource {
	return &staticSource{coords: c}
}

func (s *staticSource) Locate(context.Context) (Coordinates, error) {
	return s.coords, nil
}

// deniedSource simulates a user who declined the location permission.
type deniedSource struct{}

// NewDeniedSource builds a LocationSource that always reports permission
// denial.
func NewDeniedSource() LocationSource {
	return deniedSource{}
}

func (deniedSource) Locate(context.Context) (Coordinates, error) {
	return Coordinates{}, ErrPermissionDenied
}

// jitterSource wraps another source and randomly perturbs its coordinates
// slightly, for demo runs that want a moving fix.
type jitterSource struct {
	inner LocationSource
	rnd   *rand.Rand
}

// NewJitterSource wraps inner with a small random coordinate perturbation.
func NewJitterSource(inner LocationSource) LocationSource {
	return &jitterSource{
		inner: inner,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *jitterSource) Locate(ctx context.Context) (Coordinates, error) {
	c, err := s.inner.Locate(ctx)
	if err != nil {
		return c, err
	}
	c.Lat += (s.rnd.Float64() - 0.5) / 1000
	c.Lng += (s.rnd.Float64() - 0.5) / 1000
	return c, nil
}

// geocodeClient is shared by the HTTP-backed geocoders. These talk to
// third-party providers, not our backend, so they do not go through the
// gateway; a short timeout is appropriate since failure just means
// falling back.
func geocodeClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func formatLabel(city, country string) string {
	if city == "" {
		return ""
	}
	if country == "" {
		return city
	}
	return fmt.Sprintf("%s, %s", city, country)
}
