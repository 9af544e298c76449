package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

const googleGeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleGeocoder is the primary reverse-geocoding provider. It reads the
// first result's address components, preferring locality, then
// administrative_area_level_1, then sublocality for the city part.
type GoogleGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGoogleGeocoder builds a GoogleGeocoder with the given API key.
func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:  apiKey,
		baseURL: googleGeocodeURL,
		client:  geocodeClient(),
	}
}

type googleComponent struct {
	LongName string   `json:"long_name"`
	Types    []string `json:"types"`
}

type googleResponse struct {
	Status  string `json:"status"`
	Results []struct {
		AddressComponents []googleComponent `json:"address_components"`
	} `json:"results"`
}

func (g *GoogleGeocoder) Label(ctx context.Context, c Coordinates) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("google geocoder: no API key")
	}

	q := url.Values{}
	q.Set("latlng", fmt.Sprintf("%f,%f", c.Lat, c.Lng))
	q.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google geocoder: status %d", resp.StatusCode)
	}

	var body googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if len(body.Results) == 0 {
		return "", fmt.Errorf("google geocoder: no results (status %q)", body.Status)
	}

	comps := body.Results[0].AddressComponents
	city := firstComponent(comps, "locality", "administrative_area_level_1", "sublocality")
	country := firstComponent(comps, "country")
	if city == "" {
		return "", errors.New("google geocoder: no locality component")
	}
	return formatLabel(city, country), nil
}

// firstComponent returns the long name of the first component matching any
// of the given types, in priority order.
func firstComponent(comps []googleComponent, types ...string) string {
	for _, want := range types {
		for _, comp := range comps {
			for _, t := range comp.Types {
				if t == want {
					return comp.LongName
				}
			}
		}
	}
	return ""
}
