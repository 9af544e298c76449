package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const nominatimURL = "https://nominatim.openstreetmap.org/reverse"

// NominatimGeocoder is the secondary reverse-geocoding provider, used when
// the primary is unavailable (no API key) or fails. Its locality fields
// differ from the primary's: city, then town, then village, with an ISO
// country code instead of a country name.
type NominatimGeocoder struct {
	baseURL string
	client  *http.Client
}

// NewNominatimGeocoder builds a NominatimGeocoder.
func NewNominatimGeocoder() *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL: nominatimURL,
		client:  geocodeClient(),
	}
}

type nominatimResponse struct {
	Address struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		County      string `json:"county"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

func (n *NominatimGeocoder) Label(ctx context.Context, c Coordinates) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", c.Lat))
	q.Set("lon", fmt.Sprintf("%f", c.Lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	// Nominatim usage policy requires an identifying user agent.
	req.Header.Set("User-Agent", "eventhub-client")

	resp, err := n.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("nominatim: status %d", resp.StatusCode)
	}

	var body nominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}

	addr := body.Address
	city := addr.City
	if city == "" {
		city = addr.Town
	}
	if city == "" {
		city = addr.Village
	}
	if city == "" {
		city = addr.County
	}
	if city == "" {
		return "", errors.New("nominatim: no locality in response")
	}
	return formatLabel(city, strings.ToUpper(addr.CountryCode)), nil
}
