package geo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const defaultLabel = "Kuwait City, KW"

type failingGeocoder struct{}

func (failingGeocoder) Label(context.Context, Coordinates) (string, error) {
	return "", errors.New("provider down")
}

func TestResolverPermissionDenied(t *testing.T) {
	r := NewResolver(NewDeniedSource(), defaultLabel, failingGeocoder{})
	assert.Equal(t, defaultLabel, r.Label(context.Background()))
}

func TestResolverAllGeocodersFail(t *testing.T) {
	r := NewResolver(NewStaticSource(Coordinates{Lat: 29.37, Lng: 47.97}), defaultLabel,
		failingGeocoder{}, failingGeocoder{})
	assert.Equal(t, defaultLabel, r.Label(context.Background()))
}

func TestResolverFallsBackToSecondary(t *testing.T) {
	// Secondary provider speaks Nominatim's field names: address.town and
	// an ISO country code instead of locality components.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("lat"))
		w.Write([]byte(`{"address":{"town":"Salmiya","country_code":"kw"}}`))
	}))
	defer srv.Close()

	secondary := NewNominatimGeocoder()
	secondary.baseURL = srv.URL

	r := NewResolver(NewStaticSource(Coordinates{Lat: 29.33, Lng: 48.07}), defaultLabel,
		failingGeocoder{}, secondary)
	assert.Equal(t, "Salmiya, KW", r.Label(context.Background()))
}

func TestGoogleGeocoderComponentPriority(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("latlng"))
		w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"address_components": [
					{"long_name": "Hawalli Governorate", "types": ["administrative_area_level_1"]},
					{"long_name": "Kuwait City", "types": ["locality", "political"]},
					{"long_name": "Kuwait", "types": ["country", "political"]}
				]
			}]
		}`))
	}))
	defer srv.Close()

	g := NewGoogleGeocoder("test-key")
	g.baseURL = srv.URL

	// locality beats administrative_area_level_1 even when listed later.
	label, err := g.Label(context.Background(), Coordinates{Lat: 29.37, Lng: 47.97})
	assert.NoError(t, err)
	assert.Equal(t, "Kuwait City, Kuwait", label)
}

func TestGoogleGeocoderNoKey(t *testing.T) {
	g := NewGoogleGeocoder("")
	_, err := g.Label(context.Background(), Coordinates{})
	assert.Error(t, err)
}

func TestNominatimLocalityPriority(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"village":"Abdali","county":"Jahra","country_code":"kw"}}`))
	}))
	defer srv.Close()

	n := NewNominatimGeocoder()
	n.baseURL = srv.URL

	label, err := n.Label(context.Background(), Coordinates{})
	assert.NoError(t, err)
	assert.Equal(t, "Abdali, KW", label)
}
