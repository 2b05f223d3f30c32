package geocode

import (
	"context"
	"errors"
	"fmt"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/commute-weather/internal/weather"
)

// ErrNotConfigured is returned when geocoding is requested without an API key.
var ErrNotConfigured = errors.New("geocoding is not configured")

// Resolver turns a city/country pair into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, city, country string) (weather.Location, error)
}

// lookupFunc matches geocoder.Geocoding.
type lookupFunc func(geocoder.Address) (geocoder.Location, error)

// Google resolves addresses with the Google Geocoding API.
type Google struct {
	lookup lookupFunc
}

// NewGoogle configures the geocoder with apiKey. The geocoder package keeps
// the key in a package variable, so only one key is in effect per process.
func NewGoogle(apiKey string) (*Google, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	geocoder.ApiKey = apiKey
	return &Google{lookup: geocoder.Geocoding}, nil
}

// Resolve looks up city (and optionally country). The lookup itself is not
// cancellable; ctx is checked before the call.
func (g *Google) Resolve(ctx context.Context, city, country string) (weather.Location, error) {
	if err := ctx.Err(); err != nil {
		return weather.Location{}, err
	}

	loc, err := g.lookup(geocoder.Address{City: city, Country: country})
	if err != nil {
		return weather.Location{}, fmt.Errorf("geocoding %q: %w", city, err)
	}

	return weather.Location{Name: city, Lat: loc.Latitude, Lon: loc.Longitude}, nil
}
