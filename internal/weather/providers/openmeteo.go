package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/i474232898/commute-weather/internal/weather"
)

const (
	DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"
	DefaultTimezone     = "Asia/Tokyo"
)

var (
	hourlyFields = []string{"temperature_2m", "windspeed_10m", "precipitation_probability"}
	dailyFields  = []string{"temperature_2m_max", "temperature_2m_min", "precipitation_probability_max"}

	shape = validator.New()
)

// OpenMeteoProvider implements the weather.ForecastProvider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name     string
	baseURL  string
	timezone string
	httpCfg  HTTPClientConfig
	circuit  *gobreaker.CircuitBreaker
}

// OpenMeteoOption customizes an OpenMeteoProvider.
type OpenMeteoOption func(*OpenMeteoProvider)

// WithBaseURL points the provider at another forecast endpoint.
func WithBaseURL(u string) OpenMeteoOption {
	return func(p *OpenMeteoProvider) {
		if u != "" {
			p.baseURL = u
		}
	}
}

// WithTimezone sets the timezone Open-Meteo reports local times in.
func WithTimezone(tz string) OpenMeteoOption {
	return func(p *OpenMeteoProvider) {
		if tz != "" {
			p.timezone = tz
		}
	}
}

func NewOpenMeteoProvider(client *http.Client, opts ...OpenMeteoOption) *OpenMeteoProvider {
	p := &OpenMeteoProvider{
		name:     "openmeteo",
		baseURL:  DefaultOpenMeteoURL,
		timezone: DefaultTimezone,
		httpCfg: HTTPClientConfig{
			Client: client,
			// Single attempt; callers decide on fallbacks.
			Backoff: BackoffConfig{MaxRetries: 0},
		},
		circuit: newBreaker("openmeteo"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) FetchForecast(ctx context.Context, loc weather.Location) (weather.RawForecast, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
		values.Set("current_weather", "true")
		values.Set("hourly", strings.Join(hourlyFields, ","))
		values.Set("daily", strings.Join(dailyFields, ","))
		values.Set("timezone", p.timezone)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.RawForecast{}, &weather.FetchError{Provider: p.name, StatusCode: statusCode(err), Err: err}
	}
	defer resp.Body.Close()

	var raw weather.RawForecast
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return weather.RawForecast{}, &weather.ParseError{Provider: p.name, Err: err}
	}
	if err := shape.Struct(raw); err != nil {
		return weather.RawForecast{}, &weather.ParseError{Provider: p.name, Err: fmt.Errorf("unexpected forecast shape: %w", err)}
	}

	return raw, nil
}
