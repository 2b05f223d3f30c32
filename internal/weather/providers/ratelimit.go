package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/i474232898/commute-weather/internal/weather"
)

// RateLimited wraps a ForecastProvider with a token-bucket limiter so
// bursts of requests cannot exceed the provider's usage limits.
type RateLimited struct {
	provider weather.ForecastProvider
	limiter  *rate.Limiter
	name     string
}

// NewRateLimited creates a rate limited provider.
// rps is the maximum requests per second allowed (can be fractional);
// burst is the maximum burst size allowed.
func NewRateLimited(provider weather.ForecastProvider, rps float64, burst int) *RateLimited {
	return &RateLimited{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		name:     fmt.Sprintf("%s [rate limited]", provider.Name()),
	}
}

func (r *RateLimited) Name() string {
	return r.name
}

// FetchForecast waits for limiter permission, then forwards the call.
func (r *RateLimited) FetchForecast(ctx context.Context, loc weather.Location) (weather.RawForecast, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.RawForecast{}, &weather.FetchError{
			Provider: r.name,
			Err:      fmt.Errorf("rate limit wait canceled: %w", err),
		}
	}
	return r.provider.FetchForecast(ctx, loc)
}
