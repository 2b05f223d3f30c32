package weather

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// Service fetches forecasts from a provider, derives the commute summary,
// and keeps recent reports in a store.
type Service struct {
	store    Store
	provider ForecastProvider
}

// NewService creates a new Service.
func NewService(store Store, provider ForecastProvider) *Service {
	return &Service{
		store:    store,
		provider: provider,
	}
}

// GetProcessedWeather fetches today's forecast for loc once and derives the
// summary. Provider errors are returned as-is and never retried.
func (s *Service) GetProcessedWeather(ctx context.Context, loc Location) (ProcessedWeather, error) {
	if s.provider == nil {
		return ProcessedWeather{}, fmt.Errorf("no forecast provider configured")
	}

	log.Printf("DEBUG: fetching forecast for %s from %s", loc.Key(), s.provider.Name())
	raw, err := s.provider.FetchForecast(ctx, loc)
	if err != nil {
		return ProcessedWeather{}, err
	}
	return Derive(raw), nil
}

// GetCommuteAdvice returns the morning and evening advisory text.
func (s *Service) GetCommuteAdvice(p ProcessedWeather) CommuteAdvice {
	return CommuteAdviceFor(p)
}

// GetHeadline returns the one-line summary for the day.
func (s *Service) GetHeadline(p ProcessedWeather) string {
	return Headline(p)
}

// GetTheme returns the presentation theme for the current conditions.
func (s *Service) GetTheme(weatherCode int, windSpeed float64) Theme {
	return SelectTheme(weatherCode, windSpeed)
}

// BuildReport runs the full pipeline for one location.
func (s *Service) BuildReport(ctx context.Context, loc Location) (Report, error) {
	p, err := s.GetProcessedWeather(ctx, loc)
	if err != nil {
		return Report{}, err
	}

	return Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Location:    loc,
		Weather:     p,
		Advice:      s.GetCommuteAdvice(p),
		Headline:    s.GetHeadline(p),
		Theme:       s.GetTheme(p.WeatherCode, p.WindSpeed),
	}, nil
}

// FetchAndStore builds a fresh report for loc and saves it. On failure the
// last good report is kept.
func (s *Service) FetchAndStore(ctx context.Context, loc Location) error {
	report, err := s.BuildReport(ctx, loc)
	if err != nil {
		log.Printf("fetch failed for %s; keeping last good report if any: %v", loc.Key(), err)
		return err
	}
	s.store.SaveReport(loc, report)
	return nil
}

// GetLatest delegates to the underlying store.
func (s *Service) GetLatest(loc Location) (Report, error) {
	return s.store.GetLatest(loc)
}

// GetRange delegates to the underlying store.
func (s *Service) GetRange(loc Location, from, to time.Time) ([]Report, error) {
	return s.store.GetRange(loc, from, to)
}
