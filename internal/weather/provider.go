package weather

import (
	"context"
	"time"
)

// ForecastProvider abstracts the external forecast source (e.g. Open-Meteo).
// Implementations make at most one outbound call per FetchForecast and
// return *FetchError or *ParseError on failure.
type ForecastProvider interface {
	Name() string
	FetchForecast(ctx context.Context, loc Location) (RawForecast, error)
}

// Store is the contract the in-memory report store must satisfy.
type Store interface {
	SaveReport(loc Location, report Report)
	GetLatest(loc Location) (Report, error)
	GetRange(loc Location, from, to time.Time) ([]Report, error)
}
