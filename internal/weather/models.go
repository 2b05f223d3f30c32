package weather

import (
	"fmt"
	"time"
)

// Location represents a point we fetch forecasts for.
// Name is display-only; Lat/Lon identify the point.
type Location struct {
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// DefaultLocation is used whenever the caller does not supply coordinates.
var DefaultLocation = Location{Name: "大阪", Lat: 34.6937, Lon: 135.5023}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f,%.4f", l.Lat, l.Lon)
}

// RawForecast mirrors the Open-Meteo forecast document we request.
// It is never mutated after decoding.
type RawForecast struct {
	Current RawCurrent `json:"current_weather"`
	Daily   RawDaily   `json:"daily"`
	Hourly  RawHourly  `json:"hourly"`
}

// RawCurrent is the current_weather block. Temperature is nil when the
// provider omitted it.
type RawCurrent struct {
	Temperature *float64 `json:"temperature"`
	WindSpeed   float64  `json:"windspeed"`
	WeatherCode int      `json:"weathercode"`
}

// RawDaily holds per-day sequences aligned by index; index 0 is today.
type RawDaily struct {
	Time                        []string  `json:"time" validate:"required,min=1"`
	TemperatureMax              []float64 `json:"temperature_2m_max" validate:"eqfield=Time"`
	TemperatureMin              []float64 `json:"temperature_2m_min" validate:"eqfield=Time"`
	PrecipitationProbabilityMax []int     `json:"precipitation_probability_max" validate:"eqfield=Time"`
}

// RawHourly holds per-hour sequences aligned by index. Time entries look
// like "2024-01-01T08:00" and are already in local time.
type RawHourly struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m" validate:"eqfield=Time"`
	WindSpeed                []float64 `json:"windspeed_10m" validate:"eqfield=Time"`
	PrecipitationProbability []int     `json:"precipitation_probability" validate:"eqfield=Time"`
}

// CommuteSnapshot is the hourly reading at one commute hour.
type CommuteSnapshot struct {
	Temp         float64 `json:"temp"`
	Wind         float64 `json:"wind"`
	Rain         int     `json:"rain"`
	ApparentTemp float64 `json:"apparentTemp"`
}

// ProcessedWeather is the derived summary handed to consumers.
type ProcessedWeather struct {
	CurrentTemp         *float64        `json:"currentTemp"`
	MaxTemp             float64         `json:"maxTemp"`
	MinTemp             float64         `json:"minTemp"`
	WindSpeed           float64         `json:"windSpeed"`
	Temp8am             float64         `json:"temp8am"`
	Temp6pm             float64         `json:"temp6pm"`
	PrecipitationChance int             `json:"precipitationChance"`
	WeatherCode         int             `json:"weatherCode"`
	CommuteMorning      CommuteSnapshot `json:"commuteMorning"`
	CommuteEvening      CommuteSnapshot `json:"commuteEvening"`
	RainTimeRanges      string          `json:"rainTimeRanges"`
}

// CommuteAdvice holds the advisory text for both commutes.
type CommuteAdvice struct {
	Morning string `json:"morning"`
	Evening string `json:"evening"`
}

// Theme is the presentation triple picked from the current conditions.
type Theme struct {
	Icon            string `json:"icon"`
	BackgroundColor string `json:"bgColor"`
	Name            string `json:"name"`
}

// Report bundles everything a consumer renders for one location.
type Report struct {
	ID          string           `json:"id"`
	GeneratedAt time.Time        `json:"generatedAt"` // always UTC
	Location    Location         `json:"location"`
	Weather     ProcessedWeather `json:"weather"`
	Advice      CommuteAdvice    `json:"advice"`
	Headline    string           `json:"headline"`
	Theme       Theme            `json:"theme"`
	Notice      string           `json:"notice,omitempty"`
}
