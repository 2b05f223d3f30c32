package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/commute-weather/internal/weather"
)

type AppConfig struct {
	Port        string
	HTTPTimeout time.Duration

	// FetchInterval controls how often the scheduler refreshes each location.
	FetchInterval time.Duration

	// Locations the scheduler keeps warm.
	Locations []weather.Location

	// In-memory store retention.
	StoreMaxHistory int           // max number of reports per location (0 = unlimited)
	StoreMaxAge     time.Duration // max age of reports (0 = unlimited)

	// Forecast provider.
	OpenMeteoURL  string
	Timezone      string
	ProviderRPS   float64 // 0 disables rate limiting
	ProviderBurst int

	// GeocoderAPIKey enables city lookups when set.
	GeocoderAPIKey string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchInterval, err = getenvDuration("FETCH_INTERVAL", "30m"); err != nil {
		return nil, err
	}

	cfg.StoreMaxHistory = getenvInt("STORE_MAX_HISTORY", 48) // a day at 30-minute intervals
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}

	cfg.OpenMeteoURL = getenvDefault("OPENMETEO_BASE_URL", "https://api.open-meteo.com/v1/forecast")
	cfg.Timezone = getenvDefault("FORECAST_TIMEZONE", "Asia/Tokyo")

	if cfg.ProviderRPS, err = getenvFloat("PROVIDER_RPS", 2); err != nil {
		return nil, err
	}
	cfg.ProviderBurst = getenvInt("PROVIDER_BURST", 4)

	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	locs, err := ParseLocations(os.Getenv("WEATHER_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// ParseLocations parses "name:lat,lon;lat,lon;..." into locations. The name
// is optional. An empty string yields the default location.
func ParseLocations(s string) ([]weather.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []weather.Location{weather.DefaultLocation}, nil
	}

	var locs []weather.Location
	for _, entry := range strings.Split(s, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		var loc weather.Location
		if name, coords, ok := strings.Cut(entry, ":"); ok {
			loc.Name = strings.TrimSpace(name)
			entry = coords
		}

		latStr, lonStr, ok := strings.Cut(entry, ",")
		if !ok {
			return nil, fmt.Errorf("invalid WEATHER_LOCATIONS entry %q: want lat,lon", entry)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("invalid latitude in WEATHER_LOCATIONS entry %q", entry)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("invalid longitude in WEATHER_LOCATIONS entry %q", entry)
		}
		loc.Lat, loc.Lon = lat, lon
		locs = append(locs, loc)
	}

	return locs, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
