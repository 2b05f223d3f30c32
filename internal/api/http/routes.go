package httpapi

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/commute-weather/internal/geocode"
	"github.com/i474232898/commute-weather/internal/store"
	"github.com/i474232898/commute-weather/internal/weather"
)

const (
	currentLocationName = "現在地"

	// FallbackNotice is attached to a report served for the default
	// location after the requested location could not be fetched.
	FallbackNotice = "位置情報の天気が取得できなかったため、大阪の天気を表示しています"

	fetchFailedMessage = "天気の取得に失敗しました"
)

var validate = validator.New()

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. resolver may be
// nil, in which case city lookups are rejected.
func RegisterRoutes(app *fiber.App, service *weather.Service, resolver geocode.Resolver) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		loc, requested, err := resolveLocation(c, resolver)
		if err != nil {
			return err
		}

		report, err := service.BuildReport(c.UserContext(), loc)
		if err != nil && requested && loc.Key() != weather.DefaultLocation.Key() {
			log.Printf("WARN: forecast for %s failed, falling back to %s: %v", loc.Key(), weather.DefaultLocation.Name, err)
			report, err = service.BuildReport(c.UserContext(), weather.DefaultLocation)
			report.Notice = FallbackNotice
		}
		if err != nil {
			log.Printf("ERROR: forecast fetch failed: %v", err)
			return fiber.NewError(fiber.StatusBadGateway, fetchFailedMessage)
		}

		return c.JSON(report)
	})

	v1.Get("/weather/latest", func(c *fiber.Ctx) error {
		loc, _, err := parseCoordinates(c)
		if err != nil {
			return err
		}

		report, err := service.GetLatest(loc)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather report for requested location")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather report")
		}

		return c.JSON(report)
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return err
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reports, err := service.GetRange(req.Location, req.From, req.To)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested range")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather history")
		}

		return c.JSON(fiber.Map{
			"location": req.Location,
			"from":     req.From,
			"to":       req.To,
			"reports":  reports,
		})
	})

	v1.Post("/advice", func(c *fiber.Ctx) error {
		var p weather.ProcessedWeather
		if err := c.BodyParser(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid processed weather body")
		}

		return c.JSON(fiber.Map{
			"advice":   service.GetCommuteAdvice(p),
			"headline": service.GetHeadline(p),
		})
	})

	v1.Get("/theme", func(c *fiber.Ctx) error {
		var q themeQuery
		if err := q.bind(c); err != nil {
			return err
		}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.GetTheme(q.Code, q.Wind))
	})
}

// coordinates holds validated lat/lon query parameters.
type coordinates struct {
	Lat float64 `validate:"gte=-90,lte=90"`
	Lon float64 `validate:"gte=-180,lte=180"`
}

// parseCoordinates reads lat/lon. When both are absent it returns the
// default location and requested=false.
func parseCoordinates(c *fiber.Ctx) (weather.Location, bool, error) {
	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" && lonStr == "" {
		return weather.DefaultLocation, false, nil
	}
	if latStr == "" || lonStr == "" {
		return weather.Location{}, false, fiber.NewError(fiber.StatusBadRequest, "lat and lon must be provided together")
	}

	var q coordinates
	var err error
	if q.Lat, err = strconv.ParseFloat(latStr, 64); err != nil {
		return weather.Location{}, false, fiber.NewError(fiber.StatusBadRequest, "invalid lat")
	}
	if q.Lon, err = strconv.ParseFloat(lonStr, 64); err != nil {
		return weather.Location{}, false, fiber.NewError(fiber.StatusBadRequest, "invalid lon")
	}
	if err := validate.Struct(q); err != nil {
		return weather.Location{}, false, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return weather.Location{Name: currentLocationName, Lat: q.Lat, Lon: q.Lon}, true, nil
}

// resolveLocation accepts either lat/lon or city[/country].
func resolveLocation(c *fiber.Ctx, resolver geocode.Resolver) (weather.Location, bool, error) {
	city := c.Query("city")
	if city == "" {
		return parseCoordinates(c)
	}
	if c.Query("lat") != "" || c.Query("lon") != "" {
		return weather.Location{}, false, fiber.NewError(fiber.StatusBadRequest, "use either city or lat/lon, not both")
	}
	if resolver == nil {
		return weather.Location{}, false, fiber.NewError(fiber.StatusBadRequest, geocode.ErrNotConfigured.Error())
	}

	loc, err := resolver.Resolve(c.UserContext(), city, c.Query("country"))
	if err != nil {
		log.Printf("geocoding %q failed: %v", city, err)
		return weather.Location{}, false, fiber.NewError(fiber.StatusBadRequest, "could not resolve city")
	}
	return loc, true, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location weather.Location
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, _, err := parseCoordinates(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	to, err := parseTime(toStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	h.From = from
	h.To = to
	return nil
}

// themeQuery holds query parameters for the theme endpoint.
type themeQuery struct {
	Code int     `validate:"gte=0,lte=99"`
	Wind float64 `validate:"gte=0"`
}

func (q *themeQuery) bind(c *fiber.Ctx) error {
	codeStr := c.Query("code")
	if codeStr == "" {
		return fiber.NewError(fiber.StatusBadRequest, "code query parameter is required")
	}
	code, err := strconv.Atoi(codeStr)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid code")
	}
	q.Code = code

	if windStr := c.Query("wind"); windStr != "" {
		wind, err := strconv.ParseFloat(windStr, 64)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid wind")
		}
		q.Wind = wind
	}
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
