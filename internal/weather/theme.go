package weather

const strongWindSpeed = 20

var (
	ThemeThunder      = Theme{Icon: "⛈️", BackgroundColor: "#eef0ff", Name: "thunder"}
	ThemeSnow         = Theme{Icon: "❄️", BackgroundColor: "#f3efff", Name: "snow"}
	ThemeRain         = Theme{Icon: "🌧️", BackgroundColor: "#eaf4ff", Name: "rain"}
	ThemeWind         = Theme{Icon: "🌬️", BackgroundColor: "#e9fbf6", Name: "wind"}
	ThemeCloudy       = Theme{Icon: "☁️", BackgroundColor: "#f3f5f7", Name: "cloudy"}
	ThemePartlyCloudy = Theme{Icon: "⛅️", BackgroundColor: "#f3f5f7", Name: "cloudy"}
	ThemeSunny        = Theme{Icon: "☀️", BackgroundColor: "#fff7e6", Name: "sunny"}

	// DefaultTheme is shown before any forecast has been loaded.
	DefaultTheme = Theme{Icon: "☀️", BackgroundColor: "#f3f5f7", Name: "default"}
)

type themeRule struct {
	matches func(code int, wind float64) bool
	theme   Theme
}

// themeRules uses WMO weather interpretation codes. Order matters: strong
// wind never overrides precipitation, and codes 2 and 3 are claimed by the
// cloudy rule before the partly-cloudy one.
var themeRules = []themeRule{
	{func(code int, _ float64) bool { return code >= 95 }, ThemeThunder},
	{func(code int, _ float64) bool { return between(code, 71, 77) || between(code, 85, 86) }, ThemeSnow},
	{func(code int, _ float64) bool { return between(code, 51, 67) || between(code, 80, 82) }, ThemeRain},
	{func(_ int, wind float64) bool { return wind >= strongWindSpeed }, ThemeWind},
	{func(code int, _ float64) bool { return code == 2 || code == 3 || code == 45 || code == 48 }, ThemeCloudy},
	{func(code int, _ float64) bool { return between(code, 1, 3) }, ThemePartlyCloudy},
}

// SelectTheme maps the current weather code and wind speed to a theme.
func SelectTheme(code int, windSpeed float64) Theme {
	for _, rule := range themeRules {
		if rule.matches(code, windSpeed) {
			return rule.theme
		}
	}
	return ThemeSunny
}

func between(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
