package weather

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	morningCommuteHour = 8
	eveningTempHour    = 18
	eveningCommuteHour = 19

	// RainThreshold is the precipitation probability (%) at which an hour
	// counts as rainy.
	RainThreshold = 40

	// NoRainText is emitted when no hour of the day reaches RainThreshold.
	NoRainText = "今日は雨の心配なし"

	hourLayout = "2006-01-02T15:04"
	dateLayout = "2006-01-02"
	todayIndex = 0
)

// RainWindow is a half-open run of rainy hours [Start, End).
type RainWindow struct {
	Start int
	End   int
}

func (w RainWindow) String() string {
	return fmt.Sprintf("%d時〜%d時", w.Start, w.End)
}

// hourIndex maps hour-of-day to its position in the hourly arrays, or -1.
type hourIndex [24]int

func (h hourIndex) lookup(hour int) (int, bool) {
	if hour < 0 || hour >= len(h) || h[hour] < 0 {
		return 0, false
	}
	return h[hour], true
}

// indexHours parses the hourly labels once and keeps the first entry for
// each on-the-hour slot of the given date.
func indexHours(date string, labels []string) hourIndex {
	var idx hourIndex
	for i := range idx {
		idx[i] = -1
	}

	day, err := time.Parse(dateLayout, date)
	if err != nil {
		return idx
	}

	for i, label := range labels {
		ts, err := time.Parse(hourLayout, label)
		if err != nil || ts.Minute() != 0 {
			continue
		}
		if ts.Year() != day.Year() || ts.YearDay() != day.YearDay() {
			continue
		}
		if idx[ts.Hour()] == -1 {
			idx[ts.Hour()] = i
		}
	}
	return idx
}

// ApparentTemp is a linear wind-adjusted temperature rounded to one decimal.
func ApparentTemp(temp, wind float64) float64 {
	return math.Round((temp-wind*0.1)*10) / 10
}

// Derive turns a raw forecast into the presentation summary for today.
// It is pure: the same input always yields the same output.
func Derive(raw RawForecast) ProcessedWeather {
	today := at(raw.Daily.Time, todayIndex)
	hours := indexHours(today, raw.Hourly.Time)

	p := ProcessedWeather{
		MaxTemp:             at(raw.Daily.TemperatureMax, todayIndex),
		MinTemp:             at(raw.Daily.TemperatureMin, todayIndex),
		WindSpeed:           raw.Current.WindSpeed,
		PrecipitationChance: at(raw.Daily.PrecipitationProbabilityMax, todayIndex),
		WeatherCode:         raw.Current.WeatherCode,
		CommuteMorning:      commuteAt(raw.Hourly, hours, morningCommuteHour),
		CommuteEvening:      commuteAt(raw.Hourly, hours, eveningCommuteHour),
	}

	if raw.Current.Temperature != nil {
		t := *raw.Current.Temperature
		p.CurrentTemp = &t
	}
	if i, ok := hours.lookup(morningCommuteHour); ok {
		p.Temp8am = at(raw.Hourly.Temperature, i)
	}
	if i, ok := hours.lookup(eveningTempHour); ok {
		p.Temp6pm = at(raw.Hourly.Temperature, i)
	}

	windows, maxProb := scanRain(raw.Hourly.PrecipitationProbability, hours)
	p.RainTimeRanges = DescribeRain(windows, maxProb)

	return p
}

func commuteAt(hourly RawHourly, hours hourIndex, hour int) CommuteSnapshot {
	i, ok := hours.lookup(hour)
	if !ok {
		return CommuteSnapshot{}
	}
	temp := at(hourly.Temperature, i)
	wind := at(hourly.WindSpeed, i)
	return CommuteSnapshot{
		Temp:         temp,
		Wind:         wind,
		Rain:         at(hourly.PrecipitationProbability, i),
		ApparentTemp: ApparentTemp(temp, wind),
	}
}

// ScanRain finds today's rain windows in a raw forecast and the highest
// qualifying probability seen across the whole day.
func ScanRain(raw RawForecast) ([]RainWindow, int) {
	hours := indexHours(at(raw.Daily.Time, todayIndex), raw.Hourly.Time)
	return scanRain(raw.Hourly.PrecipitationProbability, hours)
}

// scanRain walks hours 0..23. Hours missing from the feed are skipped and
// neither open nor close a window.
func scanRain(probs []int, hours hourIndex) ([]RainWindow, int) {
	var (
		windows []RainWindow
		maxProb int
		start   = -1
	)

	for h := 0; h < len(hours); h++ {
		i, ok := hours.lookup(h)
		if !ok {
			continue
		}
		prob := at(probs, i)

		if prob >= RainThreshold {
			if start == -1 {
				start = h
			}
			if prob > maxProb {
				maxProb = prob
			}
			continue
		}

		if start != -1 {
			windows = append(windows, RainWindow{Start: start, End: h})
			start = -1
		}
	}
	if start != -1 {
		windows = append(windows, RainWindow{Start: start, End: 24})
	}

	return windows, maxProb
}

// DescribeRain renders the day-level rain summary. A single maximum is
// reported for all windows together.
func DescribeRain(windows []RainWindow, maxProb int) string {
	if len(windows) == 0 {
		return NoRainText
	}
	labels := make([]string, len(windows))
	for i, w := range windows {
		labels[i] = w.String()
	}
	return fmt.Sprintf("雨の時間帯：%s (最大%d%%)", strings.Join(labels, "、"), maxProb)
}

// at returns xs[i] or the zero value when i is out of range.
func at[T any](xs []T, i int) T {
	var zero T
	if i < 0 || i >= len(xs) {
		return zero
	}
	return xs[i]
}
