package weather

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

// dayFeed builds a 24-hour feed for date with per-hour values from fn.
func dayFeed(date string, fn func(h int) (temp, wind float64, rain int)) RawHourly {
	var hourly RawHourly
	for h := 0; h < 24; h++ {
		temp, wind, rain := fn(h)
		hourly.Time = append(hourly.Time, fmt.Sprintf("%sT%02d:00", date, h))
		hourly.Temperature = append(hourly.Temperature, temp)
		hourly.WindSpeed = append(hourly.WindSpeed, wind)
		hourly.PrecipitationProbability = append(hourly.PrecipitationProbability, rain)
	}
	return hourly
}

func sampleForecast() RawForecast {
	return RawForecast{
		Current: RawCurrent{Temperature: ptr(12.3), WindSpeed: 7.2, WeatherCode: 3},
		Daily: RawDaily{
			Time:                        []string{"2024-11-05", "2024-11-06"},
			TemperatureMax:              []float64{18.4, 20.1},
			TemperatureMin:              []float64{9.2, 11.0},
			PrecipitationProbabilityMax: []int{65, 10},
		},
		Hourly: dayFeed("2024-11-05", func(h int) (float64, float64, int) {
			rain := 0
			if h >= 13 && h < 16 {
				rain = 65
			}
			return 8 + float64(h)*0.5, 10 + float64(h%5), rain
		}),
	}
}

func TestDerivePassThroughs(t *testing.T) {
	p := Derive(sampleForecast())

	require.NotNil(t, p.CurrentTemp)
	assert.Equal(t, 12.3, *p.CurrentTemp)
	assert.Equal(t, 18.4, p.MaxTemp)
	assert.Equal(t, 9.2, p.MinTemp)
	assert.Equal(t, 7.2, p.WindSpeed)
	assert.Equal(t, 65, p.PrecipitationChance)
	assert.Equal(t, 3, p.WeatherCode)
	assert.Equal(t, 12.0, p.Temp8am)
	assert.Equal(t, 17.0, p.Temp6pm)
}

func TestDeriveCommuteSnapshots(t *testing.T) {
	p := Derive(sampleForecast())

	// 08:00 -> temp 12, wind 13; 19:00 -> temp 17.5, wind 14.
	assert.Equal(t, CommuteSnapshot{Temp: 12, Wind: 13, Rain: 0, ApparentTemp: 10.7}, p.CommuteMorning)
	assert.Equal(t, CommuteSnapshot{Temp: 17.5, Wind: 14, Rain: 0, ApparentTemp: 16.1}, p.CommuteEvening)
}

func TestDeriveIsDeterministic(t *testing.T) {
	raw := sampleForecast()
	assert.Equal(t, Derive(raw), Derive(raw))
}

func TestApparentTempMatchesFormula(t *testing.T) {
	raw := RawForecast{
		Daily: RawDaily{Time: []string{"2024-01-10"}, TemperatureMax: []float64{5}, TemperatureMin: []float64{-3}, PrecipitationProbabilityMax: []int{0}},
		Hourly: dayFeed("2024-01-10", func(h int) (float64, float64, int) {
			return -3.37 + float64(h)*0.91, 3.3 * float64(h), 0
		}),
	}

	p := Derive(raw)
	for _, s := range []CommuteSnapshot{p.CommuteMorning, p.CommuteEvening} {
		assert.Equal(t, ApparentTemp(s.Temp, s.Wind), s.ApparentTemp)
		assert.InDelta(t, s.Temp-s.Wind*0.1, s.ApparentTemp, 0.05)
	}
	assert.Equal(t, 2.3, ApparentTemp(4.0, 17.0))
	assert.Equal(t, -1.5, ApparentTemp(0, 15))
}

func TestDeriveMissingCurrentTemperature(t *testing.T) {
	raw := sampleForecast()
	raw.Current.Temperature = nil

	p := Derive(raw)
	assert.Nil(t, p.CurrentTemp)
}

func TestDeriveZeroCurrentTemperatureIsKept(t *testing.T) {
	raw := sampleForecast()
	raw.Current.Temperature = ptr(0)

	p := Derive(raw)
	require.NotNil(t, p.CurrentTemp)
	assert.Equal(t, 0.0, *p.CurrentTemp)
}

func TestDeriveMissingHoursFallBackToZero(t *testing.T) {
	raw := sampleForecast()
	// Feed that only covers the first six hours of the day.
	raw.Hourly.Time = raw.Hourly.Time[:6]
	raw.Hourly.Temperature = raw.Hourly.Temperature[:6]
	raw.Hourly.WindSpeed = raw.Hourly.WindSpeed[:6]
	raw.Hourly.PrecipitationProbability = raw.Hourly.PrecipitationProbability[:6]

	p := Derive(raw)
	assert.Zero(t, p.Temp8am)
	assert.Zero(t, p.Temp6pm)
	assert.Equal(t, CommuteSnapshot{}, p.CommuteMorning)
	assert.Equal(t, CommuteSnapshot{}, p.CommuteEvening)
	assert.Equal(t, NoRainText, p.RainTimeRanges)
}

func TestDeriveIgnoresOtherDays(t *testing.T) {
	raw := sampleForecast()
	// Tomorrow's hours must not be picked up for today's lookups.
	tomorrow := dayFeed("2024-11-06", func(int) (float64, float64, int) { return 99, 99, 99 })
	raw.Hourly.Time = append(tomorrow.Time, raw.Hourly.Time...)
	raw.Hourly.Temperature = append(tomorrow.Temperature, raw.Hourly.Temperature...)
	raw.Hourly.WindSpeed = append(tomorrow.WindSpeed, raw.Hourly.WindSpeed...)
	raw.Hourly.PrecipitationProbability = append(tomorrow.PrecipitationProbability, raw.Hourly.PrecipitationProbability...)

	assert.Equal(t, Derive(sampleForecast()), Derive(raw))
}

func TestDeriveEmptyFeed(t *testing.T) {
	p := Derive(RawForecast{})
	assert.Nil(t, p.CurrentTemp)
	assert.Zero(t, p.MaxTemp)
	assert.Equal(t, NoRainText, p.RainTimeRanges)
}

func TestIndexHours(t *testing.T) {
	labels := []string{
		"2024-11-04T23:00",
		"2024-11-05T00:00",
		"2024-11-05T08:30",
		"2024-11-05T08:00",
		"2024-11-05T08:00",
		"not-a-time",
		"2024-11-05T19:00",
	}
	idx := indexHours("2024-11-05", labels)

	i, ok := idx.lookup(0)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	i, ok = idx.lookup(8)
	assert.True(t, ok)
	assert.Equal(t, 3, i, "first on-the-hour entry wins")

	i, ok = idx.lookup(19)
	assert.True(t, ok)
	assert.Equal(t, 6, i)

	_, ok = idx.lookup(23)
	assert.False(t, ok)
	_, ok = idx.lookup(24)
	assert.False(t, ok)
}

func TestScanRain(t *testing.T) {
	hoursFeed := func(probs []int) RawForecast {
		raw := RawForecast{Daily: RawDaily{Time: []string{"2024-06-01"}}}
		for h, p := range probs {
			raw.Hourly.Time = append(raw.Hourly.Time, fmt.Sprintf("2024-06-01T%02d:00", h))
			raw.Hourly.PrecipitationProbability = append(raw.Hourly.PrecipitationProbability, p)
		}
		return raw
	}

	tests := []struct {
		name    string
		probs   []int
		windows []RainWindow
		max     int
		text    string
	}{
		{
			name:    "two windows share one max",
			probs:   []int{10, 10, 50, 60, 30, 70, 20},
			windows: []RainWindow{{2, 4}, {5, 6}},
			max:     70,
			text:    "雨の時間帯：2時〜4時、5時〜6時 (最大70%)",
		},
		{
			name:  "dry day",
			probs: []int{0, 10, 39, 20},
			text:  NoRainText,
		},
		{
			name:    "threshold is inclusive",
			probs:   []int{39, 40, 39},
			windows: []RainWindow{{1, 2}},
			max:     40,
			text:    "雨の時間帯：1時〜2時 (最大40%)",
		},
		{
			name:    "rain until end of feed closes at 24",
			probs:   []int{0, 0, 80, 90},
			windows: []RainWindow{{2, 24}},
			max:     90,
			text:    "雨の時間帯：2時〜24時 (最大90%)",
		},
		{
			name:    "all day",
			probs:   []int{45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45, 45},
			windows: []RainWindow{{0, 24}},
			max:     45,
			text:    "雨の時間帯：0時〜24時 (最大45%)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := hoursFeed(tt.probs)
			windows, max := ScanRain(raw)
			assert.Equal(t, tt.windows, windows)
			assert.Equal(t, tt.max, max)
			assert.Equal(t, tt.text, Derive(raw).RainTimeRanges)
		})
	}
}

func TestScanRainSkipsMissingHours(t *testing.T) {
	// Hour 3 is absent: it neither closes the 2時 window nor opens one.
	raw := RawForecast{
		Daily: RawDaily{Time: []string{"2024-06-01"}},
		Hourly: RawHourly{
			Time:                     []string{"2024-06-01T01:00", "2024-06-01T02:00", "2024-06-01T04:00", "2024-06-01T05:00"},
			PrecipitationProbability: []int{0, 55, 60, 10},
		},
	}

	windows, max := ScanRain(raw)
	assert.Equal(t, []RainWindow{{Start: 2, End: 5}}, windows)
	assert.Equal(t, 60, max)
}

func TestDescribeRain(t *testing.T) {
	assert.Equal(t, NoRainText, DescribeRain(nil, 0))
	assert.Equal(t, "雨の時間帯：12時〜15時 (最大70%)", DescribeRain([]RainWindow{{12, 15}}, 70))
}
