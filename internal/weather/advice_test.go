package weather

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdviseCommuteTiers(t *testing.T) {
	tests := []struct {
		apparent float64
		want     string
	}{
		{-4, PhraseExtremeCold},
		{5, PhraseExtremeCold},
		{5.1, PhraseCold},
		{10, PhraseCold},
		{12, PhraseCool},
		{15, PhraseCool},
		{15.1, PhraseComfortable},
		{28, PhraseComfortable},
	}

	for _, tt := range tests {
		got := AdviseCommute(CommuteSnapshot{ApparentTemp: tt.apparent})
		assert.Equal(t, tt.want, got, "apparentTemp=%v", tt.apparent)
	}
}

func TestAdviseCommuteExtremeColdSuppressesWind(t *testing.T) {
	calm := AdviseCommute(CommuteSnapshot{ApparentTemp: 3, Rain: 10, Wind: 5})
	assert.Contains(t, calm, PhraseExtremeCold)
	assert.NotContains(t, calm, PhraseWind)

	windy := AdviseCommute(CommuteSnapshot{ApparentTemp: 3, Rain: 10, Wind: 20})
	assert.Contains(t, windy, PhraseExtremeCold)
	assert.NotContains(t, windy, PhraseWind)
}

func TestAdviseCommuteAddendumOrder(t *testing.T) {
	got := AdviseCommute(CommuteSnapshot{ApparentTemp: 12, Rain: 50, Wind: 20})
	assert.Equal(t, PhraseCool+PhraseUmbrella+PhraseWind, got)

	cool := strings.Index(got, PhraseCool)
	rain := strings.Index(got, PhraseUmbrella)
	wind := strings.Index(got, PhraseWind)
	assert.True(t, cool < rain && rain < wind)
}

func TestAdviseCommuteThresholds(t *testing.T) {
	assert.Equal(t, PhraseComfortable, AdviseCommute(CommuteSnapshot{ApparentTemp: 20, Rain: 39, Wind: 14.9}))
	assert.Equal(t, PhraseComfortable+PhraseUmbrella+PhraseWind, AdviseCommute(CommuteSnapshot{ApparentTemp: 20, Rain: 40, Wind: 15}))
	assert.Equal(t, PhraseExtremeCold+PhraseUmbrella, AdviseCommute(CommuteSnapshot{ApparentTemp: 1, Rain: 90, Wind: 30}))
}

func TestAdviseCommuteZeroSnapshot(t *testing.T) {
	// A missing hour yields the zero snapshot, which reads as extreme cold.
	assert.Equal(t, PhraseExtremeCold, AdviseCommute(CommuteSnapshot{}))
}

func TestCommuteAdviceFor(t *testing.T) {
	p := ProcessedWeather{
		CommuteMorning: CommuteSnapshot{ApparentTemp: 8, Rain: 60},
		CommuteEvening: CommuteSnapshot{ApparentTemp: 18, Wind: 16},
	}

	got := CommuteAdviceFor(p)
	assert.Equal(t, PhraseCold+PhraseUmbrella, got.Morning)
	assert.Equal(t, PhraseComfortable+PhraseWind, got.Evening)
}

func TestHeadline(t *testing.T) {
	mild := CommuteSnapshot{ApparentTemp: 14, Rain: 10}

	tests := []struct {
		name string
		p    ProcessedWeather
		want string
	}{
		{
			name: "evening rain wins over cold",
			p: ProcessedWeather{
				CommuteMorning: CommuteSnapshot{ApparentTemp: 2},
				CommuteEvening: CommuteSnapshot{ApparentTemp: 10, Rain: 40},
			},
			want: HeadlineUmbrella,
		},
		{
			name: "cold wins over swing",
			p: ProcessedWeather{
				MaxTemp: 12, MinTemp: 0,
				CommuteMorning: CommuteSnapshot{ApparentTemp: 5},
				CommuteEvening: mild,
			},
			want: HeadlineCold,
		},
		{
			name: "large swing",
			p:    ProcessedWeather{MaxTemp: 25, MinTemp: 14, CommuteMorning: mild, CommuteEvening: mild},
			want: HeadlineSwing,
		},
		{
			name: "swing boundary",
			p:    ProcessedWeather{MaxTemp: 20, MinTemp: 10, CommuteMorning: mild, CommuteEvening: mild},
			want: HeadlineSwing,
		},
		{
			name: "ordinary day",
			p:    ProcessedWeather{MaxTemp: 22, MinTemp: 15, CommuteMorning: mild, CommuteEvening: mild},
			want: HeadlineDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Headline(tt.p))
		})
	}
}
