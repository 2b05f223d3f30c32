package weather

import "strings"

const (
	heavyCoatMaxApparent = 5
	windyCommuteSpeed    = 15
	largeSwingDelta      = 10
)

// Advisory phrases.
const (
	PhraseExtremeCold = "冷える！ダウンあると安心☃️"
	PhraseCold        = "寒いね。コートしっかり着てこ🧥"
	PhraseCool        = "肌寒いかも。羽織るもの持って🧣"
	PhraseComfortable = "過ごしやすい気温だよ✨"
	PhraseUmbrella    = " 雨降りそう、傘忘れずに☔️"
	PhraseWind        = " 風が強いから防寒対策を🌬️"

	HeadlineUmbrella = "傘の出番ありそう。忘れずに持ってね☔️"
	HeadlineCold     = "今日は極寒！しっかり防寒して出勤してね☃️"
	HeadlineSwing    = "寒暖差に注意！脱ぎ着できる服がおすすめ🧥"
	HeadlineDefault  = "行ってらっしゃい！今日も良い一日を✨"
)

// tempTier matches when the apparent temperature is at or below max.
type tempTier struct {
	max       float64
	phrase    string
	heavyCoat bool
}

// Evaluated top to bottom; the first tier that matches wins.
var tempTiers = []tempTier{
	{max: heavyCoatMaxApparent, phrase: PhraseExtremeCold, heavyCoat: true},
	{max: 10, phrase: PhraseCold},
	{max: 15, phrase: PhraseCool},
}

// adviceState is threaded through the addendum rules.
type adviceState struct {
	heavyCoat bool
}

type addendumRule struct {
	applies func(s CommuteSnapshot, st adviceState) bool
	phrase  string
}

// Appended in this order after the temperature tier.
var addendumRules = []addendumRule{
	{
		applies: func(s CommuteSnapshot, _ adviceState) bool { return s.Rain >= RainThreshold },
		phrase:  PhraseUmbrella,
	},
	{
		// The heavy-coat tier already covers protection from the cold.
		applies: func(s CommuteSnapshot, st adviceState) bool { return s.Wind >= windyCommuteSpeed && !st.heavyCoat },
		phrase:  PhraseWind,
	},
}

// AdviseCommute builds the advisory text for one commute snapshot.
func AdviseCommute(s CommuteSnapshot) string {
	var b strings.Builder
	var st adviceState

	phrase := PhraseComfortable
	for _, tier := range tempTiers {
		if s.ApparentTemp <= tier.max {
			phrase = tier.phrase
			st.heavyCoat = tier.heavyCoat
			break
		}
	}
	b.WriteString(phrase)

	for _, rule := range addendumRules {
		if rule.applies(s, st) {
			b.WriteString(rule.phrase)
		}
	}
	return b.String()
}

// CommuteAdviceFor advises on the morning and evening commutes independently.
func CommuteAdviceFor(p ProcessedWeather) CommuteAdvice {
	return CommuteAdvice{
		Morning: AdviseCommute(p.CommuteMorning),
		Evening: AdviseCommute(p.CommuteEvening),
	}
}

type headlineRule struct {
	matches  func(p ProcessedWeather) bool
	headline string
}

var headlineRules = []headlineRule{
	{
		matches: func(p ProcessedWeather) bool {
			return p.CommuteMorning.Rain >= RainThreshold || p.CommuteEvening.Rain >= RainThreshold
		},
		headline: HeadlineUmbrella,
	},
	{
		matches: func(p ProcessedWeather) bool {
			return p.CommuteMorning.ApparentTemp <= heavyCoatMaxApparent || p.CommuteEvening.ApparentTemp <= heavyCoatMaxApparent
		},
		headline: HeadlineCold,
	},
	{
		matches:  func(p ProcessedWeather) bool { return p.MaxTemp-p.MinTemp >= largeSwingDelta },
		headline: HeadlineSwing,
	},
}

// Headline picks the one-line summary for the day; first matching rule wins.
func Headline(p ProcessedWeather) string {
	for _, rule := range headlineRules {
		if rule.matches(p) {
			return rule.headline
		}
	}
	return HeadlineDefault
}
