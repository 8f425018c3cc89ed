package model

// Season is the dataset's season code (1-4).
type Season int

// Weather is the dataset's weather situation code (1-4).
type Weather int

// Month is a calendar month number (1-12).
type Month int

// Season codes.
const (
	SeasonSpring Season = 1
	SeasonSummer Season = 2
	SeasonFall   Season = 3
	SeasonWinter Season = 4
)

// Weather codes.
const (
	WeatherClear  Weather = 1
	WeatherMisty  Weather = 2
	WeatherLight  Weather = 3
	WeatherSevere Weather = 4
)

// UnknownLabel is used for codes missing from a vocabulary.
const UnknownLabel = "Unknown"

// Vocabulary maps dataset codes to display labels.
type Vocabulary struct {
	Seasons map[Season]string
	Weather map[Weather]string
	Months  [12]string
}

// DefaultVocabulary returns the labels used by the bike sharing dataset.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Seasons: map[Season]string{
			SeasonSpring: "Spring",
			SeasonSummer: "Summer",
			SeasonFall:   "Fall",
			SeasonWinter: "Winter",
		},
		Weather: map[Weather]string{
			WeatherClear:  "Clear/Partly Cloudy",
			WeatherMisty:  "Misty/Cloudy",
			WeatherLight:  "Light Snow/Rain",
			WeatherSevere: "Severe Weather",
		},
		Months: [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"},
	}
}

// SeasonLabel returns the label for a season code.
func (v Vocabulary) SeasonLabel(s Season) string {
	if label, ok := v.Seasons[s]; ok {
		return label
	}
	return UnknownLabel
}

// WeatherLabel returns the label for a weather code.
func (v Vocabulary) WeatherLabel(w Weather) string {
	if label, ok := v.Weather[w]; ok {
		return label
	}
	return UnknownLabel
}

// MonthLabel returns the label for a month number.
func (v Vocabulary) MonthLabel(m Month) string {
	if m < 1 || m > 12 || v.Months[m-1] == "" {
		return UnknownLabel
	}
	return v.Months[m-1]
}

// WithOverrides returns a copy with the given labels replacing the defaults.
// Keys that do not name a known code are ignored.
func (v Vocabulary) WithOverrides(seasons map[Season]string, weather map[Weather]string) Vocabulary {
	out := Vocabulary{
		Seasons: make(map[Season]string, len(v.Seasons)),
		Weather: make(map[Weather]string, len(v.Weather)),
		Months:  v.Months,
	}
	for k, label := range v.Seasons {
		out.Seasons[k] = label
	}
	for k, label := range v.Weather {
		out.Weather[k] = label
	}
	for k, label := range seasons {
		if k >= SeasonSpring && k <= SeasonWinter && label != "" {
			out.Seasons[k] = label
		}
	}
	for k, label := range weather {
		if k >= WeatherClear && k <= WeatherSevere && label != "" {
			out.Weather[k] = label
		}
	}
	return out
}
