package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVocabulary_Labels(t *testing.T) {
	v := DefaultVocabulary()

	assert.Equal(t, "Spring", v.SeasonLabel(SeasonSpring))
	assert.Equal(t, "Winter", v.SeasonLabel(SeasonWinter))
	assert.Equal(t, UnknownLabel, v.SeasonLabel(Season(9)))
	assert.Equal(t, "Light Snow/Rain", v.WeatherLabel(WeatherLight))
	assert.Equal(t, UnknownLabel, v.WeatherLabel(Weather(0)))
	assert.Equal(t, "Jan", v.MonthLabel(1))
	assert.Equal(t, "Dec", v.MonthLabel(12))
	assert.Equal(t, UnknownLabel, v.MonthLabel(13))
}

func TestVocabulary_WithOverrides(t *testing.T) {
	base := DefaultVocabulary()
	v := base.WithOverrides(
		map[Season]string{SeasonFall: "Autumn", Season(7): "Monsoon"},
		map[Weather]string{WeatherClear: "Sunny", WeatherMisty: ""},
	)

	assert.Equal(t, "Autumn", v.SeasonLabel(SeasonFall))
	assert.Equal(t, UnknownLabel, v.SeasonLabel(Season(7)))
	assert.Equal(t, "Sunny", v.WeatherLabel(WeatherClear))
	assert.Equal(t, "Misty/Cloudy", v.WeatherLabel(WeatherMisty))
	// The receiver is not modified.
	assert.Equal(t, "Fall", base.SeasonLabel(SeasonFall))
}
