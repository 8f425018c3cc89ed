package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/pedal/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawDayCSV = `instant,dteday,season,yr,mnth,holiday,weekday,workingday,weathersit,temp,atemp,hum,windspeed,casual,registered,cnt
1,2011-01-01,1,0,1,0,6,0,2,0.344167,0.363625,0.805833,0.160446,331,654,985
2,2011-01-02,1,0,1,0,0,0,2,0.363478,0.353739,0.696087,0.248539,131,670,801
3,2011-01-03,1,0,1,0,1,1,1,0.196364,0.189405,0.437273,0.248309,120,1229,1349
`

func TestLoad_RawLayout(t *testing.T) {
	result, err := Load(strings.NewReader(rawDayCSV), DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Records, 3)
	assert.Equal(t, 3, result.Rows)
	assert.Equal(t, 0, result.Invalid)

	first := result.Records[0]
	assert.Equal(t, 1, first.Instant)
	assert.Equal(t, time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
	assert.Equal(t, model.SeasonSpring, first.Season)
	assert.Equal(t, model.WeatherMisty, first.Weather)
	assert.Equal(t, 2011, first.Year)
	assert.Equal(t, model.Month(1), first.Month)
	assert.Equal(t, model.NoHour, first.Hour)
	assert.Equal(t, 331, first.Casual)
	assert.Equal(t, 654, first.Registered)
	assert.Equal(t, 985, first.Count)
	assert.InDelta(t, 0.344167, first.Temp, 1e-9)
	assert.False(t, first.WorkingDay)
	assert.True(t, result.Records[2].WorkingDay)
	assert.NotEmpty(t, first.Hash)
	assert.NotEqual(t, first.Hash, result.Records[1].Hash)
}

func TestLoad_RenamedLayoutWithLabels(t *testing.T) {
	input := `dateday,season,weather,count,hr
2012-06-01,Summer,Clear/Partly Cloudy,120,0
2012-06-01,summer,Misty/Cloudy,80,1
`
	result, err := Load(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	assert.Equal(t, model.SeasonSummer, result.Records[0].Season)
	assert.Equal(t, model.WeatherClear, result.Records[0].Weather)
	assert.Equal(t, model.WeatherMisty, result.Records[1].Weather)
	assert.Equal(t, 0, result.Records[0].Hour)
	assert.Equal(t, 1, result.Records[1].Hour)
	assert.Equal(t, 2, result.Records[1].Instant, "ordinal used when instant is absent")
}

func TestLoad_InvalidRows(t *testing.T) {
	input := `dteday,cnt
2011-01-01,10
not-a-date,5
2011-01-02,-3
2011-01-03,
2011-01-04,7
2011-01-05,20,extra
2011-01-06
2011-01-07,30
`
	result, err := Load(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, result.Records, 3)
	assert.Equal(t, 8, result.Rows)
	assert.Equal(t, 5, result.Invalid)
	assert.Equal(t, 30, result.Records[2].Count)

	opts := DefaultOptions()
	opts.Strict = true
	_, err = Load(strings.NewReader(input), opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRow))
	assert.Contains(t, err.Error(), "line 3")

	_, err = Load(strings.NewReader("dteday,cnt\n2011-01-01,10\n2011-01-02,20,extra\n"), opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRow)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoad_HeaderErrors(t *testing.T) {
	_, err := Load(strings.NewReader(""), DefaultOptions())
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Load(strings.NewReader("dteday,temp\n2011-01-01,0.3\n"), DefaultOptions())
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoad_Progress(t *testing.T) {
	var calls []int
	opts := DefaultOptions()
	opts.Progress = func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	}

	_, err := Load(strings.NewReader(rawDayCSV), opts)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.csv"), DefaultOptions())
	assert.ErrorIs(t, err, ErrDataNotFound)

	path := filepath.Join(dir, "day.csv")
	require.NoError(t, os.WriteFile(path, []byte(rawDayCSV), 0600))

	result, err := LoadFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, result.Records, 3)
}
