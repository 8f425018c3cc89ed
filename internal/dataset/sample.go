package dataset

import (
	"math/rand/v2"
	"time"

	"github.com/Veraticus/pedal/internal/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// seasonLambda is the mean daily rental volume used per season when sampling.
var seasonLambda = map[model.Season]float64{
	model.SeasonSpring: 2600,
	model.SeasonSummer: 4900,
	model.SeasonFall:   5600,
	model.SeasonWinter: 4700,
}

// SampleOptions configures synthetic data generation.
type SampleOptions struct {
	Start time.Time
	Days  int
	Seed  uint64
}

// Sample synthesises a daily dataset with Poisson-distributed rental counts.
// It exists for demos and tests only; real analyses should load recorded data.
func Sample(opts SampleOptions) []model.DayRecord {
	if opts.Days <= 0 {
		return []model.DayRecord{}
	}
	start := opts.Start
	if start.IsZero() {
		start = time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	start = model.CalendarDate(start)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	records := make([]model.DayRecord, 0, opts.Days)

	for i := 0; i < opts.Days; i++ {
		d := start.AddDate(0, 0, i)
		season := seasonFor(d.Month())
		weather := sampleWeather(rng)

		lambda := seasonLambda[season]
		if weather == model.WeatherLight {
			lambda *= 0.45
		} else if weather == model.WeatherSevere {
			lambda *= 0.2
		}
		count := int(distuv.Poisson{Lambda: lambda, Src: rng}.Rand())
		casual := int(float64(count) * (0.1 + 0.2*rng.Float64()))

		weekday := int(d.Weekday())
		rec := model.DayRecord{
			Instant:    i + 1,
			Date:       d,
			Hour:       model.NoHour,
			Season:     season,
			Year:       d.Year(),
			Month:      model.Month(d.Month()),
			Weekday:    weekday,
			WorkingDay: weekday != 0 && weekday != 6,
			Weather:    weather,
			Temp:       0.2 + 0.6*rng.Float64(),
			ATemp:      0.2 + 0.6*rng.Float64(),
			Humidity:   0.3 + 0.6*rng.Float64(),
			WindSpeed:  0.4 * rng.Float64(),
			Casual:     casual,
			Registered: count - casual,
			Count:      count,
		}
		rec.Hash = rec.GenerateHash()
		records = append(records, rec)
	}

	return records
}

// seasonFor follows the dataset's quarter-based season coding.
func seasonFor(m time.Month) model.Season {
	return model.Season((int(m)-1)/3 + 1)
}

func sampleWeather(rng *rand.Rand) model.Weather {
	switch p := rng.Float64(); {
	case p < 0.63:
		return model.WeatherClear
	case p < 0.97:
		return model.WeatherMisty
	case p < 0.995:
		return model.WeatherLight
	default:
		return model.WeatherSevere
	}
}
