package analysis

import (
	"fmt"
	"strconv"

	"github.com/Veraticus/pedal/internal/model"
	"github.com/go-gota/gota/dataframe"
)

// Table is a rendered grid of strings with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// describeRow lists the numeric columns summarised by Describe.
type describeRow struct {
	Temp       float64 `dataframe:"temp"`
	ATemp      float64 `dataframe:"atemp"`
	Humidity   float64 `dataframe:"hum"`
	WindSpeed  float64 `dataframe:"windspeed"`
	Casual     int     `dataframe:"casual"`
	Registered int     `dataframe:"registered"`
	Count      int     `dataframe:"count"`
}

// Describe computes count, mean, median, standard deviation, min, quartiles
// and max for the numeric columns of the records.
func Describe(records []model.DayRecord) (Table, error) {
	if len(records) == 0 {
		return Table{}, nil
	}

	rows := make([]describeRow, len(records))
	for i, rec := range records {
		rows[i] = describeRow{
			Temp:       rec.Temp,
			ATemp:      rec.ATemp,
			Humidity:   rec.Humidity,
			WindSpeed:  rec.WindSpeed,
			Casual:     rec.Casual,
			Registered: rec.Registered,
			Count:      rec.Count,
		}
	}

	df := dataframe.LoadStructs(rows)
	if df.Err != nil {
		return Table{}, fmt.Errorf("failed to build data frame: %w", df.Err)
	}
	described := df.Describe()
	if described.Err != nil {
		return Table{}, fmt.Errorf("failed to describe data frame: %w", described.Err)
	}

	grid := described.Records()
	table := Table{Header: grid[0]}

	countRow := make([]string, len(table.Header))
	countRow[0] = "count"
	for i := 1; i < len(countRow); i++ {
		countRow[i] = strconv.Itoa(len(records))
	}
	table.Rows = append(table.Rows, countRow)

	for _, row := range grid[1:] {
		formatted := make([]string, len(row))
		formatted[0] = row[0]
		for i, cell := range row[1:] {
			formatted[i+1] = formatCell(cell)
		}
		table.Rows = append(table.Rows, formatted)
	}

	return table, nil
}

func formatCell(cell string) string {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return cell
	}
	return strconv.FormatFloat(f, 'f', 3, 64)
}
