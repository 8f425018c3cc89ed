package tui

import "github.com/Veraticus/pedal/internal/analysis"

// reportReadyMsg carries a rebuilt report. warning is set when the requested
// range was rejected and the full dataset was used instead.
type reportReadyMsg struct {
	err     error
	warning error
	report  *analysis.Report
	seq     int
}

// Tab identifies a dashboard section.
type Tab int

const (
	TabStatistics Tab = iota
	TabSeasons
	TabWeather
	TabMonthly
	TabRFM
)

var tabNames = []string{"Statistics", "Seasons", "Weather", "Monthly", "RFM"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}
