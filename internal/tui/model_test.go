package tui

import (
	"testing"
	"time"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/rfm"
	"github.com/Veraticus/pedal/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleStart = time.Date(2011, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T, days int, opts ...Option) Model {
	t.Helper()

	cache := rfm.NewCache(time.Minute)
	t.Cleanup(cache.Close)

	records := dataset.Sample(dataset.SampleOptions{Start: sampleStart, Days: days, Seed: 1})
	cfg := NewConfig(records, append([]Option{WithCache(cache)}, opts...)...)

	m := newModel(cfg)
	updated, _ := m.Update(m.Init()())
	return updated.(Model)
}

// press sends a key and runs any report build it triggers.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()

	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	if result := cmd(); result != nil {
		if _, ok := result.(reportReadyMsg); ok {
			updated, _ = m.Update(result)
			m = updated.(Model)
		}
	}
	return m
}

func runeKey(r string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(r)}
}

func TestModel_InitialReport(t *testing.T) {
	m := newTestModel(t, 30)

	require.True(t, m.ready)
	require.NotNil(t, m.report)
	assert.Equal(t, 30, m.report.Records)
	assert.Len(t, m.report.RFM, 30)
	assert.Equal(t, sampleStart, m.rng.Start)
	assert.Equal(t, sampleStart.AddDate(0, 0, 29), m.rng.End)
	assert.NoError(t, m.warning)
	assert.Contains(t, m.View(), "Bike Rental Dashboard")
}

func TestModel_TabNavigation(t *testing.T) {
	m := newTestModel(t, 10)
	assert.Equal(t, TabStatistics, m.tab)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, TabSeasons, m.tab)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, TabRFM, m.tab)
	assert.Contains(t, m.viewport.View(), "RFM by day")
}

func TestModel_RangeKeys(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantStart time.Time
		wantEnd   time.Time
		records   int
	}{
		{
			name:      "start later",
			keys:      []string{"]", "]"},
			wantStart: sampleStart.AddDate(0, 0, 2),
			wantEnd:   sampleStart.AddDate(0, 0, 9),
			records:   8,
		},
		{
			name:      "end earlier",
			keys:      []string{"{"},
			wantStart: sampleStart,
			wantEnd:   sampleStart.AddDate(0, 0, 8),
			records:   9,
		},
		{
			name:      "clamped to data bounds",
			keys:      []string{"[", "}"},
			wantStart: sampleStart,
			wantEnd:   sampleStart.AddDate(0, 0, 9),
			records:   10,
		},
		{
			name:      "reset",
			keys:      []string{"]", "{", "r"},
			wantStart: sampleStart,
			wantEnd:   sampleStart.AddDate(0, 0, 9),
			records:   10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, 10)
			for _, k := range tt.keys {
				m = press(t, m, runeKey(k))
			}

			assert.Equal(t, tt.wantStart, m.rng.Start)
			assert.Equal(t, tt.wantEnd, m.rng.End)
			require.NotNil(t, m.report)
			assert.Equal(t, tt.records, m.report.Records)
			assert.NoError(t, m.warning)
		})
	}
}

func TestModel_InvalidRangeFallsBack(t *testing.T) {
	m := newTestModel(t, 5,
		WithSize(200, 40),
		WithRange(model.NewDateRange(sampleStart.AddDate(0, 0, 3), sampleStart.AddDate(0, 0, 3))),
	)
	assert.Equal(t, 1, m.report.Records)

	m = press(t, m, runeKey("{"))

	require.Error(t, m.warning)
	assert.ErrorIs(t, m.warning, model.ErrInvalidDateRange)
	assert.Equal(t, 5, m.report.Records)
	assert.Contains(t, m.View(), "showing the full dataset")
}

func TestModel_StaleReportIgnored(t *testing.T) {
	m := newTestModel(t, 10)
	before := m.report

	updated, _ := m.Update(reportReadyMsg{seq: m.seq + 5})
	m = updated.(Model)
	assert.Same(t, before, m.report)
}

func TestModel_HelpAndQuit(t *testing.T) {
	m := newTestModel(t, 5)

	m = press(t, m, runeKey("?"))
	assert.True(t, m.help.ShowAll)

	updated, cmd := m.Update(runeKey("q"))
	m = updated.(Model)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestModel_WindowResize(t *testing.T) {
	m := newTestModel(t, 5)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)
	assert.Equal(t, 116, m.viewport.Width)
	assert.Equal(t, 40-chromeHeight, m.viewport.Height)
}

func TestTab_String(t *testing.T) {
	assert.Equal(t, "Statistics", TabStatistics.String())
	assert.Equal(t, "RFM", TabRFM.String())
	assert.Equal(t, "Unknown", Tab(42).String())
}

func TestModel_StoredRecords(t *testing.T) {
	db := testutil.SetupTestDB(t, testutil.DailyRecords(sampleStart, 100, 200, 300)...)
	records := db.MustRecords(model.DateRange{})

	m := newModel(NewConfig(records))
	updated, _ := m.Update(m.Init()())
	m = updated.(Model)

	require.NotNil(t, m.report)
	require.Len(t, m.report.RFM, 3)
	assert.Equal(t, model.RFMRow{Date: sampleStart, Recency: 2, Frequency: 1, Monetary: 100}, m.report.RFM[0])
	assert.Equal(t, 600, m.report.Total)

	m = press(t, m, runeKey("]"))
	assert.Equal(t, 500, m.report.Total)
	assert.Equal(t, 1, m.report.RFM[0].Recency)
}

func TestModel_RecencyBase(t *testing.T) {
	rng := model.NewDateRange(sampleStart, sampleStart.AddDate(0, 0, 19))

	tests := []struct {
		name        string
		base        analysis.RecencyBase
		wantRecency int
	}{
		{name: "range", base: analysis.RecencyRange, wantRecency: 0},
		{name: "dataset", base: analysis.RecencyDataset, wantRecency: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, 30, WithRange(rng), WithRecencyBase(tt.base))

			require.NotNil(t, m.report)
			require.Len(t, m.report.RFM, 20)
			assert.Equal(t, tt.wantRecency, m.report.RFM[19].Recency)
			assert.Equal(t, tt.base, m.report.RecencyBase)
		})
	}
}
