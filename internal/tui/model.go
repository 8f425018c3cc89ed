package tui

import (
	"time"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/rfm"
	"github.com/Veraticus/pedal/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// chromeHeight is the number of lines taken by everything except the tab body.
const chromeHeight = 9

// Model holds the dashboard state.
type Model struct {
	theme     themes.Theme
	minDate   time.Time
	maxDate   time.Time
	err       error
	warning   error
	cache     *rfm.Cache
	report    *analysis.Report
	formatter *analysis.CLIFormatter
	vocab     model.Vocabulary
	rng       model.DateRange
	base      analysis.RecencyBase
	records   []model.DayRecord
	help      help.Model
	viewport  viewport.Model
	keymap    KeyMap
	tab       Tab
	seq       int
	width     int
	height    int
	quitting  bool
	ready     bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	m := Model{
		theme:     cfg.Theme,
		cache:     cfg.Cache,
		formatter: analysis.NewCLIFormatter(),
		vocab:     cfg.Vocabulary,
		records:   cfg.Records,
		base:      cfg.RecencyBase,
		help:      help.New(),
		keymap:    DefaultKeyMap(),
		width:     cfg.Width,
		height:    cfg.Height,
	}
	m.help.ShowAll = cfg.ShowHelp
	m.viewport = viewport.New(m.bodyWidth(), m.bodyHeight())

	if minDate, maxDate, ok := dataset.Bounds(cfg.Records); ok {
		m.minDate, m.maxDate = minDate, maxDate
	}
	m.rng = m.fillBounds(cfg.Range)

	return m
}

// Init starts the first report build.
func (m Model) Init() tea.Cmd {
	return m.buildReport()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewport.Width = m.bodyWidth()
		m.viewport.Height = m.bodyHeight()
		m.formatter = analysis.NewCLIFormatter().WithWidth(m.bodyWidth())
		m.refreshContent()
		return m, nil

	case reportReadyMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.ready = true
		m.err = msg.err
		m.warning = msg.warning
		if msg.report != nil {
			m.report = msg.report
		}
		m.refreshContent()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.ForceQuit), key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.viewport.Height = m.bodyHeight()
		return m, nil

	case key.Matches(msg, m.keymap.NextTab):
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keymap.PrevTab):
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.refreshContent()
		m.viewport.GotoTop()
		return m, nil

	case key.Matches(msg, m.keymap.StartEarlier):
		return m.setRange(model.DateRange{Start: m.shift(m.rng.Start, -1), End: m.rng.End})
	case key.Matches(msg, m.keymap.StartLater):
		return m.setRange(model.DateRange{Start: m.shift(m.rng.Start, 1), End: m.rng.End})
	case key.Matches(msg, m.keymap.EndEarlier):
		return m.setRange(model.DateRange{Start: m.rng.Start, End: m.shift(m.rng.End, -1)})
	case key.Matches(msg, m.keymap.EndLater):
		return m.setRange(model.DateRange{Start: m.rng.Start, End: m.shift(m.rng.End, 1)})
	case key.Matches(msg, m.keymap.Reset):
		return m.setRange(m.fillBounds(model.DateRange{}))

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// setRange records the new range and rebuilds the report for it.
// Results of earlier builds still in flight are discarded by sequence number.
func (m Model) setRange(rng model.DateRange) (tea.Model, tea.Cmd) {
	if rng == m.rng {
		return m, nil
	}
	m.rng = rng
	m.seq++
	return m, m.buildReport()
}

// shift moves d by days, clamped to the dataset bounds.
func (m Model) shift(d time.Time, days int) time.Time {
	if m.minDate.IsZero() {
		return d
	}
	out := d.AddDate(0, 0, days)
	if out.Before(m.minDate) {
		return m.minDate
	}
	if out.After(m.maxDate) {
		return m.maxDate
	}
	return out
}

// fillBounds replaces open bounds with the dataset's first and last dates.
func (m Model) fillBounds(rng model.DateRange) model.DateRange {
	if rng.Start.IsZero() {
		rng.Start = m.minDate
	} else {
		rng.Start = model.CalendarDate(rng.Start)
	}
	if rng.End.IsZero() {
		rng.End = m.maxDate
	} else {
		rng.End = model.CalendarDate(rng.End)
	}
	return rng
}

func (m *Model) refreshContent() {
	m.viewport.SetContent(m.renderTab())
}

func (m Model) bodyWidth() int {
	return max(m.width-4, 20)
}

func (m Model) bodyHeight() int {
	h := m.height - chromeHeight
	if m.help.ShowAll {
		h -= 3
	}
	return max(h, 3)
}

// buildReport rebuilds the report for the current range off the update loop.
func (m Model) buildReport() tea.Cmd {
	records, rng, vocab, cache, base, seq := m.records, m.rng, m.vocab, m.cache, m.base, m.seq
	return func() tea.Msg {
		_, effective, warning := dataset.Resolve(records, rng)
		report, err := analysis.BuildReport(records, effective, vocab, cache, analysis.WithRecencyBase(base))
		return reportReadyMsg{report: report, err: err, warning: warning, seq: seq}
	}
}
