package tui

import (
	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/rfm"
	"github.com/Veraticus/pedal/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme       themes.Theme
	Cache       *rfm.Cache
	Vocabulary  model.Vocabulary
	Range       model.DateRange
	RecencyBase analysis.RecencyBase
	Records     []model.DayRecord
	Width       int
	Height      int
	ShowHelp    bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// NewConfig builds a configuration for records with the given options applied.
func NewConfig(records []model.DayRecord, opts ...Option) Config {
	cfg := Config{
		Theme:       themes.Default,
		Vocabulary:  model.DefaultVocabulary(),
		RecencyBase: analysis.RecencyRange,
		Records:     records,
		Width:       100,
		Height:      30,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithCache shares an RFM cache with the dashboard.
func WithCache(cache *rfm.Cache) Option {
	return func(c *Config) {
		c.Cache = cache
	}
}

// WithVocabulary sets the season and weather labels.
func WithVocabulary(vocab model.Vocabulary) Option {
	return func(c *Config) {
		c.Vocabulary = vocab
	}
}

// WithRange sets the initial date range.
func WithRange(rng model.DateRange) Option {
	return func(c *Config) {
		c.Range = rng
	}
}

// WithRecencyBase sets where RFM recency is counted from.
func WithRecencyBase(base analysis.RecencyBase) Option {
	return func(c *Config) {
		c.RecencyBase = base
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}
