package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/rfm"
)

// Default locations.
const (
	DefaultDatabasePath = "~/.local/share/pedal/pedal.db"
	DefaultConfigDir    = "~/.config/pedal"
)

// SetDefaults registers default values for every key pedal reads.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath)
	v.SetDefault("data.path", "")
	v.SetDefault("cache.ttl", rfm.DefaultCacheTTL)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// DatabasePath returns the expanded SQLite path.
func DatabasePath(v *viper.Viper) string {
	path := v.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// DataPath returns the expanded default CSV path, or "" when unset.
func DataPath(v *viper.Viper) string {
	return ExpandPath(v.GetString("data.path"))
}

// CacheTTL returns how long derived RFM tables are memoized.
func CacheTTL(v *viper.Viper) time.Duration {
	ttl := v.GetDuration("cache.ttl")
	if ttl <= 0 {
		return rfm.DefaultCacheTTL
	}
	return ttl
}

// Vocabulary returns the default labels with any configured overrides applied.
// Keys under vocabulary.seasons and vocabulary.weather are numeric codes.
func Vocabulary(v *viper.Viper) (model.Vocabulary, error) {
	seasons := make(map[model.Season]string)
	for key, label := range v.GetStringMapString("vocabulary.seasons") {
		code, err := parseCode(key, 4)
		if err != nil {
			return model.Vocabulary{}, fmt.Errorf("vocabulary.seasons: %w", err)
		}
		seasons[model.Season(code)] = label
	}

	weather := make(map[model.Weather]string)
	for key, label := range v.GetStringMapString("vocabulary.weather") {
		code, err := parseCode(key, 4)
		if err != nil {
			return model.Vocabulary{}, fmt.Errorf("vocabulary.weather: %w", err)
		}
		weather[model.Weather(code)] = label
	}

	return model.DefaultVocabulary().WithOverrides(seasons, weather), nil
}

func parseCode(key string, upper int) (int, error) {
	code, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil || code < 1 || code > upper {
		return 0, fmt.Errorf("%w: code %q must be between 1 and %d", common.ErrInvalidConfig, key, upper)
	}
	return code, nil
}
