package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/model"
	"github.com/Veraticus/pedal/internal/rfm"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("PEDAL_TEST_DIR", "/data/bikes")

	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "~", want: home},
		{in: "~/pedal.db", want: filepath.Join(home, "pedal.db")},
		{in: "$PEDAL_TEST_DIR/day.csv", want: "/data/bikes/day.csv"},
		{in: "/abs/path", want: "/abs/path"},
		{in: "relative/~file", want: "relative/~file"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".local/share/pedal/pedal.db"), DatabasePath(v))
	assert.Equal(t, "", DataPath(v))
	assert.Equal(t, rfm.DefaultCacheTTL, CacheTTL(v))

	v.Set("cache.ttl", "1m")
	assert.Equal(t, time.Minute, CacheTTL(v))
}

func TestVocabulary(t *testing.T) {
	v := viper.New()
	v.Set("vocabulary.seasons", map[string]string{"1": "Printemps"})
	v.Set("vocabulary.weather", map[string]string{"4": "Storm"})

	vocab, err := Vocabulary(v)
	require.NoError(t, err)
	assert.Equal(t, "Printemps", vocab.SeasonLabel(model.SeasonSpring))
	assert.Equal(t, "Summer", vocab.SeasonLabel(model.SeasonSummer))
	assert.Equal(t, "Storm", vocab.WeatherLabel(model.WeatherSevere))

	bad := viper.New()
	bad.Set("vocabulary.seasons", map[string]string{"9": "Monsoon"})
	_, err = Vocabulary(bad)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadSheetsConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "")
	t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "")

	_, err := LoadSheetsConfig()
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	viper.Set("sheets.service_account_path", "/keys/sa.json")
	viper.Set("sheets.spreadsheet_id", "sheet-123")
	viper.Set("sheets.enable_formatting", false)

	cfg, err := LoadSheetsConfig()
	require.NoError(t, err)
	assert.Equal(t, "/keys/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	assert.False(t, cfg.EnableFormatting)
}
