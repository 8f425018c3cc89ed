package sheets

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/common"
)

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		err           error
		wantIs        error
		name          string
		wantRetryable bool
	}{
		{name: "nil", err: nil},
		{name: "plain error", err: errors.New("boom")},
		{
			name:          "rate limited",
			err:           &googleapi.Error{Code: http.StatusTooManyRequests},
			wantIs:        common.ErrRateLimit,
			wantRetryable: true,
		},
		{
			name:          "server error",
			err:           fmt.Errorf("update: %w", &googleapi.Error{Code: http.StatusServiceUnavailable}),
			wantIs:        common.ErrSheetsAPI,
			wantRetryable: true,
		},
		{
			name:   "bad request",
			err:    &googleapi.Error{Code: http.StatusBadRequest},
			wantIs: common.ErrSheetsAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyAPIError(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			if tt.wantIs != nil {
				assert.ErrorIs(t, got, tt.wantIs)
			}
			assert.Equal(t, tt.wantRetryable, common.IsRetryable(got))
		})
	}
}

func TestMissingTabs(t *testing.T) {
	assert.Equal(t, analysis.SheetTitles, missingTabs(map[string]int64{}))
	assert.Equal(t, []string{analysis.SheetWeather, analysis.SheetMonthly},
		missingTabs(map[string]int64{analysis.SheetSummary: 0, analysis.SheetRFM: 1, analysis.SheetSeasons: 2, "Sheet1": 9}))
	assert.Empty(t, missingTabs(map[string]int64{
		analysis.SheetSummary: 0, analysis.SheetRFM: 1, analysis.SheetSeasons: 2, analysis.SheetWeather: 3, analysis.SheetMonthly: 4,
	}))
}

func TestColumnCountAndRange(t *testing.T) {
	assert.Equal(t, 1, columnCount(nil))
	assert.Equal(t, 3, columnCount([][]any{{1}, {1, 2, 3}, {}}))
	assert.Equal(t, "'RFM'!A1", quoteRange(analysis.SheetRFM, "A1"))
}

func TestWriterRetryOptions(t *testing.T) {
	w := &Writer{config: Config{RetryAttempts: 2, RetryDelay: 250 * time.Millisecond}}
	opts := w.retryOptions()
	assert.Equal(t, 3, opts.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, opts.InitialDelay)
}

func TestTokenRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token.json")
	want := &oauth2.Token{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}

	require.NoError(t, saveToken(path, want))

	got, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, want.AccessToken, got.AccessToken)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
