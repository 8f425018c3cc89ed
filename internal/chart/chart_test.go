package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/pedal/internal/analysis"
	"github.com/Veraticus/pedal/internal/common"
	"github.com/Veraticus/pedal/internal/dataset"
	"github.com/Veraticus/pedal/internal/model"
)

func sampleReport(t *testing.T) *analysis.Report {
	t.Helper()
	records := dataset.Sample(dataset.SampleOptions{Days: 120, Seed: 7})
	report, err := analysis.BuildReport(records, model.DateRange{}, model.DefaultVocabulary(), nil)
	require.NoError(t, err)
	return report
}

func TestRenderAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	paths, err := NewRenderer().RenderAll(context.Background(), sampleReport(t), dir)
	require.NoError(t, err)

	want := []string{SeasonFile, WeatherFile, MonthlyFile, RFMFile}
	require.Len(t, paths, len(want))
	for i, path := range paths {
		assert.Equal(t, filepath.Join(dir, want[i]), path)
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Positive(t, info.Size())
	}
}

func TestRenderAll_EmptyReport(t *testing.T) {
	report, err := analysis.BuildReport(nil, model.DateRange{}, model.DefaultVocabulary(), nil)
	require.NoError(t, err)

	_, err = NewRenderer().RenderAll(context.Background(), report, t.TempDir())
	assert.ErrorIs(t, err, common.ErrNoRecords)
}

func TestRenderAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer().RenderAll(ctx, sampleReport(t), t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRFMScatter_SingleFrequency(t *testing.T) {
	rows := []model.RFMRow{
		{Date: time.Date(2012, 1, 1, 0, 0, 0, 0, time.UTC), Recency: 1, Frequency: 1, Monetary: 10},
		{Date: time.Date(2012, 1, 2, 0, 0, 0, 0, time.UTC), Recency: 0, Frequency: 1, Monetary: 20},
	}
	p, err := NewRenderer().RFMScatter(rows)
	require.NoError(t, err)
	assert.Equal(t, "RFM: recency vs monetary", p.Title.Text)
}

func TestBuilders_RejectEmptyInput(t *testing.T) {
	r := NewRenderer()

	_, err := r.SeasonBar(nil)
	assert.ErrorIs(t, err, common.ErrNoRecords)
	_, err = r.WeatherBox(nil)
	assert.ErrorIs(t, err, common.ErrNoRecords)
	_, err = r.MonthlyLines(nil, model.DefaultVocabulary())
	assert.ErrorIs(t, err, common.ErrNoRecords)
	_, err = r.RFMScatter(nil)
	assert.ErrorIs(t, err, common.ErrNoRecords)
}
