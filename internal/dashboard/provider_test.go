package dashboard

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleProvider(t *testing.T) {
	rt, err := SampleProvider{}.Realtime(context.Background())
	require.NoError(t, err)

	require.Len(t, rt.DailyData, 7)
	assert.Equal(t, DailyPoint{Day: "Mon", Actual: 450, Predicted: 480, Target: 400}, rt.DailyData[0])
	require.Len(t, rt.MonthlyData, 6)
	assert.Equal(t, MonthlyPoint{Month: "Apr", Emissions: 14300, Credits: 7200}, rt.MonthlyData[3])
	require.Len(t, rt.SourceData, 4)
	assert.Equal(t, SourceShare{Name: "Excavation", Value: 45, Color: "#1a5f3f"}, rt.SourceData[0])
	require.Len(t, rt.AccuracyData, 4)
	assert.InDelta(t, -50, rt.AccuracyData[3].Diff, 0)

	require.Len(t, rt.Stats, 4)
	assert.Equal(t, "Today's Emissions", rt.Stats[0].Label)
	assert.Equal(t, "8,200", rt.Stats[2].Value)
	require.NotNil(t, rt.Stats[2].Trend)
	assert.True(t, rt.Stats[2].Trend.IsPositive)
	assert.Equal(t, "18.5%", rt.Stats[3].Value)
}

func TestSampleProvider_ReturnsIndependentCopies(t *testing.T) {
	a, err := SampleProvider{}.Realtime(context.Background())
	require.NoError(t, err)
	a.DailyData[0].Actual = 0

	b, err := SampleProvider{}.Realtime(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 450, b.DailyData[0].Actual, 0)
}

func TestSampleProvider_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SampleProvider{}.Realtime(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileProvider(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "data.yaml")
		require.NoError(t, os.WriteFile(path, []byte("daily:\n  - {day: Mon, actual: 1, predicted: 2, target: 3}\n"), 0o600))

		rt, err := NewProvider(path).Realtime(context.Background())
		require.NoError(t, err)
		require.Len(t, rt.DailyData, 1)
		assert.Empty(t, rt.Stats)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FileProvider{Path: filepath.Join(dir, "nope.yaml")}.Realtime(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty document", func(t *testing.T) {
		path := filepath.Join(dir, "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("# nothing\n"), 0o600))

		_, err := FileProvider{Path: path}.Realtime(context.Background())
		assert.ErrorIs(t, err, ErrEmptyData)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("daily: [\n"), 0o600))

		_, err := FileProvider{Path: path}.Realtime(context.Background())
		assert.ErrorContains(t, err, "parsing dashboard YAML")
	})
}

func TestNewProvider_DefaultsToSample(t *testing.T) {
	assert.IsType(t, SampleProvider{}, NewProvider(""))
}

func TestAverages(t *testing.T) {
	rt, err := SampleProvider{}.Realtime(context.Background())
	require.NoError(t, err)

	avg := rt.Averages()
	assert.InDelta(t, 3250.0/7, avg.Actual, 1e-9)
	assert.InDelta(t, 3320.0/7, avg.Predicted, 1e-9)
	assert.InDelta(t, 400, avg.Target, 1e-9)

	assert.Equal(t, DailyAverages{}, (&RealtimeData{}).Averages())
	var nilData *RealtimeData
	assert.Equal(t, DailyAverages{}, nilData.Averages())
}
