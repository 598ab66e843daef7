package analysis

import (
	"path/filepath"
	"testing"

	"lotus-ge/src/logger"
	"lotus-ge/src/models"
	"lotus-ge/src/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func newAggStore(t *testing.T) *storage.SQLiteStore {
	t.Helper()

	cfg := &models.MConfig{}
	cfg.Storage.DBType = "sqlite"
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "agg.db")

	store, err := storage.NewSQLiteStore(cfg, logger.NewLogger("test"))
	require.NoError(t, err)
	require.NoError(t, store.Initialize())
	t.Cleanup(func() { store.Close() })

	return store
}

// -----------------------------------------------------------------------------

func fptr(v float64) *float64 { return &v }

func dataEntry(high, highVol, low, lowVol float64) models.MSnapshotEntry {
	return models.MSnapshotEntry{
		AvgHighPrice:    fptr(high),
		HighPriceVolume: fptr(highVol),
		AvgLowPrice:     fptr(low),
		LowPriceVolume:  fptr(lowVol),
	}
}

// -----------------------------------------------------------------------------

const aggLatest = int64(720_000)

func granularDaily() models.MReportWindow {
	return models.MReportWindow{Type: "GranularDaily", IntervalSize: 3600, StartRange: 24, StopRange: 0}
}

// -----------------------------------------------------------------------------

func TestIsStale(t *testing.T) {
	store := newAggStore(t)
	agg := NewStatsAggregator(store, []models.MReportWindow{granularDaily()}, logger.NewLogger("test"))

	// No ingested data at all: nothing to aggregate, not stale.
	stale, err := agg.IsStale(granularDaily())
	require.NoError(t, err)
	assert.False(t, stale)

	// A latest marker with no aggregation record is stale.
	require.NoError(t, store.SetLatestTimestamp(3600, aggLatest))
	stale, err = agg.IsStale(granularDaily())
	require.NoError(t, err)
	assert.True(t, stale)

	// Mirroring the markers makes it fresh.
	require.NoError(t, store.MirrorLatestIntoAggregated())
	stale, err = agg.IsStale(granularDaily())
	require.NoError(t, err)
	assert.False(t, stale)

	// A marker move re-stales it.
	require.NoError(t, store.SetLatestTimestamp(3600, aggLatest+3600))
	stale, err = agg.IsStale(granularDaily())
	require.NoError(t, err)
	assert.True(t, stale)
}

// -----------------------------------------------------------------------------

func TestRunComputesWindowStatistics(t *testing.T) {
	store := newAggStore(t)

	require.NoError(t, store.ReplaceMapping([]models.MItemMapping{
		{ItemID: 7, Name: "Rune scimitar"},
	}))

	// Three hourly buckets with full rows for the item.
	rows := []struct {
		ts   int64
		data models.MSnapshotEntry
	}{
		{aggLatest - 7200, dataEntry(120, 1, 90, 2)},
		{aggLatest - 3600, dataEntry(130, 3, 100, 4)},
		{aggLatest, dataEntry(125, 2, 110, 6)},
	}
	for _, r := range rows {
		_, err := store.SaveSnapshot(3600, models.MPriceSnapshot{
			Timestamp: r.ts,
			Data:      map[int]models.MSnapshotEntry{7: r.data},
		})
		require.NoError(t, err)
	}
	require.NoError(t, store.SetLatestTimestamp(3600, aggLatest))

	agg := NewStatsAggregator(store, []models.MReportWindow{granularDaily()}, logger.NewLogger("test"))
	refreshed, err := agg.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"GranularDaily"}, refreshed)

	records, err := store.AggregateRecords()
	require.NoError(t, err)
	require.Contains(t, records, 7)
	record := records[7]["GranularDaily"]

	// Low side: prices 90,100,110 weighted by volumes 2,4,6.
	assert.InDelta(t, (90*2+100*4+110*6)/12.0, *record.MeanLow, 1e-9)
	assert.InDelta(t, 100.0, *record.MedianLow, 1e-9)
	assert.Equal(t, 90.0, *record.MinLow)
	assert.Equal(t, 110.0, *record.MaxLow)
	assert.InDelta(t, 4.0, *record.MeanVolumeLow, 1e-9)

	// High side: prices 120,130,125 weighted by volumes 1,3,2.
	assert.InDelta(t, (120*1+130*3+125*2)/6.0, *record.MeanHigh, 1e-9)
	assert.Equal(t, 120.0, *record.MinHigh)
	assert.Equal(t, 130.0, *record.MaxHigh)

	// All expected buckets populated: volume medians are real.
	assert.InDelta(t, 4.0, *record.MedianVolLow, 1e-9)
	assert.InDelta(t, 2.0, *record.MedianVolHigh, 1e-9)

	// The pass leaves the window fresh.
	stale, err := agg.IsStale(granularDaily())
	require.NoError(t, err)
	assert.False(t, stale)
}

// -----------------------------------------------------------------------------

func TestRunSparseWindowZeroesVolumeMedians(t *testing.T) {
	store := newAggStore(t)

	require.NoError(t, store.ReplaceMapping([]models.MItemMapping{
		{ItemID: 7, Name: "Rune scimitar"},
	}))

	// Three populated buckets for the item.
	for i, ts := range []int64{aggLatest - 7200, aggLatest - 3600, aggLatest} {
		_, err := store.SaveSnapshot(3600, models.MPriceSnapshot{
			Timestamp: ts,
			Data: map[int]models.MSnapshotEntry{
				7: dataEntry(120+float64(i), 2, 100+float64(i), 3),
			},
		})
		require.NoError(t, err)
	}

	// Four more buckets exist only as placeholders: 7 expected vs 3
	// populated trips the sparse rule (7 > 3*2).
	for _, ts := range []int64{aggLatest - 21600, aggLatest - 18000, aggLatest - 14400, aggLatest - 10800} {
		_, err := store.SaveSnapshot(3600, models.MPriceSnapshot{Timestamp: ts})
		require.NoError(t, err)
	}
	require.NoError(t, store.SetLatestTimestamp(3600, aggLatest))

	agg := NewStatsAggregator(store, []models.MReportWindow{granularDaily()}, logger.NewLogger("test"))
	_, err := agg.Run()
	require.NoError(t, err)

	records, err := store.AggregateRecords()
	require.NoError(t, err)
	record := records[7]["GranularDaily"]

	require.NotNil(t, record.MedianVolLow)
	assert.Equal(t, 0.0, *record.MedianVolLow)
	assert.Equal(t, 0.0, *record.MedianVolHigh)

	// Price statistics still come from the populated rows alone.
	assert.InDelta(t, 101.0, *record.MedianLow, 1e-9)
	assert.Equal(t, 100.0, *record.MinLow)
	assert.Equal(t, 102.0, *record.MaxLow)
}

// -----------------------------------------------------------------------------

func TestRunWithNoMappedItemsWritesNothing(t *testing.T) {
	store := newAggStore(t)

	_, err := store.SaveSnapshot(3600, models.MPriceSnapshot{Timestamp: aggLatest})
	require.NoError(t, err)
	require.NoError(t, store.SetLatestTimestamp(3600, aggLatest))

	agg := NewStatsAggregator(store, []models.MReportWindow{granularDaily()}, logger.NewLogger("test"))
	refreshed, err := agg.Run()
	require.NoError(t, err)

	// The window was stale and is refreshed, but no items means no records.
	assert.Equal(t, []string{"GranularDaily"}, refreshed)

	records, err := store.AggregateRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
}
