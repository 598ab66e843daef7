package analysis

import (
	"lotus-ge/src/analysis/core"
	"lotus-ge/src/interfaces"
	"lotus-ge/src/logger"
	"lotus-ge/src/models"
)

// -----------------------------------------------------------------------------

// StatsAggregator computes per-item price/volume statistics over the
// configured report windows, gated by the staleness tracker: a window is
// recomputed only when its source resolution has ingested data since the
// last full pass.
type StatsAggregator struct {
	Store   interfaces.IMarketStore
	Windows []models.MReportWindow
	Logger  *logger.Logger
}

// -----------------------------------------------------------------------------

func NewStatsAggregator(store interfaces.IMarketStore, windows []models.MReportWindow, log *logger.Logger) *StatsAggregator {
	return &StatsAggregator{
		Store:   store,
		Windows: windows,
		Logger:  log,
	}
}

// -----------------------------------------------------------------------------

// windowRange is a stale window resolved against the store: absolute
// timestamp bounds plus the number of distinct timestamps the source
// resolution actually holds in range.
type windowRange struct {
	window        models.MReportWindow
	first         int64
	last          int64
	expectedCount int
}

// -----------------------------------------------------------------------------

// IsStale reports whether a window needs recomputation. A window with no
// ingested data at all is not stale: there is nothing to aggregate yet.
func (a *StatsAggregator) IsStale(w models.MReportWindow) (bool, error) {
	latest, ok, err := a.Store.LatestTimestamp(w.IntervalSize)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	aggregated, ok, err := a.Store.AggregatedTimestamp(w.IntervalSize)
	if err != nil {
		return false, err
	}

	return !ok || aggregated != latest, nil
}

// -----------------------------------------------------------------------------

func (a *StatsAggregator) staleWindows() ([]windowRange, error) {
	var stale []windowRange

	for _, w := range a.Windows {
		isStale, err := a.IsStale(w)
		if err != nil {
			return nil, err
		}
		if !isStale {
			continue
		}

		latest, ok, err := a.Store.LatestTimestamp(w.IntervalSize)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		first := latest - w.StartRange*w.IntervalSize
		last := latest - w.StopRange*w.IntervalSize

		// expectedCount comes from the resolution's own timestamp population
		// in range, independent of any single item.
		timestamps, err := a.Store.DistinctTimestamps(w.IntervalSize, first, last)
		if err != nil {
			return nil, err
		}

		stale = append(stale, windowRange{
			window:        w,
			first:         first,
			last:          last,
			expectedCount: len(timestamps),
		})
		a.Logger.Info("Window %s is stale: %d timestamps in range", w.Type, len(timestamps))
	}

	return stale, nil
}

// -----------------------------------------------------------------------------

// Run recomputes every stale window for every mapped item, upserts the
// results, and mirrors the latest markers into the staleness table so all
// windows sharing a resolution become fresh together. Returns the names of
// the refreshed windows.
func (a *StatsAggregator) Run() ([]string, error) {
	stale, err := a.staleWindows()
	if err != nil {
		return nil, err
	}
	if len(stale) == 0 {
		a.Logger.Info("All report windows are current")
		return nil, nil
	}

	itemIDs, err := a.Store.ItemIDs()
	if err != nil {
		return nil, err
	}

	var records []models.MAggregateRecord
	for _, itemID := range itemIDs {
		for _, wr := range stale {
			record, ok, err := a.aggregateItem(itemID, wr)
			if err != nil {
				return nil, err
			}
			if ok {
				records = append(records, record)
			}
		}
	}

	if err := a.Store.SaveAggregates(records); err != nil {
		return nil, err
	}
	if err := a.Store.MirrorLatestIntoAggregated(); err != nil {
		return nil, err
	}

	refreshed := make([]string, 0, len(stale))
	for _, wr := range stale {
		refreshed = append(refreshed, wr.window.Type)
	}

	a.Logger.Info("Aggregation pass complete: %d records across %d windows", len(records), len(stale))
	return refreshed, nil
}

// -----------------------------------------------------------------------------

// aggregateItem computes one AggregateRecord. The item's rows are padded
// with neutral entries up to the window's expected timestamp count, so gaps
// count against the sparse-data heuristic instead of silently shrinking the
// sample.
func (a *StatsAggregator) aggregateItem(itemID int, wr windowRange) (models.MAggregateRecord, bool, error) {
	rows, err := a.Store.ItemPoints(itemID, wr.window.IntervalSize, wr.first, wr.last)
	if err != nil {
		return models.MAggregateRecord{}, false, err
	}

	populated := len(rows)
	missing := wr.expectedCount - populated
	for i := 0; i < missing; i++ {
		rows = append(rows, models.MDataPoint{})
	}

	if len(rows) == 0 {
		return models.MAggregateRecord{}, false, nil
	}

	var (
		lowPrices, highPrices     []float64
		lowVolumes, highVolumes   []float64
		wLowPrices, wLowVolumes   []float64
		wHighPrices, wHighVolumes []float64
	)

	for _, p := range rows {
		low := deref(p.AvgLowPrice)
		lowVol := deref(p.LowPriceVolume)
		high := deref(p.AvgHighPrice)
		highVol := deref(p.HighPriceVolume)

		if low > 0 {
			lowPrices = append(lowPrices, low)
		}
		if high > 0 {
			highPrices = append(highPrices, high)
		}
		if lowVol > 0 {
			lowVolumes = append(lowVolumes, lowVol)
		}
		if highVol > 0 {
			highVolumes = append(highVolumes, highVol)
		}
		if low > 0 && lowVol > 0 {
			wLowPrices = append(wLowPrices, low)
			wLowVolumes = append(wLowVolumes, lowVol)
		}
		if high > 0 && highVol > 0 {
			wHighPrices = append(wHighPrices, high)
			wHighVolumes = append(wHighVolumes, highVol)
		}
	}

	record := models.MAggregateRecord{
		ItemID:     itemID,
		ReportType: wr.window.Type,
	}

	record.MeanLow = optional(core.WeightedMean(wLowPrices, wLowVolumes))
	record.MeanHigh = optional(core.WeightedMean(wHighPrices, wHighVolumes))
	record.MeanVolumeLow = optional(core.Mean(lowVolumes))
	record.MeanVolumeHigh = optional(core.Mean(highVolumes))

	if minLow, maxLow, ok := core.MinMax(lowPrices); ok {
		record.MinLow = ptr(minLow)
		record.MaxLow = ptr(maxLow)
	}
	if minHigh, maxHigh, ok := core.MinMax(highPrices); ok {
		record.MinHigh = ptr(minHigh)
		record.MaxHigh = ptr(maxHigh)
	}

	record.MedianLow = optional(core.Median(lowPrices))
	record.MedianHigh = optional(core.Median(highPrices))

	// Sparse-data rule: with more than half the expected timestamps absent,
	// volume medians would mostly reflect the gaps, so they are forced to
	// zero instead of computed.
	if wr.expectedCount > populated*2 {
		record.MedianVolLow = ptr(0)
		record.MedianVolHigh = ptr(0)
	} else {
		record.MedianVolLow = optional(core.Median(lowVolumes))
		record.MedianVolHigh = optional(core.Median(highVolumes))
	}

	return record, true, nil
}

// -----------------------------------------------------------------------------

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func ptr(v float64) *float64 {
	return &v
}

func optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
