package collector

import (
	"time"

	"lotus-ge/src/analysis"
	"lotus-ge/src/helpers"
	"lotus-ge/src/interfaces"
	"lotus-ge/src/logger"
	"lotus-ge/src/models"
)

// -----------------------------------------------------------------------------

// Collector drives one full ingestion cycle: per-resolution snapshot capture,
// gap backfill, retention pruning, latest/mapping refresh, statistical
// aggregation and the master view rebuild.
type Collector struct {
	Config      *models.MConfig
	Resolutions []models.MResolution
	Store       interfaces.IMarketStore
	Source      interfaces.IPriceSource
	Gaps        *GapPlanner
	Aggregator  *analysis.StatsAggregator
	Views       *analysis.MasterViewBuilder
	Logger      *logger.Logger
}

// -----------------------------------------------------------------------------

func NewCollector(config *models.MConfig, store interfaces.IMarketStore, source interfaces.IPriceSource,
	aggregator *analysis.StatsAggregator, views *analysis.MasterViewBuilder, appLogger *logger.Logger) *Collector {

	return &Collector{
		Config:      config,
		Resolutions: models.DefaultResolutions(),
		Store:       store,
		Source:      source,
		Gaps:        NewGapPlanner(store),
		Aggregator:  aggregator,
		Views:       views,
		Logger:      appLogger,
	}
}

// -----------------------------------------------------------------------------

// RunCycle executes one complete collection pass and returns the cycle
// summary plus the rebuilt master view. A transport failure aborts the cycle
// immediately: a half-fetched cycle must not advance markers or prune.
func (c *Collector) RunCycle() (models.MCycleSummary, []models.MMasterRecord, error) {
	summary := models.MCycleSummary{
		StartedAt:        time.Now().Unix(),
		LatestTimestamps: make(map[int64]int64),
		Backfilled:       make(map[int64]int),
		Pruned:           make(map[int64]int64),
	}

	var latestMax int64

	for _, res := range c.Resolutions {
		latest, err := c.collectResolution(res, &summary)
		if err != nil {
			return summary, nil, err
		}
		if latest > latestMax {
			latestMax = latest
		}
	}

	if err := c.refreshLatestPrices(); err != nil {
		return summary, nil, err
	}

	if err := c.refreshMapping(latestMax); err != nil {
		return summary, nil, err
	}

	recipes := LoadRecipes(c.Config.Collector.RecipeCSVPath, c.Logger)

	refreshed, err := c.Aggregator.Run()
	if err != nil {
		return summary, nil, err
	}
	summary.WindowsRefreshed = refreshed

	view, err := c.Views.Build(recipes)
	if err != nil {
		return summary, nil, err
	}
	summary.ItemCount = len(view)
	summary.FinishedAt = time.Now().Unix()

	c.Logger.Info("cycle complete: %d items, %d windows refreshed", len(view), len(refreshed))

	return summary, view, nil
}

// -----------------------------------------------------------------------------

// collectResolution captures the current snapshot for one resolution, fills
// any gaps the store reports, advances the latest marker and prunes past the
// retention horizon. The marker moves before pruning so a crash between the
// two never loses track of ingested data.
func (c *Collector) collectResolution(res models.MResolution, summary *models.MCycleSummary) (int64, error) {
	snap, err := c.Source.FetchSnapshot(res.Endpoint, 0)
	if err != nil {
		return 0, err
	}

	if _, err := c.Store.SaveSnapshot(res.Interval, snap); err != nil {
		return 0, helpers.NewDatabaseError("saving snapshot failed", err)
	}

	latest := snap.Timestamp

	missing, err := c.Gaps.Plan(res, latest)
	if err != nil {
		return 0, err
	}
	if len(missing) > 0 {
		c.Logger.Info("backfilling %d missing %s snapshots", len(missing), res.Endpoint)
	}

	for _, ts := range missing {
		hist, err := c.Source.FetchSnapshot(res.Endpoint, ts)
		if err != nil {
			return 0, err
		}
		// The exchange reports its own bucket timestamp; trust it over the
		// one we asked for.
		if _, err := c.Store.SaveSnapshot(res.Interval, hist); err != nil {
			return 0, helpers.NewDatabaseError("saving backfill snapshot failed", err)
		}
	}

	if err := c.Store.SetLatestTimestamp(res.Interval, latest); err != nil {
		return 0, helpers.NewDatabaseError("advancing latest marker failed", err)
	}

	pruned, err := c.Store.PruneBefore(res.Interval, latest-res.RetentionSeconds())
	if err != nil {
		return 0, helpers.NewDatabaseError("retention pruning failed", err)
	}
	if pruned > 0 {
		c.Logger.Debug("pruned %d rows below retention for interval %d", pruned, res.Interval)
	}

	summary.LatestTimestamps[res.Interval] = latest
	summary.Backfilled[res.Interval] = len(missing)
	summary.Pruned[res.Interval] = pruned

	return latest, nil
}

// -----------------------------------------------------------------------------

func (c *Collector) refreshLatestPrices() error {
	prices, err := c.Source.FetchLatest()
	if err != nil {
		return err
	}
	if err := c.Store.ReplaceLatestPrices(prices); err != nil {
		return helpers.NewDatabaseError("replacing latest prices failed", err)
	}
	c.Logger.Debug("refreshed %d latest prices", len(prices))
	return nil
}

// -----------------------------------------------------------------------------

// refreshMapping re-fetches the item mapping only once it has aged past the
// configured maximum. The mapping rarely changes; hammering the endpoint
// every cycle buys nothing.
func (c *Collector) refreshMapping(latestTimestamp int64) error {
	mappedAt, ok, err := c.Store.MappingTimestamp()
	if err != nil {
		return helpers.NewDatabaseError("reading mapping timestamp failed", err)
	}
	if ok && latestTimestamp <= mappedAt+c.Config.Collector.MappingMaxAgeSeconds {
		return nil
	}

	mapping, err := c.Source.FetchMapping()
	if err != nil {
		return err
	}
	if err := c.Store.ReplaceMapping(mapping); err != nil {
		return helpers.NewDatabaseError("replacing mapping failed", err)
	}
	if err := c.Store.SetMappingTimestamp(latestTimestamp); err != nil {
		return helpers.NewDatabaseError("updating mapping timestamp failed", err)
	}
	c.Logger.Info("refreshed item mapping (%d items)", len(mapping))
	return nil
}
