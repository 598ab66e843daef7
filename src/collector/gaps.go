package collector

import (
	"lotus-ge/src/helpers"
	"lotus-ge/src/interfaces"
	"lotus-ge/src/models"
)

// -----------------------------------------------------------------------------

// GapPlanner computes the ordered set of timestamps a resolution should hold
// but doesn't, so the collector can backfill them.
type GapPlanner struct {
	Store interfaces.IMarketStore
}

// -----------------------------------------------------------------------------

func NewGapPlanner(store interfaces.IMarketStore) *GapPlanner {
	return &GapPlanner{Store: store}
}

// -----------------------------------------------------------------------------

// Plan returns the ascending missing timestamps in [start, latestTimestamp)
// for a resolution. The walk starts from the resolution's stored latest
// marker when one exists, else from the retention horizon, and is always
// clamped to the retention horizon: a stale marker never drags the plan
// further back than retention allows.
//
// The loop is bounded by t < latestTimestamp rather than an equality check,
// so a start that is not exactly reachable by stepping cannot run away.
func (g *GapPlanner) Plan(res models.MResolution, latestTimestamp int64) ([]int64, error) {
	if res.Interval <= 0 {
		return nil, helpers.NewValidationError("resolution interval must be positive", nil)
	}

	horizon := latestTimestamp - res.RetentionSeconds()

	start := horizon
	if marker, ok, err := g.Store.LatestTimestamp(res.Interval); err != nil {
		return nil, helpers.NewDatabaseError("reading latest marker failed", err)
	} else if ok {
		start = marker
	}

	if start < horizon {
		start = horizon
	}

	// Clock skew or misconfigured retention: an empty plan, never a walk in
	// the wrong direction.
	if start > latestTimestamp {
		return nil, nil
	}

	var missing []int64
	for t := start; t < latestTimestamp; t += res.Interval {
		exists, err := g.Store.HasTimestamp(res.Interval, t)
		if err != nil {
			return nil, helpers.NewDatabaseError("timestamp existence check failed", err)
		}
		if !exists {
			missing = append(missing, t)
		}
	}

	return missing, nil
}
