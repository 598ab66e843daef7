package interfaces

import "lotus-ge/src/models"

// -----------------------------------------------------------------------------
// IMarketStore defines the contract for durable market data storage.
// -----------------------------------------------------------------------------

type IMarketStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// HasTimestamp reports whether any row (real or placeholder) exists for
	// the resolution interval at the given timestamp.
	HasTimestamp(interval, timestamp int64) (bool, error)

	// -----------------------------------------------------------------------------

	// SaveSnapshot persists one fetched snapshot idempotently: a second call
	// for the same (interval, timestamp) is a no-op. An empty snapshot writes
	// a placeholder row only. Returns whether anything was written. The whole
	// snapshot is committed in a single transaction.
	SaveSnapshot(interval int64, snap models.MPriceSnapshot) (bool, error)

	// -----------------------------------------------------------------------------

	// LatestTimestamp returns the latest-marker timestamp for a resolution.
	LatestTimestamp(interval int64) (int64, bool, error)

	// SetLatestTimestamp replaces the latest marker for a resolution wholesale.
	SetLatestTimestamp(interval, timestamp int64) error

	// -----------------------------------------------------------------------------

	// PruneBefore deletes all rows for the resolution strictly older than
	// cutoff and returns the number of rows removed.
	PruneBefore(interval, cutoff int64) (int64, error)

	// -----------------------------------------------------------------------------

	// DistinctTimestamps lists the distinct timestamps stored for a
	// resolution within [first, last], ascending.
	DistinctTimestamps(interval, first, last int64) ([]int64, error)

	// ItemPoints returns an item's rows for a resolution within [first, last].
	ItemPoints(itemID int, interval, first, last int64) ([]models.MDataPoint, error)

	// -----------------------------------------------------------------------------

	// ItemIDs lists the distinct item ids present in the mapping table.
	ItemIDs() ([]int, error)

	// -----------------------------------------------------------------------------

	// SaveAggregates upserts aggregate records keyed by (item, report type).
	SaveAggregates(records []models.MAggregateRecord) error

	// AggregateRecords returns all stored aggregates grouped by item id.
	AggregateRecords() (map[int]map[string]models.MAggregateRecord, error)

	// -----------------------------------------------------------------------------

	// AggregatedTimestamp returns the last-aggregated timestamp recorded for
	// a resolution.
	AggregatedTimestamp(interval int64) (int64, bool, error)

	// MirrorLatestIntoAggregated replaces the aggregation staleness table
	// with a wholesale copy of the latest markers.
	MirrorLatestIntoAggregated() error

	// -----------------------------------------------------------------------------

	// ReplaceLatestPrices swaps the instantaneous price table wholesale.
	ReplaceLatestPrices(prices []models.MLatestPrice) error

	// LatestPrices returns the instantaneous price table.
	LatestPrices() ([]models.MLatestPrice, error)

	// -----------------------------------------------------------------------------

	// ReplaceMapping swaps the item metadata table wholesale.
	ReplaceMapping(items []models.MItemMapping) error

	// Mapping returns item metadata keyed by item id.
	Mapping() (map[int]models.MItemMapping, error)

	// MappingTimestamp returns when the mapping table was last refreshed.
	MappingTimestamp() (int64, bool, error)

	// SetMappingTimestamp records a mapping refresh.
	SetMappingTimestamp(timestamp int64) error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
