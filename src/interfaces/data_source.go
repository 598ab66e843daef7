package interfaces

import "lotus-ge/src/models"

// -----------------------------------------------------------------------------
// IPriceSource is the boundary to the upstream price API.
// -----------------------------------------------------------------------------

type IPriceSource interface {

	// -----------------------------------------------------------------------------

	// FetchSnapshot fetches one timeseries snapshot for a resolution
	// endpoint. A zero timestamp requests the newest snapshot; otherwise the
	// snapshot at that exact aligned timestamp is requested.
	FetchSnapshot(endpoint string, timestamp int64) (models.MPriceSnapshot, error)

	// -----------------------------------------------------------------------------

	// FetchLatest fetches the instantaneous price table.
	FetchLatest() ([]models.MLatestPrice, error)

	// -----------------------------------------------------------------------------

	// FetchMapping fetches the item metadata table.
	FetchMapping() ([]models.MItemMapping, error)
}
