package models

// MSnapshotEntry is the per-item payload of a timeseries snapshot. Pointers
// carry upstream nulls through to storage untouched.
type MSnapshotEntry struct {
	AvgHighPrice    *float64 `json:"avgHighPrice"`
	HighPriceVolume *float64 `json:"highPriceVolume"`
	AvgLowPrice     *float64 `json:"avgLowPrice"`
	LowPriceVolume  *float64 `json:"lowPriceVolume"`
}

// -----------------------------------------------------------------------------

// MPriceSnapshot is one fetched timeseries snapshot: the upstream's own
// timestamp plus the per-item data, which may be empty.
type MPriceSnapshot struct {
	Timestamp int64
	Data      map[int]MSnapshotEntry
}

// -----------------------------------------------------------------------------

// MLatestPrice is one row of the instantaneous price table, replaced
// wholesale every cycle.
type MLatestPrice struct {
	ItemID   int      `json:"item_id"`
	High     *float64 `json:"high"`
	HighTime *int64   `json:"high_time"`
	Low      *float64 `json:"low"`
	LowTime  *int64   `json:"low_time"`
}

// -----------------------------------------------------------------------------

// MItemMapping is the static metadata for one tradeable item.
type MItemMapping struct {
	ItemID   int    `json:"item_id"`
	Members  int    `json:"members"`
	LowAlch  int    `json:"low_alch"`
	BuyLimit int    `json:"buy_limit"`
	Value    int    `json:"value"`
	HighAlch int    `json:"high_alch"`
	Icon     string `json:"icon"`
	Name     string `json:"name"`
}
