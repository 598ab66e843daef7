package models

// MDataPoint represents one stored market observation for an item.
// Nil value fields mean the upstream reported no quote on that side,
// which is distinct from a quote of zero.
type MDataPoint struct {
	Interval        int64    `json:"interval"`
	Timestamp       int64    `json:"timestamp"`
	ItemID          int      `json:"item_id"`
	AvgHighPrice    *float64 `json:"avg_high_price"`
	HighPriceVolume *float64 `json:"high_price_volume"`
	AvgLowPrice     *float64 `json:"avg_low_price"`
	LowPriceVolume  *float64 `json:"low_price_volume"`
}
