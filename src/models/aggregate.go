package models

// MAggregateRecord holds the statistical summary for one item over one report
// window. Nil fields mean the statistic had no contributing values; a value
// of zero means it was computed (or, for the volume medians, forced by the
// sparse-data rule).
type MAggregateRecord struct {
	ItemID         int      `json:"item_id"`
	ReportType     string   `json:"report_type"`
	MeanLow        *float64 `json:"mean_low"`
	MeanHigh       *float64 `json:"mean_high"`
	MeanVolumeLow  *float64 `json:"mean_volume_low"`
	MeanVolumeHigh *float64 `json:"mean_volume_high"`
	MedianLow      *float64 `json:"median_low"`
	MedianHigh     *float64 `json:"median_high"`
	MedianVolLow   *float64 `json:"median_volume_low"`
	MedianVolHigh  *float64 `json:"median_volume_high"`
	MinLow         *float64 `json:"min_low"`
	MinHigh        *float64 `json:"min_high"`
	MaxLow         *float64 `json:"max_low"`
	MaxHigh        *float64 `json:"max_high"`
}
