package models

// MReportWindow names a historical range to aggregate, expressed in units of
// the source resolution's interval, counted back from that resolution's
// latest known timestamp.
type MReportWindow struct {
	Type         string `json:"type"`
	IntervalSize int64  `json:"interval_size"`
	StartRange   int64  `json:"start_range"`
	StopRange    int64  `json:"stop_range"`
}

// -----------------------------------------------------------------------------

// DefaultReportWindows returns the nine fixed aggregation windows.
func DefaultReportWindows() []MReportWindow {
	return []MReportWindow{
		{Type: "Weekly", IntervalSize: 86400, StartRange: 7, StopRange: 0},
		{Type: "Monthly", IntervalSize: 86400, StartRange: 30, StopRange: 0},
		{Type: "Yearly", IntervalSize: 86400, StartRange: 360, StopRange: 0},
		{Type: "GranularDaily", IntervalSize: 3600, StartRange: 24, StopRange: 0},
		{Type: "GranularBiweekly", IntervalSize: 3600, StartRange: 360, StopRange: 0},
		{Type: "GranularMonthly", IntervalSize: 3600, StartRange: 720, StopRange: 0},
		{Type: "VeryGranularFiveMinute", IntervalSize: 300, StartRange: 1, StopRange: 0},
		{Type: "VeryGranularHourly", IntervalSize: 300, StartRange: 12, StopRange: 0},
		{Type: "VeryGranularDaily", IntervalSize: 300, StartRange: 288, StopRange: 0},
	}
}
