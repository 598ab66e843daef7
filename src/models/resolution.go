package models

// MResolution is the immutable configuration of one upstream sampling
// frequency: its API endpoint suffix, the spacing of its timestamps in
// seconds, and how many days of points are retained.
type MResolution struct {
	Endpoint      string `yaml:"endpoint"`
	Interval      int64  `yaml:"interval"`
	RetentionDays int64  `yaml:"retention_days"`
}

// -----------------------------------------------------------------------------

// RetentionSeconds returns the retention window length in seconds.
func (r MResolution) RetentionSeconds() int64 {
	return r.RetentionDays * 86400
}

// -----------------------------------------------------------------------------

// DefaultResolutions returns the three fixed upstream resolutions.
func DefaultResolutions() []MResolution {
	return []MResolution{
		{Endpoint: "5m/", Interval: 300, RetentionDays: 2},
		{Endpoint: "1h/", Interval: 3600, RetentionDays: 30},
		{Endpoint: "24h/", Interval: 86400, RetentionDays: 365},
	}
}
