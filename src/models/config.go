package models

// MConfig Structure
type MConfig struct {
	Name      string           `yaml:"name"`
	Host      string           `yaml:"host"`
	Port      int              `yaml:"port"`
	LogLevel  string           `yaml:"log_level"`
	Storage   MStorageConfig   `yaml:"storage"`
	Network   MNetworkConfig   `yaml:"network"`
	Collector MCollectorConfig `yaml:"collector"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
}

type MNetworkConfig struct {
	RequestTimeout      int    `yaml:"timeout"`
	RequestDelaySeconds int    `yaml:"request_delay_seconds"`
	UserAgent           string `yaml:"user_agent"`
}

type MCollectorConfig struct {
	BaseURL               string `yaml:"base_url"`
	UpdateIntervalSeconds int    `yaml:"update_interval_seconds"`
	MappingMaxAgeSeconds  int64  `yaml:"mapping_max_age_seconds"`
	RecipeCSVPath         string `yaml:"recipe_csv_path"`
}
