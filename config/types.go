package config

// ReaderConfig controls how lines are turned into records
type ReaderConfig struct {
	Separator   string   `yaml:"separator" validate:"omitempty,len=1,excludesall=\"\r\n"`
	Preprocess  []string `yaml:"preprocess" validate:"dive,oneof=trim-bom trim-space trim-cr nfc"`
	Charset     string   `yaml:"charset"`
	ReuseRecord bool     `yaml:"reuseRecord"`
}

// LoggingConfig contains logger configuration
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format     string `yaml:"format" validate:"omitempty,oneof=console json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"maxSizeMB" validate:"gte=0"`
	MaxBackups int    `yaml:"maxBackups" validate:"gte=0"`
}

// MetricsConfig contains the metrics endpoint configuration. An empty Addr
// disables the endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`
}

// ScanConfig bounds a feed scan
type ScanConfig struct {
	Concurrency int `yaml:"concurrency" validate:"gte=0"`
	MaxFailures int `yaml:"maxFailures" validate:"gte=0"`
}

// Feed represents a single GTFS feed: a zip archive, a directory of .txt
// files or a single file
type Feed struct {
	Name string `yaml:"name" validate:"required"`
	Path string `yaml:"path" validate:"required"`
	// Files restricts a scan to these member names; empty means all.
	Files  []string      `yaml:"files"`
	Reader *ReaderConfig `yaml:"reader"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Reader  ReaderConfig  `yaml:"reader"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Scan    ScanConfig    `yaml:"scan"`
	Feeds   []Feed        `yaml:"feeds" validate:"dive"`
}
