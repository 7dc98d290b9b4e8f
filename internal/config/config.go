// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Defaults come from New; Load layers a YAML file and env vars on top.
// - External errors are wrapped with this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatasetPath points at the reference dataset (.csv, .tsv or .xlsx).
	DatasetPath string `koanf:"dataset_path"`

	// DatasetSheet selects the XLSX sheet; empty means the first sheet.
	DatasetSheet string `koanf:"dataset_sheet"`

	// MaxBodyBytes caps request bodies on the compare endpoints.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		Addr:         ":9080",
		DatasetPath:  "CleanHPdata2.1.csv",
		MaxBodyBytes: 64 << 10,
	}
}
