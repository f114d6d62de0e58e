package config

import "time"

// Config holds runtime settings for the LegeClair CLI.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, including the /api prefix.
//   - RequestTimeout: budget for a single API request.
//   - StoragePath: SQLite file holding the remembered session.
//   - LogLevel: minimum level emitted by the logger.
type Config struct {
	APIBaseURL     string
	StoragePath    string
	LogLevel       string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000/api"
	c.StoragePath = "legeclair.db"
	c.LogLevel = "info"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
