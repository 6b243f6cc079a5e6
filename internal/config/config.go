package config

import "time"

// Config holds runtime settings for the jobport CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - UploadBaseURL: base URL that relative resume paths returned by the
//     upload endpoint are resolved against. Usually the same host as
//     APIBaseURL.
//   - SessionDBPath: path to the local sqlite file holding the persisted
//     session.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	APIBaseURL     string
	UploadBaseURL  string
	SessionDBPath  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.UploadBaseURL = "http://localhost:8000"
	c.SessionDBPath = "jobport.db"
	c.RequestTimeout = 15 * time.Second
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
