// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file and env.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// WindowWeeks sets the review window length in weeks.
	WindowWeeks int `koanf:"window_weeks"`

	// FixturePath points to a YAML fixture with submissions and budgets.
	// Required for the in-memory stores; empty means an empty store.
	FixturePath string `koanf:"fixture_path"`

	// OpsAddr configures the optional health/metrics listen address,
	// e.g. ":9090". Empty disables the ops server.
	OpsAddr string `koanf:"ops_addr"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:    "info",
		WindowWeeks: 1,
		FixturePath: "",
		OpsAddr:     "",
	}
}
