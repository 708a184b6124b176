package config

import (
	"os"

	"locstamp/pkg/rewriter"
)

// Default values for configuration.
const (
	DefaultPattern           = rewriter.DefaultPattern
	DefaultComma             = ","
	DefaultNotFoundText      = rewriter.DefaultNotFoundText
	DefaultNotApplicableText = rewriter.DefaultNotApplicableText
)

// Environment variable names.
const (
	EnvPattern = "LOCSTAMP_PATTERN"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CSV: CSVConfig{
			Comma: DefaultComma,
		},
		Render: RenderConfig{
			NotFoundText:      DefaultNotFoundText,
			NotApplicableText: DefaultNotApplicableText,
		},
		Pattern: DefaultPattern,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	// Override the line pattern from environment if set
	if pattern := os.Getenv(EnvPattern); pattern != "" {
		c.Pattern = pattern
	}
}
