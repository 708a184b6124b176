// Package config handles loading and validation of run configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve loads the configuration at path, or the validated defaults when
// path is empty.
func Resolve(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks a configuration for errors and compiles the line pattern.
func Validate(cfg *Config) error {
	if cfg.Pattern == "" {
		return errors.New("pattern: is required")
	}

	re, err := regexp.Compile(cfg.Pattern)
	if err != nil {
		return fmt.Errorf("pattern: invalid: %w", err)
	}

	if n := re.NumSubexp(); n != 3 {
		return fmt.Errorf("pattern: must have exactly 3 capture groups (label, directory, rest), got %d", n)
	}

	cfg.compiledPattern = re

	if utf8.RuneCountInString(cfg.CSV.Comma) != 1 {
		return fmt.Errorf("csv.comma: must be a single character, got %q", cfg.CSV.Comma)
	}

	if cfg.Render.NotFoundText == "" {
		return errors.New("render.not_found_text: is required")
	}

	if cfg.Render.NotApplicableText == "" {
		return errors.New("render.not_applicable_text: is required")
	}

	return nil
}
