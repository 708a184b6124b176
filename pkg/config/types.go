package config

import (
	"regexp"
	"unicode/utf8"
)

// Config is the root run configuration.
type Config struct {
	// CSV controls how the lookup table file is parsed.
	CSV CSVConfig `yaml:"csv"`

	// Render controls the text substituted into rewritten lines.
	Render RenderConfig `yaml:"render"`

	// Pattern is the line-matching regular expression. It must have exactly
	// three capture groups: label, quoted directory, trailing content.
	Pattern string `yaml:"pattern"`

	compiledPattern *regexp.Regexp
}

// CSVConfig controls lookup table parsing.
type CSVConfig struct {
	// Comma is the field delimiter, a single character.
	Comma string `yaml:"comma"`
}

// RenderConfig controls sentinel texts in rewritten lines.
type RenderConfig struct {
	// NotFoundText is rendered when a directory has no table entry.
	NotFoundText string `yaml:"not_found_text"`

	// NotApplicableText is rendered for the not-applicable marker.
	NotApplicableText string `yaml:"not_applicable_text"`
}

// CompiledPattern returns the compiled line-matching pattern.
// Only valid after Validate has run.
func (c *Config) CompiledPattern() *regexp.Regexp {
	return c.compiledPattern
}

// CommaRune returns the field delimiter as a rune.
func (c *CSVConfig) CommaRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Comma)
	return r
}
