// Package config loads CLI defaults from the environment.
package config

import (
	"github.com/spf13/viper"
)

// Config holds the tunable defaults of the jcamp tool. Every field
// can be overridden per-invocation by a flag.
type Config struct {
	// LineWidth is the wrap column for emitted data lines.
	LineWidth int

	// SkipNonquant makes cross-section conversion refuse to guess
	// missing quantitative metadata.
	SkipNonquant bool

	// LogLevel is the zerolog level name (trace..panic).
	LogLevel string

	// CatalogPath is the SQLite catalog location.
	CatalogPath string
}

// Load reads configuration from JCAMP_* environment variables,
// falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("JCAMP_LINE_WIDTH", 75)
	v.SetDefault("JCAMP_SKIP_NONQUANT", false)
	v.SetDefault("JCAMP_LOG_LEVEL", "info")
	v.SetDefault("JCAMP_CATALOG", "jcamp.db")
	v.AutomaticEnv()

	return &Config{
		LineWidth:    v.GetInt("JCAMP_LINE_WIDTH"),
		SkipNonquant: v.GetBool("JCAMP_SKIP_NONQUANT"),
		LogLevel:     v.GetString("JCAMP_LOG_LEVEL"),
		CatalogPath:  v.GetString("JCAMP_CATALOG"),
	}, nil
}
