package config

import "fmt"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled"`
	Level   string `yaml:"level"`  // debug, info, warn, error
	Format  string `yaml:"format"` // json, console
	File    string `yaml:"file"`   // stderr, stdout, or a path
}

// Validate checks level and format.
func (c *LoggingConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %s (valid: debug, info, warn, error)", c.Level)
	}
	switch c.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid logging.format: %s (valid: json, console)", c.Format)
	}
	return nil
}

// IsFile reports whether output goes to a regular file rather than a std stream.
func (c *LoggingConfig) IsFile() bool {
	return c.File != "" && c.File != "stderr" && c.File != "stdout"
}
