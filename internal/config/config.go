package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Dir is the per-workspace directory holding config, history and logs.
	Dir = ".growing"
	// FileName is the config file inside Dir.
	FileName = "config.yaml"
)

// Config holds all runner configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Harvest counter behaviour
	Harvest HarvestConfig `yaml:"harvest"`

	// Run history (SQLite)
	History HistoryConfig `yaml:"history"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`

	// Terminal presentation
	UI UIConfig `yaml:"ui"`
}

// HarvestConfig configures the day counter.
type HarvestConfig struct {
	ZeroDayPolicy     string `yaml:"zero_day_policy"` // immediate, forced
	NegativePolicy    string `yaml:"negative_policy"` // reject, complete
	Prompt            string `yaml:"prompt"`
	ProgressFormat    string `yaml:"progress_format"`
	CompletionMessage string `yaml:"completion_message"`
}

// HistoryConfig configures the run history store.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
	Limit        int    `yaml:"limit"` // rows shown by `grow history`
}

// UIConfig configures styling.
type UIConfig struct {
	Theme    string `yaml:"theme"`     // light, dark, auto
	DocStyle string `yaml:"doc_style"` // glamour style name, or auto
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "Growing Code",
		Version: "1.0.0",

		Harvest: HarvestConfig{
			ZeroDayPolicy:     "immediate",
			NegativePolicy:    "reject",
			Prompt:            "Days until harvest: ",
			ProgressFormat:    "Day %d",
			CompletionMessage: "Harvest time!",
		},

		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: filepath.Join(Dir, "history.db"),
			Limit:        20,
		},

		Logging: LoggingConfig{
			Enabled: true,
			Level:   "warn",
			Format:  "console",
			File:    "stderr",
		},

		UI: UIConfig{
			Theme:    "auto",
			DocStyle: "auto",
		},
	}
}

// DefaultPath returns the config path for a workspace.
func DefaultPath(workspace string) string {
	return filepath.Join(workspace, Dir, FileName)
}

// Load loads configuration from a YAML file.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GROW_ZERO_DAY_POLICY"); v != "" {
		c.Harvest.ZeroDayPolicy = v
	}
	if v := os.Getenv("GROW_NEGATIVE_POLICY"); v != "" {
		c.Harvest.NegativePolicy = v
	}

	if path := os.Getenv("GROW_HISTORY_DB"); path != "" {
		c.History.DatabasePath = path
	}
	if isTruthy(os.Getenv("GROW_HISTORY_DISABLED")) {
		c.History.Enabled = false
	}

	if level := os.Getenv("GROW_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if file := os.Getenv("GROW_LOG_FILE"); file != "" {
		c.Logging.File = file
	}

	if os.Getenv("GROW_DARK_MODE") == "1" {
		c.UI.Theme = "dark"
	}
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

var (
	ValidZeroDayPolicies  = []string{"immediate", "forced"}
	ValidNegativePolicies = []string{"reject", "complete"}
	ValidThemes           = []string{"light", "dark", "auto"}
)

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !contains(ValidZeroDayPolicies, c.Harvest.ZeroDayPolicy) {
		return fmt.Errorf("invalid harvest.zero_day_policy: %s (valid: %v)", c.Harvest.ZeroDayPolicy, ValidZeroDayPolicies)
	}
	if !contains(ValidNegativePolicies, c.Harvest.NegativePolicy) {
		return fmt.Errorf("invalid harvest.negative_policy: %s (valid: %v)", c.Harvest.NegativePolicy, ValidNegativePolicies)
	}
	if c.Harvest.ProgressFormat != "" {
		// fmt marks missing, extra and mismatched operands with "%!".
		if sample := fmt.Sprintf(c.Harvest.ProgressFormat, 1); strings.Contains(sample, "%!") {
			return fmt.Errorf("harvest.progress_format must take exactly one integer verb: %q renders as %q", c.Harvest.ProgressFormat, sample)
		}
	}
	if c.History.Enabled && c.History.DatabasePath == "" {
		return fmt.Errorf("history.database_path is required when history is enabled")
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("history.limit cannot be negative: %d", c.History.Limit)
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	return nil
}

// ResolvePath makes p absolute against workspace unless it already is.
func ResolvePath(workspace, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(workspace, p)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
