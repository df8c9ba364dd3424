package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MikeBiancalana/rangepick/internal/daterange"
	"gopkg.in/yaml.v3"
)

// PickerConfig holds the user-tunable picker options stored in config.yaml
type PickerConfig struct {
	Placeholder   string `yaml:"placeholder,omitempty"`
	Label         string `yaml:"label,omitempty"`
	Description   string `yaml:"description,omitempty"`
	DisableFuture *bool  `yaml:"disable_future,omitempty"`
	WeekStart     string `yaml:"week_start,omitempty"`
	YearSpan      int    `yaml:"year_span,omitempty"`
}

// Default returns the built-in picker options
func Default() PickerConfig {
	return PickerConfig{
		Placeholder: "Select date range",
		Label:       "Select date range",
		Description: "Tip: You can type dates manually (MM/DD/YYYY format) or use arrow keys to navigate.",
		WeekStart:   "sunday",
		YearSpan:    daterange.DefaultYearSpan,
	}
}

// Load reads the config file at ConfigPath, falling back to defaults when it doesn't exist
func Load() (PickerConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return Default(), fmt.Errorf("failed to resolve config path: %w", err)
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file is not an error.
func LoadFile(path string) (PickerConfig, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if _, err := parseWeekday(cfg.WeekStart); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", path, err)
	}
	if cfg.YearSpan <= 0 {
		cfg.YearSpan = daterange.DefaultYearSpan
	}

	return cfg, nil
}

// Save writes cfg to path, creating parent directories
func Save(path string, cfg PickerConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Weekday returns the configured first day of the week
func (c PickerConfig) Weekday() time.Weekday {
	wd, err := parseWeekday(c.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return wd
}

// Policy returns the disable policy, falling back to def when the file doesn't say
func (c PickerConfig) Policy(def daterange.Policy) daterange.Policy {
	if c.DisableFuture == nil {
		return def
	}
	if *c.DisableFuture {
		return daterange.DisableFuture{}
	}
	return daterange.AllowAll{}
}

func parseWeekday(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sun", "sunday":
		return time.Sunday, nil
	case "mon", "monday":
		return time.Monday, nil
	default:
		return time.Sunday, fmt.Errorf("week_start must be sunday or monday, got %q", s)
	}
}
