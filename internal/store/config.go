package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"timepick/internal/numeric"
	"timepick/internal/timepick"

	"gopkg.in/yaml.v3"
)

type GlobalConfig struct {
	// Picker overrides timepick.DefaultConfig. Unset fields keep the default.
	Picker *PickerConfig `json:"picker,omitempty" yaml:"picker,omitempty"`

	// TUI holds optional preferences for the interactive picker.
	TUI *TUIConfig `json:"tui,omitempty" yaml:"tui,omitempty"`
}

type PickerConfig struct {
	Meridian       *bool   `json:"meridian,omitempty" yaml:"meridian,omitempty"`
	Spinners       *bool   `json:"spinners,omitempty" yaml:"spinners,omitempty"`
	Seconds        *bool   `json:"seconds,omitempty" yaml:"seconds,omitempty"`
	HourStep       *int    `json:"hourStep,omitempty" yaml:"hourStep,omitempty"`
	MinuteStep     *int    `json:"minuteStep,omitempty" yaml:"minuteStep,omitempty"`
	SecondStep     *int    `json:"secondStep,omitempty" yaml:"secondStep,omitempty"`
	Disabled       *bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	ReadonlyInputs *bool   `json:"readonlyInputs,omitempty" yaml:"readonlyInputs,omitempty"`
	Size           *string `json:"size,omitempty" yaml:"size,omitempty"`
}

type TUIConfig struct {
	// Theme forces the palette: "light", "dark" or "auto".
	Theme string `json:"theme,omitempty" yaml:"theme,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.timepick).
	if v := strings.TrimSpace(os.Getenv("TIMEPICK_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".timepick"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadConfig reads the global config. A missing file is an empty config.
func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfigFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &GlobalConfig{}, nil
	}
	return cfg, err
}

// LoadConfigFile reads an explicit config file. Files ending in .yaml or .yml
// are YAML, everything else is JSON.
func LoadConfigFile(path string) (*GlobalConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg GlobalConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep the previous config next to the new one; failures here are ignored.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

// Apply layers the configured overrides on top of base.
func (c *GlobalConfig) Apply(base timepick.Config) timepick.Config {
	if c == nil || c.Picker == nil {
		return base
	}
	p := c.Picker
	setBool(&base.Meridian, p.Meridian)
	setBool(&base.Spinners, p.Spinners)
	setBool(&base.Seconds, p.Seconds)
	setInt(&base.HourStep, p.HourStep)
	setInt(&base.MinuteStep, p.MinuteStep)
	setInt(&base.SecondStep, p.SecondStep)
	setBool(&base.Disabled, p.Disabled)
	setBool(&base.ReadonlyInputs, p.ReadonlyInputs)
	if p.Size != nil {
		if s, err := timepick.ParseSize(*p.Size); err == nil {
			base.Size = s
		}
	}
	return base
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// ConfigKeys lists the keys accepted by Set.
func ConfigKeys() []string {
	keys := []string{
		"meridian", "spinners", "seconds",
		"hourStep", "minuteStep", "secondStep",
		"disabled", "readonlyInputs", "size",
		"tui.theme",
	}
	sort.Strings(keys)
	return keys
}

// Set assigns one key from its string form. A step that is not an integer
// clears the override so the built-in default applies again.
func (c *GlobalConfig) Set(key, value string) error {
	value = strings.TrimSpace(value)
	if key == "tui.theme" {
		switch strings.ToLower(value) {
		case "light", "dark", "auto", "":
		default:
			return fmt.Errorf("invalid tui.theme %q (expected light|dark|auto)", value)
		}
		if c.TUI == nil {
			c.TUI = &TUIConfig{}
		}
		c.TUI.Theme = strings.ToLower(value)
		return nil
	}

	if c.Picker == nil {
		c.Picker = &PickerConfig{}
	}
	p := c.Picker
	switch key {
	case "meridian":
		return parseBoolInto(&p.Meridian, key, value)
	case "spinners":
		return parseBoolInto(&p.Spinners, key, value)
	case "seconds":
		return parseBoolInto(&p.Seconds, key, value)
	case "disabled":
		return parseBoolInto(&p.Disabled, key, value)
	case "readonlyInputs":
		return parseBoolInto(&p.ReadonlyInputs, key, value)
	case "hourStep":
		return parseStepInto(&p.HourStep, key, value)
	case "minuteStep":
		return parseStepInto(&p.MinuteStep, key, value)
	case "secondStep":
		return parseStepInto(&p.SecondStep, key, value)
	case "size":
		s, err := timepick.ParseSize(value)
		if err != nil {
			return err
		}
		str := string(s)
		p.Size = &str
	default:
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ConfigKeys(), ", "))
	}
	return nil
}

func parseBoolInto(dst **bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: expected true|false", key, value)
	}
	*dst = &b
	return nil
}

// parseStepInto clears the override when value is not an integer.
func parseStepInto(dst **int, key, value string) error {
	n, ok := numeric.ToInteger(value).Value()
	if !ok {
		*dst = nil
		return nil
	}
	if n <= 0 {
		return fmt.Errorf("invalid %s %d: step must be positive", key, n)
	}
	*dst = &n
	return nil
}
