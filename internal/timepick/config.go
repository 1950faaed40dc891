package timepick

import (
	"fmt"
	"strings"

	"timepick/internal/numeric"
)

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// ParseSize accepts small|medium|large (case-insensitive).
func ParseSize(s string) (Size, error) {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case SizeSmall:
		return SizeSmall, nil
	case SizeMedium:
		return SizeMedium, nil
	case SizeLarge:
		return SizeLarge, nil
	default:
		return "", fmt.Errorf("invalid size %q (expected small|medium|large)", s)
	}
}

// Config holds the defaults a Controller starts from.
type Config struct {
	// Meridian displays a 12h clock with an AM/PM toggle.
	Meridian bool `json:"meridian" yaml:"meridian"`
	// Spinners shows the increment/decrement controls around each field.
	Spinners bool `json:"spinners" yaml:"spinners"`
	// Seconds makes the second field visible and required.
	Seconds bool `json:"seconds" yaml:"seconds"`

	HourStep   int `json:"hourStep" yaml:"hourStep"`
	MinuteStep int `json:"minuteStep" yaml:"minuteStep"`
	SecondStep int `json:"secondStep" yaml:"secondStep"`

	Disabled       bool `json:"disabled" yaml:"disabled"`
	ReadonlyInputs bool `json:"readonlyInputs" yaml:"readonlyInputs"`
	Size           Size `json:"size" yaml:"size"`
}

func DefaultConfig() Config {
	return Config{
		Meridian:       false,
		Spinners:       true,
		Seconds:        false,
		HourStep:       1,
		MinuteStep:     1,
		SecondStep:     1,
		Disabled:       false,
		ReadonlyInputs: false,
		Size:           SizeMedium,
	}
}

// StepOrDefault returns v when it is a number and def otherwise.
func StepOrDefault(v numeric.Int, def int) int {
	return v.Or(def)
}
