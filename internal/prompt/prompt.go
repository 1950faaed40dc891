// Package prompt drives a timepick.Controller through line-oriented
// terminal questions, one per visible field.
package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"timepick/internal/numeric"
	"timepick/internal/timepick"
)

var meridianOptions = []string{"AM", "PM"}

type promptField struct {
	name   string
	step   int
	show   func() string
	update func(string)
	change func(int)
}

// Run asks for each visible field and applies the answers to ctl. Unchanged
// answers leave the field alone. It returns the controller's value once all
// fields were asked.
func Run[T any](ctx context.Context, ctl *timepick.Controller[T], d Driver) (T, error) {
	if ctl.Model() == nil {
		var zero T
		ctl.WriteValue(zero)
	}
	if ctl.Disabled() {
		return ctl.Value(), nil
	}

	cfg := ctl.Config()
	fields := []promptField{
		{"Hour", cfg.HourStep, func() string { return ctl.FormatHour(ctl.Model().Hour) }, ctl.UpdateHour, ctl.ChangeHour},
		{"Minute", cfg.MinuteStep, func() string { return ctl.FormatMinSec(ctl.Model().Minute) }, ctl.UpdateMinute, ctl.ChangeMinute},
	}
	if cfg.Seconds {
		fields = append(fields, promptField{"Second", cfg.SecondStep, func() string { return ctl.FormatMinSec(ctl.Model().Second) }, ctl.UpdateSecond, ctl.ChangeSecond})
	}

	for _, f := range fields {
		current := f.show()
		switch {
		case !cfg.ReadonlyInputs:
			// An absent field has no default, so enter asks again until
			// digits are typed.
			def := current
			if def == numeric.NaN.String() {
				def = ""
			}
			ans, err := d.Input(ctx, InputConfig{
				Message:   f.name,
				Default:   def,
				Help:      "digits only; enter keeps the current value",
				Validator: digitsOnly,
			})
			if err != nil {
				var zero T
				return zero, err
			}
			if ans != def {
				f.update(ans)
			}
		case cfg.Spinners:
			ans, err := d.Input(ctx, InputConfig{
				Message:   fmt.Sprintf("%s is %s; steps of %d (e.g. 2, -1)", f.name, current, f.step),
				Default:   "0",
				Validator: signedInt,
			})
			if err != nil {
				var zero T
				return zero, err
			}
			if n, _ := strconv.Atoi(strings.TrimSpace(ans)); n != 0 {
				f.change(n * f.step)
			}
		}
	}

	if cfg.Meridian {
		def := 0
		if ctl.MeridianLabel() == "PM" {
			def = 1
		}
		idx, err := d.Select(ctx, SelectConfig{
			Message:      "AM/PM",
			Options:      meridianOptions,
			DefaultIndex: def,
		})
		if err != nil {
			var zero T
			return zero, err
		}
		if idx >= 0 && idx != def {
			ctl.ToggleMeridian()
		}
	}

	ctl.HandleBlur()
	return ctl.Value(), nil
}

func digitsOnly(s string) error {
	if s == "" {
		return fmt.Errorf("enter a number")
	}
	if numeric.FilterDigits(s) != s {
		return fmt.Errorf("only digits are allowed")
	}
	return nil
}

func signedInt(s string) error {
	if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("enter a whole number of steps")
	}
	return nil
}
