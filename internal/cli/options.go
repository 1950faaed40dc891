package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"timepick/internal/adapter"
	"timepick/internal/model"
	"timepick/internal/numeric"
	"timepick/internal/store"
	"timepick/internal/timepick"

	"github.com/spf13/cobra"
)

const (
	modelStruct = "struct"
	modelString = "string"
	modelClock  = "clock"
)

// pickOptions are the flags shared by the commands that bind a controller.
type pickOptions struct {
	value string
	model string

	meridian       bool
	spinners       bool
	seconds        bool
	hourStep       string
	minuteStep     string
	secondStep     string
	disabled       bool
	readonlyInputs bool
	size           string

	// pick and prompt only.
	save       string
	title      string
	usePrompts bool
}

func (o *pickOptions) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.value, "value", "", "Initial time (HH:MM, HH:MM:SS or @saved-name)")
	f.StringVar(&o.model, "model", modelStruct, "Value type the picker is bound to (struct|string|clock)")
	f.BoolVar(&o.meridian, "meridian", false, "12h clock with AM/PM")
	f.BoolVar(&o.spinners, "spinners", true, "Show step arrows around the fields")
	f.BoolVar(&o.seconds, "seconds", false, "Show and require the second field")
	f.StringVar(&o.hourStep, "hour-step", "", "Hour step (non-integers fall back to the default)")
	f.StringVar(&o.minuteStep, "minute-step", "", "Minute step (non-integers fall back to the default)")
	f.StringVar(&o.secondStep, "second-step", "", "Second step (non-integers fall back to the default)")
	f.BoolVar(&o.disabled, "disabled", false, "Render the picker disabled")
	f.BoolVar(&o.readonlyInputs, "readonly-inputs", false, "Disallow typing; steps still work")
	f.StringVar(&o.size, "size", "", "Field size (small|medium|large)")
}

// loadGlobalConfig reads the global config and layers --config on top.
func loadGlobalConfig(app *App) (*store.GlobalConfig, error) {
	g, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(app.ConfigPath) == "" {
		return g, nil
	}
	extra, err := store.LoadConfigFile(app.ConfigPath)
	if err != nil {
		return nil, err
	}
	merged := &store.GlobalConfig{
		Picker: g.Picker,
		TUI:    g.TUI,
	}
	if extra.Picker != nil {
		merged.Picker = mergePicker(g.Picker, extra.Picker)
	}
	if extra.TUI != nil && extra.TUI.Theme != "" {
		merged.TUI = extra.TUI
	}
	return merged, nil
}

func mergePicker(base, over *store.PickerConfig) *store.PickerConfig {
	out := store.PickerConfig{}
	if base != nil {
		out = *base
	}
	if over.Meridian != nil {
		out.Meridian = over.Meridian
	}
	if over.Spinners != nil {
		out.Spinners = over.Spinners
	}
	if over.Seconds != nil {
		out.Seconds = over.Seconds
	}
	if over.HourStep != nil {
		out.HourStep = over.HourStep
	}
	if over.MinuteStep != nil {
		out.MinuteStep = over.MinuteStep
	}
	if over.SecondStep != nil {
		out.SecondStep = over.SecondStep
	}
	if over.Disabled != nil {
		out.Disabled = over.Disabled
	}
	if over.ReadonlyInputs != nil {
		out.ReadonlyInputs = over.ReadonlyInputs
	}
	if over.Size != nil {
		out.Size = over.Size
	}
	return &out
}

// resolveConfig layers defaults, config files and the flags the user set.
func resolveConfig(cmd *cobra.Command, app *App, o *pickOptions) (timepick.Config, *store.GlobalConfig, error) {
	g, err := loadGlobalConfig(app)
	if err != nil {
		return timepick.Config{}, nil, err
	}
	cfg := g.Apply(timepick.DefaultConfig())

	changed := cmd.Flags().Changed
	if changed("meridian") {
		cfg.Meridian = o.meridian
	}
	if changed("spinners") {
		cfg.Spinners = o.spinners
	}
	if changed("seconds") {
		cfg.Seconds = o.seconds
	}
	if changed("hour-step") {
		if cfg.HourStep, err = flagStep("hour-step", o.hourStep, cfg.HourStep); err != nil {
			return timepick.Config{}, nil, err
		}
	}
	if changed("minute-step") {
		if cfg.MinuteStep, err = flagStep("minute-step", o.minuteStep, cfg.MinuteStep); err != nil {
			return timepick.Config{}, nil, err
		}
	}
	if changed("second-step") {
		if cfg.SecondStep, err = flagStep("second-step", o.secondStep, cfg.SecondStep); err != nil {
			return timepick.Config{}, nil, err
		}
	}
	if changed("disabled") {
		cfg.Disabled = o.disabled
	}
	if changed("readonly-inputs") {
		cfg.ReadonlyInputs = o.readonlyInputs
	}
	if changed("size") {
		s, err := timepick.ParseSize(o.size)
		if err != nil {
			return timepick.Config{}, nil, err
		}
		cfg.Size = s
	}

	switch o.model {
	case modelStruct, modelString, modelClock:
	default:
		return timepick.Config{}, nil, fmt.Errorf("invalid --model %q (expected struct|string|clock)", o.model)
	}
	app.logger().Debug("config resolved", "meridian", cfg.Meridian, "seconds", cfg.Seconds, "size", cfg.Size)
	return cfg, g, nil
}

// flagStep reads a step flag. Non-integers fall back to def.
func flagStep(name, v string, def int) (int, error) {
	n := timepick.StepOrDefault(numeric.ToInteger(v), def)
	if n <= 0 {
		return 0, fmt.Errorf("invalid --%s %d: step must be positive", name, n)
	}
	return n, nil
}

// resolveValue turns a --value argument into a TimeStruct. Empty means no
// time; "@name" loads a saved time.
func resolveValue(ctx context.Context, v string) (*model.TimeStruct, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if name, ok := strings.CutPrefix(v, "@"); ok {
		st, err := store.Store{}.LoadTime(ctx, name)
		if errors.Is(err, store.ErrNotFound) {
			return nil, errNotFound("saved time", name)
		}
		if err != nil {
			return nil, err
		}
		return st.Time, nil
	}
	ts := adapter.StringAdapter{}.FromModel(v)
	if ts == nil {
		return nil, errInvalidValue(v)
	}
	return ts, nil
}

// outValue makes an emitted host value printable. Null values print as null.
func outValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		if x.IsZero() {
			return nil
		}
		return x.Format(time.RFC3339)
	case string:
		if x == "" {
			return nil
		}
	case *model.TimeStruct:
		if x == nil {
			return nil
		}
	}
	return v
}

func themeOf(g *store.GlobalConfig) string {
	if g == nil || g.TUI == nil {
		return ""
	}
	return g.TUI.Theme
}
