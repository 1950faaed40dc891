package cli

import (
	"strconv"
	"strings"
	"time"

	"timepick/internal/adapter"
	"timepick/internal/model"
	"timepick/internal/timepick"

	"github.com/spf13/cobra"
)

func newApplyCmd(app *App) *cobra.Command {
	opts := &pickOptions{}
	cmd := &cobra.Command{
		Use:   "apply [op...]",
		Short: "Drive the picker without a terminal and print every emission",
		Long: strings.TrimSpace(`
Binds --value, then runs each op in order, the way the widget would on key
presses. Ops:

  hour+N, hour-N, hour=TEXT     step N times or type the hour (same for minute, second)
  meridian                      toggle AM/PM (meridian mode only)
  blur                          leave the picker (marks it touched)
  seconds=on, seconds=off       show or hide the second field
  disable, enable               toggle the disabled state

Edits are ignored while the picker is disabled, as in the widget.
`),
		Example: strings.TrimSpace(`
  timepick apply --value 23:59 hour+1
  timepick apply --value 09:00 --meridian meridian blur
  timepick apply --model string --value 10:00 minute=75 seconds=on
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd, app, opts)
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, err := resolveValue(ctx(cmd), opts.value)
			if err != nil {
				return writeErr(cmd, err)
			}
			switch opts.model {
			case modelString:
				return applyWith[string](cmd, app, timepick.New[string](cfg, adapter.StringAdapter{}), adapter.StringAdapter{}, ts, args)
			case modelClock:
				return applyWith[time.Time](cmd, app, timepick.New[time.Time](cfg, adapter.ClockAdapter{}), adapter.ClockAdapter{}, ts, args)
			default:
				return applyWith[*model.TimeStruct](cmd, app, timepick.New[*model.TimeStruct](cfg, adapter.StructAdapter{}), adapter.StructAdapter{}, ts, args)
			}
		},
	}
	opts.bind(cmd)
	return cmd
}

func applyWith[T any](cmd *cobra.Command, app *App, ctl *timepick.Controller[T], a adapter.Adapter[T], ts *model.TimeStruct, ops []string) error {
	log := app.logger()
	emissions := []any{}
	ctl.RegisterOnChange(func(v T) {
		log.Debug("change", "value", outValue(v))
		emissions = append(emissions, outValue(v))
	})
	ctl.RegisterOnTouched(func() { log.Debug("touched") })
	ctl.WriteValue(a.ToModel(ts))

	for _, op := range ops {
		if err := applyOp(ctl, op); err != nil {
			return writeErr(cmd, err)
		}
	}

	var current any
	if m := ctl.Model(); m != nil {
		current = m.Struct()
	}
	return writeOut(cmd, app, map[string]any{
		"data": map[string]any{
			"emissions": emissions,
			"value":     outValue(ctl.Value()),
			"time":      current,
			"valid":     ctl.Valid(),
			"touched":   ctl.Touched(),
			"disabled":  ctl.Disabled(),
		},
	})
}

// applyOp runs one scripted op against ctl.
func applyOp[T any](ctl *timepick.Controller[T], op string) error {
	op = strings.TrimSpace(op)
	switch op {
	case "blur":
		ctl.HandleBlur()
		return nil
	case "disable":
		ctl.SetDisabledState(true)
		return nil
	case "enable":
		ctl.SetDisabledState(false)
		return nil
	case "seconds=on":
		ctl.SetSeconds(true)
		return nil
	case "seconds=off":
		ctl.SetSeconds(false)
		return nil
	case "meridian":
		if !ctl.Disabled() {
			ctl.ToggleMeridian()
		}
		return nil
	}

	i := strings.IndexAny(op, "+-=")
	if i <= 0 {
		return errInvalidOp(op, "unknown op")
	}
	name, sign, arg := op[:i], op[i], op[i+1:]

	var (
		update func(string)
		change func(int)
		step   int
	)
	cfg := ctl.Config()
	switch name {
	case "hour":
		update, change, step = ctl.UpdateHour, ctl.ChangeHour, cfg.HourStep
	case "minute":
		update, change, step = ctl.UpdateMinute, ctl.ChangeMinute, cfg.MinuteStep
	case "second":
		update, change, step = ctl.UpdateSecond, ctl.ChangeSecond, cfg.SecondStep
	default:
		return errInvalidOp(op, "field must be hour, minute or second")
	}

	if sign == '=' {
		if !ctl.Disabled() {
			update(arg)
		}
		return nil
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return errInvalidOp(op, "step must be a non-negative integer")
	}
	if sign == '-' {
		n = -n
	}
	if !ctl.Disabled() {
		change(n * step)
	}
	return nil
}
