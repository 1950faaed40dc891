package cli

import (
	"context"
	"errors"
	"strings"
	"time"

	"timepick/internal/adapter"
	"timepick/internal/model"
	"timepick/internal/prompt"
	"timepick/internal/store"
	"timepick/internal/timepick"
	"timepick/internal/tui"

	"github.com/spf13/cobra"
)

func newPickCmd(app *App) *cobra.Command {
	opts := &pickOptions{}
	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick a time with the interactive widget",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPick(cmd, app, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.save, "save", "", "Save the accepted time under this name")
	cmd.Flags().StringVar(&opts.title, "title", "", "Title shown above the fields")
	return cmd
}

func newPromptCmd(app *App) *cobra.Command {
	opts := &pickOptions{}
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Pick a time with line prompts (no full-screen widget)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.usePrompts = true
			return runPick(cmd, app, opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.save, "save", "", "Save the picked time under this name")
	return cmd
}

func runPick(cmd *cobra.Command, app *App, o *pickOptions) error {
	cfg, g, err := resolveConfig(cmd, app, o)
	if err != nil {
		return writeErr(cmd, err)
	}
	ts, err := resolveValue(ctx(cmd), o.value)
	if err != nil {
		return writeErr(cmd, err)
	}

	switch o.model {
	case modelString:
		return pickWith[string](cmd, app, o, g, timepick.New[string](cfg, adapter.StringAdapter{}), adapter.StringAdapter{}, ts)
	case modelClock:
		return pickWith[time.Time](cmd, app, o, g, timepick.New[time.Time](cfg, adapter.ClockAdapter{}), adapter.ClockAdapter{}, ts)
	default:
		return pickWith[*model.TimeStruct](cmd, app, o, g, timepick.New[*model.TimeStruct](cfg, adapter.StructAdapter{}), adapter.StructAdapter{}, ts)
	}
}

func pickWith[T any](cmd *cobra.Command, app *App, o *pickOptions, g *store.GlobalConfig, ctl *timepick.Controller[T], a adapter.Adapter[T], ts *model.TimeStruct) error {
	log := app.logger()
	ctl.WriteValue(a.ToModel(ts))

	var (
		v        T
		accepted bool
		err      error
	)
	if o.usePrompts {
		d := app.promptDriver
		if d == nil {
			d = prompt.NewSurveyDriver(nil, nil, nil)
		}
		ctl.RegisterOnChange(func(v T) { log.Debug("change", "value", outValue(v)) })
		ctl.RegisterOnTouched(func() { log.Debug("touched") })
		v, err = prompt.Run(ctx(cmd), ctl, d)
		accepted = err == nil
	} else {
		v, accepted, err = tui.Run(ctl, tui.Options[T]{
			OnChange:  func(v T) { log.Debug("change", "value", outValue(v)) },
			OnTouched: func() { log.Debug("touched") },
			Theme:     themeOf(g),
			Title:     o.title,
		}, tui.RunOptions{
			Input:  cmd.InOrStdin(),
			Output: cmd.ErrOrStderr(),
		})
	}
	if err != nil {
		return writeErr(cmd, err)
	}

	if accepted && strings.TrimSpace(o.save) != "" {
		if !ctl.Valid() {
			return writeErr(cmd, errors.New("not saved: the picked time is incomplete"))
		}
		if err := (store.Store{}).SaveTime(ctx(cmd), o.save, ctl.Model().Struct()); err != nil {
			return writeErr(cmd, err)
		}
		log.Info("saved time", "name", o.save)
	}

	return writeOut(cmd, app, map[string]any{
		"data": map[string]any{
			"value":    outValue(v),
			"accepted": accepted,
			"valid":    ctl.Valid(),
			"touched":  ctl.Touched(),
		},
	})
}

func ctx(cmd *cobra.Command) context.Context {
	if c := cmd.Context(); c != nil {
		return c
	}
	return context.Background()
}
