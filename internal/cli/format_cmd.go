package cli

import (
	"timepick/internal/adapter"
	"timepick/internal/model"
	"timepick/internal/timepick"

	"github.com/spf13/cobra"
)

type displayFields struct {
	Hour     string `json:"hour"`
	Minute   string `json:"minute"`
	Second   string `json:"second,omitempty"`
	Meridian string `json:"meridian,omitempty"`
}

func (d displayFields) String() string {
	out := d.Hour + ":" + d.Minute
	if d.Second != "" {
		out += ":" + d.Second
	}
	if d.Meridian != "" {
		out += " " + d.Meridian
	}
	return out
}

func newFormatCmd(app *App) *cobra.Command {
	opts := &pickOptions{}
	cmd := &cobra.Command{
		Use:   "format",
		Short: "Show the display strings the picker would render for --value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd, app, opts)
			if err != nil {
				return writeErr(cmd, err)
			}
			ts, err := resolveValue(ctx(cmd), opts.value)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctl := timepick.New[*model.TimeStruct](cfg, adapter.StructAdapter{})
			ctl.WriteValue(ts)

			m := ctl.Model()
			d := displayFields{
				Hour:   ctl.FormatHour(m.Hour),
				Minute: ctl.FormatMinSec(m.Minute),
			}
			if cfg.Seconds {
				d.Second = ctl.FormatMinSec(m.Second)
			}
			if cfg.Meridian {
				d.Meridian = ctl.MeridianLabel()
			}
			if app.Format == "text" {
				return writeOut(cmd, app, d)
			}
			return writeOut(cmd, app, map[string]any{"data": d})
		},
	}
	opts.bind(cmd)
	return cmd
}
