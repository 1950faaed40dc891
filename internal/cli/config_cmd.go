package cli

import (
	"timepick/internal/store"
	"timepick/internal/timepick"

	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and edit the global picker defaults",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	cmd.AddCommand(newConfigPathCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective config and the stored overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGlobalConfig(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"effective": g.Apply(timepick.DefaultConfig()),
					"stored":    g,
					"keys":      store.ConfigKeys(),
				},
			})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one global default (non-integer steps reset to the built-in default)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := g.Set(args[0], args[1]); err != nil {
				return writeErr(cmd, err)
			}
			if err := store.SaveConfig(g); err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("config updated", "key", args[0])
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"effective": g.Apply(timepick.DefaultConfig()),
					"stored":    g,
				},
			})
		},
	}
}

func newConfigPathCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the global config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": p}})
		},
	}
}
