package cli

import (
	"errors"

	"timepick/internal/store"

	"github.com/spf13/cobra"
)

func newSavedCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage named times (usable as --value @name)",
	}
	cmd.AddCommand(newSavedListCmd(app))
	cmd.AddCommand(newSavedShowCmd(app))
	cmd.AddCommand(newSavedSaveCmd(app))
	cmd.AddCommand(newSavedDeleteCmd(app))
	return cmd
}

func newSavedListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved times",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := store.Store{}.ListTimes(ctx(cmd))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": xs})
		},
	}
}

func newSavedShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one saved time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Store{}.LoadTime(ctx(cmd), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return writeErr(cmd, errNotFound("saved time", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}
}

func newSavedSaveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <HH:MM[:SS]>",
		Short: "Save (or replace) a named time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := resolveValue(ctx(cmd), args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if ts == nil {
				return writeErr(cmd, errInvalidValue(args[1]))
			}
			s := store.Store{}
			if err := s.SaveTime(ctx(cmd), args[0], ts); err != nil {
				return writeErr(cmd, err)
			}
			st, err := s.LoadTime(ctx(cmd), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			app.logger().Info("saved time", "name", st.Name)
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}
}

func newSavedDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a saved time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := store.Store{}.DeleteTime(ctx(cmd), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return writeErr(cmd, errNotFound("saved time", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
}
