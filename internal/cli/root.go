package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"timepick/internal/format"
	"timepick/internal/prompt"

	"github.com/spf13/cobra"
)

type App struct {
	ConfigPath string
	PrettyJSON bool
	Format     string
	LogLevel   string

	log *slog.Logger
	// promptDriver replaces the survey prompts (tests).
	promptDriver prompt.Driver
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{})
}

func newRootCmd(app *App) *cobra.Command {
	opts := &pickOptions{}

	cmd := &cobra.Command{
		Use:          "timepick",
		Short:        "Time picker for the terminal (widget, prompts, scripting)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Pick a time interactively
  timepick

  # Start from a value (shortcut for: timepick pick --value 09:30)
  timepick 09:30

  # 12h clock with seconds, print the result as EDN
  timepick pick --meridian --seconds --format edn

  # Drive the picker from a script
  timepick apply --value 23:59 hour+1 minute-15 blur
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive widget.
			return runPick(cmd, app, opts)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(cmd.ErrOrStderr(), app.LogLevel)
		if err != nil {
			return err
		}
		app.log = l
		if !formatKnown(app.Format) {
			return fmt.Errorf("unknown format: %s (expected %s)", app.Format, strings.Join(format.Formats, "|"))
		}
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("TIMEPICK_CONFIG", ""), "Extra config file layered over the global config (.json, .yaml, .yml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TIMEPICK_FORMAT", "json"), "Output format (json|edn|text)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("TIMEPICK_LOG_LEVEL", "warn"), "Log level on stderr (debug|info|warn|error)")

	opts.bind(cmd)

	cmd.AddCommand(newPickCmd(app))
	cmd.AddCommand(newPromptCmd(app))
	cmd.AddCommand(newApplyCmd(app))
	cmd.AddCommand(newFormatCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newSavedCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q (expected debug|info|warn|error)", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// logger is safe to use before PersistentPreRunE ran (direct calls in tests).
func (a *App) logger() *slog.Logger {
	if a.log == nil {
		a.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return a.log
}

func formatKnown(f string) bool {
	for _, k := range format.Formats {
		if f == k {
			return true
		}
	}
	return false
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
