package main

import (
	"os"
	"strings"

	"timepick/internal/adapter"
	"timepick/internal/cli"
)

func isTimeArg(s string) bool {
	s = strings.TrimSpace(s)
	if name, ok := strings.CutPrefix(s, "@"); ok {
		return strings.TrimSpace(name) != ""
	}
	return adapter.StringAdapter{}.FromModel(s) != nil
}

func rewriteDirectPickArgs(argv []string) []string {
	// Convenience: `timepick 09:30` works like `timepick pick --value 09:30`
	// (same for `timepick @saved-name`).
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Flags may come first (e.g. `timepick --meridian 09:30`), so we look for the first
	// positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without skipping a value so the time is never consumed.
	valueFlags := map[string]bool{
		"--format":      true,
		"--config":      true,
		"--log-level":   true,
		"--value":       true,
		"--model":       true,
		"--hour-step":   true,
		"--minute-step": true,
		"--second-step": true,
		"--size":        true,
	}

	insert := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "pick", "--value")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			// Stop flag parsing; next token (if any) is the first positional.
			if i+1 < len(argv) && isTimeArg(argv[i+1]) {
				out := make([]string, 0, len(argv)+1)
				out = append(out, argv[:i]...)
				out = append(out, "pick", "--value")
				out = append(out, argv[i+1:]...)
				return out
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") {
				continue
			}
			if valueFlags[a] {
				i++ // skip value if present
			}
			continue
		}

		// First positional token.
		if isTimeArg(a) {
			return insert(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectPickArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
