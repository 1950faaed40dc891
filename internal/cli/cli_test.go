package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timepick/internal/prompt"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	return runApp(t, &App{}, args)
}

func runApp(t *testing.T, app *App, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := newRootCmd(app)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TIMEPICK_CONFIG_DIR", dir)
	t.Setenv("TIMEPICK_FORMAT", "")
	t.Setenv("TIMEPICK_CONFIG", "")
	return dir
}

func mustData(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("timepick %v: %v\nstderr:\n%s", args, err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout: %v\nstdout:\n%s", err, stdout)
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object; got %#v", env)
	}
	return data
}

func TestApply_StepWrapsWithoutCarry(t *testing.T) {
	isolate(t)

	data := mustData(t, "apply", "--value", "23:59", "hour+1")
	em := data["emissions"].([]any)
	if len(em) != 1 {
		t.Fatalf("emissions = %#v", em)
	}
	got := em[0].(map[string]any)
	if got["hour"] != float64(0) || got["minute"] != float64(59) || got["second"] != float64(0) {
		t.Fatalf("emission = %#v, want 00:59:00", got)
	}
	if data["touched"] != true {
		t.Fatalf("expected touched")
	}
}

func TestApply_StringModelMeridian(t *testing.T) {
	isolate(t)

	data := mustData(t, "apply", "--model", "string", "--meridian", "--value", "09:00", "meridian", "hour=3", "blur")
	em := data["emissions"].([]any)
	want := []any{"21:00:00", "15:00:00"}
	if len(em) != len(want) || em[0] != want[0] || em[1] != want[1] {
		t.Fatalf("emissions = %#v, want %#v", em, want)
	}
}

func TestApply_ClearedFieldEmitsNull(t *testing.T) {
	isolate(t)

	data := mustData(t, "apply", "--model", "string", "--value", "10:30", "minute=")
	em := data["emissions"].([]any)
	if len(em) != 1 || em[0] != nil {
		t.Fatalf("emissions = %#v, want [null]", em)
	}
	if data["valid"] != false {
		t.Fatalf("expected invalid time")
	}
	tm := data["time"].(map[string]any)
	if tm["minute"] != nil {
		t.Fatalf("minute = %#v, want null", tm["minute"])
	}
}

func TestApply_HidingSecondsZeroesUntouched(t *testing.T) {
	isolate(t)

	data := mustData(t, "apply", "--model", "string", "--seconds", "--value", "10:00", "seconds=off")
	em := data["emissions"].([]any)
	if len(em) != 1 || em[0] != "10:00:00" {
		t.Fatalf("emissions = %#v", em)
	}
	if data["touched"] != false {
		t.Fatalf("hiding seconds must not mark touched")
	}
}

func TestApply_DisabledIgnoresEdits(t *testing.T) {
	isolate(t)

	data := mustData(t, "apply", "--disabled", "--value", "10:00", "hour+1", "enable", "minute+5")
	em := data["emissions"].([]any)
	if len(em) != 1 {
		t.Fatalf("emissions = %#v, want only the post-enable edit", em)
	}
	if data["disabled"] != false {
		t.Fatalf("expected enabled at the end")
	}
}

func TestApply_Errors(t *testing.T) {
	isolate(t)

	cases := []struct {
		name string
		args []string
		want string
	}{
		{name: "unknown op", args: []string{"apply", "--value", "10:00", "jump"}, want: "invalid op"},
		{name: "bad field", args: []string{"apply", "--value", "10:00", "day+1"}, want: "field must be"},
		{name: "bad step", args: []string{"apply", "--value", "10:00", "hour+x"}, want: "step must be"},
		{name: "bad value", args: []string{"apply", "--value", "10h"}, want: "invalid time"},
		{name: "bad model", args: []string{"apply", "--model", "date", "--value", "10:00"}, want: "invalid --model"},
		{name: "bad size", args: []string{"apply", "--size", "huge"}, want: "invalid size"},
		{name: "missing saved", args: []string{"apply", "--value", "@nope"}, want: "saved time not found"},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := runCLI(t, tt.args)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
			if len(stderr) == 0 {
				t.Fatalf("expected the error on stderr")
			}
		})
	}
}

func TestApply_StepFlags(t *testing.T) {
	isolate(t)

	data := mustData(t, "apply", "--model", "string", "--value", "10:00", "--minute-step", "15", "minute+2", "minute-1")
	em := data["emissions"].([]any)
	if len(em) != 2 || em[0] != "10:30:00" || em[1] != "10:15:00" {
		t.Fatalf("emissions = %#v", em)
	}

	// A step that is not an integer falls back to the default.
	data = mustData(t, "apply", "--model", "string", "--value", "10:00", "--minute-step", "abc", "minute+1")
	if em := data["emissions"].([]any); em[0] != "10:01:00" {
		t.Fatalf("emissions = %#v", em)
	}
}

func TestFormat_Meridian(t *testing.T) {
	isolate(t)

	data := mustData(t, "format", "--value", "13:05", "--meridian")
	if data["hour"] != "01" || data["minute"] != "05" || data["meridian"] != "PM" {
		t.Fatalf("format = %#v", data)
	}
	if _, ok := data["second"]; ok {
		t.Fatalf("second must be omitted when seconds are hidden")
	}

	stdout, _, err := runCLI(t, []string{"--format", "text", "format", "--value", "00:00", "--meridian", "--seconds"})
	if err != nil {
		t.Fatalf("format text: %v", err)
	}
	if got := strings.TrimSpace(string(stdout)); got != "12:00:NaN AM" {
		t.Fatalf("text = %q", got)
	}
}

func TestConfig_SetShowAndLayering(t *testing.T) {
	dir := isolate(t)

	mustData(t, "config", "set", "minuteStep", "15")
	mustData(t, "config", "set", "meridian", "true")

	data := mustData(t, "config", "show")
	eff := data["effective"].(map[string]any)
	if eff["minuteStep"] != float64(15) || eff["meridian"] != true {
		t.Fatalf("effective = %#v", eff)
	}

	// The global config drives the controller.
	ap := mustData(t, "apply", "--model", "string", "--value", "10:50", "minute+1")
	if em := ap["emissions"].([]any); em[0] != "10:05:00" {
		t.Fatalf("emissions = %#v", em)
	}

	// A non-integer step resets the override.
	mustData(t, "config", "set", "minuteStep", "abc")
	data = mustData(t, "config", "show")
	if eff := data["effective"].(map[string]any); eff["minuteStep"] != float64(1) {
		t.Fatalf("minuteStep = %#v, want default", eff["minuteStep"])
	}

	// --config layers a YAML file on top; flags win over both.
	yml := filepath.Join(dir, "extra.yaml")
	if err := os.WriteFile(yml, []byte("picker:\n  meridian: false\n  seconds: true\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	f := mustData(t, "--config", yml, "format", "--value", "13:05:09")
	if f["hour"] != "13" || f["second"] != "09" {
		t.Fatalf("format with --config = %#v", f)
	}
	f = mustData(t, "--config", yml, "format", "--value", "13:05:09", "--seconds=false")
	if _, ok := f["second"]; ok {
		t.Fatalf("flag must override --config: %#v", f)
	}

	if _, _, err := runCLI(t, []string{"config", "set", "size", "huge"}); err == nil {
		t.Fatalf("expected invalid size error")
	}
	p := mustData(t, "config", "path")
	if p["path"] != filepath.Join(dir, "config.json") {
		t.Fatalf("path = %#v", p["path"])
	}
}

func TestSaved_RoundTripAndValueRef(t *testing.T) {
	isolate(t)

	st := mustData(t, "saved", "save", "lunch", "12:30")
	if st["name"] != "lunch" {
		t.Fatalf("saved = %#v", st)
	}

	ap := mustData(t, "apply", "--model", "string", "--value", "@lunch", "hour+1")
	if em := ap["emissions"].([]any); em[0] != "13:30:00" {
		t.Fatalf("emissions = %#v", em)
	}

	stdout, _, err := runCLI(t, []string{"saved", "list"})
	if err != nil {
		t.Fatalf("saved list: %v", err)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if xs := env["data"].([]any); len(xs) != 1 {
		t.Fatalf("list = %#v", xs)
	}

	mustData(t, "saved", "delete", "lunch")
	if _, _, err := runCLI(t, []string{"saved", "show", "lunch"}); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if _, _, err := runCLI(t, []string{"saved", "save", "x", "nope"}); err == nil {
		t.Fatalf("expected invalid value error")
	}
}

func TestOutOfRangeTimesAreRejected(t *testing.T) {
	isolate(t)

	cases := [][]string{
		{"saved", "save", "x", "99:99"},
		{"saved", "save", "x", "10:00:60"},
		{"format", "--value", "24:60"},
		{"apply", "--value", "24:00", "hour+1"},
		{"apply", "--value", "10:60"},
	}
	for _, args := range cases {
		_, _, err := runCLI(t, args)
		if err == nil || !strings.Contains(err.Error(), "invalid time") {
			t.Fatalf("timepick %v: err = %v, want invalid time", args, err)
		}
	}
	if _, _, err := runCLI(t, []string{"saved", "show", "x"}); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("out-of-range time was saved: %v", err)
	}
}

func TestStepsMustBePositive(t *testing.T) {
	isolate(t)

	for _, args := range [][]string{
		{"apply", "--value", "10:00", "--hour-step", "0", "hour+1"},
		{"apply", "--value", "10:00", "--minute-step", "-5", "minute+1"},
		{"config", "set", "secondStep", "0"},
	} {
		_, _, err := runCLI(t, args)
		if err == nil || !strings.Contains(err.Error(), "must be positive") {
			t.Fatalf("timepick %v: err = %v, want positive step error", args, err)
		}
	}
}

func TestDocs(t *testing.T) {
	isolate(t)

	data := mustData(t, "docs")
	if topics := data["topics"].([]any); len(topics) == 0 {
		t.Fatalf("expected topics")
	}
	stdout, _, err := runCLI(t, []string{"docs", "keys", "--raw"})
	if err != nil {
		t.Fatalf("docs --raw: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "#") {
		t.Fatalf("expected raw markdown:\n%s", stdout)
	}
	if _, _, err := runCLI(t, []string{"docs", "../secret"}); err == nil {
		t.Fatalf("expected unknown topic error")
	}
}

func TestFormatFlag_EDN(t *testing.T) {
	isolate(t)

	stdout, _, err := runCLI(t, []string{"--format", "edn", "apply", "--model", "string", "--value", "08:00", "minute+1"})
	if err != nil {
		t.Fatalf("apply edn: %v", err)
	}
	out := string(stdout)
	if !strings.Contains(out, ":emissions") || !strings.Contains(out, `"08:01:00"`) {
		t.Fatalf("edn = %s", out)
	}

	if _, _, err := runCLI(t, []string{"--format", "xml", "docs"}); err == nil {
		t.Fatalf("expected unknown format error")
	}
	if _, _, err := runCLI(t, []string{"--log-level", "loud", "docs"}); err == nil {
		t.Fatalf("expected log level error")
	}
}

type scriptedDriver struct {
	answers []string
}

func (d *scriptedDriver) Input(_ context.Context, cfg prompt.InputConfig) (string, error) {
	if len(d.answers) == 0 {
		return cfg.Default, nil
	}
	a := d.answers[0]
	d.answers = d.answers[1:]
	return a, nil
}

func (d *scriptedDriver) Select(_ context.Context, cfg prompt.SelectConfig) (int, error) {
	return cfg.DefaultIndex, nil
}

func TestPrompt_SavesPickedTime(t *testing.T) {
	isolate(t)

	app := &App{promptDriver: &scriptedDriver{answers: []string{"07", "45"}}}
	stdout, stderr, err := runApp(t, app, []string{"prompt", "--model", "string", "--value", "06:00", "--save", "alarm"})
	if err != nil {
		t.Fatalf("prompt: %v\n%s", err, stderr)
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	data := env["data"].(map[string]any)
	if data["value"] != "07:45:00" || data["accepted"] != true || data["touched"] != true {
		t.Fatalf("prompt data = %#v", data)
	}

	st := mustData(t, "saved", "show", "alarm")
	tm := st["time"].(map[string]any)
	if tm["hour"] != float64(7) || tm["minute"] != float64(45) {
		t.Fatalf("saved = %#v", st)
	}
}
