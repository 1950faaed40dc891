package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"timepick/internal/timepick"

	"github.com/google/go-cmp/cmp"
)

func TestSaveConfig_ConcurrentWriters_DoesNotCorruptConfig(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("TIMEPICK_CONFIG_DIR", cfgDir)

	seed := &GlobalConfig{TUI: &TUIConfig{Theme: "dark"}}
	if err := SaveConfig(seed); err != nil {
		t.Fatalf("SaveConfig(seed): %v", err)
	}

	const n = 32
	errCh := make(chan error, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			cfg, err := LoadConfig()
			if err != nil {
				errCh <- err
				return
			}
			if err := cfg.Set("hourStep", fmt.Sprintf("%d", i+1)); err != nil {
				errCh <- err
				return
			}
			if err := SaveConfig(cfg); err != nil {
				errCh <- err
				return
			}
		}(i)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent SaveConfig: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json"))
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	var got GlobalConfig
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("config.json is not valid JSON after concurrent writes: %v\n%s", err, b)
	}
	if got.Picker == nil || got.Picker.HourStep == nil {
		t.Fatalf("expected a hourStep override, got %s", b)
	}
}

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("TIMEPICK_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if diff := cmp.Diff(timepick.DefaultConfig(), cfg.Apply(timepick.DefaultConfig())); diff != "" {
		t.Fatalf("empty config changed defaults (-want +got):\n%s", diff)
	}
}

func TestGlobalConfig_SetAndApply(t *testing.T) {
	t.Parallel()

	cfg := &GlobalConfig{}
	for k, v := range map[string]string{
		"meridian":       "true",
		"seconds":        "true",
		"spinners":       "false",
		"minuteStep":     "15",
		"readonlyInputs": "1",
		"size":           "small",
		"tui.theme":      "Light",
	} {
		if err := cfg.Set(k, v); err != nil {
			t.Fatalf("Set(%s, %s): %v", k, v, err)
		}
	}

	want := timepick.DefaultConfig()
	want.Meridian = true
	want.Seconds = true
	want.Spinners = false
	want.MinuteStep = 15
	want.ReadonlyInputs = true
	want.Size = timepick.SizeSmall
	if diff := cmp.Diff(want, cfg.Apply(timepick.DefaultConfig())); diff != "" {
		t.Fatalf("Apply mismatch (-want +got):\n%s", diff)
	}
	if cfg.TUI.Theme != "light" {
		t.Fatalf("theme = %q", cfg.TUI.Theme)
	}
}

func TestGlobalConfig_SetInvalidStepRestoresDefault(t *testing.T) {
	t.Parallel()

	cfg := &GlobalConfig{}
	if err := cfg.Set("hourStep", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cfg.Set("hourStep", "three"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := cfg.Apply(timepick.DefaultConfig()).HourStep; got != 1 {
		t.Fatalf("HourStep = %d, want default 1", got)
	}
}

func TestGlobalConfig_SetRejectsBadInput(t *testing.T) {
	t.Parallel()

	cfg := &GlobalConfig{}
	cases := [][2]string{
		{"meridian", "maybe"},
		{"size", "huge"},
		{"tui.theme", "sepia"},
		{"colour", "red"},
		{"hourStep", "0"},
		{"minuteStep", "-15"},
	}
	for _, c := range cases {
		if err := cfg.Set(c[0], c[1]); err == nil {
			t.Errorf("Set(%s, %s): expected error", c[0], c[1])
		}
	}
}

func TestLoadConfigFile_YAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "picker.yaml")
	body := "picker:\n  meridian: true\n  secondStep: 10\n  size: large\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	got := cfg.Apply(timepick.DefaultConfig())
	if !got.Meridian || got.SecondStep != 10 || got.Size != timepick.SizeLarge {
		t.Fatalf("unexpected config: %+v", got)
	}
}

func TestLoadConfigFile_BadJSON(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfigFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
