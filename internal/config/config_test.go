package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"murmur/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TRANSCRIBER_API_KEY", "SUMMARIZER_API_KEY", "MONITOR_DIR", "NOTES_DIR"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadMissingFileUsesEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRANSCRIBER_API_KEY", "dg-test")
	t.Setenv("SUMMARIZER_API_KEY", "oa-test")
	t.Setenv("MONITOR_DIR", t.TempDir())
	t.Setenv("NOTES_DIR", t.TempDir())

	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be reported missing")
	}
	if cfg.Transcriber.APIKey != "dg-test" {
		t.Fatalf("transcriber key = %q", cfg.Transcriber.APIKey)
	}
	if cfg.Summarizer.APIKey != "oa-test" {
		t.Fatalf("summarizer key = %q", cfg.Summarizer.APIKey)
	}
	if !filepath.IsAbs(cfg.Paths.MonitorDir) {
		t.Fatalf("monitor dir not absolute: %q", cfg.Paths.MonitorDir)
	}
}

func TestLoadRequiresTranscriberKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUMMARIZER_API_KEY", "oa-test")

	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected error for missing transcriber key")
	}
	if !strings.Contains(err.Error(), "transcriber.api_key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "murmur.toml")
	body := `
[transcriber]
api_key = "file-dg"
model = "  nova-2  "

[summarizer]
api_key = "file-oa"

[logging]
format = "JSON"
level = "DEBUG"

[stability]
quiet_period_ms = 250
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Transcriber.Model != "nova-2" {
		t.Fatalf("model not trimmed: %q", cfg.Transcriber.Model)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %+v", cfg.Logging)
	}
	if cfg.Stability.QuietPeriodMS != 250 {
		t.Fatalf("quiet period = %d", cfg.Stability.QuietPeriodMS)
	}
	if cfg.Stability.PollIntervalMS != 100 {
		t.Fatalf("poll interval default = %d", cfg.Stability.PollIntervalMS)
	}
}

func TestValidateRejectsBadTiming(t *testing.T) {
	clearEnv(t)
	cfg := config.Default()
	cfg.Transcriber.APIKey = "k"
	cfg.Summarizer.APIKey = "k"
	cfg.Stability.QuietPeriodMS = 20_000
	cfg.Stability.TimeoutSeconds = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected quiet period validation failure")
	}
}

func TestEnsureDirectoriesCreatesNotesDir(t *testing.T) {
	clearEnv(t)
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.NotesDir = filepath.Join(base, "vault", "notes")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	info, err := os.Stat(cfg.Paths.NotesDir)
	if err != nil || !info.IsDir() {
		t.Fatalf("notes dir missing: %v", err)
	}
}

func TestCreateSampleWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(body), "[transcriber]") {
		t.Fatal("sample missing transcriber section")
	}
}
