package testsupport

import (
	"path/filepath"
	"testing"

	"murmur/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.MonitorDir = filepath.Join(base, "incoming")
	cfg.Paths.NotesDir = filepath.Join(base, "notes")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Transcriber.APIKey = "test-transcriber-key"
	cfg.Summarizer.APIKey = "test-summarizer-key"
	cfg.Ingest.IdlePollMS = 5
	cfg.Stability.PollIntervalMS = 5
	cfg.Stability.QuietPeriodMS = 20
	cfg.Stability.TimeoutSeconds = 2

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithMonitorDir overrides the watched directory on the test config.
func WithMonitorDir(dir string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.MonitorDir = dir
	}
}

// WithNtfyTopic points notifications at a test server.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}
