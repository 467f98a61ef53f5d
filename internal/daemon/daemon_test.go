package daemon_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"murmur/internal/config"
	"murmur/internal/daemon"
	"murmur/internal/logging"
	"murmur/internal/notifications"
	"murmur/internal/prompt"
	"murmur/internal/queue"
	"murmur/internal/services/llm"
	"murmur/internal/testsupport"
	"murmur/internal/watch"
	"murmur/internal/workflow"
)

type acceptAll struct{}

func (acceptAll) Confirm(context.Context, prompt.Candidate) (prompt.Decision, error) {
	return prompt.Accept, nil
}

type alwaysStable struct{}

func (alwaysStable) WaitStable(context.Context, string) bool { return true }

type echoTranscriber struct{}

func (echoTranscriber) Transcribe(context.Context, []byte, string) (string, error) {
	return "transcript", nil
}

type emptySummarizer struct{}

func (emptySummarizer) Summarize(context.Context, string) (llm.Summary, error) {
	return llm.Summary{}, nil
}

type discardWriter struct{}

func (discardWriter) Write(audioPath, _ string) (string, error) {
	return audioPath + ".md", nil
}

func newTestDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()

	for _, dir := range []string{cfg.Paths.MonitorDir, cfg.Paths.StateDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	logger := logging.NewNop()
	notifier := notifications.NewService(cfg)
	source := watch.NewSource(cfg.Paths.MonitorDir, logger)
	processor := workflow.NewProcessor(
		alwaysStable{}, echoTranscriber{}, emptySummarizer{}, discardWriter{}, notifier, logger,
	)
	factory := func(events <-chan watch.PathEvent) *workflow.Manager {
		return workflow.NewManager(cfg, queue.New(0, logger), events, acceptAll{}, processor, logger)
	}

	d, err := daemon.New(cfg, source, factory, notifier, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	return d
}

func TestStartStopLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newTestDaemon(t, cfg)

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !d.Running() {
		t.Fatal("daemon not reported running")
	}
	if _, err := os.Stat(d.LockPath()); err != nil {
		t.Fatalf("lock file missing: %v", err)
	}

	d.Stop()
	if d.Running() {
		t.Fatal("daemon still reported running after Stop")
	}
}

func TestSecondInstanceIsRefused(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := newTestDaemon(t, cfg)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	defer first.Stop()

	second := newTestDaemon(t, cfg)
	err := second.Start(context.Background())
	if err == nil {
		second.Stop()
		t.Fatal("second instance acquired the lock")
	}
	if !strings.Contains(err.Error(), "already running") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLockReleasedAfterStop(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first := newTestDaemon(t, cfg)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	first.Stop()

	second := newTestDaemon(t, cfg)
	if err := second.Start(context.Background()); err != nil {
		t.Fatalf("restart after Stop: %v", err)
	}
	second.Stop()
}

func TestWaitReturnsOnContextCancel(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newTestDaemon(t, cfg)
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer d.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- d.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait returned %v on clean cancel", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Wait did not observe cancellation")
	}
}

func TestStartFailsForMissingMonitorDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d := newTestDaemon(t, cfg)

	if err := os.RemoveAll(cfg.Paths.MonitorDir); err != nil {
		t.Fatalf("remove monitor dir: %v", err)
	}
	if err := d.Start(context.Background()); err == nil {
		d.Stop()
		t.Fatal("expected Start to fail without a monitor directory")
	}
}
