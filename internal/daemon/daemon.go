package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/gofrs/flock"

	"murmur/internal/config"
	"murmur/internal/logging"
	"murmur/internal/notifications"
	"murmur/internal/watch"
	"murmur/internal/workflow"
)

// ManagerFactory builds the workflow manager once the event stream exists.
// The daemon owns the source lifecycle, so the channel is only available at
// start time.
type ManagerFactory func(events <-chan watch.PathEvent) *workflow.Manager

// Daemon ties the event source and workflow manager into a single lifecycle
// with flock-based locking to prevent multiple concurrent instances.
type Daemon struct {
	cfg        *config.Config
	logger     *slog.Logger
	source     *watch.Source
	notifier   notifications.Service
	newManager ManagerFactory

	manager  *workflow.Manager
	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, source *watch.Source, factory ManagerFactory, notifier notifications.Service, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || source == nil || factory == nil || notifier == nil {
		return nil, errors.New("daemon requires config, source, manager factory, and notifier")
	}

	lockPath := filepath.Join(cfg.Paths.StateDir, "murmur.lock")
	return &Daemon{
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "daemon"),
		source:     source,
		notifier:   notifier,
		newManager: factory,
		lockPath:   lockPath,
		lock:       flock.New(lockPath),
	}, nil
}

// Start acquires the instance lock, begins watching, and launches the
// workflow manager.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another murmur instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	events, err := d.source.Start(runCtx)
	if err != nil {
		cancel()
		_ = d.lock.Unlock()
		return err
	}

	d.manager = d.newManager(events)
	if err := d.manager.Start(runCtx); err != nil {
		cancel()
		d.source.Stop()
		_ = d.lock.Unlock()
		return fmt.Errorf("start workflow: %w", err)
	}

	d.cancel = cancel
	d.running.Store(true)
	d.logger.Info("murmur daemon started",
		logging.String("lock", d.lockPath),
		logging.String(logging.FieldPath, d.cfg.Paths.MonitorDir),
	)
	if err := d.notifier.NotifyStarted(ctx, d.cfg.Paths.MonitorDir); err != nil {
		d.logger.Warn("start notification not delivered", logging.Error(err))
	}
	return nil
}

// Wait blocks until ctx is canceled or the event source terminates. A lost
// watcher is returned as the terminal error; a clean shutdown returns nil.
func (d *Daemon) Wait(ctx context.Context) error {
	if !d.running.Load() {
		return errors.New("daemon not running")
	}
	select {
	case <-ctx.Done():
		return nil
	case <-d.source.Done():
		return d.source.Err()
	}
}

// Stop halts intake, lets in-flight workers finish, and releases the lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.source.Stop()
	if d.manager != nil {
		d.manager.Stop()
	}
	if err := d.notifier.NotifyStopped(context.Background()); err != nil {
		d.logger.Warn("stop notification not delivered", logging.Error(err))
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("murmur daemon stopped")
}

// LockPath returns the path of the single-instance lock file.
func (d *Daemon) LockPath() string {
	return d.lockPath
}

// Running reports whether the daemon has been started and not yet stopped.
func (d *Daemon) Running() bool {
	return d.running.Load()
}
