package stability

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"time"

	"murmur/internal/fileutil"
	"murmur/internal/logging"
)

const (
	// DefaultPollInterval is how often the file size is sampled.
	DefaultPollInterval = 100 * time.Millisecond
	// DefaultQuietPeriod is how long the size must hold still.
	DefaultQuietPeriod = 500 * time.Millisecond
	// DefaultTimeout bounds the whole wait.
	DefaultTimeout = 10 * time.Second
)

// Detector decides when a file has plausibly finished being written by
// polling its size. Polling is preferred over close-notification because many
// recorder apps append without ever signaling a close.
type Detector struct {
	pollInterval time.Duration
	quietPeriod  time.Duration
	timeout      time.Duration
	logger       *slog.Logger

	// sizeFn is swappable for tests.
	sizeFn func(string) (int64, error)
}

// Option customizes the detector.
type Option func(*Detector)

// WithSizeFunc overrides how file sizes are read (used in tests).
func WithSizeFunc(fn func(string) (int64, error)) Option {
	return func(d *Detector) {
		if fn != nil {
			d.sizeFn = fn
		}
	}
}

// New constructs a detector. Non-positive durations fall back to defaults.
func New(pollInterval, quietPeriod, timeout time.Duration, logger *slog.Logger, opts ...Option) *Detector {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if quietPeriod <= 0 {
		quietPeriod = DefaultQuietPeriod
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	d := &Detector{
		pollInterval: pollInterval,
		quietPeriod:  quietPeriod,
		timeout:      timeout,
		logger:       logging.NewComponentLogger(logger, "stability"),
		sizeFn:       fileutil.FileSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WaitStable blocks until path's size has been unchanged for the quiet period,
// returning true. It returns false when the timeout elapses first, when the
// file never appears, or when ctx is canceled. A true return means the file is
// plausibly final, not provably so; downstream reads must still tolerate
// errors.
func (d *Detector) WaitStable(ctx context.Context, path string) bool {
	deadline := time.Now().Add(d.timeout)
	lastSize := int64(-1)
	var stableFor time.Duration

	for time.Now().Before(deadline) {
		size, err := d.sizeFn(path)
		switch {
		case err == nil:
			if size == lastSize {
				stableFor += d.pollInterval
				if stableFor >= d.quietPeriod {
					return true
				}
			} else {
				lastSize = size
				stableFor = 0
			}
		case errors.Is(err, fs.ErrNotExist):
			// Brief absence is tolerated; the event may have raced the write.
			stableFor = 0
			lastSize = -1
		default:
			d.logger.Debug("size poll failed",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
			stableFor = 0
		}

		if !sleepCtx(ctx, d.pollInterval) {
			return false
		}
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
