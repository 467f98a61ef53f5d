package watch

import (
	"context"
	"log/slog"
	"os"
	"sync"

	"github.com/fsnotify/fsnotify"

	"murmur/internal/logging"
	"murmur/internal/services"
)

// Kind classifies a filesystem notification.
type Kind string

const (
	KindCreated  Kind = "created"
	KindModified Kind = "modified"
	KindMovedTo  Kind = "moved_to"
)

// PathEvent is one observation of a non-directory entry in the watched
// directory. The path referred to a regular entry at emission time; consumers
// must tolerate it disappearing afterwards.
type PathEvent struct {
	Path string
	Kind Kind
}

// Source watches a single directory (non-recursive) and emits PathEvents.
// It is the only writer to the channel it returns.
type Source struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	events  chan PathEvent
	done    chan struct{}
	err     error
	wg      sync.WaitGroup
}

// NewSource constructs a source for dir.
func NewSource(dir string, logger *slog.Logger) *Source {
	return &Source{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "watch"),
	}
}

// Start installs the watcher and returns the event stream. The stream closes
// when ctx is canceled, Stop is called, or the watcher handle is
// irrecoverably lost; in the last case Err reports the terminal condition.
func (s *Source) Start(ctx context.Context) (<-chan PathEvent, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, services.Wrap(services.ErrSourceUnavailable, "watch", "start", "create watcher", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		_ = watcher.Close()
		return nil, services.Wrap(services.ErrSourceUnavailable, "watch", "start", "watch "+s.dir, err)
	}

	s.mu.Lock()
	s.watcher = watcher
	s.events = make(chan PathEvent, 64)
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, watcher)

	s.logger.Info("watching directory", logging.String(logging.FieldPath, s.dir))
	return s.events, nil
}

// Done is closed when the emit loop exits for any reason. Err distinguishes
// a clean shutdown from a lost watcher.
func (s *Source) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// Err returns the terminal error, if any, once the event stream has closed.
func (s *Source) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Stop releases the watcher and waits for the emit loop to drain.
func (s *Source) Stop() {
	s.mu.Lock()
	watcher := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if watcher != nil {
		_ = watcher.Close()
	}
	s.wg.Wait()
}

func (s *Source) run(ctx context.Context, watcher *fsnotify.Watcher) {
	defer s.wg.Done()
	defer close(s.done)
	defer close(s.events)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				s.setErr(services.Wrap(services.ErrSourceLost, "watch", "run", "watcher handle closed", nil))
				return
			}
			s.emit(ctx, event)
		case err, ok := <-watcher.Errors:
			if !ok {
				s.setErr(services.Wrap(services.ErrSourceLost, "watch", "run", "watcher error channel closed", nil))
				return
			}
			// Runtime watcher errors are logged, not fatal.
			s.logger.Warn("watcher error",
				logging.Error(err),
				logging.String(logging.FieldEventType, "watcher_error"),
			)
		}
	}
}

// emit forwards create and write notifications for non-directory entries.
// fsnotify reports files moved into the watched directory as Create, so
// moved-to arrivals surface with KindCreated.
func (s *Source) emit(ctx context.Context, event fsnotify.Event) {
	var kind Kind
	switch {
	case event.Op.Has(fsnotify.Create):
		kind = KindCreated
	case event.Op.Has(fsnotify.Write):
		kind = KindModified
	default:
		return
	}

	info, err := os.Lstat(event.Name)
	if err != nil {
		// The entry vanished between notification and stat; nothing to emit.
		return
	}
	if info.IsDir() {
		return
	}

	select {
	case s.events <- PathEvent{Path: event.Name, Kind: kind}:
	case <-ctx.Done():
	}
}

func (s *Source) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
	s.logger.Error("watcher lost",
		logging.Error(err),
		logging.String(logging.FieldEventType, "source_lost"),
	)
}
