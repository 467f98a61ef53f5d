package queue

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"murmur/internal/logging"
)

// DefaultCapacity bounds the FIFO; overflow is unexpected in normal operation.
const DefaultCapacity = 1024

var audioExtensions = map[string]struct{}{
	".wav":  {},
	".mp3":  {},
	".m4a":  {},
	".ogg":  {},
	".flac": {},
	".aac":  {},
}

// IsAudioPath reports whether the path's extension is in the audio set.
// Matching is case-insensitive.
func IsAudioPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := audioExtensions[ext]
	return ok
}

// Queue is the bounded candidate FIFO. It owns the SeenSet: a path admitted
// once is never admitted again for the process lifetime, which is the only
// defense against the CREATE+MODIFY bursts file watchers emit per file.
//
// One mutex guards both structures; the event source offers, the dispatcher
// takes.
type Queue struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	items    []string
	capacity int
	logger   *slog.Logger
}

// New constructs a queue with the given capacity. Non-positive capacities
// fall back to DefaultCapacity.
func New(capacity int, logger *slog.Logger) *Queue {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Queue{
		seen:     make(map[string]struct{}),
		capacity: capacity,
		logger:   logging.NewComponentLogger(logger, "queue"),
	}
}

// Offer admits path as a candidate when it passes the extension filter and has
// never been seen before. Returns true only when the path was enqueued.
// A full queue drops the newest path with a warning rather than blocking the
// caller; blocking the watcher risks losing events.
func (q *Queue) Offer(path string) bool {
	if !IsAudioPath(path) {
		return false
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.seen[path]; ok {
		return false
	}
	q.seen[path] = struct{}{}

	if len(q.items) >= q.capacity {
		q.logger.Warn("queue full, dropping candidate",
			logging.String(logging.FieldPath, path),
			logging.Int("capacity", q.capacity),
			logging.String(logging.FieldEventType, "queue_overflow"),
		)
		return false
	}

	q.items = append(q.items, path)
	return true
}

// TakeOrEmpty pops the oldest candidate without blocking.
func (q *Queue) TakeOrEmpty() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return "", false
	}
	path := q.items[0]
	q.items = q.items[1:]
	return path, true
}

// Len returns the number of queued candidates.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Seen reports whether path was ever admitted to the SeenSet.
func (q *Queue) Seen(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.seen[path]
	return ok
}
