package notes

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"murmur/internal/fileutil"
	"murmur/internal/logging"
	"murmur/internal/services"
	"murmur/internal/textutil"
)

// Writer persists rendered notes under a single destination directory.
type Writer struct {
	dir    string
	logger *slog.Logger
	now    func() time.Time
}

// WriterOption adjusts writer construction.
type WriterOption func(*Writer)

// WithClock overrides the clock used for filename dates.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) { w.now = now }
}

// NewWriter builds a writer targeting dir.
func NewWriter(dir string, logger *slog.Logger, opts ...WriterOption) *Writer {
	w := &Writer{
		dir:    dir,
		logger: logging.NewComponentLogger(logger, "notes"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NotePath returns the destination for a note derived from audioPath:
// <dir>/<YYYYMMDD>_<basename>.md, dated with the current local date.
func (w *Writer) NotePath(audioPath string) string {
	base := filepath.Base(audioPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = textutil.SanitizeFileName(base)
	name := w.now().Format("20060102") + "_" + base + ".md"
	return filepath.Join(w.dir, name)
}

// Write renders nothing itself; it stores body at the path derived from
// audioPath, creating the destination directory as needed. The write goes
// through a temp file and rename so a failure never leaves a partial note.
func (w *Writer) Write(audioPath, body string) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", services.Wrap(services.ErrWrite, "notes", "write", "create notes directory", err)
	}
	path := w.NotePath(audioPath)
	if err := fileutil.WriteFileAtomic(path, []byte(body), 0o644); err != nil {
		return "", services.Wrap(services.ErrWrite, "notes", "write", "write "+path, err)
	}
	w.logger.Info("note written", logging.String(logging.FieldPath, path))
	return path, nil
}
