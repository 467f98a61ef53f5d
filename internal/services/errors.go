package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks fatal startup problems (missing API key, bad directory).
	ErrConfiguration = errors.New("configuration error")
	// ErrSourceUnavailable marks a watcher that could not be installed.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceLost marks an irrecoverably dead watcher handle.
	ErrSourceLost = errors.New("source lost")
	// ErrStability marks a file that never stabilized within the timeout.
	ErrStability = errors.New("stability timeout")
	// ErrTranscriber marks any failure from the transcription service.
	ErrTranscriber = errors.New("transcriber error")
	// ErrSummarizer marks any failure from the summarization service.
	ErrSummarizer = errors.New("summarizer error")
	// ErrWrite marks an inability to write the note file.
	ErrWrite = errors.New("write error")
	// ErrTransient is the fallback marker for unclassified failures.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Fatal reports whether an error should terminate the process rather than be
// recovered inside a worker.
func Fatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrSourceLost)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
