package workflow

import (
	"context"
	"log/slog"
	"os"
	"time"

	"murmur/internal/fileutil"
	"murmur/internal/logging"
	"murmur/internal/notes"
	"murmur/internal/notifications"
	"murmur/internal/services"
	"murmur/internal/services/llm"
)

// Transcriber converts raw audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// Summarizer condenses a transcript into summary and tldr fields.
type Summarizer interface {
	Summarize(ctx context.Context, transcript string) (llm.Summary, error)
}

// StabilityWaiter blocks until a path stops changing or the attempt is
// abandoned.
type StabilityWaiter interface {
	WaitStable(ctx context.Context, path string) bool
}

// NoteWriter persists a rendered note body for an audio path and returns the
// destination.
type NoteWriter interface {
	Write(audioPath, body string) (string, error)
}

// Processor runs the per-job pipeline: stability wait, transcription,
// summarization, note write. Remote failures degrade the note instead of
// losing it; only stability and write failures abandon the job.
type Processor struct {
	stability   StabilityWaiter
	transcriber Transcriber
	summarizer  Summarizer
	writer      NoteWriter
	notifier    notifications.Service
	logger      *slog.Logger
}

// NewProcessor wires the pipeline stages together.
func NewProcessor(
	stability StabilityWaiter,
	transcriber Transcriber,
	summarizer Summarizer,
	writer NoteWriter,
	notifier notifications.Service,
	logger *slog.Logger,
) *Processor {
	return &Processor{
		stability:   stability,
		transcriber: transcriber,
		summarizer:  summarizer,
		writer:      writer,
		notifier:    notifier,
		logger:      logging.NewComponentLogger(logger, "worker"),
	}
}

// Process runs job to completion. The returned error is informational for the
// dispatcher's log; no caller retries a job.
func (p *Processor) Process(ctx context.Context, job *TranscriptionJob) error {
	ctx = services.WithJobID(ctx, job.ID.String())
	ctx = services.WithPath(ctx, job.AudioPath)
	logger := logging.WithContext(ctx, p.logger)

	if !p.stability.WaitStable(ctx, job.AudioPath) {
		logger.Warn("file never stabilized, abandoning job",
			logging.String(logging.FieldEventType, "stability_timeout"),
		)
		return services.Wrap(services.ErrStability, "worker", "process", "file did not stabilize", nil)
	}

	createdAt, err := fileutil.BirthTime(job.AudioPath)
	if err != nil {
		logger.Warn("creation time unavailable, using current time", logging.Error(err))
		createdAt = time.Now()
	}
	job.CreatedAt = createdAt

	job.Transcript = p.transcribe(ctx, logger, job)
	job.Summary, job.TLDR = p.summarize(ctx, logger, job.Transcript)

	body := notes.Render(job.Summary, job.TLDR, job.CreatedAt, job.Transcript)
	notePath, err := p.writer.Write(job.AudioPath, body)
	if err != nil {
		logger.Error("note write failed, abandoning job",
			logging.Error(err),
			logging.String(logging.FieldEventType, "note_write_failed"),
		)
		if notifyErr := p.notifier.NotifyJobFailed(ctx, job.AudioPath, err); notifyErr != nil {
			logger.Warn("failure notification not delivered", logging.Error(notifyErr))
		}
		return err
	}
	job.NotePath = notePath

	logger.Info("job complete",
		logging.String("note_path", notePath),
		logging.String(logging.FieldEventType, "job_complete"),
	)
	if notifyErr := p.notifier.NotifyNoteCreated(ctx, job.AudioPath, notePath); notifyErr != nil {
		logger.Warn("notification not delivered", logging.Error(notifyErr))
	}
	return nil
}

// transcribe returns the transcript, or a placeholder carrying the error text
// so the operator can retry manually from the note itself.
func (p *Processor) transcribe(ctx context.Context, logger *slog.Logger, job *TranscriptionJob) string {
	audio, err := os.ReadFile(job.AudioPath)
	if err == nil {
		var transcript string
		transcript, err = p.transcriber.Transcribe(ctx, audio, job.MIMEType)
		if err == nil {
			return transcript
		}
	}
	logger.Warn("transcription failed, writing placeholder note",
		logging.Error(err),
		logging.String(logging.FieldEventType, "transcription_failed"),
	)
	return "Transcription error: " + err.Error()
}

func (p *Processor) summarize(ctx context.Context, logger *slog.Logger, transcript string) (string, string) {
	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		logger.Warn("summarization failed, leaving summary empty",
			logging.Error(err),
			logging.String(logging.FieldEventType, "summarization_failed"),
		)
		return "", ""
	}
	return summary.Summary, summary.TLDR
}
