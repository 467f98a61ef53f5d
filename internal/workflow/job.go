package workflow

import (
	"time"

	"github.com/google/uuid"

	"murmur/internal/services/deepgram"
)

// TranscriptionJob carries one accepted audio file through the pipeline.
// Each job is owned by exactly one worker; fields are filled in as the
// stages complete and nothing is shared between jobs.
type TranscriptionJob struct {
	ID        uuid.UUID
	AudioPath string
	MIMEType  string
	CreatedAt time.Time

	Transcript string
	Summary    string
	TLDR       string
	NotePath   string
}

// NewJob builds a job for audioPath with a fresh correlation ID.
func NewJob(audioPath string) TranscriptionJob {
	return TranscriptionJob{
		ID:        uuid.New(),
		AudioPath: audioPath,
		MIMEType:  deepgram.MIMEType(audioPath),
	}
}
