package notes

import (
	"fmt"
	"time"
)

// headingDateFormat renders the recording date for the note heading,
// e.g. "2024-01-15 Monday".
const headingDateFormat = "2006-01-02 Monday"

// Render produces the Markdown note body. The layout is fixed:
// a summary section, a fenced tldr block, a date heading taken from the
// audio file's creation time in local timezone, then the full transcript.
// The output carries no trailing newline.
func Render(summary, tldr string, createdAt time.Time, transcript string) string {
	return fmt.Sprintf("## Transcription Summary\n\n%s\n\n```tldr\n%s\n```\n\n# %s\n\n\n%s",
		summary,
		tldr,
		createdAt.Local().Format(headingDateFormat),
		transcript,
	)
}
