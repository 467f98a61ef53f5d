package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"murmur/internal/logging"
)

// Decision is the operator's verdict on a candidate file.
type Decision int

const (
	Reject Decision = iota
	Accept
)

// Candidate describes the file presented for confirmation.
type Candidate struct {
	Path     string
	Size     int64
	Modified time.Time
}

// Prompter asks the operator whether a candidate should be ingested.
// Implementations must be safe for serial reuse; the dispatcher never issues
// two prompts concurrently.
type Prompter interface {
	Confirm(ctx context.Context, candidate Candidate) (Decision, error)
}

// Terminal prompts on a reader/writer pair, normally stdin/stdout. When the
// input is not a TTY every candidate is rejected with a warning so a headless
// process never blocks on a question nobody will answer.
type Terminal struct {
	in     *bufio.Reader
	rawIn  io.Reader
	out    io.Writer
	player Player
	logger *slog.Logger
}

// NewTerminal builds a prompter over in/out. A nil player disables replay.
func NewTerminal(in io.Reader, out io.Writer, player Player, logger *slog.Logger) *Terminal {
	return &Terminal{
		in:     bufio.NewReader(in),
		rawIn:  in,
		out:    out,
		player: player,
		logger: logging.NewComponentLogger(logger, "prompt"),
	}
}

// Confirm shows the candidate table and reads answers until the operator
// saves, cancels, or input ends. Replay requests loop back to the question.
func (t *Terminal) Confirm(ctx context.Context, candidate Candidate) (Decision, error) {
	if !interactive(t.rawIn) {
		t.logger.Warn("input is not a terminal, rejecting candidate",
			logging.String(logging.FieldPath, candidate.Path),
		)
		return Reject, nil
	}

	fmt.Fprintf(t.out, "\nNew audio file detected:\n%s\n", renderCandidate(candidate))

	for {
		if err := ctx.Err(); err != nil {
			return Reject, err
		}

		fmt.Fprint(t.out, "[s]ave, [c]ancel, or [r]eplay? ")
		line, err := t.in.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		if err != nil && answer == "" {
			if err == io.EOF {
				t.logger.Warn("input closed before a decision, rejecting candidate",
					logging.String(logging.FieldPath, candidate.Path),
				)
				return Reject, nil
			}
			return Reject, fmt.Errorf("read answer: %w", err)
		}

		switch answer {
		case "s", "save":
			return Accept, nil
		case "c", "cancel":
			return Reject, nil
		case "r", "replay":
			t.replay(ctx, candidate.Path)
		default:
			fmt.Fprintln(t.out, "Please answer s, c, or r.")
		}
	}
}

func (t *Terminal) replay(ctx context.Context, path string) {
	if t.player == nil {
		fmt.Fprintln(t.out, "No audio player available on this system.")
		return
	}
	fmt.Fprintln(t.out, "Playing...")
	if err := t.player.Play(ctx, path); err != nil {
		t.logger.Warn("replay failed",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
		)
		fmt.Fprintln(t.out, "Playback failed:", err)
	}
}

func renderCandidate(candidate Candidate) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Size", "Modified"})
	tw.AppendRow(table.Row{
		candidate.Path,
		formatBytes(candidate.Size),
		candidate.Modified.Format("2006-01-02 15:04:05"),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func formatBytes(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	value := float64(size)
	suffixes := []string{"KiB", "MiB", "GiB", "TiB"}
	idx := -1
	for value >= unit && idx < len(suffixes)-1 {
		value /= unit
		idx++
	}
	return fmt.Sprintf("%.1f %s", value, suffixes[idx])
}

func interactive(reader io.Reader) bool {
	file, ok := reader.(*os.File)
	if !ok {
		// Non-file readers (tests, pipes built in memory) are treated as
		// interactive so scripted answers work.
		return true
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
