package prompt_test

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"murmur/internal/logging"
	"murmur/internal/prompt"
)

type countingPlayer struct {
	plays atomic.Int64
	err   error
}

func (p *countingPlayer) Play(context.Context, string) error {
	p.plays.Add(1)
	return p.err
}

func candidate() prompt.Candidate {
	return prompt.Candidate{
		Path:     "/audio/meeting.m4a",
		Size:     2048,
		Modified: time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
	}
}

func TestConfirmSave(t *testing.T) {
	var out strings.Builder
	terminal := prompt.NewTerminal(strings.NewReader("s\n"), &out, nil, logging.NewNop())

	decision, err := terminal.Confirm(context.Background(), candidate())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if decision != prompt.Accept {
		t.Fatalf("decision = %v, want Accept", decision)
	}
	if !strings.Contains(out.String(), "meeting.m4a") {
		t.Error("output does not mention the candidate file")
	}
	if !strings.Contains(out.String(), "2.0 KiB") {
		t.Errorf("output missing human-readable size:\n%s", out.String())
	}
}

func TestConfirmCancel(t *testing.T) {
	var out strings.Builder
	terminal := prompt.NewTerminal(strings.NewReader("cancel\n"), &out, nil, logging.NewNop())

	decision, err := terminal.Confirm(context.Background(), candidate())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if decision != prompt.Reject {
		t.Fatalf("decision = %v, want Reject", decision)
	}
}

func TestConfirmReplayLoopsBackToQuestion(t *testing.T) {
	player := &countingPlayer{}
	var out strings.Builder
	terminal := prompt.NewTerminal(strings.NewReader("r\nr\ns\n"), &out, player, logging.NewNop())

	decision, err := terminal.Confirm(context.Background(), candidate())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if decision != prompt.Accept {
		t.Fatalf("decision = %v, want Accept after replays", decision)
	}
	if got := player.plays.Load(); got != 2 {
		t.Fatalf("player invoked %d times, want 2", got)
	}
}

func TestConfirmRepromptsOnUnknownAnswer(t *testing.T) {
	var out strings.Builder
	terminal := prompt.NewTerminal(strings.NewReader("maybe\nc\n"), &out, nil, logging.NewNop())

	decision, err := terminal.Confirm(context.Background(), candidate())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if decision != prompt.Reject {
		t.Fatalf("decision = %v, want Reject", decision)
	}
	if !strings.Contains(out.String(), "Please answer") {
		t.Error("unknown answer did not produce a re-prompt")
	}
}

func TestConfirmRejectsOnClosedInput(t *testing.T) {
	var out strings.Builder
	terminal := prompt.NewTerminal(strings.NewReader(""), &out, nil, logging.NewNop())

	decision, err := terminal.Confirm(context.Background(), candidate())
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if decision != prompt.Reject {
		t.Fatalf("decision = %v, want Reject on EOF", decision)
	}
}

func TestConfirmRejectsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out strings.Builder
	terminal := prompt.NewTerminal(strings.NewReader("s\n"), &out, nil, logging.NewNop())

	decision, err := terminal.Confirm(ctx, candidate())
	if err == nil {
		t.Fatal("expected context error")
	}
	if decision != prompt.Reject {
		t.Fatalf("decision = %v, want Reject", decision)
	}
}

func TestConfirmReplayWithoutPlayer(t *testing.T) {
	var out strings.Builder
	terminal := prompt.NewTerminal(strings.NewReader("r\nc\n"), &out, nil, logging.NewNop())

	if _, err := terminal.Confirm(context.Background(), candidate()); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if !strings.Contains(out.String(), "No audio player") {
		t.Error("missing player notice not shown")
	}
}
