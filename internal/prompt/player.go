package prompt

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
)

// ErrNoPlayer indicates no usable playback command was found on PATH.
var ErrNoPlayer = errors.New("no audio player found")

// Player plays an audio file to completion or until ctx is canceled.
type Player interface {
	Play(ctx context.Context, path string) error
}

// ExecPlayer shells out to the platform's audio player: afplay on macOS, the
// first of paplay, aplay, or ffplay elsewhere.
type ExecPlayer struct {
	lookPath func(string) (string, error)
}

// NewExecPlayer constructs a player that resolves commands against PATH.
func NewExecPlayer() *ExecPlayer {
	return &ExecPlayer{lookPath: exec.LookPath}
}

func (p *ExecPlayer) Play(ctx context.Context, path string) error {
	command, args, err := p.resolve()
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, command, append(args, path)...)
	return cmd.Run()
}

func (p *ExecPlayer) resolve() (string, []string, error) {
	if runtime.GOOS == "darwin" {
		if resolved, err := p.lookPath("afplay"); err == nil {
			return resolved, nil, nil
		}
		return "", nil, ErrNoPlayer
	}
	for _, candidate := range []string{"paplay", "aplay"} {
		if resolved, err := p.lookPath(candidate); err == nil {
			return resolved, nil, nil
		}
	}
	// ffplay needs flags to behave like a plain player.
	if resolved, err := p.lookPath("ffplay"); err == nil {
		return resolved, []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}, nil
	}
	return "", nil, ErrNoPlayer
}
