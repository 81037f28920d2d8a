package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// espeak baselines; the per-level voice hints are multipliers on these.
const (
	baseWordsPerMinute = 175
	basePitch          = 50
	baseAmplitude      = 100
)

// Speech speaks the alert body through an external synthesizer command
// (espeak-style flags). A missing binary is a transient dispatch failure;
// the next escalation retries naturally.
type Speech struct {
	command string
}

func NewSpeech(command string) *Speech {
	if command == "" {
		command = "espeak"
	}
	return &Speech{command: command}
}

func (s *Speech) Name() string { return "speech" }

func (s *Speech) Dispatch(ctx context.Context, a Alert) error {
	if _, err := exec.LookPath(s.command); err != nil {
		return fmt.Errorf("speech synthesizer unavailable: %w", err)
	}

	v := a.Voice
	if v.Rate <= 0 {
		v.Rate = 1
	}
	if v.Pitch <= 0 {
		v.Pitch = 1
	}
	if v.Volume <= 0 {
		v.Volume = 1
	}

	cmd := exec.CommandContext(ctx, s.command,
		"-s", strconv.Itoa(int(baseWordsPerMinute*v.Rate)),
		"-p", strconv.Itoa(clamp(int(basePitch*v.Pitch), 0, 99)),
		"-a", strconv.Itoa(clamp(int(baseAmplitude*v.Volume), 0, 200)),
		a.Body,
	)
	return cmd.Run()
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
