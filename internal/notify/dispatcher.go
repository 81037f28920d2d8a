// Package notify delivers alerts to the user. Every channel is best-effort:
// a failed or unsupported channel degrades to "no alert this cycle" and must
// never abort the caller.
package notify

import (
	"context"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

// Alert is one deliverable reminder at a given escalation level. Tag carries
// the task id so platform notifications replace their predecessor instead of
// stacking.
type Alert struct {
	TaskID model.TaskID
	Level  int
	Title  string
	Body   string
	Tag    string
	Voice  model.VoiceParams
}

// Dispatcher sends an alert over one delivery channel.
// Implementations should respect context cancellation and return an error
// only for the caller's log; the engine never retries within a tick.
type Dispatcher interface {
	Dispatch(ctx context.Context, a Alert) error

	// Name identifies the channel in logs.
	Name() string
}
