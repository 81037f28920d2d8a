// Package engine contains the escalation scheduler: a per-task alert-level
// state machine driven by a periodic clock. Each tick compares every
// incomplete task's due time to now, advances or holds its level per the
// task's own interval policy, dispatches alerts, and persists the updated
// aggregate in one write.
package engine

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Arslan1Ali/Daily-Reminder/internal/alertstate"
	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
	"github.com/Arslan1Ali/Daily-Reminder/internal/notify"
	"github.com/Arslan1Ali/Daily-Reminder/internal/task"
)

type Engine struct {
	Tasks      task.Repo
	States     alertstate.Store
	Dispatcher notify.Dispatcher
	Clock      Clock
	Logger     *log.Logger
}

type TickResult struct {
	At         time.Time `json:"at"`
	TasksSeen  int       `json:"tasks_seen"`
	Dispatched int       `json:"dispatched"`
	Cleared    int       `json:"cleared"`
	Skipped    int       `json:"skipped"`
	Persisted  bool      `json:"persisted"`
}

// RunTick executes one decision pass at the clock's current time.
//
// A load failure abandons the whole tick (fatal-for-this-tick only); a
// persistence failure at the end is surfaced the same way, with decisions
// retried naturally next tick because the aggregate was never written.
// Dispatch failures are logged per task and never stop the pass.
func (e Engine) RunTick(ctx context.Context) (TickResult, error) {
	now := e.now()
	res := TickResult{At: now}

	tasks, err := e.Tasks.GetAll(ctx)
	if err != nil {
		return res, fmt.Errorf("load tasks: %w", err)
	}
	states, err := e.States.Get(ctx)
	if err != nil {
		return res, fmt.Errorf("load alert state: %w", err)
	}

	today := model.DateOf(now)
	clock := model.TimeOfDay(now)
	dirty := false
	var wg sync.WaitGroup

	for _, t := range tasks {
		res.TasksSeen++

		// Completed today: reclaim any stale entry, no alert.
		if t.CompletedOn(today) {
			if _, ok := states[t.ID]; ok {
				delete(states, t.ID)
				dirty = true
				res.Cleared++
			}
			continue
		}

		if err := t.Validate(); err != nil {
			e.logf("skipping malformed task: %v", err)
			res.Skipped++
			continue
		}

		// Not yet due today.
		if clock < t.DueTime {
			continue
		}

		prev := states[t.ID]

		// A carried-over entry from a previous day restarts at level 0:
		// the first alert of a new day is immediate.
		if prev.Level > 0 && model.DateOf(prev.LastAlertAt) != today {
			prev = model.AlertState{}
		}

		if prev.Level > 0 {
			elapsed := now.Sub(prev.LastAlertAt).Minutes()
			if elapsed < float64(t.Escalation.IntervalMinutes) {
				continue
			}
		}

		next := prev.Level + 1
		if next > t.Escalation.MaxSteps {
			next = t.Escalation.MaxSteps
		}

		// Each task's alert goes out on its own goroutine so one stalled
		// channel cannot hold up the rest of the pass. The state advances
		// regardless of delivery: a flaky channel must not turn escalation
		// into spam.
		alert := BuildAlert(t, next)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := e.Dispatcher.Dispatch(ctx, alert); err != nil {
				e.logf("dispatch level %d for task %s: %v", alert.Level, alert.TaskID, err)
			}
		}()
		res.Dispatched++

		states[t.ID] = model.AlertState{Level: next, LastAlertAt: now}
		dirty = true
	}
	wg.Wait()

	if dirty {
		if err := e.States.Set(ctx, states); err != nil {
			return res, fmt.Errorf("persist alert state: %w", err)
		}
		res.Persisted = true
	}
	return res, nil
}

func (e Engine) now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock.Now()
}

func (e Engine) logf(format string, args ...any) {
	if e.Logger == nil {
		return
	}
	e.Logger.Printf("[engine] "+format, args...)
}
