package model

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

type TaskID string

type Recurrence string

const (
	RecurrenceNone     Recurrence = "none"
	RecurrenceDaily    Recurrence = "daily"
	RecurrenceWeekdays Recurrence = "weekdays"
	RecurrenceCustom   Recurrence = "custom"
)

type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// Escalation is the per-task re-alert policy: minutes between successive
// alerts and the highest level reachable.
type Escalation struct {
	IntervalMinutes int `json:"intervalMinutes" yaml:"interval_minutes"`
	MaxSteps        int `json:"maxSteps" yaml:"max_steps"`
}

// Task is a daily time-bound reminder. DueTime is a local time-of-day in
// 24h "HH:MM" form; the task recurs daily unless Recurrence says otherwise.
// CompletedInstances holds the ISO dates on which the task was marked done
// (set semantics).
type Task struct {
	ID                 TaskID     `json:"id"`
	Title              string     `json:"title"`
	DueTime            string     `json:"dueTime"`
	Recurrence         Recurrence `json:"recurrence,omitempty"`
	Priority           Priority   `json:"priority,omitempty"`
	Escalation         Escalation `json:"escalation"`
	CompletedInstances []string   `json:"completedInstances"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewTask(title, dueTime string, esc Escalation) Task {
	now := time.Now()
	return Task{
		ID:                 TaskID(uuid.NewString()),
		Title:              title,
		DueTime:            dueTime,
		Recurrence:         RecurrenceDaily,
		Priority:           PriorityNormal,
		Escalation:         esc,
		CompletedInstances: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// DateOf formats t's calendar date the way CompletedInstances stores it.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// TimeOfDay formats t's clock time the way DueTime stores it. "HH:MM"
// strings compare correctly with plain string ordering.
func TimeOfDay(t time.Time) string {
	return t.Format("15:04")
}

// CompletedOn reports whether the task was marked done on the given ISO date.
func (t *Task) CompletedOn(date string) bool {
	return slices.Contains(t.CompletedInstances, date)
}

// ToggleCompleted flips membership of date in CompletedInstances and
// reports the new membership state.
func (t *Task) ToggleCompleted(date string) bool {
	if t.CompletedOn(date) {
		out := make([]string, 0, len(t.CompletedInstances))
		for _, d := range t.CompletedInstances {
			if d != date {
				out = append(out, d)
			}
		}
		t.CompletedInstances = out
		t.touch()
		return false
	}
	t.CompletedInstances = append(t.CompletedInstances, date)
	t.touch()
	return true
}

func (t *Task) touch() {
	t.UpdatedAt = time.Now()
}

// Validate reports whether the task is well-formed enough for the engine to
// schedule it. Malformed tasks are skipped per tick, never fatal.
func (t *Task) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("task %s: missing title", t.ID)
	}
	if !ValidDueTime(t.DueTime) {
		return fmt.Errorf("task %s: bad due time %q", t.ID, t.DueTime)
	}
	if t.Escalation.IntervalMinutes <= 0 {
		return fmt.Errorf("task %s: interval must be positive", t.ID)
	}
	if t.Escalation.MaxSteps <= 0 {
		return fmt.Errorf("task %s: max steps must be positive", t.ID)
	}
	return nil
}

// ValidDueTime checks the "HH:MM" 24h form.
func ValidDueTime(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
