package task

import (
	"context"
	"errors"
	"time"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

var ErrNotFound = errors.New("task not found")

// Repo is the Task Store contract. GetAll returns every task; Upsert
// inserts or replaces by id; Delete removes. Backends keep tasks ordered by
// due time on read so callers get a stable listing.
type Repo interface {
	GetAll(ctx context.Context) ([]model.Task, error)
	Get(ctx context.Context, id model.TaskID) (model.Task, error)
	Upsert(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id model.TaskID) error
}

// Patch is a partial update; nil pointer means "no change".
type Patch struct {
	Title           *string           `json:"title,omitempty"`
	DueTime         *string           `json:"dueTime,omitempty"`
	Recurrence      *model.Recurrence `json:"recurrence,omitempty"`
	Priority        *model.Priority   `json:"priority,omitempty"`
	IntervalMinutes *int              `json:"intervalMinutes,omitempty"`
	MaxSteps        *int              `json:"maxSteps,omitempty"`
}

func applyPatch(t *model.Task, p Patch) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DueTime != nil {
		t.DueTime = *p.DueTime
	}
	if p.Recurrence != nil {
		t.Recurrence = *p.Recurrence
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.IntervalMinutes != nil {
		t.Escalation.IntervalMinutes = *p.IntervalMinutes
	}
	if p.MaxSteps != nil {
		t.Escalation.MaxSteps = *p.MaxSteps
	}
	t.UpdatedAt = time.Now()
}

func normalizeTask(t *model.Task) {
	if t.CompletedInstances == nil {
		t.CompletedInstances = []string{}
	}
	if t.Recurrence == "" {
		t.Recurrence = model.RecurrenceDaily
	}
	if t.Priority == "" {
		t.Priority = model.PriorityNormal
	}
}
