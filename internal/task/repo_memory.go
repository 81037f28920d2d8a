package task

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

type MemoryRepo struct {
	mu    sync.RWMutex
	tasks map[model.TaskID]model.Task
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{tasks: map[model.TaskID]model.Task{}}
}

func (r *MemoryRepo) GetAll(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		normalizeTask(&t)
		out = append(out, t)
	}
	sortByDueTime(out)
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id model.TaskID) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	normalizeTask(&t)
	return t, nil
}

func (r *MemoryRepo) Upsert(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = model.TaskID(uuid.NewString())
	}
	normalizeTask(&t)
	r.tasks[t.ID] = t
	return t, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// sortByDueTime orders by due time, then title for a stable tie-break.
func sortByDueTime(ts []model.Task) {
	sort.Slice(ts, func(i, j int) bool {
		if ts[i].DueTime != ts[j].DueTime {
			return ts[i].DueTime < ts[j].DueTime
		}
		return ts[i].Title < ts[j].Title
	})
}
