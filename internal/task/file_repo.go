package task

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

type fileState struct {
	Tasks map[model.TaskID]model.Task `json:"tasks"`
}

// FileRepo is a persistent task repository backed by a single JSON file.
// The whole document is rewritten on every mutation.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    fileState
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path: filepath.Join(dataDir, "tasks.json"),
		s:    fileState{Tasks: map[model.TaskID]model.Task{}},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var loaded fileState
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}
	if loaded.Tasks == nil {
		loaded.Tasks = map[model.TaskID]model.Task{}
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) GetAll(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Task, 0, len(r.s.Tasks))
	for _, t := range r.s.Tasks {
		normalizeTask(&t)
		out = append(out, t)
	}
	sortByDueTime(out)
	return out, nil
}

func (r *FileRepo) Get(ctx context.Context, id model.TaskID) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.s.Tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	normalizeTask(&t)
	return t, nil
}

func (r *FileRepo) Upsert(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t.ID == "" {
		t.ID = model.TaskID(uuid.NewString())
	}
	normalizeTask(&t)
	r.s.Tasks[t.ID] = t
	if err := r.saveLocked(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *FileRepo) Delete(ctx context.Context, id model.TaskID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.s.Tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.Tasks, id)
	return r.saveLocked()
}
