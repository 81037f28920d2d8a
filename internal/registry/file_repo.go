// Package registry stores the server-side push subscriptions and serves the
// subscribe / push-all HTTP surface.
package registry

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

var ErrNotFound = errors.New("subscription not found")

type Repo interface {
	List() ([]model.Subscription, error)
	Add(sub model.Subscription) (added bool, err error)
	Remove(endpoint string) error
}

// FileRepo keeps subscriptions in a flat JSON file, deduped by endpoint,
// preserving insertion order.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	subs []model.Subscription
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "subscriptions.json")}
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
			r.subs = []model.Subscription{}
			return nil
		}
		return err
	}
	var subs []model.Subscription
	if err := json.Unmarshal(b, &subs); err != nil {
		return err
	}
	r.subs = subs
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.subs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) List() ([]model.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Subscription, len(r.subs))
	copy(out, r.subs)
	return out, nil
}

func (r *FileRepo) Add(sub model.Subscription) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.subs {
		if s.Endpoint == sub.Endpoint {
			return false, nil
		}
	}
	r.subs = append(r.subs, sub)
	return true, r.saveLocked()
}

func (r *FileRepo) Remove(endpoint string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.subs[:0]
	found := false
	for _, s := range r.subs {
		if s.Endpoint == endpoint {
			found = true
			continue
		}
		out = append(out, s)
	}
	if !found {
		return ErrNotFound
	}
	r.subs = out
	return r.saveLocked()
}
