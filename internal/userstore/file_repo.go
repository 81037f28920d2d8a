// Package userstore keeps the server-side user records: each client's push
// subscription plus the task snapshots it last synced, so the digest job can
// recompute due-ness with the client offline.
package userstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

var ErrNotFound = errors.New("user record not found")

type Repo interface {
	Keys() ([]string, error)
	Get(key string) (model.UserRecord, error)
	Set(key string, rec model.UserRecord) error
	Delete(key string) error
}

// FileRepo stores user records in one JSON file keyed by the subscription's
// derived user key.
type FileRepo struct {
	mu    sync.RWMutex
	path  string
	users map[string]model.UserRecord
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{
		path:  filepath.Join(dataDir, "users.json"),
		users: map[string]model.UserRecord{},
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
	var users map[string]model.UserRecord
	if err := json.Unmarshal(b, &users); err != nil {
		return err
	}
	if users == nil {
		users = map[string]model.UserRecord{}
	}
	r.users = users
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.users, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) Keys() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.users))
	for k := range r.users {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *FileRepo) Get(key string) (model.UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.users[key]
	if !ok {
		return model.UserRecord{}, ErrNotFound
	}
	return rec, nil
}

func (r *FileRepo) Set(key string, rec model.UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[key] = rec
	return r.saveLocked()
}

func (r *FileRepo) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[key]; !ok {
		return ErrNotFound
	}
	delete(r.users, key)
	return r.saveLocked()
}
