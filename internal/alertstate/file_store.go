package alertstate

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Arslan1Ali/Daily-Reminder/internal/model"
)

// stateKey is the single logical key the aggregate lives under.
const stateKey = "alertState"

type fileDoc struct {
	AlertState model.AlertStates `json:"alertState"`
}

// FileStore keeps the aggregate in a JSON file. Writes go through a temp
// file and rename so a crash mid-write cannot corrupt the document.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dataDir, "state.json")}, nil
}

func (s *FileStore) Get(ctx context.Context) (model.AlertStates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.AlertStates{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", stateKey, err)
	}

	var doc fileDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", stateKey, err)
	}
	if doc.AlertState == nil {
		doc.AlertState = model.AlertStates{}
	}
	return doc.AlertState, nil
}

func (s *FileStore) Set(ctx context.Context, states model.AlertStates) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := json.MarshalIndent(fileDoc{AlertState: states}, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", stateKey, err)
	}
	return os.Rename(tmp, s.path)
}
