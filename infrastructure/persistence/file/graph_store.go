package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/xinran093/synthesisAI-V2/pkg/errors"
)

// GraphStore persists the last-saved graph/corpus snapshot. Save overwrites
// prior state; Load of a never-written store yields an empty object.
type GraphStore struct {
	path string
	mu   sync.Mutex
}

// NewGraphStore creates a snapshot store at path, creating parent
// directories as needed.
func NewGraphStore(path string) (*GraphStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating snapshot directory")
	}
	return &GraphStore{path: path}, nil
}

// Save overwrites the snapshot. The write goes through a temp file and a
// rename so a crash never leaves a half-written snapshot behind.
func (s *GraphStore) Save(ctx context.Context, snapshot json.RawMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, snapshot, 0o644); err != nil {
		return errors.Wrap(err, "writing snapshot")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replacing snapshot")
	}
	return nil
}

// Load returns the last-saved snapshot, or an empty JSON object when nothing
// has ever been saved.
func (s *GraphStore) Load(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return json.RawMessage(`{}`), nil
		}
		return nil, errors.Wrap(err, "reading snapshot")
	}
	if len(data) == 0 || !json.Valid(data) {
		return json.RawMessage(`{}`), nil
	}
	return json.RawMessage(data), nil
}
