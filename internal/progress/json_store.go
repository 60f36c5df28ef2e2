package progress

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/daily-word/backend/internal/models"
)

// JSONStore keeps one <userID>.json file per user under a directory. It
// serves as the fallback behind the Postgres store and as a standalone store
// for local development.
type JSONStore struct {
	dir string
}

func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) path(userID int64) string {
	return filepath.Join(s.dir, strconv.FormatInt(userID, 10)+".json")
}

func (s *JSONStore) Get(userID int64) (*models.ProgressState, error) {
	raw, err := os.ReadFile(s.path(userID))
	if os.IsNotExist(err) {
		return models.DefaultProgressState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	state := models.DefaultProgressState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("decode progress file: %w", err)
	}
	return state, nil
}

func (s *JSONStore) Put(userID int64, state *models.ProgressState) error {
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	// Write-then-rename so a failed write never leaves a partial state
	// visible.
	tmp := s.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write progress file: %w", err)
	}
	if err := os.Rename(tmp, s.path(userID)); err != nil {
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}

func (s *JSONStore) Clear(userID int64) error {
	err := os.Remove(s.path(userID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove progress file: %w", err)
	}
	return nil
}

func (s *JSONStore) ListUserIDs() ([]int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}
	var ids []int64
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		id, err := strconv.ParseInt(strings.TrimSuffix(name, ".json"), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
