package progress

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daily-word/backend/internal/models"
)

func TestJSONStore(t *testing.T) {
	store, err := NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	// Unknown users read back as defaults.
	state, err := store.Get(1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if state.Points != 0 || len(state.ShuffledOrder) != 0 {
		t.Errorf("default state = %+v", state)
	}

	state.Points = 120
	state.Streak = 4
	state.ShuffledOrder = []int{2, 0, 1}
	state.WordHistory = []models.WordHistoryEntry{{WordIndex: 2, DateShown: "2026-03-02", WasUsed: true}}
	if err := store.Put(1, state); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(1)
	if err != nil {
		t.Fatalf("Get after Put: %v", err)
	}
	if got.Points != 120 || got.Streak != 4 {
		t.Errorf("got points=%d streak=%d", got.Points, got.Streak)
	}
	if len(got.ShuffledOrder) != 3 || got.ShuffledOrder[0] != 2 {
		t.Errorf("shuffledOrder = %v", got.ShuffledOrder)
	}
	if len(got.WordHistory) != 1 || !got.WordHistory[0].WasUsed {
		t.Errorf("wordHistory = %+v", got.WordHistory)
	}

	if err := store.Clear(1); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	got, err = store.Get(1)
	if err != nil {
		t.Fatalf("Get after Clear: %v", err)
	}
	if got.Points != 0 {
		t.Errorf("state survived Clear: %+v", got)
	}
	// Clearing an absent user is not an error.
	if err := store.Clear(42); err != nil {
		t.Errorf("Clear absent user: %v", err)
	}
}

func TestJSONStore_ListUserIDs(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	for _, id := range []int64{3, 7, 11} {
		if err := store.Put(id, models.DefaultProgressState()); err != nil {
			t.Fatalf("Put(%d): %v", id, err)
		}
	}
	// Stray files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bogus.json"), []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	ids, err := store.ListUserIDs()
	if err != nil {
		t.Fatalf("ListUserIDs: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("ids = %v, want 3 entries", ids)
	}
	seen := map[int64]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	for _, want := range []int64{3, 7, 11} {
		if !seen[want] {
			t.Errorf("missing user %d in %v", want, ids)
		}
	}
}

func TestJSONStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewJSONStore(dir)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "5.json"), []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(5); err == nil {
		t.Error("corrupt file should error")
	}
}
