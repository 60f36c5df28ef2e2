package progress

import (
	"log"

	"github.com/daily-word/backend/internal/models"
)

// Fallback chains a primary store with a secondary one. A failed write is
// retried once against the secondary; only when both fail does the operation
// surface an error, leaving the last successfully persisted state in place.
// Reads prefer the primary.
type Fallback struct {
	primary   Store
	secondary Store
}

func NewFallback(primary, secondary Store) *Fallback {
	return &Fallback{primary: primary, secondary: secondary}
}

func (f *Fallback) Get(userID int64) (*models.ProgressState, error) {
	state, err := f.primary.Get(userID)
	if err == nil {
		return state, nil
	}
	log.Printf("[progress] primary read failed for user %d, trying fallback: %v", userID, err)
	return f.secondary.Get(userID)
}

func (f *Fallback) Put(userID int64, state *models.ProgressState) error {
	err := f.primary.Put(userID, state)
	if err == nil {
		return nil
	}
	log.Printf("[progress] primary write failed for user %d, trying fallback: %v", userID, err)
	return f.secondary.Put(userID, state)
}

func (f *Fallback) Clear(userID int64) error {
	errPrimary := f.primary.Clear(userID)
	errSecondary := f.secondary.Clear(userID)
	if errPrimary != nil {
		return errPrimary
	}
	return errSecondary
}

func (f *Fallback) ListUserIDs() ([]int64, error) {
	ids, err := f.primary.ListUserIDs()
	if err == nil {
		return ids, nil
	}
	log.Printf("[progress] primary list failed, trying fallback: %v", err)
	return f.secondary.ListUserIDs()
}
