package progress

// Store persists one ProgressState per user. Get returns a default state for
// users with no saved record; Clear reinitializes a user to defaults.
//
// Implementations are not required to be atomic across Get/Put; the Service
// serializes its read-modify-write cycles so a profile has at most one writer
// at a time.

import "github.com/daily-word/backend/internal/models"

type Store interface {
	Get(userID int64) (*models.ProgressState, error)
	Put(userID int64, state *models.ProgressState) error
	Clear(userID int64) error
	ListUserIDs() ([]int64, error)
}
