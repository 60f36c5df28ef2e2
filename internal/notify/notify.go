package notify

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/daily-word/backend/internal/models"
)

// Notifier is a fire-and-forget notification sink. Delivery is best-effort;
// failures are logged, never propagated.
type Notifier interface {
	Notify(userID int64, title, message string)
}

// StoredNotifier persists notifications so clients can poll and mark them
// read.
type StoredNotifier struct {
	db *sql.DB
}

func NewStoredNotifier(db *sql.DB) *StoredNotifier {
	return &StoredNotifier{db: db}
}

func (n *StoredNotifier) Notify(userID int64, title, message string) {
	_, err := n.db.Exec(
		`INSERT INTO notifications (user_id, title, message) VALUES ($1, $2, $3)`,
		userID, title, message,
	)
	if err != nil {
		log.Printf("[notify] failed to store notification for user %d: %v", userID, err)
	}
}

// Unread returns the user's unread notifications, newest first.
func (n *StoredNotifier) Unread(userID int64) ([]models.Notification, error) {
	rows, err := n.db.Query(
		`SELECT id, user_id, title, message, read, created_at
		 FROM notifications
		 WHERE user_id = $1 AND read = FALSE
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var m models.Notification
		if err := rows.Scan(&m.ID, &m.UserID, &m.Title, &m.Message, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, m)
	}
	return notifications, rows.Err()
}

// MarkRead marks one of the user's notifications as read.
func (n *StoredNotifier) MarkRead(notificationID, userID int64) error {
	res, err := n.db.Exec(
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if count, _ := res.RowsAffected(); count == 0 {
		return fmt.Errorf("notification not found")
	}
	return nil
}

// LogNotifier writes notifications to the process log. Used when no database
// is available and in tests.
type LogNotifier struct{}

func (LogNotifier) Notify(userID int64, title, message string) {
	log.Printf("[notify] user %d: %s: %s", userID, title, message)
}
