package progress

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/daily-word/backend/internal/models"
)

// PostgresStore keeps progress in the progress table: scalar fields as
// columns, collections as JSONB.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(userID int64) (*models.ProgressState, error) {
	_, err := s.db.Exec(
		`INSERT INTO progress (user_id) VALUES ($1)
		 ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert progress: %w", err)
	}

	state := models.DefaultProgressState()
	var (
		lastUsedDay     sql.NullString
		shuffledOrder   []byte
		wordHistory     []byte
		achievementsRaw []byte
		weeklyChallenge []byte
		usageDays       []byte
		autoDetected    []byte
		reminders       []byte
	)
	err = s.db.QueryRow(
		`SELECT current_day_key, current_word_index, used_today, shuffled_order, pointer,
		        streak, last_used_day, points,
		        word_history, achievements, weekly_challenge, challenges_completed,
		        usage_days, auto_detected_usages,
		        notifications_enabled, reminders
		 FROM progress WHERE user_id = $1`,
		userID,
	).Scan(&state.CurrentDayKey, &state.CurrentWordIndex, &state.UsedToday, &shuffledOrder, &state.Pointer,
		&state.Streak, &lastUsedDay, &state.Points,
		&wordHistory, &achievementsRaw, &weeklyChallenge, &state.ChallengesCompleted,
		&usageDays, &autoDetected,
		&state.NotificationsEnabled, &reminders)
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}

	state.LastUsedDay = lastUsedDay.String

	for _, col := range []struct {
		raw []byte
		dst interface{}
	}{
		{shuffledOrder, &state.ShuffledOrder},
		{wordHistory, &state.WordHistory},
		{achievementsRaw, &state.Achievements},
		{usageDays, &state.UsageDays},
		{autoDetected, &state.AutoDetectedUsages},
		{reminders, &state.Reminders},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("decode progress column: %w", err)
		}
	}
	if len(weeklyChallenge) > 0 {
		var ch models.WeeklyChallenge
		if err := json.Unmarshal(weeklyChallenge, &ch); err != nil {
			return nil, fmt.Errorf("decode weekly challenge: %w", err)
		}
		state.WeeklyChallenge = &ch
	}

	return state, nil
}

func (s *PostgresStore) Put(userID int64, state *models.ProgressState) error {
	cols, err := encodeCollections(state)
	if err != nil {
		return err
	}

	var lastUsedDay sql.NullString
	if state.LastUsedDay != "" {
		lastUsedDay = sql.NullString{String: state.LastUsedDay, Valid: true}
	}

	_, err = s.db.Exec(
		`INSERT INTO progress (user_id, current_day_key, current_word_index, used_today,
		    shuffled_order, pointer, streak, last_used_day, points,
		    word_history, achievements, weekly_challenge, challenges_completed,
		    usage_days, auto_detected_usages, notifications_enabled, reminders, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW())
		 ON CONFLICT (user_id) DO UPDATE SET
		    current_day_key = $2, current_word_index = $3, used_today = $4,
		    shuffled_order = $5, pointer = $6, streak = $7, last_used_day = $8, points = $9,
		    word_history = $10, achievements = $11, weekly_challenge = $12, challenges_completed = $13,
		    usage_days = $14, auto_detected_usages = $15, notifications_enabled = $16, reminders = $17,
		    updated_at = NOW()`,
		userID, state.CurrentDayKey, state.CurrentWordIndex, state.UsedToday,
		cols.shuffledOrder, state.Pointer, state.Streak, lastUsedDay, state.Points,
		cols.wordHistory, cols.achievements, cols.weeklyChallenge, state.ChallengesCompleted,
		cols.usageDays, cols.autoDetected, state.NotificationsEnabled, cols.reminders,
	)
	if err != nil {
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) Clear(userID int64) error {
	if _, err := s.db.Exec(`DELETE FROM progress WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListUserIDs() ([]int64, error) {
	rows, err := s.db.Query(`SELECT user_id FROM progress ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("list progress users: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

type encodedCollections struct {
	shuffledOrder   []byte
	wordHistory     []byte
	achievements    []byte
	weeklyChallenge interface{} // nil maps to SQL NULL
	usageDays       []byte
	autoDetected    []byte
	reminders       []byte
}

func encodeCollections(state *models.ProgressState) (*encodedCollections, error) {
	var c encodedCollections
	var err error

	if c.shuffledOrder, err = json.Marshal(state.ShuffledOrder); err != nil {
		return nil, fmt.Errorf("encode shuffled order: %w", err)
	}
	if c.wordHistory, err = json.Marshal(state.WordHistory); err != nil {
		return nil, fmt.Errorf("encode word history: %w", err)
	}
	if c.achievements, err = json.Marshal(state.Achievements); err != nil {
		return nil, fmt.Errorf("encode achievements: %w", err)
	}
	if c.usageDays, err = json.Marshal(state.UsageDays); err != nil {
		return nil, fmt.Errorf("encode usage days: %w", err)
	}
	if c.autoDetected, err = json.Marshal(state.AutoDetectedUsages); err != nil {
		return nil, fmt.Errorf("encode auto-detected usages: %w", err)
	}
	if c.reminders, err = json.Marshal(state.Reminders); err != nil {
		return nil, fmt.Errorf("encode reminders: %w", err)
	}
	if state.WeeklyChallenge != nil {
		raw, err := json.Marshal(state.WeeklyChallenge)
		if err != nil {
			return nil, fmt.Errorf("encode weekly challenge: %w", err)
		}
		c.weeklyChallenge = raw
	}
	return &c, nil
}
