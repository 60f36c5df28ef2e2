package models

import "time"

// ── Request bodies ────────────────────────────────────────

type MarkUsedRequest struct {
	Sentence string `json:"sentence"`
}

type NoteRequest struct {
	WordIndex int    `json:"word_index"`
	Note      string `json:"note"`
}

type FavoriteRequest struct {
	WordIndex int `json:"word_index"`
}

type ReviewRequest struct {
	WordIndex int `json:"word_index"`
}

type DetectRequest struct {
	WordIndex int    `json:"word_index"`
	URL       string `json:"url"`
	Context   string `json:"context"`
}

type ScanRequest struct {
	Text string `json:"text"`
}

type RemindersRequest struct {
	Reminders ReminderSettings `json:"reminders"`
}

// ── Responses ─────────────────────────────────────────────

// TodayResponse is the popup's view: the current word plus the progress
// fields it renders.
type TodayResponse struct {
	Word            WordEntry        `json:"word"`
	WordIndex       int              `json:"word_index"`
	DayKey          string           `json:"day_key"`
	UsedToday       bool             `json:"used_today"`
	Streak          int              `json:"streak"`
	Points          int              `json:"points"`
	WeeklyChallenge *WeeklyChallenge `json:"weekly_challenge,omitempty"`
}

type MarkUsedResponse struct {
	Streak               int      `json:"streak"`
	PointsAwarded        int      `json:"points_awarded"`
	Points               int      `json:"points"`
	AchievementsUnlocked []string `json:"achievements_unlocked"`
	ChallengeCompleted   bool     `json:"challenge_completed"`
}

type StatsSummary struct {
	Streak       int `json:"streak"`
	Points       int `json:"points"`
	WordsLearned int `json:"words_learned"`
	WordsUsed    int `json:"words_used"`
	Achievements int `json:"achievements"`
}

// ExportData is the on-demand JSON snapshot of a user's progress.
type ExportData struct {
	ExportDate   time.Time            `json:"export_date"`
	Stats        StatsSummary         `json:"stats"`
	WordHistory  []ExportHistoryEntry `json:"word_history"`
	Achievements []AchievementUnlock  `json:"achievements"`
}

// ExportHistoryEntry is a history entry with the word text resolved from the
// catalog.
type ExportHistoryEntry struct {
	Word         string `json:"word"`
	DateShown    string `json:"date_shown"`
	WasUsed      bool   `json:"was_used"`
	IsFavorite   bool   `json:"is_favorite"`
	Notes        string `json:"notes,omitempty"`
	UserSentence string `json:"user_sentence,omitempty"`
}
