package models

import "time"

// ── Progress State ────────────────────────────────────────

// ProgressState is the sole mutable entity, one per user. Every field is
// mutated exclusively through the rotation, mark-used, and achievement
// operations; the store persists it as a whole.
type ProgressState struct {
	CurrentDayKey    string `json:"current_day_key"`
	CurrentWordIndex int    `json:"current_word_index"`
	UsedToday        bool   `json:"used_today"`
	ShuffledOrder    []int  `json:"shuffled_order"`
	Pointer          int    `json:"pointer"`

	Streak      int    `json:"streak"`
	LastUsedDay string `json:"last_used_day,omitempty"`
	Points      int    `json:"points"`

	WordHistory         []WordHistoryEntry  `json:"word_history"`
	Achievements        []AchievementUnlock `json:"achievements"`
	WeeklyChallenge     *WeeklyChallenge    `json:"weekly_challenge,omitempty"`
	ChallengesCompleted int                 `json:"challenges_completed"`
	UsageDays           []string            `json:"usage_days"`
	AutoDetectedUsages  []AutoDetectedUsage `json:"auto_detected_usages"`

	NotificationsEnabled bool             `json:"notifications_enabled"`
	Reminders            ReminderSettings `json:"reminders"`
}

// WordHistoryEntry tracks one word shown to the user. Uniqueness key is
// (WordIndex, DateShown).
type WordHistoryEntry struct {
	WordIndex      int    `json:"word_index"`
	DateShown      string `json:"date_shown"`
	WasUsed        bool   `json:"was_used"`
	Notes          string `json:"notes,omitempty"`
	IsFavorite     bool   `json:"is_favorite"`
	ReviewCount    int    `json:"review_count"`
	NextReviewDate string `json:"next_review_date,omitempty"`
	UserSentence   string `json:"user_sentence,omitempty"`
}

// AchievementUnlock records an unlocked achievement. Membership is monotonic;
// entries are never removed.
type AchievementUnlock struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// WeeklyChallenge is the recurring use-N-words goal, keyed to the Monday of
// the ISO week.
type WeeklyChallenge struct {
	WeekStart string `json:"week_start"`
	Goal      int    `json:"goal"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// AutoDetectedUsage is one passively observed use of a vocabulary word.
type AutoDetectedUsage struct {
	WordIndex int    `json:"word_index"`
	Date      string `json:"date"`
	URL       string `json:"url"`
	Context   string `json:"context"`
}

type ReminderSettings struct {
	MorningReminder bool   `json:"morning_reminder"`
	MorningTime     string `json:"morning_time"`
	EveningReminder bool   `json:"evening_reminder"`
	EveningTime     string `json:"evening_time"`
}

// DefaultProgressState returns the state a fresh user starts from.
func DefaultProgressState() *ProgressState {
	return &ProgressState{
		ShuffledOrder:      []int{},
		WordHistory:        []WordHistoryEntry{},
		Achievements:       []AchievementUnlock{},
		UsageDays:          []string{},
		AutoDetectedUsages: []AutoDetectedUsage{},

		NotificationsEnabled: true,
		Reminders: ReminderSettings{
			MorningTime: "08:00",
			EveningTime: "20:00",
		},
	}
}

// HistoryEntry returns the history entry for (wordIndex, dateShown), or nil.
func (p *ProgressState) HistoryEntry(wordIndex int, dateShown string) *WordHistoryEntry {
	for i := range p.WordHistory {
		if p.WordHistory[i].WordIndex == wordIndex && p.WordHistory[i].DateShown == dateShown {
			return &p.WordHistory[i]
		}
	}
	return nil
}

// HistoryEntryByWord returns the most recent history entry for a word
// regardless of the date shown, or nil.
func (p *ProgressState) HistoryEntryByWord(wordIndex int) *WordHistoryEntry {
	for i := len(p.WordHistory) - 1; i >= 0; i-- {
		if p.WordHistory[i].WordIndex == wordIndex {
			return &p.WordHistory[i]
		}
	}
	return nil
}

// HasAchievement reports whether the achievement ID is already unlocked.
func (p *ProgressState) HasAchievement(id string) bool {
	for _, a := range p.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Notification is a stored, fire-and-forget message for the user. The client
// polls and marks them read; delivery is not guaranteed.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
