package rotation

import "github.com/daily-word/backend/internal/models"

// Points awarded for each action.
const (
	PointsMarkUsed       = 10
	PointsStreakBonus    = 5 // per streak day, capped
	StreakBonusCap       = 30
	PointsAutoDetect     = 15
	PointsAddNote        = 5
	PointsCompleteReview = 10
	PointsChallenge      = 50

	ChallengeGoal = 5
)

// RotateResult reports what a RotateIfNeeded call did.
type RotateResult struct {
	Initialized bool
	Rotated     bool
	Reshuffled  bool
}

// RotateIfNeeded advances the state machine across a day boundary. It is
// idempotent within a day: a second call with the same today key is a no-op.
// A multi-day gap consumes exactly one rotation step, not one per elapsed
// day.
func RotateIfNeeded(state *models.ProgressState, today string, wordCount int) RotateResult {
	if len(state.ShuffledOrder) == 0 || len(state.ShuffledOrder) != wordCount {
		// Uninitialized, or the catalog changed size: start over with a
		// fresh permutation.
		state.ShuffledOrder = Permutation(wordCount)
		state.Pointer = 0
		state.CurrentDayKey = today
		state.UsedToday = false
		if wordCount > 0 {
			state.CurrentWordIndex = state.ShuffledOrder[0]
		} else {
			state.CurrentWordIndex = 0
		}
		return RotateResult{Initialized: true}
	}

	if state.CurrentDayKey == today {
		return RotateResult{}
	}

	res := RotateResult{Rotated: true}

	state.Pointer = (state.Pointer + 1) % wordCount
	if state.Pointer == 0 {
		// Completed a full cycle through the catalog.
		state.ShuffledOrder = Permutation(wordCount)
		res.Reshuffled = true
	}

	// Streak decay from inactivity. Continuation on actual use is handled by
	// MarkUsed.
	if state.LastUsedDay != "" && DaysBetween(state.LastUsedDay, today) > 1 {
		state.Streak = 0
	}

	archiveWord(state, state.CurrentWordIndex, state.CurrentDayKey, state.UsedToday)

	state.CurrentDayKey = today
	state.CurrentWordIndex = state.ShuffledOrder[state.Pointer]
	state.UsedToday = false

	RefreshChallenge(state, today)

	return res
}

// archiveWord records the outgoing word in history unless an entry for
// (wordIndex, dateShown) already exists.
func archiveWord(state *models.ProgressState, wordIndex int, dateShown string, wasUsed bool) {
	if state.HistoryEntry(wordIndex, dateShown) != nil {
		return
	}
	state.WordHistory = append(state.WordHistory, models.WordHistoryEntry{
		WordIndex: wordIndex,
		DateShown: dateShown,
		WasUsed:   wasUsed,
	})
}

// MarkUsedResult reports the points breakdown of a MarkUsed call.
type MarkUsedResult struct {
	PointsAwarded int
	StreakBonus   int
}

// MarkUsed records that today's word was used in a sentence. The caller must
// have validated the sentence with ContainsWholeWord first; this function
// does not re-validate.
func MarkUsed(state *models.ProgressState, today, sentence string) MarkUsedResult {
	switch {
	case state.LastUsedDay == "":
		state.Streak = 1
	case DaysBetween(state.LastUsedDay, today) == 1:
		state.Streak++
	case state.LastUsedDay != today:
		state.Streak = 1
	}
	// Already used today: streak unchanged.

	bonus := state.Streak
	if bonus > StreakBonusCap {
		bonus = StreakBonusCap
	}
	bonus *= PointsStreakBonus
	awarded := PointsMarkUsed + bonus
	state.Points += awarded

	state.UsedToday = true
	state.LastUsedDay = today
	appendUsageDay(state, today)

	if entry := state.HistoryEntry(state.CurrentWordIndex, state.CurrentDayKey); entry != nil {
		entry.WasUsed = true
		entry.UserSentence = sentence
	} else {
		state.WordHistory = append(state.WordHistory, models.WordHistoryEntry{
			WordIndex:    state.CurrentWordIndex,
			DateShown:    state.CurrentDayKey,
			WasUsed:      true,
			UserSentence: sentence,
		})
	}

	return MarkUsedResult{PointsAwarded: awarded, StreakBonus: bonus}
}

func appendUsageDay(state *models.ProgressState, day string) {
	for _, d := range state.UsageDays {
		if d == day {
			return
		}
	}
	state.UsageDays = append(state.UsageDays, day)
}

// ── Weekly challenge ──────────────────────────────────────

// RefreshChallenge replaces the weekly challenge when none exists or the
// stored one belongs to a previous ISO week.
func RefreshChallenge(state *models.ProgressState, today string) {
	week := weekStartOfKey(today)
	if state.WeeklyChallenge != nil && state.WeeklyChallenge.WeekStart == week {
		return
	}
	state.WeeklyChallenge = &models.WeeklyChallenge{
		WeekStart: week,
		Goal:      ChallengeGoal,
	}
}

// IncrementChallenge bumps this week's progress and reports whether the
// challenge was completed by this call. The completion bonus is credited
// exactly once.
func IncrementChallenge(state *models.ProgressState, today string) bool {
	if state.WeeklyChallenge == nil {
		RefreshChallenge(state, today)
	}
	ch := state.WeeklyChallenge
	if ch.Completed {
		return false
	}
	ch.Progress++
	if ch.Progress >= ch.Goal {
		ch.Completed = true
		state.ChallengesCompleted++
		state.Points += PointsChallenge
		return true
	}
	return false
}

func weekStartOfKey(key string) string {
	t, err := ParseDayKey(key)
	if err != nil {
		return key
	}
	return WeekStart(t)
}

// ── Secondary operations ──────────────────────────────────

// Detect logs a passively observed usage. If the detected word is today's
// word and it has not been used yet, the day counts as used, though the
// streak itself only moves on an explicit MarkUsed.
func Detect(state *models.ProgressState, wordIndex int, today, url, context string) {
	state.AutoDetectedUsages = append(state.AutoDetectedUsages, models.AutoDetectedUsage{
		WordIndex: wordIndex,
		Date:      today,
		URL:       url,
		Context:   context,
	})
	state.Points += PointsAutoDetect

	if wordIndex == state.CurrentWordIndex && !state.UsedToday {
		state.UsedToday = true
		state.LastUsedDay = today
	}
}

// AddNote attaches a personal note to a word's history entry. Returns false
// when the word has never been shown.
func AddNote(state *models.ProgressState, wordIndex int, note string) bool {
	entry := state.HistoryEntryByWord(wordIndex)
	if entry == nil {
		return false
	}
	entry.Notes = note
	state.Points += PointsAddNote
	return true
}

// ToggleFavorite flips the favorite flag on a word's history entry. Returns
// the new value and false when the word has never been shown.
func ToggleFavorite(state *models.ProgressState, wordIndex int) (bool, bool) {
	entry := state.HistoryEntryByWord(wordIndex)
	if entry == nil {
		return false, false
	}
	entry.IsFavorite = !entry.IsFavorite
	return entry.IsFavorite, true
}

// Review records a spaced-repetition review: the interval to the next review
// doubles with each pass, capped at 32 days.
func Review(state *models.ProgressState, wordIndex int, today string) bool {
	entry := state.HistoryEntryByWord(wordIndex)
	if entry == nil {
		return false
	}
	entry.ReviewCount++

	interval := 1
	for i := 0; i < entry.ReviewCount && i < 5; i++ {
		interval *= 2
	}
	if t, err := ParseDayKey(today); err == nil {
		entry.NextReviewDate = DayKey(t.AddDate(0, 0, interval))
	}

	state.Points += PointsCompleteReview
	return true
}
