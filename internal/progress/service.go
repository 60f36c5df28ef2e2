package progress

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/daily-word/backend/internal/achievements"
	"github.com/daily-word/backend/internal/catalog"
	"github.com/daily-word/backend/internal/models"
	"github.com/daily-word/backend/internal/notify"
	"github.com/daily-word/backend/internal/rotation"
)

var (
	ErrInvalidSentence = errors.New("sentence does not contain today's word")
	ErrWordNeverShown  = errors.New("word has not been shown yet")
	ErrWordOutOfRange  = errors.New("word index out of range")
)

// Service owns all reads and writes of ProgressState. Every operation is a
// full read-modify-write cycle against the store; the mutex keeps cycles from
// different surfaces (popup, content script, scheduler) from interleaving.
type Service struct {
	mu       sync.Mutex
	store    Store
	catalog  *catalog.Catalog
	notifier notify.Notifier
	now      func() time.Time
}

func NewService(store Store, cat *catalog.Catalog, notifier notify.Notifier) *Service {
	return &Service{
		store:    store,
		catalog:  cat,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) today() string {
	return rotation.DayKey(s.now())
}

// ── Rotation ──────────────────────────────────────────────

// RotateIfNeeded runs the day-boundary state machine for one user. Safe to
// call any number of times per day.
func (s *Service) RotateIfNeeded(userID int64) (rotation.RotateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotateLocked(userID)
}

func (s *Service) rotateLocked(userID int64) (rotation.RotateResult, error) {
	state, err := s.store.Get(userID)
	if err != nil {
		return rotation.RotateResult{}, err
	}
	res := rotation.RotateIfNeeded(state, s.today(), s.catalog.Count())
	if !res.Initialized && !res.Rotated {
		return res, nil
	}
	if err := s.store.Put(userID, state); err != nil {
		return res, err
	}
	return res, nil
}

// RotateAll sweeps every known user across the day boundary. The scheduler
// calls this at the rotation slot and once at startup.
func (s *Service) RotateAll() {
	ids, err := s.store.ListUserIDs()
	if err != nil {
		log.Printf("[progress] rotation sweep: list users: %v", err)
		return
	}
	for _, id := range ids {
		if _, err := s.RotateIfNeeded(id); err != nil {
			log.Printf("[progress] rotation sweep: user %d: %v", id, err)
		}
	}
}

// ── Read surfaces ─────────────────────────────────────────

// State returns the user's full progress state, rotating first so the
// snapshot is never from a previous day.
func (s *Service) State(userID int64) (*models.ProgressState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.rotateLocked(userID); err != nil {
		return nil, err
	}
	return s.store.Get(userID)
}

// Today returns the popup view: the current word and the progress around it.
func (s *Service) Today(userID int64) (*models.TodayResponse, error) {
	state, err := s.State(userID)
	if err != nil {
		return nil, err
	}
	word, ok := s.catalog.Word(state.CurrentWordIndex)
	if !ok {
		return nil, fmt.Errorf("current word index %d out of range", state.CurrentWordIndex)
	}
	return &models.TodayResponse{
		Word:            word,
		WordIndex:       state.CurrentWordIndex,
		DayKey:          state.CurrentDayKey,
		UsedToday:       state.UsedToday,
		Streak:          state.Streak,
		Points:          state.Points,
		WeeklyChallenge: state.WeeklyChallenge,
	}, nil
}

// ── Mark used ─────────────────────────────────────────────

// MarkUsed validates the sentence against today's word, then runs the streak
// and points update, the weekly challenge increment, and the achievement
// evaluation.
func (s *Service) MarkUsed(userID int64, sentence string) (*models.MarkUsedResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.rotateLocked(userID); err != nil {
		return nil, err
	}
	state, err := s.store.Get(userID)
	if err != nil {
		return nil, err
	}

	word, ok := s.catalog.Word(state.CurrentWordIndex)
	if !ok {
		return nil, fmt.Errorf("current word index %d out of range", state.CurrentWordIndex)
	}
	if !rotation.ContainsWholeWord(sentence, word.Word) {
		return nil, ErrInvalidSentence
	}

	today := s.today()
	used := rotation.MarkUsed(state, today, sentence)
	challengeDone := rotation.IncrementChallenge(state, today)
	unlocked := s.applyAchievements(state)

	if err := s.store.Put(userID, state); err != nil {
		return nil, err
	}

	if challengeDone {
		s.notifier.Notify(userID, "Weekly Challenge Complete!",
			fmt.Sprintf("You used %d words this week! +%d points", rotation.ChallengeGoal, rotation.PointsChallenge))
	}
	s.notifyUnlocks(userID, unlocked)
	if state.NotificationsEnabled {
		s.notifier.Notify(userID, "Word Used!",
			fmt.Sprintf("+%d points (streak %d)", used.PointsAwarded, state.Streak))
	}

	return &models.MarkUsedResponse{
		Streak:               state.Streak,
		PointsAwarded:        used.PointsAwarded,
		Points:               state.Points,
		AchievementsUnlocked: unlocked,
		ChallengeCompleted:   challengeDone,
	}, nil
}

// ── Secondary operations ──────────────────────────────────

// Detect logs an auto-detected usage observed by the text scanner.
func (s *Service) Detect(userID int64, wordIndex int, url, context string) error {
	if _, ok := s.catalog.Word(wordIndex); !ok {
		return ErrWordOutOfRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Get(userID)
	if err != nil {
		return err
	}
	rotation.Detect(state, wordIndex, s.today(), url, context)
	unlocked := s.applyAchievements(state)
	if err := s.store.Put(userID, state); err != nil {
		return err
	}
	s.notifyUnlocks(userID, unlocked)
	return nil
}

func (s *Service) AddNote(userID int64, wordIndex int, note string) error {
	return s.mutateHistory(userID, func(state *models.ProgressState) bool {
		return rotation.AddNote(state, wordIndex, note)
	})
}

func (s *Service) ToggleFavorite(userID int64, wordIndex int) (favorite bool, err error) {
	err = s.mutateHistory(userID, func(state *models.ProgressState) bool {
		var ok bool
		favorite, ok = rotation.ToggleFavorite(state, wordIndex)
		return ok
	})
	return favorite, err
}

func (s *Service) Review(userID int64, wordIndex int) error {
	return s.mutateHistory(userID, func(state *models.ProgressState) bool {
		return rotation.Review(state, wordIndex, s.today())
	})
}

// mutateHistory runs a history-entry mutation inside one locked
// read-modify-write cycle, then re-evaluates achievements.
func (s *Service) mutateHistory(userID int64, op func(*models.ProgressState) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Get(userID)
	if err != nil {
		return err
	}
	if !op(state) {
		return ErrWordNeverShown
	}
	unlocked := s.applyAchievements(state)
	if err := s.store.Put(userID, state); err != nil {
		return err
	}
	s.notifyUnlocks(userID, unlocked)
	return nil
}

// SetReminders stores the user's reminder settings.
func (s *Service) SetReminders(userID int64, reminders models.ReminderSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Get(userID)
	if err != nil {
		return err
	}
	state.Reminders = reminders
	return s.store.Put(userID, state)
}

// Scan returns whole-word matches of the user's learned vocabulary in free
// text.
func (s *Service) Scan(userID int64, text string) ([]rotation.Match, error) {
	state, err := s.State(userID)
	if err != nil {
		return nil, err
	}
	indices := make([]int, 0, len(state.WordHistory)+1)
	for _, h := range state.WordHistory {
		indices = append(indices, h.WordIndex)
	}
	indices = append(indices, state.CurrentWordIndex)
	return rotation.FindMatches(text, s.catalog.WordTexts(indices)), nil
}

// ── Export / reset ────────────────────────────────────────

// Export returns the user's progress snapshot with word texts resolved.
func (s *Service) Export(userID int64) (*models.ExportData, error) {
	state, err := s.State(userID)
	if err != nil {
		return nil, err
	}

	stats := achievements.StatsFrom(state)
	export := &models.ExportData{
		ExportDate: s.now(),
		Stats: models.StatsSummary{
			Streak:       state.Streak,
			Points:       state.Points,
			WordsLearned: len(state.WordHistory),
			WordsUsed:    stats.WordsUsed,
			Achievements: len(state.Achievements),
		},
		WordHistory:  []models.ExportHistoryEntry{},
		Achievements: state.Achievements,
	}
	for _, h := range state.WordHistory {
		word, _ := s.catalog.Word(h.WordIndex)
		export.WordHistory = append(export.WordHistory, models.ExportHistoryEntry{
			Word:         word.Word,
			DateShown:    h.DateShown,
			WasUsed:      h.WasUsed,
			IsFavorite:   h.IsFavorite,
			Notes:        h.Notes,
			UserSentence: h.UserSentence,
		})
	}
	return export, nil
}

// Reset reinitializes the user to defaults. Explicitly user-triggered; the
// next read starts a fresh rotation.
func (s *Service) Reset(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Clear(userID)
}

// AchievementView is one achievement definition with the user's unlock
// state.
type AchievementView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`
}

// Achievements returns every known achievement, unlocked ones first, each
// with its unlock timestamp when earned.
func (s *Service) Achievements(userID int64) ([]AchievementView, error) {
	state, err := s.State(userID)
	if err != nil {
		return nil, err
	}

	unlockedAt := make(map[string]time.Time, len(state.Achievements))
	for _, a := range state.Achievements {
		unlockedAt[a.ID] = a.UnlockedAt
	}

	views := make([]AchievementView, 0, len(achievements.All))
	for id, def := range achievements.All {
		v := AchievementView{ID: id, Name: def.Name, Description: def.Description, Icon: def.Icon}
		if t, ok := unlockedAt[id]; ok {
			v.UnlockedAt = &t
		}
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		iUnlocked, jUnlocked := views[i].UnlockedAt != nil, views[j].UnlockedAt != nil
		if iUnlocked != jUnlocked {
			return iUnlocked
		}
		return views[i].ID < views[j].ID
	})
	return views, nil
}

// ── Reminders sweep (called by the scheduler) ─────────────

// SendReminders delivers due morning and evening reminders for the given
// local hour.
func (s *Service) SendReminders(hour int) {
	ids, err := s.store.ListUserIDs()
	if err != nil {
		log.Printf("[progress] reminder sweep: list users: %v", err)
		return
	}
	for _, id := range ids {
		state, err := s.store.Get(id)
		if err != nil {
			log.Printf("[progress] reminder sweep: user %d: %v", id, err)
			continue
		}
		word, _ := s.catalog.Word(state.CurrentWordIndex)

		if state.Reminders.MorningReminder && reminderHour(state.Reminders.MorningTime) == hour {
			s.notifier.Notify(id, "Good Morning!",
				fmt.Sprintf("Today's word is %q. Open Daily Word to learn it!", word.Word))
		}
		if state.Reminders.EveningReminder && reminderHour(state.Reminders.EveningTime) == hour && !state.UsedToday {
			s.notifier.Notify(id, "Don't Forget!",
				fmt.Sprintf("You haven't used %q today. Keep your streak going!", word.Word))
		}
	}
}

func reminderHour(hhmm string) int {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return -1
	}
	return h
}

// ── Achievements ──────────────────────────────────────────

// applyAchievements evaluates the predicates against the current state and
// unlocks anything new, crediting the one-time bonus per unlock.
func (s *Service) applyAchievements(state *models.ProgressState) []string {
	unlocked := make(map[string]bool, len(state.Achievements))
	for _, a := range state.Achievements {
		unlocked[a.ID] = true
	}

	earned := achievements.Evaluate(achievements.StatsFrom(state), unlocked)
	for _, id := range earned {
		state.Achievements = append(state.Achievements, models.AchievementUnlock{
			ID:         id,
			UnlockedAt: s.now(),
		})
		state.Points += achievements.PointsPerUnlock
	}
	return earned
}

func (s *Service) notifyUnlocks(userID int64, ids []string) {
	if len(ids) == 0 {
		return
	}
	// Notify for the first new achievement only, as a single unlock toast.
	if def, ok := achievements.All[ids[0]]; ok {
		s.notifier.Notify(userID, fmt.Sprintf("%s Achievement Unlocked!", def.Icon),
			fmt.Sprintf("%s: %s", def.Name, def.Description))
	}
}
