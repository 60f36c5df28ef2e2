package progress

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/daily-word/backend/internal/catalog"
	"github.com/daily-word/backend/internal/models"
)

// memStore is an in-memory Store. Get and Put copy through JSON so the held
// state is only updated by an explicit Put, like the real stores.
type memStore struct {
	states map[int64][]byte
	putErr error
}

func newMemStore() *memStore {
	return &memStore{states: map[int64][]byte{}}
}

func (m *memStore) Get(userID int64) (*models.ProgressState, error) {
	raw, ok := m.states[userID]
	if !ok {
		return models.DefaultProgressState(), nil
	}
	state := models.DefaultProgressState()
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (m *memStore) Put(userID int64, state *models.ProgressState) error {
	if m.putErr != nil {
		return m.putErr
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.states[userID] = raw
	return nil
}

func (m *memStore) Clear(userID int64) error {
	delete(m.states, userID)
	return nil
}

func (m *memStore) ListUserIDs() ([]int64, error) {
	ids := make([]int64, 0, len(m.states))
	for id := range m.states {
		ids = append(ids, id)
	}
	return ids, nil
}

type sentNote struct {
	userID int64
	title  string
}

type recordingNotifier struct {
	sent []sentNote
}

func (n *recordingNotifier) Notify(userID int64, title, message string) {
	n.sent = append(n.sent, sentNote{userID: userID, title: title})
}

func (n *recordingNotifier) titles() []string {
	out := make([]string, len(n.sent))
	for i, s := range n.sent {
		out[i] = s.title
	}
	return out
}

func testCatalog() *catalog.Catalog {
	words := make([]models.WordEntry, 5)
	for i, w := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		words[i] = models.WordEntry{Word: w, Definition: "def " + w, Examples: []string{"example " + w}}
	}
	return catalog.FromWords(words)
}

func newTestService(t *testing.T) (*Service, *memStore, *recordingNotifier, *time.Time) {
	t.Helper()
	store := newMemStore()
	notifier := &recordingNotifier{}
	svc := NewService(store, testCatalog(), notifier)

	clock := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	return svc, store, notifier, &clock
}

func TestTodayInitializes(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if today.DayKey != "2026-03-02" {
		t.Errorf("dayKey = %q", today.DayKey)
	}
	if today.UsedToday {
		t.Error("fresh day should not be used")
	}
	if today.Word.Word == "" {
		t.Error("no word resolved")
	}
	if today.Streak != 0 || today.Points != 0 {
		t.Errorf("fresh state has streak %d, points %d", today.Streak, today.Points)
	}
}

func TestMarkUsed(t *testing.T) {
	svc, _, notifier, clock := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}

	res, err := svc.MarkUsed(1, fmt.Sprintf("I finally used %s in conversation.", today.Word.Word))
	if err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	if res.Streak != 1 {
		t.Errorf("streak = %d, want 1", res.Streak)
	}
	if res.PointsAwarded != 15 {
		t.Errorf("pointsAwarded = %d, want 15", res.PointsAwarded)
	}
	// 15 for the use plus the first_word unlock bonus.
	if res.Points != 40 {
		t.Errorf("points = %d, want 40", res.Points)
	}
	if len(res.AchievementsUnlocked) != 1 || res.AchievementsUnlocked[0] != "first_word" {
		t.Errorf("unlocked = %v, want [first_word]", res.AchievementsUnlocked)
	}
	if res.ChallengeCompleted {
		t.Error("one use should not complete the weekly challenge")
	}

	titles := notifier.titles()
	if len(titles) == 0 {
		t.Fatal("no notifications sent")
	}

	// Next day: rotation preserves the streak, a second use extends it.
	*clock = clock.AddDate(0, 0, 1)
	next, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if next.DayKey != "2026-03-03" {
		t.Errorf("dayKey = %q", next.DayKey)
	}
	if next.UsedToday {
		t.Error("usedToday should reset on rotation")
	}
	if next.Streak != 1 {
		t.Errorf("streak after rotation = %d, want 1", next.Streak)
	}

	res, err = svc.MarkUsed(1, fmt.Sprintf("Again: %s.", next.Word.Word))
	if err != nil {
		t.Fatalf("MarkUsed day 2: %v", err)
	}
	if res.Streak != 2 {
		t.Errorf("streak = %d, want 2", res.Streak)
	}
	if res.PointsAwarded != 20 {
		t.Errorf("pointsAwarded = %d, want 20", res.PointsAwarded)
	}
}

func TestMarkUsed_InvalidSentence(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	if _, err := svc.MarkUsed(1, "a sentence without the word"); !errors.Is(err, ErrInvalidSentence) {
		t.Errorf("err = %v, want ErrInvalidSentence", err)
	}

	// The failed attempt must not have persisted anything.
	state, err := svc.State(1)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.UsedToday || state.Points != 0 {
		t.Errorf("failed mark-used mutated state: used=%v points=%d", state.UsedToday, state.Points)
	}
}

func TestMarkUsed_PutFailureSurfaces(t *testing.T) {
	svc, store, _, _ := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	store.putErr = errors.New("disk full")
	if _, err := svc.MarkUsed(1, "using "+today.Word.Word+" here"); err == nil {
		t.Fatal("expected store error to surface")
	}
}

func TestHistoryOperations(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if _, err := svc.MarkUsed(1, "sentence with "+today.Word.Word); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}
	idx := today.WordIndex

	if err := svc.AddNote(1, idx, "remember this one"); err != nil {
		t.Fatalf("AddNote: %v", err)
	}
	if err := svc.AddNote(1, (idx+1)%5, "never shown"); !errors.Is(err, ErrWordNeverShown) {
		t.Errorf("AddNote on unseen word: err = %v", err)
	}

	fav, err := svc.ToggleFavorite(1, idx)
	if err != nil || !fav {
		t.Fatalf("ToggleFavorite = (%v, %v)", fav, err)
	}
	if err := svc.Review(1, idx); err != nil {
		t.Fatalf("Review: %v", err)
	}

	state, err := svc.State(1)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	entry := state.HistoryEntryByWord(idx)
	if entry == nil {
		t.Fatal("no history entry")
	}
	if entry.Notes != "remember this one" || !entry.IsFavorite || entry.ReviewCount != 1 {
		t.Errorf("entry = %+v", entry)
	}
}

func TestDetect(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	if err := svc.Detect(1, 99, "https://example.com", "ctx"); !errors.Is(err, ErrWordOutOfRange) {
		t.Errorf("Detect out of range: err = %v", err)
	}

	if err := svc.Detect(1, 2, "https://example.com", "…charlie…"); err != nil {
		t.Fatalf("Detect: %v", err)
	}
	state, err := svc.State(1)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if len(state.AutoDetectedUsages) != 1 {
		t.Fatalf("autoDetectedUsages = %d, want 1", len(state.AutoDetectedUsages))
	}
	if !state.HasAchievement("auto_detect_1") {
		t.Error("auto_detect_1 not unlocked")
	}
}

func TestScan(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}

	matches, err := svc.Scan(1, "no vocabulary here")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if matches != nil {
		t.Errorf("matches = %+v, want none", matches)
	}

	matches, err = svc.Scan(1, "spotted "+today.Word.Word+" in the wild")
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(matches) != 1 || matches[0].WordIndex != today.WordIndex {
		t.Errorf("matches = %+v", matches)
	}
}

func TestExportAndReset(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if _, err := svc.MarkUsed(1, "export test uses "+today.Word.Word); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}

	export, err := svc.Export(1)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if export.Stats.WordsUsed != 1 || export.Stats.Streak != 1 {
		t.Errorf("stats = %+v", export.Stats)
	}
	if len(export.WordHistory) != 1 || export.WordHistory[0].Word != today.Word.Word {
		t.Errorf("wordHistory = %+v", export.WordHistory)
	}

	if err := svc.Reset(1); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	state, err := svc.State(1)
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if state.Points != 0 || state.Streak != 0 || len(state.WordHistory) != 0 {
		t.Errorf("state after reset: points=%d streak=%d history=%d",
			state.Points, state.Streak, len(state.WordHistory))
	}
}

func TestAchievementsView(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}
	if _, err := svc.MarkUsed(1, "view test "+today.Word.Word); err != nil {
		t.Fatalf("MarkUsed: %v", err)
	}

	views, err := svc.Achievements(1)
	if err != nil {
		t.Fatalf("Achievements: %v", err)
	}
	if len(views) == 0 {
		t.Fatal("no achievement views")
	}
	if views[0].ID != "first_word" || views[0].UnlockedAt == nil {
		t.Errorf("views[0] = %+v, want unlocked first_word first", views[0])
	}
	for _, v := range views[1:] {
		if v.UnlockedAt != nil {
			t.Errorf("unexpected second unlock: %+v", v)
		}
	}
}

func TestSendReminders(t *testing.T) {
	svc, _, notifier, _ := newTestService(t)

	if _, err := svc.Today(1); err != nil {
		t.Fatalf("Today: %v", err)
	}
	if err := svc.SetReminders(1, models.ReminderSettings{
		MorningReminder: true,
		MorningTime:     "08:00",
		EveningReminder: true,
		EveningTime:     "20:30",
	}); err != nil {
		t.Fatalf("SetReminders: %v", err)
	}

	notifier.sent = nil
	svc.SendReminders(9)
	if len(notifier.sent) != 0 {
		t.Errorf("off-hour sweep sent %v", notifier.titles())
	}

	svc.SendReminders(8)
	if len(notifier.sent) != 1 || notifier.sent[0].title != "Good Morning!" {
		t.Errorf("morning sweep sent %v", notifier.titles())
	}

	notifier.sent = nil
	svc.SendReminders(20)
	if len(notifier.sent) != 1 || notifier.sent[0].title != "Don't Forget!" {
		t.Errorf("evening sweep sent %v", notifier.titles())
	}
}

func TestDispatch(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	today, err := svc.Today(1)
	if err != nil {
		t.Fatalf("Today: %v", err)
	}

	out, err := svc.Dispatch(Command{
		Type:     CmdMarkUsed,
		UserID:   1,
		Sentence: "dispatch test " + today.Word.Word,
	})
	if err != nil {
		t.Fatalf("Dispatch(mark_used): %v", err)
	}
	res, ok := out.(*models.MarkUsedResponse)
	if !ok {
		t.Fatalf("Dispatch(mark_used) returned %T", out)
	}
	if res.Streak != 1 {
		t.Errorf("streak = %d, want 1", res.Streak)
	}

	out, err = svc.Dispatch(Command{Type: CmdToggleFavorite, UserID: 1, WordIndex: today.WordIndex})
	if err != nil {
		t.Fatalf("Dispatch(toggle_favorite): %v", err)
	}
	if m, ok := out.(map[string]bool); !ok || !m["is_favorite"] {
		t.Errorf("Dispatch(toggle_favorite) = %v", out)
	}

	if _, err := svc.Dispatch(Command{Type: CommandType(99), UserID: 1}); err == nil {
		t.Error("unknown command should error")
	}
}

func TestRotateAll(t *testing.T) {
	svc, store, _, clock := newTestService(t)

	for _, id := range []int64{1, 2, 3} {
		if _, err := svc.Today(id); err != nil {
			t.Fatalf("Today(%d): %v", id, err)
		}
	}

	*clock = clock.AddDate(0, 0, 1)
	svc.RotateAll()

	ids, err := store.ListUserIDs()
	if err != nil {
		t.Fatalf("ListUserIDs: %v", err)
	}
	if len(ids) != 3 {
		t.Fatalf("users = %d, want 3", len(ids))
	}
	for _, id := range ids {
		state, err := store.Get(id)
		if err != nil {
			t.Fatalf("Get(%d): %v", id, err)
		}
		if state.CurrentDayKey != "2026-03-03" {
			t.Errorf("user %d dayKey = %q after sweep", id, state.CurrentDayKey)
		}
	}
}
