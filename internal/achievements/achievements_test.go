package achievements

import (
	"sort"
	"testing"

	"github.com/daily-word/backend/internal/models"
)

func TestAllThresholdsHaveDefinitions(t *testing.T) {
	if len(thresholds) != len(All) {
		t.Errorf("thresholds = %d, definitions = %d", len(thresholds), len(All))
	}
	for _, th := range thresholds {
		if _, ok := All[th.id]; !ok {
			t.Errorf("threshold %q has no definition", th.id)
		}
	}
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		stats    Stats
		unlocked map[string]bool
		want     []string
	}{
		{
			name:  "empty stats earn nothing",
			stats: Stats{},
			want:  nil,
		},
		{
			name:  "first word",
			stats: Stats{WordsUsed: 1},
			want:  []string{"first_word"},
		},
		{
			name:  "crossing a tier earns all lower tiers too",
			stats: Stats{WordsUsed: 25},
			want:  []string{"first_word", "words_10", "words_25"},
		},
		{
			name:     "already unlocked is skipped",
			stats:    Stats{WordsUsed: 25},
			unlocked: map[string]bool{"first_word": true, "words_10": true},
			want:     []string{"words_25"},
		},
		{
			name:  "streak tiers",
			stats: Stats{Streak: 14},
			want:  []string{"streak_3", "streak_7", "streak_14"},
		},
		{
			name:  "points tiers",
			stats: Stats{Points: 1000},
			want:  []string{"points_100", "points_500", "points_1000"},
		},
		{
			name:  "challenge and detection",
			stats: Stats{ChallengesCompleted: 4, AutoDetected: 1},
			want:  []string{"challenge_1", "challenge_4", "auto_detect_1"},
		},
		{
			name:  "reviews and notes below threshold",
			stats: Stats{Reviews: 9, Notes: 9, Favorites: 4},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.stats, tt.unlocked)
			sort.Strings(got)
			want := append([]string(nil), tt.want...)
			sort.Strings(want)
			if len(got) != len(want) {
				t.Fatalf("Evaluate = %v, want %v", got, want)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("Evaluate = %v, want %v", got, want)
				}
			}
		})
	}
}

func TestEvaluate_MonotonicOnceReached(t *testing.T) {
	// Predicates stay satisfied when the scalar later passes the threshold
	// again; only the unlocked set keeps the bonus one-time.
	stats := Stats{Streak: 3}
	first := Evaluate(stats, nil)
	if len(first) != 1 || first[0] != "streak_3" {
		t.Fatalf("first = %v", first)
	}
	second := Evaluate(stats, map[string]bool{"streak_3": true})
	if second != nil {
		t.Errorf("second = %v, want nil", second)
	}
}

func TestStatsFrom(t *testing.T) {
	state := models.DefaultProgressState()
	state.Streak = 5
	state.Points = 320
	state.ChallengesCompleted = 2
	state.AutoDetectedUsages = []models.AutoDetectedUsage{{WordIndex: 1}, {WordIndex: 2}}
	state.WordHistory = []models.WordHistoryEntry{
		{WordIndex: 0, WasUsed: true, IsFavorite: true, Notes: "n", ReviewCount: 3},
		{WordIndex: 1, WasUsed: true, ReviewCount: 2},
		{WordIndex: 2, WasUsed: false, IsFavorite: true},
	}

	got := StatsFrom(state)
	want := Stats{
		WordsUsed:           2,
		Streak:              5,
		Points:              320,
		Favorites:           2,
		Notes:               1,
		ChallengesCompleted: 2,
		AutoDetected:        2,
		Reviews:             5,
	}
	if got != want {
		t.Errorf("StatsFrom = %+v, want %+v", got, want)
	}
}
