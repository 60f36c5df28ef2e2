package achievements

import "github.com/daily-word/backend/internal/models"

// PointsPerUnlock is the one-time bonus credited for each new achievement.
const PointsPerUnlock = 25

// Def defines a single achievement.
type Def struct {
	Name        string
	Description string
	Icon        string
}

// All maps achievement IDs to their definitions.
var All = map[string]Def{
	"first_word":     {Name: "First Steps", Description: "Use your first word", Icon: "🌱"},
	"streak_3":       {Name: "Getting Started", Description: "Maintain a 3-day streak", Icon: "🔥"},
	"streak_7":       {Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "⚡"},
	"streak_14":      {Name: "Fortnight Fighter", Description: "Maintain a 14-day streak", Icon: "💪"},
	"streak_30":      {Name: "Monthly Master", Description: "Maintain a 30-day streak", Icon: "🏆"},
	"streak_100":     {Name: "Century Club", Description: "Maintain a 100-day streak", Icon: "💎"},
	"streak_365":     {Name: "Year of Words", Description: "Maintain a 365-day streak", Icon: "👑"},
	"words_10":       {Name: "Vocabulary Builder", Description: "Use 10 different words", Icon: "📚"},
	"words_25":       {Name: "Word Collector", Description: "Use 25 different words", Icon: "📖"},
	"words_50":       {Name: "Lexicon Explorer", Description: "Use 50 different words", Icon: "🗺️"},
	"words_100":      {Name: "Vocabulary Master", Description: "Use 100 different words", Icon: "🎓"},
	"words_250":      {Name: "Word Wizard", Description: "Use 250 different words", Icon: "🧙"},
	"words_500":      {Name: "Linguistic Legend", Description: "Use 500 different words", Icon: "🌟"},
	"points_100":     {Name: "Point Starter", Description: "Earn 100 points", Icon: "💰"},
	"points_500":     {Name: "Point Collector", Description: "Earn 500 points", Icon: "💵"},
	"points_1000":    {Name: "Point Master", Description: "Earn 1,000 points", Icon: "💎"},
	"points_5000":    {Name: "Point Legend", Description: "Earn 5,000 points", Icon: "🏅"},
	"favorites_5":    {Name: "Word Lover", Description: "Favorite 5 words", Icon: "❤️"},
	"favorites_25":   {Name: "Word Enthusiast", Description: "Favorite 25 words", Icon: "💕"},
	"notes_10":       {Name: "Note Taker", Description: "Add notes to 10 words", Icon: "📝"},
	"challenge_1":    {Name: "Challenge Accepted", Description: "Complete your first weekly challenge", Icon: "🎯"},
	"challenge_4":    {Name: "Challenge Champion", Description: "Complete 4 weekly challenges", Icon: "🏅"},
	"auto_detect_1":  {Name: "Natural Speaker", Description: "Have a word auto-detected on a website", Icon: "🔍"},
	"auto_detect_10": {Name: "Fluent User", Description: "Have 10 words auto-detected", Icon: "🎤"},
	"review_10":      {Name: "Memory Master", Description: "Complete 10 spaced repetition reviews", Icon: "🧠"},
}

// Stats are the aggregate scalars the achievement predicates run over.
type Stats struct {
	WordsUsed           int
	Streak              int
	Points              int
	Favorites           int
	Notes               int
	ChallengesCompleted int
	AutoDetected        int
	Reviews             int
}

// StatsFrom derives the evaluation scalars from a progress state. Missing or
// malformed fields count as zero.
func StatsFrom(state *models.ProgressState) Stats {
	s := Stats{
		Streak:              state.Streak,
		Points:              state.Points,
		ChallengesCompleted: state.ChallengesCompleted,
		AutoDetected:        len(state.AutoDetectedUsages),
	}
	for _, h := range state.WordHistory {
		if h.WasUsed {
			s.WordsUsed++
		}
		if h.IsFavorite {
			s.Favorites++
		}
		if h.Notes != "" {
			s.Notes++
		}
		s.Reviews += h.ReviewCount
	}
	return s
}

// thresholds lists every predicate as (achievement ID, scalar selector,
// minimum value).
var thresholds = []struct {
	id     string
	scalar func(Stats) int
	min    int
}{
	{"first_word", func(s Stats) int { return s.WordsUsed }, 1},
	{"words_10", func(s Stats) int { return s.WordsUsed }, 10},
	{"words_25", func(s Stats) int { return s.WordsUsed }, 25},
	{"words_50", func(s Stats) int { return s.WordsUsed }, 50},
	{"words_100", func(s Stats) int { return s.WordsUsed }, 100},
	{"words_250", func(s Stats) int { return s.WordsUsed }, 250},
	{"words_500", func(s Stats) int { return s.WordsUsed }, 500},
	{"streak_3", func(s Stats) int { return s.Streak }, 3},
	{"streak_7", func(s Stats) int { return s.Streak }, 7},
	{"streak_14", func(s Stats) int { return s.Streak }, 14},
	{"streak_30", func(s Stats) int { return s.Streak }, 30},
	{"streak_100", func(s Stats) int { return s.Streak }, 100},
	{"streak_365", func(s Stats) int { return s.Streak }, 365},
	{"points_100", func(s Stats) int { return s.Points }, 100},
	{"points_500", func(s Stats) int { return s.Points }, 500},
	{"points_1000", func(s Stats) int { return s.Points }, 1000},
	{"points_5000", func(s Stats) int { return s.Points }, 5000},
	{"favorites_5", func(s Stats) int { return s.Favorites }, 5},
	{"favorites_25", func(s Stats) int { return s.Favorites }, 25},
	{"notes_10", func(s Stats) int { return s.Notes }, 10},
	{"challenge_1", func(s Stats) int { return s.ChallengesCompleted }, 1},
	{"challenge_4", func(s Stats) int { return s.ChallengesCompleted }, 4},
	{"auto_detect_1", func(s Stats) int { return s.AutoDetected }, 1},
	{"auto_detect_10", func(s Stats) int { return s.AutoDetected }, 10},
	{"review_10", func(s Stats) int { return s.Reviews }, 10},
}

// Evaluate returns the achievement IDs whose predicates hold for stats and
// that are not yet in unlocked. The unlocked check keeps the one-time point
// bonus from being credited twice; the predicates themselves stay true once
// reached.
func Evaluate(stats Stats, unlocked map[string]bool) []string {
	var earned []string
	for _, t := range thresholds {
		if unlocked[t.id] {
			continue
		}
		if t.scalar(stats) >= t.min {
			earned = append(earned, t.id)
		}
	}
	return earned
}
