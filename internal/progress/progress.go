// Package progress folds historical sessions and answers into the summary
// statistics that drive smart filters and recommendations.
package progress

import (
	"math"
	"sort"
	"time"

	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/store"
)

// Accuracy thresholds for classifying categories, in integer percent.
// A category needs MinCategoryAttempts answers before it is classified.
const (
	WeakAccuracyThreshold   = 60
	StrongAccuracyThreshold = 80
	MinCategoryAttempts     = 5
)

// Performance level boundaries over all-time accuracy.
const (
	advancedAccuracy     = 75
	intermediateAccuracy = 50
)

// trendWindow is how many recent sessions are compared against the
// preceding window to detect a trend.
const trendWindow = 5

// trendMargin is the accuracy delta (percent points) that counts as a
// real change rather than noise.
const trendMargin = 5.0

// CategoryStats is the per-category mastery summary.
type CategoryStats struct {
	Total    int
	Correct  int
	Accuracy int // rounded integer percent
}

// Trend describes the direction of recent performance.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendSteady    Trend = "steady"
	TrendDeclining Trend = "declining"
)

// Overall is the all-time performance summary.
type Overall struct {
	TotalQuestions   int
	CorrectAnswers   int
	Accuracy         int // rounded integer percent
	PerformanceLevel question.Difficulty
	StreakDays       int
	Trend            Trend
}

// CategoryStatistics converts raw per-category aggregates into stats keyed
// by category.
func CategoryStatistics(aggs []store.CategoryAggregate) map[string]CategoryStats {
	out := make(map[string]CategoryStats, len(aggs))
	for _, a := range aggs {
		out[a.Category] = CategoryStats{
			Total:    a.Total,
			Correct:  a.Correct,
			Accuracy: roundPercent(a.Correct, a.Total),
		}
	}
	return out
}

// Thresholds configures category classification. The config file may
// override the defaults.
type Thresholds struct {
	Weak        int // accuracy below this is weak
	Strong      int // accuracy at or above this is strong
	MinAttempts int // answers required before classifying
}

// DefaultThresholds returns the built-in classification thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Weak:        WeakAccuracyThreshold,
		Strong:      StrongAccuracyThreshold,
		MinAttempts: MinCategoryAttempts,
	}
}

// WeakCategories returns the categories with enough attempts and accuracy
// below the weak threshold.
func WeakCategories(stats map[string]CategoryStats) map[string]bool {
	return WeakCategoriesWith(stats, DefaultThresholds())
}

// WeakCategoriesWith is WeakCategories under custom thresholds.
func WeakCategoriesWith(stats map[string]CategoryStats, t Thresholds) map[string]bool {
	out := make(map[string]bool)
	for category, s := range stats {
		if s.Total >= t.MinAttempts && s.Accuracy < t.Weak {
			out[category] = true
		}
	}
	return out
}

// StrongCategories returns the categories with enough attempts and accuracy
// at or above the strong threshold.
func StrongCategories(stats map[string]CategoryStats) map[string]bool {
	return StrongCategoriesWith(stats, DefaultThresholds())
}

// StrongCategoriesWith is StrongCategories under custom thresholds.
func StrongCategoriesWith(stats map[string]CategoryStats, t Thresholds) map[string]bool {
	out := make(map[string]bool)
	for category, s := range stats {
		if s.Total >= t.MinAttempts && s.Accuracy >= t.Strong {
			out[category] = true
		}
	}
	return out
}

// OverallStatistics folds persisted sessions into the all-time summary.
// now anchors the streak computation.
func OverallStatistics(sessions []store.SessionRecord, now time.Time) Overall {
	o := Overall{Trend: TrendSteady, PerformanceLevel: question.DifficultyBasic}
	for _, s := range sessions {
		o.TotalQuestions += s.TotalQuestions
		o.CorrectAnswers += s.CorrectAnswers
	}
	o.Accuracy = roundPercent(o.CorrectAnswers, o.TotalQuestions)
	o.PerformanceLevel = performanceLevel(o.Accuracy, o.TotalQuestions)
	o.StreakDays = streakDays(sessions, now)
	o.Trend = trend(sessions)
	return o
}

// performanceLevel maps accuracy to a difficulty tier. A learner without a
// meaningful sample stays at basic.
func performanceLevel(accuracy, totalQuestions int) question.Difficulty {
	if totalQuestions < MinCategoryAttempts {
		return question.DifficultyBasic
	}
	switch {
	case accuracy >= advancedAccuracy:
		return question.DifficultyAdvanced
	case accuracy >= intermediateAccuracy:
		return question.DifficultyIntermediate
	default:
		return question.DifficultyBasic
	}
}

// streakDays counts consecutive practice days ending today or yesterday.
func streakDays(sessions []store.SessionRecord, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}
	days := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		days[s.StartedAt.Format("2006-01-02")] = true
	}

	day := now
	// A streak survives until the learner misses a full day.
	if !days[day.Format("2006-01-02")] {
		day = day.AddDate(0, 0, -1)
		if !days[day.Format("2006-01-02")] {
			return 0
		}
	}

	streak := 0
	for days[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// trend compares mean accuracy of the most recent window against the
// preceding one.
func trend(sessions []store.SessionRecord) Trend {
	if len(sessions) < 2*trendWindow {
		return TrendSteady
	}

	ordered := make([]store.SessionRecord, len(sessions))
	copy(ordered, sessions)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].StartedAt.After(ordered[j].StartedAt)
	})

	recent := meanAccuracy(ordered[:trendWindow])
	previous := meanAccuracy(ordered[trendWindow : 2*trendWindow])
	switch {
	case recent-previous >= trendMargin:
		return TrendImproving
	case previous-recent >= trendMargin:
		return TrendDeclining
	default:
		return TrendSteady
	}
}

func meanAccuracy(sessions []store.SessionRecord) float64 {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range sessions {
		sum += float64(s.Accuracy)
	}
	return sum / float64(len(sessions))
}

func roundPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
