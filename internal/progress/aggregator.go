package progress

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/store"
)

// Aggregator computes learner statistics from the persisted history. It
// satisfies the stats and history provider contracts of the filter engine.
type Aggregator struct {
	sessions   *store.SessionRepo
	bookmarks  *store.BookmarkRepo
	thresholds Thresholds
	now        func() time.Time
}

// NewAggregator wires an aggregator over the given repositories.
func NewAggregator(sessions *store.SessionRepo, bookmarks *store.BookmarkRepo) *Aggregator {
	return &Aggregator{
		sessions:   sessions,
		bookmarks:  bookmarks,
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
}

// SetThresholds overrides the category classification thresholds.
func (a *Aggregator) SetThresholds(t Thresholds) {
	a.thresholds = t
}

// Categories returns the per-category mastery stats.
func (a *Aggregator) Categories(ctx context.Context) (map[string]CategoryStats, error) {
	aggs, err := a.sessions.CategoryAggregates(ctx)
	if err != nil {
		return nil, fmt.Errorf("category aggregates: %w", err)
	}
	return CategoryStatistics(aggs), nil
}

// Overall returns the all-time performance summary.
func (a *Aggregator) Overall(ctx context.Context) (Overall, error) {
	sessions, err := a.sessions.Sessions(ctx, 0)
	if err != nil {
		return Overall{}, fmt.Errorf("load sessions: %w", err)
	}
	return OverallStatistics(sessions, a.now()), nil
}

// WeakCategories returns the categories the learner underperforms in.
func (a *Aggregator) WeakCategories() (map[string]bool, error) {
	stats, err := a.Categories(context.Background())
	if err != nil {
		return nil, err
	}
	return WeakCategoriesWith(stats, a.thresholds), nil
}

// StrongCategories returns the categories the learner has mastered.
func (a *Aggregator) StrongCategories() (map[string]bool, error) {
	stats, err := a.Categories(context.Background())
	if err != nil {
		return nil, err
	}
	return StrongCategoriesWith(stats, a.thresholds), nil
}

// PerformanceTier maps all-time accuracy to a difficulty tier.
func (a *Aggregator) PerformanceTier() (question.Difficulty, error) {
	overall, err := a.Overall(context.Background())
	if err != nil {
		return "", err
	}
	return overall.PerformanceLevel, nil
}

// AnsweredQuestionIDs returns every question the learner has attempted.
func (a *Aggregator) AnsweredQuestionIDs() (map[string]bool, error) {
	return a.sessions.AnsweredQuestionIDs(context.Background())
}

// IncorrectQuestionIDs returns every question the learner has missed.
func (a *Aggregator) IncorrectQuestionIDs() (map[string]bool, error) {
	return a.sessions.IncorrectQuestionIDs(context.Background())
}

// BookmarkedQuestionIDs returns the learner's bookmarked questions.
func (a *Aggregator) BookmarkedQuestionIDs() (map[string]bool, error) {
	return a.bookmarks.IDs(context.Background())
}

// LastAttemptTimes returns the most recent attempt time per question.
func (a *Aggregator) LastAttemptTimes(ctx context.Context) (map[string]time.Time, error) {
	return a.sessions.LastAttemptTimes(ctx)
}
