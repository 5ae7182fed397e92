package filter

import (
	"github.com/abhisek/medprep/internal/question"
)

// StatsProvider supplies aggregated historical performance for smart
// filters. A nil provider (or a provider error) means "no restriction":
// every smart predicate passes every question.
type StatsProvider interface {
	// WeakCategories returns the categories where accuracy is below the
	// weak threshold with sufficient attempts.
	WeakCategories() (map[string]bool, error)

	// StrongCategories returns the categories where accuracy is at or above
	// the strong threshold with sufficient attempts.
	StrongCategories() (map[string]bool, error)

	// PerformanceTier maps overall accuracy to a difficulty tier.
	PerformanceTier() (question.Difficulty, error)
}

// HistoryProvider supplies per-question answer history for the
// answered/bookmark/review predicates. Absent history reads as empty.
type HistoryProvider interface {
	AnsweredQuestionIDs() (map[string]bool, error)
	IncorrectQuestionIDs() (map[string]bool, error)
	BookmarkedQuestionIDs() (map[string]bool, error)
}

// Standard filter names.
const (
	FilterCategory   = "category"
	FilterDifficulty = "difficulty"
	FilterAnswered   = "answered"
	FilterBookmarked = "bookmarked"

	FilterWeakAreas   = "weakAreas"
	FilterStrongAreas = "strongAreas"
	FilterNeedsReview = "needsReview"
	FilterAdaptive    = "adaptive"
)

// RegisterDefaults installs the standard attribute filters and the smart
// filters on the engine. stats and history may be nil; the dependent
// predicates then pass everything.
func RegisterDefaults(e *Engine, stats StatsProvider, history HistoryProvider) {
	e.Register(FilterCategory, func(q question.Question, value any) bool {
		category, ok := value.(string)
		if !ok || category == "" {
			return true
		}
		return q.Category == category
	})

	e.Register(FilterDifficulty, func(q question.Question, value any) bool {
		switch v := value.(type) {
		case question.Difficulty:
			return v == "" || q.Difficulty == v
		case string:
			return v == "" || q.Difficulty == question.Difficulty(v)
		default:
			return true
		}
	})

	// answered=true keeps answered questions, answered=false keeps
	// unanswered ones.
	e.Register(FilterAnswered, func(q question.Question, value any) bool {
		want, ok := value.(bool)
		if !ok {
			return true
		}
		ids := historyIDs(history, answeredIDs)
		if ids == nil {
			return true
		}
		return ids[q.ID] == want
	})

	e.Register(FilterBookmarked, func(q question.Question, value any) bool {
		want, ok := value.(bool)
		if !ok {
			return true
		}
		ids := historyIDs(history, bookmarkedIDs)
		if ids == nil {
			return true
		}
		return ids[q.ID] == want
	})

	e.Register(FilterWeakAreas, smartCategoryPredicate(stats, weakCategories))
	e.Register(FilterStrongAreas, smartCategoryPredicate(stats, strongCategories))

	e.Register(FilterNeedsReview, func(q question.Question, value any) bool {
		if enabled, ok := value.(bool); ok && !enabled {
			return true
		}
		ids := historyIDs(history, incorrectIDs)
		if ids == nil {
			return true
		}
		return ids[q.ID]
	})

	e.Register(FilterAdaptive, func(q question.Question, value any) bool {
		if enabled, ok := value.(bool); ok && !enabled {
			return true
		}
		if stats == nil {
			return true
		}
		tier, err := stats.PerformanceTier()
		if err != nil || tier == "" {
			return true
		}
		return q.Difficulty == tier
	})
}

type historyQuery int

const (
	answeredIDs historyQuery = iota
	incorrectIDs
	bookmarkedIDs
)

// historyIDs fetches an ID set from the history provider, returning nil
// (no restriction) when the provider is absent or failing.
func historyIDs(history HistoryProvider, query historyQuery) map[string]bool {
	if history == nil {
		return nil
	}
	var (
		ids map[string]bool
		err error
	)
	switch query {
	case answeredIDs:
		ids, err = history.AnsweredQuestionIDs()
	case incorrectIDs:
		ids, err = history.IncorrectQuestionIDs()
	case bookmarkedIDs:
		ids, err = history.BookmarkedQuestionIDs()
	}
	if err != nil {
		return nil
	}
	return ids
}

type categoryQuery int

const (
	weakCategories categoryQuery = iota
	strongCategories
)

func smartCategoryPredicate(stats StatsProvider, query categoryQuery) Predicate {
	return func(q question.Question, value any) bool {
		if enabled, ok := value.(bool); ok && !enabled {
			return true
		}
		if stats == nil {
			return true
		}
		var (
			set map[string]bool
			err error
		)
		if query == weakCategories {
			set, err = stats.WeakCategories()
		} else {
			set, err = stats.StrongCategories()
		}
		if err != nil || len(set) == 0 {
			return true
		}
		return set[q.Category]
	}
}
