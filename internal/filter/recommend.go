package filter

import (
	"sort"
	"time"

	"github.com/abhisek/medprep/internal/question"
)

// Recommendation signal weights.
const (
	weightWeakCategory   = 20.0
	weightPriorIncorrect = 15.0
	weightNeverAttempted = 10.0
	weightExamFocused    = 8.0
	weightTierMatch      = 5.0
	weightStaleAttempt   = 3.0
)

// staleAfter is how long since the last attempt before a question counts as
// due for another look.
const staleAfter = 7 * 24 * time.Hour

// RecommendContext carries the historical signals the ranker scores against.
// Zero-value fields simply contribute nothing.
type RecommendContext struct {
	WeakCategories  map[string]bool
	AnsweredIDs     map[string]bool
	IncorrectIDs    map[string]bool
	LastAttempt     map[string]time.Time
	PerformanceTier question.Difficulty
	Now             time.Time
}

// Recommend scores every question by a weighted sum of signals and returns
// the top count by descending score, ties broken by input order. count <= 0
// returns all questions ranked.
func (e *Engine) Recommend(questions []question.Question, count int, ctx RecommendContext) []question.Question {
	now := ctx.Now
	if now.IsZero() {
		now = e.now()
	}

	type scored struct {
		q     question.Question
		score float64
	}
	ranked := make([]scored, 0, len(questions))
	for _, q := range questions {
		var score float64
		if ctx.WeakCategories[q.Category] {
			score += weightWeakCategory
		}
		if ctx.IncorrectIDs[q.ID] {
			score += weightPriorIncorrect
		}
		if !ctx.AnsweredIDs[q.ID] {
			score += weightNeverAttempted
		}
		if question.ExamFocused(q.Category) {
			score += weightExamFocused
		}
		if ctx.PerformanceTier != "" && q.Difficulty == ctx.PerformanceTier {
			score += weightTierMatch
		}
		if last, ok := ctx.LastAttempt[q.ID]; ok && now.Sub(last) >= staleAfter {
			score += weightStaleAttempt
		}
		ranked = append(ranked, scored{q: q, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if count > 0 && len(ranked) > count {
		ranked = ranked[:count]
	}
	out := make([]question.Question, len(ranked))
	for i, s := range ranked {
		out[i] = s.q
	}
	return out
}
