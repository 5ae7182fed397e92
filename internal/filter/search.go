package filter

import (
	"sort"
	"strings"

	"github.com/abhisek/medprep/internal/question"
)

// Relevance weights for the full-text search.
const (
	scoreExactText       = 10.0
	scoreTextWord        = 3.0
	scoreOptionMatch     = 5.0
	scoreOptionWord      = 1.0
	scoreExplanation     = 3.0
	scoreExplanationWord = 0.5
	scoreCategory        = 5.0
)

// SearchOptions tunes a search call.
type SearchOptions struct {
	// Limit caps the number of results. 0 means unlimited.
	Limit int
}

// SearchResult pairs a matched question with its relevance score.
type SearchResult struct {
	Question question.Question
	Score    float64
}

// Search performs a case-insensitive relevance search over question text,
// options, explanation and category. Zero-score questions are excluded.
// Results are ordered by descending score; ties keep input order (stable
// sort), so identical calls always yield identical ordering.
func (e *Engine) Search(questions []question.Question, query string, opts SearchOptions) []question.Question {
	results := e.SearchScored(questions, query, opts)
	out := make([]question.Question, len(results))
	for i, r := range results {
		out[i] = r.Question
	}
	return out
}

// SearchScored is Search with the relevance scores exposed.
func (e *Engine) SearchScored(questions []question.Question, query string, opts SearchOptions) []SearchResult {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	// Only words longer than one rune contribute word-level scores.
	var words []string
	for _, w := range strings.Fields(query) {
		if len([]rune(w)) > 1 {
			words = append(words, w)
		}
	}

	var results []SearchResult
	for _, q := range questions {
		score := scoreQuestion(q, query, words)
		if score <= 0 {
			continue
		}
		results = append(results, SearchResult{Question: q, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results
}

func scoreQuestion(q question.Question, query string, words []string) float64 {
	var score float64

	text := strings.ToLower(q.Text)
	if strings.Contains(text, query) {
		score += scoreExactText
	}
	for _, w := range words {
		if strings.Contains(text, w) {
			score += scoreTextWord
		}
	}

	optionHit := false
	for _, opt := range q.Options {
		lower := strings.ToLower(opt)
		if !optionHit && strings.Contains(lower, query) {
			score += scoreOptionMatch
			optionHit = true
		}
		for _, w := range words {
			if strings.Contains(lower, w) {
				score += scoreOptionWord
			}
		}
	}

	explanation := strings.ToLower(q.Explanation)
	if strings.Contains(explanation, query) {
		score += scoreExplanation
	}
	for _, w := range words {
		if strings.Contains(explanation, w) {
			score += scoreExplanationWord
		}
	}

	if strings.Contains(strings.ToLower(q.Category), query) {
		score += scoreCategory
	}

	return score
}
