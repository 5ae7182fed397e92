package session

import (
	"math"
	"time"

	"github.com/abhisek/medprep/internal/question"
)

// BucketStats is a per-category or per-difficulty tally.
type BucketStats struct {
	Total   int
	Correct int
}

// Accuracy returns the bucket accuracy as a rounded integer percent,
// 0 when the bucket is empty.
func (b BucketStats) Accuracy() int {
	return roundPercent(b.Correct, b.Total)
}

// Summary is derived on demand from a session's answer records.
type Summary struct {
	TotalQuestions   int
	CorrectAnswers   int
	IncorrectAnswers int
	Accuracy         int // rounded integer percent, 0 when no questions
	TotalTime        time.Duration

	CategoryBreakdown   map[string]BucketStats
	DifficultyBreakdown map[question.Difficulty]BucketStats
}

// Summarize computes the summary for a session by joining its answer
// records against their source questions. Counting covers answered
// questions only, so an early-ended session reports accuracy over what was
// actually attempted.
func Summarize(s *Session) *Summary {
	byID := make(map[string]question.Question, len(s.Questions))
	for _, q := range s.Questions {
		byID[q.ID] = q
	}

	summary := &Summary{
		CategoryBreakdown:   make(map[string]BucketStats),
		DifficultyBreakdown: make(map[question.Difficulty]BucketStats),
	}

	for _, rec := range s.AnswerRecords {
		summary.TotalQuestions++
		if rec.IsCorrect {
			summary.CorrectAnswers++
		} else {
			summary.IncorrectAnswers++
		}
		summary.TotalTime += rec.TimeSpent

		q, ok := byID[rec.QuestionID]
		if !ok {
			continue
		}
		cat := summary.CategoryBreakdown[q.Category]
		cat.Total++
		if rec.IsCorrect {
			cat.Correct++
		}
		summary.CategoryBreakdown[q.Category] = cat

		diff := summary.DifficultyBreakdown[q.Difficulty]
		diff.Total++
		if rec.IsCorrect {
			diff.Correct++
		}
		summary.DifficultyBreakdown[q.Difficulty] = diff
	}

	summary.Accuracy = roundPercent(summary.CorrectAnswers, summary.TotalQuestions)
	return summary
}

// roundPercent returns correct/total as a percent rounded to the nearest
// integer (0.5 rounds up), 0 when total is 0.
func roundPercent(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}
