package filter

import (
	"testing"
	"time"

	"github.com/abhisek/medprep/internal/question"
)

func TestRecommend_WeakCategoryAndIncorrectRankFirst(t *testing.T) {
	e := NewEngine()
	qs := fixtureQuestions() // q1,q3 Cardiología; q2 Neurología; q4 Pediatría

	ctx := RecommendContext{
		WeakCategories: map[string]bool{"Neurología": true},
		IncorrectIDs:   map[string]bool{"q2": true},
		AnsweredIDs:    map[string]bool{"q2": true},
		Now:            time.Now(),
	}

	got := e.Recommend(qs, 1, ctx)
	if len(got) != 1 || got[0].ID != "q2" {
		t.Fatalf("Recommend = %v, want [q2]", ids(got))
	}
}

func TestRecommend_NeverAttemptedBeatsAnswered(t *testing.T) {
	e := NewEngine()
	qs := []question.Question{
		{ID: "answered", Category: "Neurología", Difficulty: question.DifficultyBasic},
		{ID: "fresh", Category: "Neurología", Difficulty: question.DifficultyBasic},
	}
	ctx := RecommendContext{
		AnsweredIDs: map[string]bool{"answered": true},
		Now:         time.Now(),
	}
	got := e.Recommend(qs, 2, ctx)
	if got[0].ID != "fresh" {
		t.Errorf("Recommend order = %v, want fresh first", ids(got))
	}
}

func TestRecommend_StaleAttemptBonus(t *testing.T) {
	e := NewEngine()
	now := time.Now()
	qs := []question.Question{
		{ID: "recent", Category: "Neurología"},
		{ID: "stale", Category: "Neurología"},
	}
	ctx := RecommendContext{
		AnsweredIDs: map[string]bool{"recent": true, "stale": true},
		LastAttempt: map[string]time.Time{
			"recent": now.Add(-time.Hour),
			"stale":  now.Add(-8 * 24 * time.Hour),
		},
		Now: now,
	}
	got := e.Recommend(qs, 2, ctx)
	if got[0].ID != "stale" {
		t.Errorf("Recommend order = %v, want stale first", ids(got))
	}
}

func TestRecommend_TiesKeepInputOrder(t *testing.T) {
	e := NewEngine()
	qs := []question.Question{
		{ID: "a", Category: "Neurología"},
		{ID: "b", Category: "Neurología"},
		{ID: "c", Category: "Neurología"},
	}
	got := e.Recommend(qs, 3, RecommendContext{Now: time.Now()})
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("Recommend = %v, want %v", ids(got), want)
		}
	}
}

func TestRecommend_ExamFocusedAndTierMatch(t *testing.T) {
	e := NewEngine()
	qs := []question.Question{
		// Exam-focused category (+8) beats a tier match (+5).
		{ID: "focused", Category: "Medicina Interna", Difficulty: question.DifficultyAdvanced},
		{ID: "tiered", Category: "Dermatología", Difficulty: question.DifficultyBasic},
	}
	ctx := RecommendContext{
		AnsweredIDs:     map[string]bool{"focused": true, "tiered": true},
		PerformanceTier: question.DifficultyBasic,
		Now:             time.Now(),
	}
	got := e.Recommend(qs, 2, ctx)
	if got[0].ID != "focused" {
		t.Errorf("Recommend order = %v, want focused first", ids(got))
	}
}

func TestRecommend_CountBound(t *testing.T) {
	e := NewEngine()
	got := e.Recommend(fixtureQuestions(), 2, RecommendContext{Now: time.Now()})
	if len(got) != 2 {
		t.Errorf("Recommend returned %d, want 2", len(got))
	}
}
