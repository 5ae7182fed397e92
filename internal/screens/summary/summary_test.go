package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/session"
)

func testSummary() *session.Summary {
	return &session.Summary{
		TotalQuestions:   10,
		CorrectAnswers:   7,
		IncorrectAnswers: 3,
		Accuracy:         70,
		TotalTime:        12 * time.Minute,
		CategoryBreakdown: map[string]session.BucketStats{
			"Cardiología": {Total: 6, Correct: 5},
			"Neurología":  {Total: 4, Correct: 2},
		},
		DifficultyBreakdown: map[question.Difficulty]session.BucketStats{
			question.DifficultyBasic:    {Total: 5, Correct: 4},
			question.DifficultyAdvanced: {Total: 5, Correct: 3},
		},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testSummary())
	if s.Title() != "Resumen de sesión" {
		t.Errorf("Title = %q, want %q", s.Title(), "Resumen de sesión")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testSummary())
	view := s.View(80, 24)
	if view == "" {
		t.Fatal("expected non-empty summary view")
	}
	for _, want := range []string{"Cardiología", "Neurología", "Básico", "Avanzado", "70%"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_NilSummary(t *testing.T) {
	s := New(nil)
	if view := s.View(80, 24); view != "" {
		t.Errorf("expected empty view for nil summary, got %q", view)
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Error("expected a command on Enter (pop)")
	}
}

func TestSummaryScreen_Navigation_Esc(t *testing.T) {
	s := New(testSummary())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (pop)")
	}
}

func TestSummaryScreen_KeyHints(t *testing.T) {
	s := New(testSummary())
	hints := s.KeyHints()
	if len(hints) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(hints))
	}
}
