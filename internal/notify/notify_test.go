package notify

import (
	"bytes"
	"strings"
	"testing"

	"github.com/abhisek/medprep/internal/session"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)
	n.Notify("Racha", "5 días seguidos")

	got := buf.String()
	if got != "[Racha] 5 días seguidos\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestSubscribeMilestones(t *testing.T) {
	tests := []struct {
		name     string
		summary  *session.Summary
		wantPart string
	}{
		{"perfect score", &session.Summary{TotalQuestions: 10, CorrectAnswers: 10, Accuracy: 100}, "Puntuación perfecta"},
		{"strong session", &session.Summary{TotalQuestions: 10, CorrectAnswers: 8, Accuracy: 80}, "Gran sesión"},
		{"ordinary session", &session.Summary{TotalQuestions: 10, CorrectAnswers: 5, Accuracy: 50}, ""},
		{"empty session", &session.Summary{}, ""},
		{"nil summary", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			bus := session.NewBus()
			SubscribeMilestones(bus, NewWriterNotifier(&buf))

			bus.Emit(session.Event{Type: session.EventSessionEnd, Summary: tt.summary})

			got := buf.String()
			if tt.wantPart == "" {
				if got != "" {
					t.Errorf("expected no notification, got %q", got)
				}
				return
			}
			if !strings.Contains(got, tt.wantPart) {
				t.Errorf("notification %q missing %q", got, tt.wantPart)
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic; nothing observable.
	Discard{}.Notify("a", "b")
}
