// Package summary shows the results screen after a session ends.
package summary

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/router"
	"github.com/abhisek/medprep/internal/screen"
	"github.com/abhisek/medprep/internal/session"
	"github.com/abhisek/medprep/internal/ui/layout"
	"github.com/abhisek/medprep/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Resumen de sesión"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continuar"},
		{Key: "Esc", Description: "Inicio"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("¡Sesión completada!"))
	b.WriteString("\n\n")

	mins := int(sum.TotalTime.Minutes())
	secs := int(sum.TotalTime.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Tiempo total: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Preguntas: %d        Correctas: %d        Incorrectas: %d        Precisión: %d%%",
		sum.TotalQuestions, sum.CorrectAnswers, sum.IncorrectAnswers, sum.Accuracy)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if len(sum.CategoryBreakdown) > 0 {
		b.WriteString(sectionHeader(width, divider, "Por especialidad"))
		for _, cat := range sortedCategories(sum.CategoryBreakdown) {
			b.WriteString(bucketLine(width, cat, sum.CategoryBreakdown[cat]))
		}
		b.WriteString("\n")
	}

	if len(sum.DifficultyBreakdown) > 0 {
		b.WriteString(sectionHeader(width, divider, "Por dificultad"))
		for _, diff := range question.Difficulties {
			bucket, ok := sum.DifficultyBreakdown[diff]
			if !ok {
				continue
			}
			b.WriteString(bucketLine(width, difficultyLabel(diff), bucket))
		}
	}

	return b.String()
}

func sectionHeader(width int, divider, label string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)) +
		"\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) +
		"\n\n"
}

func bucketLine(width int, label string, bucket session.BucketStats) string {
	line := fmt.Sprintf("  %-28s %d/%d correctas    %d%%",
		label, bucket.Correct, bucket.Total, bucket.Accuracy())

	style := lipgloss.NewStyle().Foreground(theme.Text)
	switch {
	case bucket.Accuracy() >= 80:
		style = style.Foreground(theme.Success)
	case bucket.Accuracy() < 60:
		style = style.Foreground(theme.Error)
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)) + "\n"
}

func sortedCategories(buckets map[string]session.BucketStats) []string {
	cats := make([]string, 0, len(buckets))
	for cat := range buckets {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

func difficultyLabel(d question.Difficulty) string {
	switch d {
	case question.DifficultyBasic:
		return "Básico"
	case question.DifficultyIntermediate:
		return "Intermedio"
	case question.DifficultyAdvanced:
		return "Avanzado"
	default:
		return string(d)
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
