// Package history lists past practice sessions.
package history

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medprep/internal/router"
	"github.com/abhisek/medprep/internal/screen"
	"github.com/abhisek/medprep/internal/session"
	"github.com/abhisek/medprep/internal/store"
	"github.com/abhisek/medprep/internal/ui/layout"
	"github.com/abhisek/medprep/internal/ui/theme"
)

type historyLoadedMsg struct {
	Sessions []store.SessionRecord
	Err      error
}

// HistoryScreen displays past sessions, most recent first.
type HistoryScreen struct {
	sessions *store.SessionRepo

	spinner  spinner.Model
	records  []store.SessionRecord
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(sessions *store.SessionRepo) *HistoryScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return &HistoryScreen{sessions: sessions, spinner: sp}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.load)
}

func (s *HistoryScreen) load() tea.Msg {
	records, err := s.sessions.Sessions(context.Background(), 50)
	if err != nil {
		return historyLoadedMsg{Err: err}
	}
	return historyLoadedMsg{Sessions: records}
}

func (s *HistoryScreen) Title() string {
	return "Historial"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Sessions
		}
		s.loaded = true
		return s, nil

	case spinner.TickMsg:
		if s.loaded {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  " + s.spinner.View() + " Cargando historial...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Aún no hay sesiones. ¡Empieza a practicar!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		dateStr := rec.StartedAt.Format("02 Jan 2006 15:04")
		mins := rec.DurationSeconds / 60
		secs := rec.DurationSeconds % 60

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-22s %2d preguntas  %3d%%  %d:%02d",
			prefix, dateStr, modeLabel(rec.Mode), rec.TotalQuestions, rec.Accuracy, mins, secs)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	return b.String()
}

func modeLabel(mode string) string {
	switch session.Mode(mode) {
	case session.ModeExamSimulation:
		return "Simulacro"
	case session.ModeTimedPractice:
		return "Práctica cronometrada"
	case session.ModeStudy:
		return "Estudio"
	case session.ModeReview:
		return "Repaso"
	case session.ModeRandom:
		return "Aleatorio"
	default:
		return mode
	}
}
