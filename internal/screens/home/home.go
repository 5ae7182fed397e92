// Package home is the entry screen: pick a practice mode or open stats.
package home

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medprep/internal/modes"
	"github.com/abhisek/medprep/internal/progress"
	"github.com/abhisek/medprep/internal/router"
	"github.com/abhisek/medprep/internal/screen"
	"github.com/abhisek/medprep/internal/screens/history"
	"github.com/abhisek/medprep/internal/screens/practice"
	"github.com/abhisek/medprep/internal/screens/stats"
	"github.com/abhisek/medprep/internal/session"
	"github.com/abhisek/medprep/internal/store"
	"github.com/abhisek/medprep/internal/tutor"
	"github.com/abhisek/medprep/internal/ui/components"
	"github.com/abhisek/medprep/internal/ui/layout"
	"github.com/abhisek/medprep/internal/ui/theme"
)

// launchResultMsg reports the outcome of starting a session.
type launchResultMsg struct {
	Err error
}

// HomeScreen is the mode selection menu.
type HomeScreen struct {
	launcher   *modes.Launcher
	machine    *session.Machine
	aggregator *progress.Aggregator
	sessions   *store.SessionRepo
	tutor      *tutor.Tutor

	menu      components.Menu
	statusMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen. The tutor may be nil.
func New(launcher *modes.Launcher, machine *session.Machine, aggregator *progress.Aggregator, sessions *store.SessionRepo, tut *tutor.Tutor) *HomeScreen {
	h := &HomeScreen{
		launcher:   launcher,
		machine:    machine,
		aggregator: aggregator,
		sessions:   sessions,
		tutor:      tut,
	}

	var items []components.MenuItem
	for _, d := range modes.All() {
		mode := d.Mode
		items = append(items, components.MenuItem{
			Label:  d.Title,
			Action: func() tea.Cmd { return h.launch(mode) },
		})
	}
	items = append(items,
		components.MenuItem{Label: "Estadísticas", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(h.aggregator)}
			}
		}},
		components.MenuItem{Label: "Historial", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(h.sessions)}
			}
		}},
		components.MenuItem{Label: "Salir", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	h.menu = components.NewMenu(items)
	return h
}

// launch starts the chosen mode and pushes the practice screen. Errors
// stay on the home screen as a status line.
func (h *HomeScreen) launch(mode session.Mode) tea.Cmd {
	return func() tea.Msg {
		_, err := h.launcher.Start(context.Background(), mode, session.ConfigPatch{})
		if err != nil {
			return launchResultMsg{Err: err}
		}
		return router.PushScreenMsg{Screen: practice.New(h.machine, h.tutor)}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Inicio"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Seleccionar"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case launchResultMsg:
		h.statusMsg = statusText(msg.Err)
		return h, nil

	case tea.KeyMsg:
		h.statusMsg = ""
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func statusText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, modes.ErrNothingToReview):
		return "No hay preguntas falladas que repasar todavía."
	case errors.Is(err, modes.ErrAdmissionDenied):
		return "Ya hiciste un simulacro hoy. Vuelve mañana."
	default:
		var verrs session.ValidationErrors
		if errors.As(err, &verrs) {
			return "Configuración inválida: " + strings.Join(verrs, "; ")
		}
		return err.Error()
	}
}

func (h *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("MedPrep"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Preparación para el examen de especialidades médicas"))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View()))

	if h.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Render(h.statusMsg))
		b.WriteString("\n")
	}

	return b.String()
}
