// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medprep/internal/modes"
	"github.com/abhisek/medprep/internal/progress"
	"github.com/abhisek/medprep/internal/router"
	"github.com/abhisek/medprep/internal/screen"
	"github.com/abhisek/medprep/internal/screens/home"
	"github.com/abhisek/medprep/internal/session"
	"github.com/abhisek/medprep/internal/store"
	"github.com/abhisek/medprep/internal/tutor"
	"github.com/abhisek/medprep/internal/ui/layout"
)

// Deps carries everything the TUI needs, built by the command layer.
type Deps struct {
	Launcher   *modes.Launcher
	Machine    *session.Machine
	Aggregator *progress.Aggregator
	Sessions   *store.SessionRepo
	Tutor      *tutor.Tutor // nil when no AI provider is configured
}

// headerStatsMsg refreshes the accuracy and streak shown in the header.
type headerStatsMsg struct {
	Accuracy int
	Streak   int
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	deps   Deps
	router *router.Router
	width  int
	height int

	accuracy int
	streak   int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(deps Deps) AppModel {
	homeScreen := home.New(deps.Launcher, deps.Machine, deps.Aggregator, deps.Sessions, deps.Tutor)
	return AppModel{
		deps:   deps,
		router: router.New(homeScreen),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.refreshHeaderStats()
}

// refreshHeaderStats loads overall accuracy and streak for the header.
func (m AppModel) refreshHeaderStats() tea.Cmd {
	agg := m.deps.Aggregator
	if agg == nil {
		return nil
	}
	return func() tea.Msg {
		overall, err := agg.Overall(context.Background())
		if err != nil {
			return nil
		}
		return headerStatsMsg{Accuracy: overall.Accuracy, Streak: overall.StreakDays}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case headerStatsMsg:
		m.accuracy = msg.Accuracy
		m.streak = msg.Streak
		return m, nil

	case router.PopScreenMsg, router.ReplaceScreenMsg:
		// Session results may have changed; refresh the header.
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.refreshHeaderStats())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() <= 1 {
				return m, nil
			}
			// Screens with cleanup (an active session) handle Esc
			// themselves instead of being popped outright.
			if h, ok := m.router.Active().(screen.EscHandler); ok {
				return m, h.HandleEsc()
			}
			return m, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.accuracy, m.streak, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints := p.KeyHints()
		return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Salir"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Volver"},
			{Key: "Ctrl+C", Description: "Salir"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navegar"},
		{Key: "Enter", Description: "Seleccionar"},
		{Key: "Ctrl+C", Description: "Salir"},
	}
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
