// Package stats shows accumulated progress: overall accuracy, streak,
// trend, and a per-specialty breakdown.
package stats

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/medprep/internal/progress"
	"github.com/abhisek/medprep/internal/router"
	"github.com/abhisek/medprep/internal/screen"
	"github.com/abhisek/medprep/internal/ui/components"
	"github.com/abhisek/medprep/internal/ui/layout"
	"github.com/abhisek/medprep/internal/ui/theme"
)

type statsLoadedMsg struct {
	Overall    progress.Overall
	Categories map[string]progress.CategoryStats
	Weak       map[string]bool
	Strong     map[string]bool
	Err        error
}

// StatsScreen displays overall and per-specialty progress.
type StatsScreen struct {
	aggregator *progress.Aggregator

	spinner    spinner.Model
	overall    progress.Overall
	categories map[string]progress.CategoryStats
	weak       map[string]bool
	strong     map[string]bool
	loaded     bool
	errMsg     string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a new StatsScreen.
func New(aggregator *progress.Aggregator) *StatsScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Primary)
	return &StatsScreen{aggregator: aggregator, spinner: sp}
}

func (s *StatsScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.load)
}

func (s *StatsScreen) load() tea.Msg {
	ctx := context.Background()

	overall, err := s.aggregator.Overall(ctx)
	if err != nil {
		return statsLoadedMsg{Err: err}
	}
	categories, err := s.aggregator.Categories(ctx)
	if err != nil {
		return statsLoadedMsg{Err: err}
	}
	// Classification failures only lose the markers, not the screen.
	weak, _ := s.aggregator.WeakCategories()
	strong, _ := s.aggregator.StrongCategories()
	return statsLoadedMsg{Overall: overall, Categories: categories, Weak: weak, Strong: strong}
}

func (s *StatsScreen) Title() string {
	return "Estadísticas"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Volver"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.overall = msg.Overall
			s.categories = msg.Categories
			s.weak = msg.Weak
			s.strong = msg.Strong
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
		if msg.String() == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  " + s.spinner.View() + " Cargando estadísticas...")
	}
	if s.overall.TotalQuestions == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Aún no hay sesiones. ¡Empieza a practicar!")
	}

	var b strings.Builder
	b.WriteString("\n")

	headline := fmt.Sprintf("Precisión global: %d%%    Preguntas: %d    Racha: %d día%s",
		s.overall.Accuracy, s.overall.TotalQuestions,
		s.overall.StreakDays, plural(s.overall.StreakDays))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(headline)))
	b.WriteString("\n")

	subline := fmt.Sprintf("Nivel: %s    Tendencia: %s",
		levelLabel(s.overall), trendLabel(s.overall.Trend))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(subline)))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Por especialidad")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	for _, cat := range sortedCategories(s.categories) {
		stats := s.categories[cat]

		marker := "  "
		switch {
		case s.strong[cat]:
			marker = lipgloss.NewStyle().Foreground(theme.Success).Render("▲ ")
		case s.weak[cat]:
			marker = lipgloss.NewStyle().Foreground(theme.Error).Render("▼ ")
		}

		label := fmt.Sprintf("%s%-24s", marker, cat)
		bar := components.NewProgressBar(label, float64(stats.Accuracy)/100, true,
			min(width-8, 64))
		detail := lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  (%d/%d)", stats.Correct, stats.Total))

		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()+detail))
		b.WriteString("\n")
	}

	return b.String()
}

func sortedCategories(stats map[string]progress.CategoryStats) []string {
	cats := make([]string, 0, len(stats))
	for cat := range stats {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}

func levelLabel(o progress.Overall) string {
	switch o.PerformanceLevel {
	case "advanced":
		return "Avanzado"
	case "intermediate":
		return "Intermedio"
	default:
		return "Básico"
	}
}

func trendLabel(t progress.Trend) string {
	switch t {
	case progress.TrendImproving:
		return "Mejorando ↑"
	case progress.TrendDeclining:
		return "Bajando ↓"
	default:
		return "Estable →"
	}
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
