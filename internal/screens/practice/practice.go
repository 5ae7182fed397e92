// Package practice renders an active session: one question at a time,
// answer feedback, and the countdown for timed modes.
package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/router"
	"github.com/abhisek/medprep/internal/screen"
	"github.com/abhisek/medprep/internal/screens/summary"
	"github.com/abhisek/medprep/internal/session"
	"github.com/abhisek/medprep/internal/tutor"
	"github.com/abhisek/medprep/internal/ui/components"
	"github.com/abhisek/medprep/internal/ui/layout"
	"github.com/abhisek/medprep/internal/ui/theme"
)

// phase tracks where the screen is in the answer loop.
type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phasePaused
)

// tickMsg drives the countdown clock.
type tickMsg time.Time

// explanationMsg delivers an AI tutor explanation for the current question.
type explanationMsg struct {
	QuestionID  string
	Explanation *tutor.Explanation
	Err         error
}

// PracticeScreen drives a session on the machine. The session must
// already be started when the screen is created.
type PracticeScreen struct {
	machine *session.Machine
	tutor   *tutor.Tutor // nil when no provider is configured

	phase   phase
	current question.Question
	options components.OptionList
	index   int
	total   int
	correct bool
	errLine string

	aiExplanation *tutor.Explanation
	aiLoading     bool
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.EscHandler = (*PracticeScreen)(nil)

// New creates a practice screen over an active session. The tutor may
// be nil; the deeper-explanation key is simply not offered then.
func New(machine *session.Machine, tut *tutor.Tutor) *PracticeScreen {
	p := &PracticeScreen{machine: machine, tutor: tut}
	p.loadCurrent()
	return p
}

func (p *PracticeScreen) loadCurrent() {
	view, err := p.machine.CurrentQuestion()
	if err != nil {
		p.errLine = err.Error()
		return
	}
	p.current = view.Question
	p.index = view.DisplayIndex
	p.total = view.Total
	p.options = components.NewOptionList(buildOptions(view.Question))
	p.phase = phaseAnswering
	p.errLine = ""
	p.aiExplanation = nil
	p.aiLoading = false
}

func buildOptions(q question.Question) []components.Option {
	keys := q.OptionKeys()
	out := make([]components.Option, 0, len(keys))
	for _, k := range keys {
		out = append(out, components.Option{Key: k, Text: q.Options[k]})
	}
	return out
}

func (p *PracticeScreen) Init() tea.Cmd {
	if p.hasTimeLimit() {
		return tick()
	}
	return nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (p *PracticeScreen) hasTimeLimit() bool {
	s := p.machine.Active()
	return s != nil && s.Config.TimeLimit > 0
}

func (p *PracticeScreen) Title() string {
	return "Práctica"
}

func (p *PracticeScreen) KeyHints() []layout.KeyHint {
	switch p.phase {
	case phaseFeedback:
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Siguiente"},
		}
		if p.tutor != nil && !p.correct && p.aiExplanation == nil && !p.aiLoading {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Tutor IA"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Terminar"})
	case phasePaused:
		return []layout.KeyHint{
			{Key: "P", Description: "Reanudar"},
			{Key: "Esc", Description: "Terminar"},
		}
	default:
		hints := []layout.KeyHint{
			{Key: "A-E", Description: "Responder"},
			{Key: "↑↓", Description: "Navegar"},
			{Key: "Enter", Description: "Confirmar"},
		}
		if p.allowPause() {
			hints = append(hints, layout.KeyHint{Key: "P", Description: "Pausar"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "Terminar"})
	}
}

func (p *PracticeScreen) allowPause() bool {
	s := p.machine.Active()
	return s != nil && s.Config.AllowPause
}

// HandleEsc ends the session early and shows what was answered so far.
func (p *PracticeScreen) HandleEsc() tea.Cmd {
	return p.finish()
}

func (p *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if p.machine.Active() == nil {
			return p, nil
		}
		if remaining, limited := p.machine.TimeRemaining(); limited && remaining <= 0 {
			return p, p.finish()
		}
		return p, tick()

	case explanationMsg:
		if msg.QuestionID != p.current.ID {
			return p, nil
		}
		p.aiLoading = false
		if msg.Err != nil {
			p.errLine = "tutor: " + msg.Err.Error()
			return p, nil
		}
		p.aiExplanation = msg.Explanation
		return p, nil

	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if p.phase == phasePaused {
		if key == "p" {
			if err := p.machine.Resume(); err == nil {
				p.phase = phaseAnswering
			}
		}
		return p, nil
	}

	if p.phase == phaseFeedback {
		switch key {
		case "enter", "n":
			return p, p.advance()
		case "e":
			return p, p.requestExplanation()
		}
		return p, nil
	}

	// Answering.
	if key == "p" && p.allowPause() {
		if err := p.machine.Pause(); err == nil {
			p.phase = phasePaused
		}
		return p, nil
	}

	before := p.options.ChosenKey
	var cmd tea.Cmd
	p.options, cmd = p.options.Update(msg)
	if p.options.ChosenKey != "" && p.options.ChosenKey != before {
		return p, p.submit(p.options.ChosenKey)
	}
	return p, cmd
}

func (p *PracticeScreen) submit(option string) tea.Cmd {
	record, err := p.machine.SubmitAnswer(option)
	if err != nil {
		if errors.Is(err, session.ErrInvalidAnswer) || errors.Is(err, session.ErrAlreadyAnswered) {
			p.errLine = err.Error()
			p.options.ChosenKey = ""
			return nil
		}
		p.errLine = err.Error()
		return nil
	}

	p.correct = record.IsCorrect
	p.options = p.options.Reveal(p.current.CorrectOption)

	// Exam simulation gives no feedback between questions.
	s := p.machine.Active()
	if s != nil && !s.Config.ShowExplanations && s.Config.Mode == session.ModeExamSimulation {
		return p.advance()
	}

	p.phase = phaseFeedback
	return nil
}

func (p *PracticeScreen) advance() tea.Cmd {
	result, err := p.machine.NextQuestion()
	if err != nil {
		p.errLine = err.Error()
		return nil
	}
	if result.Completed {
		return replaceWithSummary(result.Summary)
	}
	p.loadCurrent()
	return nil
}

// requestExplanation asks the AI tutor for a deeper explanation of the
// question just answered. Delivery is asynchronous via explanationMsg.
func (p *PracticeScreen) requestExplanation() tea.Cmd {
	if p.tutor == nil || p.aiLoading || p.aiExplanation != nil {
		return nil
	}
	p.aiLoading = true
	q := p.current
	selected := p.options.ChosenKey
	tut := p.tutor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		expl, err := tut.Explain(ctx, q, selected)
		return explanationMsg{QuestionID: q.ID, Explanation: expl, Err: err}
	}
}

// finish ends the session (if still active) and swaps in the summary.
func (p *PracticeScreen) finish() tea.Cmd {
	_, sum, err := p.machine.EndSession()
	if err != nil {
		// Nothing active, just leave.
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return replaceWithSummary(sum)
}

func (p *PracticeScreen) View(width, height int) string {
	if p.phase == phasePaused {
		return p.pausedView(width, height)
	}

	var b string

	counter := fmt.Sprintf("Pregunta %d de %d", p.index, p.total)
	line := lipgloss.NewStyle().Foreground(theme.TextDim).Render(counter)
	if remaining, limited := p.machine.TimeRemaining(); limited {
		clock := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render("⏱ " + formatClock(remaining))
		gap := width - lipgloss.Width(line) - lipgloss.Width(clock) - 4
		if gap < 1 {
			gap = 1
		}
		line += lipgloss.NewStyle().Width(gap).Render("") + clock
	}
	b += line + "\n"

	var pct float64
	if p.total > 0 {
		pct = float64(p.index-1) / float64(p.total)
	}
	bar := components.NewProgressBar("", pct, false, min(width-4, 48))
	b += bar.View() + "\n\n"

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width - 4).
		Render(p.current.Text)
	b += prompt + "\n\n"

	b += p.options.View()

	if p.phase == phaseFeedback {
		b += "\n" + p.feedbackView(width)
	}

	if p.errLine != "" {
		b += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render(p.errLine) + "\n"
	}

	return b
}

func (p *PracticeScreen) feedbackView(width int) string {
	var b string
	if p.correct {
		b += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("✓ ¡Correcto!") + "\n"
	} else {
		b += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).
			Render(fmt.Sprintf("✗ Incorrecto. La respuesta correcta es %s.", p.current.CorrectOption)) + "\n"
	}

	s := p.machine.Active()
	if s != nil && s.Config.ShowExplanations && p.current.Explanation != "" {
		b += "\n" + lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(width-4).
			Render(p.current.Explanation) + "\n"
	}

	switch {
	case p.aiLoading:
		b += "\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("Consultando al tutor...") + "\n"
	case p.aiExplanation != nil:
		b += "\n" + p.tutorView(width)
	}
	return b
}

func (p *PracticeScreen) tutorView(width int) string {
	expl := p.aiExplanation
	header := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Tutor IA")
	body := lipgloss.NewStyle().Foreground(theme.Text).Width(width - 4).Render(expl.Summary)

	b := header + "\n" + body + "\n"
	for _, point := range expl.KeyPoints {
		b += lipgloss.NewStyle().Foreground(theme.TextDim).Width(width-6).
			Render("  • "+point) + "\n"
	}
	return b
}

func (p *PracticeScreen) pausedView(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Sesión en pausa") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("El cronómetro está detenido. Pulsa P para continuar.")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func replaceWithSummary(sum *session.Summary) tea.Cmd {
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(sum)}
	}
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
