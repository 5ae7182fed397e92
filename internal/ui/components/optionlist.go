package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/medprep/internal/ui/theme"
)

// Option is one answer choice with its letter key.
type Option struct {
	Key  string
	Text string
}

// OptionList is a letter-keyed answer selector. Options can be chosen by
// arrow navigation or by pressing the letter directly.
type OptionList struct {
	Options    []Option
	Selected   int
	Submitted  bool
	ChosenKey  string
	CorrectKey string // revealed after submission
}

// NewOptionList creates an option list from keyed choices.
func NewOptionList(options []Option) OptionList {
	return OptionList{Options: options, Selected: 0}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles navigation and selection. Submission itself is left to
// the owning screen; enter just marks the chosen key.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Submitted {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if o.Selected > 0 {
			o.Selected--
		}
	case "down", "j":
		if o.Selected < len(o.Options)-1 {
			o.Selected++
		}
	case "enter":
		if o.Selected >= 0 && o.Selected < len(o.Options) {
			o.ChosenKey = o.Options[o.Selected].Key
		}
	default:
		// Direct letter selection, case-insensitive.
		for i, opt := range o.Options {
			if key == opt.Key || key == lower(opt.Key) {
				o.Selected = i
				o.ChosenKey = opt.Key
				break
			}
		}
	}

	return o, nil
}

// Reveal marks the list as submitted and records the correct key for
// rendering.
func (o OptionList) Reveal(correctKey string) OptionList {
	o.Submitted = true
	o.CorrectKey = correctKey
	return o
}

// View renders the options.
func (o OptionList) View() string {
	var s string
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Selected && !o.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, opt.Key, opt.Text)

		switch {
		case o.Submitted && opt.Key == o.CorrectKey:
			s += lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render(line) + "\n"
		case o.Submitted && opt.Key == o.ChosenKey:
			s += lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render(line) + "\n"
		case o.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Selected:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}

// IsCorrect reports whether the chosen option matched after reveal.
func (o OptionList) IsCorrect() bool {
	return o.Submitted && o.ChosenKey == o.CorrectKey
}

func lower(s string) string {
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return string(s[0] + 32)
	}
	return s
}
