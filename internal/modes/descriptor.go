// Package modes defines the practice mode presets and launches sessions
// under their rules.
package modes

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/medprep/internal/session"
)

// ErrUnknownMode means the requested mode is not one of the presets.
var ErrUnknownMode = errors.New("unknown mode")

// Descriptor is a practice mode preset. QuestionsCount and TimeLimit are
// the preset values; AllowCustomConfig controls whether the learner may
// override them.
type Descriptor struct {
	Mode              session.Mode
	Title             string
	Description       string
	QuestionsCount    int
	TimeLimit         time.Duration
	AllowCustomConfig bool
	ShowExplanations  bool
	AllowPause        bool
}

var descriptors = map[session.Mode]Descriptor{
	session.ModeExamSimulation: {
		Mode:           session.ModeExamSimulation,
		Title:          "Simulacro de examen",
		Description:    "50 preguntas contrarreloj, sin explicaciones",
		QuestionsCount: 50,
		TimeLimit:      60 * time.Minute,
	},
	session.ModeTimedPractice: {
		Mode:              session.ModeTimedPractice,
		Title:             "Práctica cronometrada",
		Description:       "Ritmo de examen con retroalimentación inmediata",
		QuestionsCount:    20,
		TimeLimit:         20 * time.Minute,
		AllowCustomConfig: true,
		ShowExplanations:  true,
	},
	session.ModeStudy: {
		Mode:              session.ModeStudy,
		Title:             "Estudio",
		Description:       "Sin prisa, con explicaciones y pausas",
		QuestionsCount:    session.DefaultQuestionsCount,
		AllowCustomConfig: true,
		ShowExplanations:  true,
		AllowPause:        true,
	},
	session.ModeReview: {
		Mode:             session.ModeReview,
		Title:            "Repaso de errores",
		Description:      "Vuelve sobre las preguntas falladas",
		ShowExplanations: true,
		AllowPause:       true,
	},
	session.ModeRandom: {
		Mode:             session.ModeRandom,
		Title:            "Pregunta al azar",
		Description:      "Una pregunta sorpresa",
		QuestionsCount:   1,
		ShowExplanations: true,
	},
}

// All returns every descriptor in menu order.
func All() []Descriptor {
	out := make([]Descriptor, 0, len(session.Modes))
	for _, m := range session.Modes {
		out = append(out, descriptors[m])
	}
	return out
}

// Select returns the descriptor for mode.
func Select(mode session.Mode) (Descriptor, error) {
	d, ok := descriptors[mode]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return d, nil
}

// BaseConfig returns the preset's session config before any overrides.
func (d Descriptor) BaseConfig() session.Config {
	return session.Config{
		Mode:             d.Mode,
		QuestionsCount:   d.QuestionsCount,
		TimeLimit:        d.TimeLimit,
		ShowExplanations: d.ShowExplanations,
		AllowPause:       d.AllowPause,
	}
}

// BuildConfig merges a learner patch over the preset and validates the
// result. Every violation is reported, not just the first.
func (d Descriptor) BuildConfig(patch session.ConfigPatch) (session.Config, error) {
	var errs session.ValidationErrors

	if !d.AllowCustomConfig && !patch.IsZero() {
		errs = append(errs, fmt.Sprintf("mode %q does not accept custom configuration", d.Mode))
	}
	if d.Mode == session.ModeStudy && patch.TimeLimit != nil && *patch.TimeLimit != 0 {
		errs = append(errs, "study mode does not take a time limit")
	}

	cfg := d.BaseConfig()
	if d.AllowCustomConfig {
		if patch.SpecialtyFilter != nil {
			cfg.SpecialtyFilter = *patch.SpecialtyFilter
		}
		if patch.DifficultyFilter != nil {
			cfg.DifficultyFilter = *patch.DifficultyFilter
		}
		if patch.QuestionsCount != nil {
			cfg.QuestionsCount = *patch.QuestionsCount
		}
		if patch.TimeLimit != nil && d.Mode != session.ModeStudy {
			cfg.TimeLimit = *patch.TimeLimit
		}
		if patch.ShowExplanations != nil {
			cfg.ShowExplanations = *patch.ShowExplanations
		}
		if patch.AllowPause != nil {
			cfg.AllowPause = *patch.AllowPause
		}
	}

	if err := cfg.Validate(); err != nil {
		var more session.ValidationErrors
		errors.As(err, &more)
		errs = append(errs, more...)
	}
	if len(errs) > 0 {
		return session.Config{}, errs
	}
	return cfg, nil
}
