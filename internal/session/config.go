package session

import (
	"fmt"
	"time"

	"github.com/abhisek/medprep/internal/question"
)

// Mode names a practice mode preset.
type Mode string

const (
	ModeExamSimulation Mode = "exam_simulation"
	ModeTimedPractice  Mode = "timed_practice"
	ModeStudy          Mode = "study"
	ModeReview         Mode = "review"
	ModeRandom         Mode = "random"
)

// Modes lists every known mode.
var Modes = []Mode{ModeExamSimulation, ModeTimedPractice, ModeStudy, ModeReview, ModeRandom}

// KnownMode reports whether m is a registered mode.
func KnownMode(m Mode) bool {
	switch m {
	case ModeExamSimulation, ModeTimedPractice, ModeStudy, ModeReview, ModeRandom:
		return true
	}
	return false
}

// Question count bounds for a single session.
const (
	MinQuestionsCount     = 1
	MaxQuestionsCount     = 500
	DefaultQuestionsCount = 10
)

// Config is the resolved, immutable configuration of one session.
type Config struct {
	Mode             Mode
	SpecialtyFilter  string
	DifficultyFilter question.Difficulty
	QuestionsCount   int
	TimeLimit        time.Duration // 0 = unlimited
	ShowExplanations bool
	AllowPause       bool
}

// ConfigPatch is a partial configuration; nil fields fall back to defaults.
type ConfigPatch struct {
	Mode             *Mode
	SpecialtyFilter  *string
	DifficultyFilter *question.Difficulty
	QuestionsCount   *int
	TimeLimit        *time.Duration
	ShowExplanations *bool
	AllowPause       *bool
}

// IsZero reports whether the patch sets nothing.
func (p ConfigPatch) IsZero() bool {
	return p.Mode == nil && p.SpecialtyFilter == nil && p.DifficultyFilter == nil &&
		p.QuestionsCount == nil && p.TimeLimit == nil &&
		p.ShowExplanations == nil && p.AllowPause == nil
}

// DefaultConfig returns the documented defaults: study mode, 10 questions,
// no time limit, filters empty.
func DefaultConfig() Config {
	return Config{
		Mode:             ModeStudy,
		QuestionsCount:   DefaultQuestionsCount,
		TimeLimit:        0,
		ShowExplanations: true,
		AllowPause:       true,
	}
}

// ResolveConfig merges patch over the defaults and validates the result.
// Every violation is collected; the config is accepted wholly or rejected
// wholly. The returned error, when non-nil, is a ValidationErrors.
func ResolveConfig(patch ConfigPatch) (Config, error) {
	cfg := DefaultConfig()
	if patch.Mode != nil {
		cfg.Mode = *patch.Mode
	}
	if patch.SpecialtyFilter != nil {
		cfg.SpecialtyFilter = *patch.SpecialtyFilter
	}
	if patch.DifficultyFilter != nil {
		cfg.DifficultyFilter = *patch.DifficultyFilter
	}
	if patch.QuestionsCount != nil {
		cfg.QuestionsCount = *patch.QuestionsCount
	}
	if patch.TimeLimit != nil {
		cfg.TimeLimit = *patch.TimeLimit
	}
	if patch.ShowExplanations != nil {
		cfg.ShowExplanations = *patch.ShowExplanations
	}
	if patch.AllowPause != nil {
		cfg.AllowPause = *patch.AllowPause
	}

	if errs := cfg.validate(); len(errs) > 0 {
		return Config{}, errs
	}
	return cfg, nil
}

// Validate checks the config and returns a ValidationErrors listing every
// violation, or nil when the config is acceptable.
func (c Config) Validate() error {
	if errs := c.validate(); len(errs) > 0 {
		return errs
	}
	return nil
}

func (c Config) validate() ValidationErrors {
	var errs ValidationErrors
	if !KnownMode(c.Mode) {
		errs = append(errs, fmt.Sprintf("unknown mode %q", c.Mode))
	}
	if c.QuestionsCount < MinQuestionsCount || c.QuestionsCount > MaxQuestionsCount {
		errs = append(errs, fmt.Sprintf("questions count %d out of range [%d, %d]",
			c.QuestionsCount, MinQuestionsCount, MaxQuestionsCount))
	}
	if c.TimeLimit < 0 {
		errs = append(errs, "time limit must not be negative")
	}
	if c.SpecialtyFilter != "" && !question.KnownSpecialty(c.SpecialtyFilter) {
		errs = append(errs, fmt.Sprintf("unknown specialty %q", c.SpecialtyFilter))
	}
	if c.DifficultyFilter != "" && !question.KnownDifficulty(c.DifficultyFilter) {
		errs = append(errs, fmt.Sprintf("unknown difficulty %q", c.DifficultyFilter))
	}
	return errs
}
