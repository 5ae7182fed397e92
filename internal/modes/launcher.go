package modes

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/abhisek/medprep/internal/filter"
	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/session"
)

var (
	// ErrAdmissionDenied means the daily exam simulation limit is spent.
	ErrAdmissionDenied = errors.New("daily exam simulation limit reached")

	// ErrNothingToReview means the learner has no incorrect answers to
	// revisit. No session is created.
	ErrNothingToReview = errors.New("nothing to review")
)

// Gate admits or denies exam simulation starts.
type Gate interface {
	CanStartExam(ctx context.Context) (bool, error)
	RecordExamStart(ctx context.Context) error
}

// History supplies the review pool.
type History interface {
	IncorrectQuestionIDs() (map[string]bool, error)
}

// Signals supplies the historical ranking signals that order study
// sessions. The progress aggregator satisfies it.
type Signals interface {
	WeakCategories() (map[string]bool, error)
	AnsweredQuestionIDs() (map[string]bool, error)
	IncorrectQuestionIDs() (map[string]bool, error)
	PerformanceTier() (question.Difficulty, error)
	LastAttemptTimes(ctx context.Context) (map[string]time.Time, error)
}

// Launcher starts sessions under a mode's rules: it builds the question
// pool through the filter engine and hands it to the session machine.
type Launcher struct {
	machine   *session.Machine
	engine    *filter.Engine
	questions *question.Store
	gate      Gate
	history   History
	signals   Signals
	shuffle   func([]question.Question)
}

// NewLauncher wires a launcher. gate, history and signals may be nil;
// exam simulations are then always admitted, review mode always empty
// and study sessions keep the bank order.
func NewLauncher(machine *session.Machine, engine *filter.Engine, questions *question.Store, gate Gate, history History, signals Signals) *Launcher {
	return &Launcher{
		machine:   machine,
		engine:    engine,
		questions: questions,
		gate:      gate,
		history:   history,
		signals:   signals,
		shuffle: func(qs []question.Question) {
			rand.Shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })
		},
	}
}

// Start launches a session in the given mode, applying the learner patch
// where the mode allows it.
func (l *Launcher) Start(ctx context.Context, mode session.Mode, patch session.ConfigPatch) (*session.Session, error) {
	d, err := Select(mode)
	if err != nil {
		return nil, err
	}
	switch mode {
	case session.ModeExamSimulation:
		return l.startExam(ctx, d, patch)
	case session.ModeReview:
		return l.startReview(d, patch)
	default:
		return l.startPreset(ctx, d, patch)
	}
}

// startPreset covers timed practice, study and random question. Study
// pools are ordered by the recommendation ranker when signals are
// available; the other presets are shuffled.
func (l *Launcher) startPreset(ctx context.Context, d Descriptor, patch session.ConfigPatch) (*session.Session, error) {
	cfg, err := d.BuildConfig(patch)
	if err != nil {
		return nil, err
	}
	pool := l.pool(cfg)
	if d.Mode == session.ModeStudy {
		if l.signals != nil {
			pool = l.engine.Recommend(pool, 0, l.recommendContext(ctx))
		}
	} else {
		l.shuffle(pool)
	}
	return l.machine.StartSession(cfg, pool)
}

// recommendContext gathers the ranking signals. A failing signal is
// left at its zero value; ordering is best effort.
func (l *Launcher) recommendContext(ctx context.Context) filter.RecommendContext {
	rc := filter.RecommendContext{}
	if weak, err := l.signals.WeakCategories(); err == nil {
		rc.WeakCategories = weak
	}
	if answered, err := l.signals.AnsweredQuestionIDs(); err == nil {
		rc.AnsweredIDs = answered
	}
	if incorrect, err := l.signals.IncorrectQuestionIDs(); err == nil {
		rc.IncorrectIDs = incorrect
	}
	if tier, err := l.signals.PerformanceTier(); err == nil {
		rc.PerformanceTier = tier
	}
	if last, err := l.signals.LastAttemptTimes(ctx); err == nil {
		rc.LastAttempt = last
	}
	return rc
}

// startExam consults the admission gate before anything else. A denied
// start leaves no session and no record behind.
func (l *Launcher) startExam(ctx context.Context, d Descriptor, patch session.ConfigPatch) (*session.Session, error) {
	if l.gate != nil {
		ok, err := l.gate.CanStartExam(ctx)
		if err != nil {
			return nil, fmt.Errorf("exam admission: %w", err)
		}
		if !ok {
			return nil, ErrAdmissionDenied
		}
	}

	cfg, err := d.BuildConfig(patch)
	if err != nil {
		return nil, err
	}
	pool := l.pool(cfg)
	l.shuffle(pool)

	s, err := l.machine.StartSession(cfg, pool)
	if err != nil {
		return nil, err
	}
	if l.gate != nil {
		// The session is already running; a failed record must not
		// strand it, so the limit slips for today instead.
		if err := l.gate.RecordExamStart(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "warning: record exam start: %v\n", err)
		}
	}
	return s, nil
}

// startReview builds its pool from previously missed questions. The
// question count is derived from the pool, never from the learner.
func (l *Launcher) startReview(d Descriptor, patch session.ConfigPatch) (*session.Session, error) {
	if !patch.IsZero() {
		return nil, session.ValidationErrors{
			fmt.Sprintf("mode %q does not accept custom configuration", d.Mode),
		}
	}

	incorrect := map[string]bool{}
	if l.history != nil {
		var err error
		incorrect, err = l.history.IncorrectQuestionIDs()
		if err != nil {
			return nil, fmt.Errorf("load review pool: %w", err)
		}
	}

	var pool []question.Question
	for _, q := range l.questions.All() {
		if incorrect[q.ID] {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNothingToReview
	}

	cfg := d.BaseConfig()
	cfg.QuestionsCount = len(pool)
	if cfg.QuestionsCount > session.MaxQuestionsCount {
		cfg.QuestionsCount = session.MaxQuestionsCount
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return l.machine.StartSession(cfg, pool)
}

// pool runs the bank through the filter engine with the config's filters
// layered as overrides.
func (l *Launcher) pool(cfg session.Config) []question.Question {
	overrides := map[string]any{}
	if cfg.SpecialtyFilter != "" {
		overrides[filter.FilterCategory] = cfg.SpecialtyFilter
	}
	if cfg.DifficultyFilter != "" {
		overrides[filter.FilterDifficulty] = cfg.DifficultyFilter
	}
	return l.engine.Filter(l.questions.All(), overrides)
}
