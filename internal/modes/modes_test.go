package modes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abhisek/medprep/internal/filter"
	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/session"
)

func testBank(t *testing.T) *question.Store {
	t.Helper()
	qs := []question.Question{
		{
			ID: "c1", Category: "Cardiología", Difficulty: question.DifficultyBasic,
			Text: "p1", Options: map[string]string{"A": "a", "B": "b"}, CorrectOption: "A",
		},
		{
			ID: "c2", Category: "Cardiología", Difficulty: question.DifficultyAdvanced,
			Text: "p2", Options: map[string]string{"A": "a", "B": "b"}, CorrectOption: "B",
		},
		{
			ID: "n1", Category: "Neurología", Difficulty: question.DifficultyBasic,
			Text: "p3", Options: map[string]string{"A": "a", "B": "b"}, CorrectOption: "A",
		},
	}
	store, err := question.NewStore(qs)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

type stubGate struct {
	admit     bool
	recordErr error
	recorded  int
}

func (g *stubGate) CanStartExam(context.Context) (bool, error) { return g.admit, nil }
func (g *stubGate) RecordExamStart(context.Context) error      { g.recorded++; return g.recordErr }

type stubHistory struct {
	incorrect map[string]bool
}

func (h stubHistory) IncorrectQuestionIDs() (map[string]bool, error) { return h.incorrect, nil }

type stubSignals struct {
	weak      map[string]bool
	answered  map[string]bool
	incorrect map[string]bool
	tier      question.Difficulty
}

func (s stubSignals) WeakCategories() (map[string]bool, error)      { return s.weak, nil }
func (s stubSignals) AnsweredQuestionIDs() (map[string]bool, error) { return s.answered, nil }
func (s stubSignals) IncorrectQuestionIDs() (map[string]bool, error) {
	return s.incorrect, nil
}
func (s stubSignals) PerformanceTier() (question.Difficulty, error) { return s.tier, nil }
func (s stubSignals) LastAttemptTimes(context.Context) (map[string]time.Time, error) {
	return nil, nil
}

func testLauncher(t *testing.T, g Gate, h History) (*Launcher, *session.Bus) {
	t.Helper()
	bus := session.NewBus()
	machine := session.NewMachine(bus, nil)
	engine := filter.NewEngine()
	filter.RegisterDefaults(engine, nil, nil)
	l := NewLauncher(machine, engine, testBank(t), g, h, nil)
	l.shuffle = func([]question.Question) {} // deterministic order in tests
	return l, bus
}

func countStarts(bus *session.Bus) *int {
	starts := 0
	bus.Subscribe(session.EventSessionStart, func(session.Event) { starts++ })
	return &starts
}

func TestSelect_UnknownMode(t *testing.T) {
	_, err := Select("cram")
	if !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("err = %v, want ErrUnknownMode", err)
	}
}

func TestAll_MenuOrder(t *testing.T) {
	all := All()
	if len(all) != len(session.Modes) {
		t.Fatalf("len = %d, want %d", len(all), len(session.Modes))
	}
	if all[0].Mode != session.ModeExamSimulation || all[len(all)-1].Mode != session.ModeRandom {
		t.Errorf("unexpected order: first %s last %s", all[0].Mode, all[len(all)-1].Mode)
	}
}

func TestBuildConfig_StudyRejectsTimeLimit(t *testing.T) {
	d, err := Select(session.ModeStudy)
	if err != nil {
		t.Fatal(err)
	}
	limit := 30 * time.Minute
	_, err = d.BuildConfig(session.ConfigPatch{TimeLimit: &limit})
	var verrs session.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 1 || verrs[0] != "study mode does not take a time limit" {
		t.Errorf("violations = %v", verrs)
	}
}

func TestBuildConfig_ExamRejectsAnyCustomization(t *testing.T) {
	d, err := Select(session.ModeExamSimulation)
	if err != nil {
		t.Fatal(err)
	}
	count := 5
	_, err = d.BuildConfig(session.ConfigPatch{QuestionsCount: &count})
	var verrs session.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
}

func TestBuildConfig_CollectsEveryViolation(t *testing.T) {
	d, err := Select(session.ModeTimedPractice)
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	specialty := "Alquimia"
	_, err = d.BuildConfig(session.ConfigPatch{
		QuestionsCount:  &count,
		SpecialtyFilter: &specialty,
	})
	var verrs session.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
	if len(verrs) != 2 {
		t.Errorf("violations = %v, want 2 entries", verrs)
	}
}

func TestBuildConfig_TimedPracticeOverrides(t *testing.T) {
	d, err := Select(session.ModeTimedPractice)
	if err != nil {
		t.Fatal(err)
	}
	count := 5
	specialty := "Cardiología"
	cfg, err := d.BuildConfig(session.ConfigPatch{
		QuestionsCount:  &count,
		SpecialtyFilter: &specialty,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.QuestionsCount != 5 || cfg.SpecialtyFilter != "Cardiología" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TimeLimit != 20*time.Minute {
		t.Errorf("time limit = %v, want preset 20m", cfg.TimeLimit)
	}
}

func TestBuildConfig_AllowPauseOverride(t *testing.T) {
	d, err := Select(session.ModeTimedPractice)
	if err != nil {
		t.Fatal(err)
	}
	pause := true
	cfg, err := d.BuildConfig(session.ConfigPatch{AllowPause: &pause})
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.AllowPause {
		t.Error("AllowPause patch not applied")
	}
}

func TestStart_StudyAppliesSpecialtyFilter(t *testing.T) {
	l, _ := testLauncher(t, nil, nil)
	specialty := "Cardiología"
	s, err := l.Start(context.Background(), session.ModeStudy, session.ConfigPatch{SpecialtyFilter: &specialty})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Questions) != 2 {
		t.Fatalf("pool = %d questions, want 2", len(s.Questions))
	}
	for _, q := range s.Questions {
		if q.Category != "Cardiología" {
			t.Errorf("question %s has category %s", q.ID, q.Category)
		}
	}
}

func TestStart_StudyOrdersPoolByRecommendation(t *testing.T) {
	bus := session.NewBus()
	machine := session.NewMachine(bus, nil)
	engine := filter.NewEngine()
	filter.RegisterDefaults(engine, nil, nil)
	signals := stubSignals{
		weak:      map[string]bool{"Neurología": true},
		answered:  map[string]bool{"n1": true},
		incorrect: map[string]bool{"n1": true},
	}
	l := NewLauncher(machine, engine, testBank(t), nil, nil, signals)

	s, err := l.Start(context.Background(), session.ModeStudy, session.ConfigPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Questions) == 0 || s.Questions[0].ID != "n1" {
		t.Errorf("first question = %+v, want the weak-category miss n1 first", s.Questions)
	}
}

func TestStart_RandomPicksOneQuestion(t *testing.T) {
	l, _ := testLauncher(t, nil, nil)
	s, err := l.Start(context.Background(), session.ModeRandom, session.ConfigPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Questions) != 1 {
		t.Errorf("pool = %d questions, want 1", len(s.Questions))
	}
	if s.Config.AllowPause {
		t.Error("random mode should not allow pausing")
	}
}

func TestStart_ExamDeniedLeavesNoSession(t *testing.T) {
	g := &stubGate{admit: false}
	l, bus := testLauncher(t, g, nil)
	starts := countStarts(bus)

	_, err := l.Start(context.Background(), session.ModeExamSimulation, session.ConfigPatch{})
	if !errors.Is(err, ErrAdmissionDenied) {
		t.Fatalf("err = %v, want ErrAdmissionDenied", err)
	}
	if *starts != 0 {
		t.Error("denied exam must not emit a session start")
	}
	if g.recorded != 0 {
		t.Error("denied exam must not be recorded")
	}
}

func TestStart_ExamAdmittedIsRecorded(t *testing.T) {
	g := &stubGate{admit: true}
	l, bus := testLauncher(t, g, nil)
	starts := countStarts(bus)

	s, err := l.Start(context.Background(), session.ModeExamSimulation, session.ConfigPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if *starts != 1 || g.recorded != 1 {
		t.Errorf("starts = %d recorded = %d, want 1 and 1", *starts, g.recorded)
	}
	if s.Config.ShowExplanations || s.Config.AllowPause {
		t.Error("exam simulation must hide explanations and forbid pausing")
	}
	if s.Config.TimeLimit != 60*time.Minute {
		t.Errorf("time limit = %v, want 60m", s.Config.TimeLimit)
	}
}

func TestStart_ExamRecordFailureStillHandsOverSession(t *testing.T) {
	g := &stubGate{admit: true, recordErr: errors.New("disk full")}
	l, _ := testLauncher(t, g, nil)

	s, err := l.Start(context.Background(), session.ModeExamSimulation, session.ConfigPatch{})
	if err != nil {
		t.Fatalf("err = %v, want nil despite record failure", err)
	}
	if s == nil {
		t.Fatal("expected the started session to be returned")
	}
}

func TestStart_ReviewEmptyHistoryFailsSilently(t *testing.T) {
	l, bus := testLauncher(t, nil, stubHistory{})
	starts := countStarts(bus)

	_, err := l.Start(context.Background(), session.ModeReview, session.ConfigPatch{})
	if !errors.Is(err, ErrNothingToReview) {
		t.Fatalf("err = %v, want ErrNothingToReview", err)
	}
	if *starts != 0 {
		t.Error("empty review must not emit a session start")
	}
}

func TestStart_ReviewPoolFromIncorrectAnswers(t *testing.T) {
	l, _ := testLauncher(t, nil, stubHistory{incorrect: map[string]bool{"c2": true, "n1": true}})

	s, err := l.Start(context.Background(), session.ModeReview, session.ConfigPatch{})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Questions) != 2 {
		t.Fatalf("pool = %d questions, want 2", len(s.Questions))
	}
	if s.Config.QuestionsCount != 2 {
		t.Errorf("count = %d, want pool size 2", s.Config.QuestionsCount)
	}
}

func TestStart_ReviewRejectsCustomConfig(t *testing.T) {
	l, _ := testLauncher(t, nil, stubHistory{incorrect: map[string]bool{"c2": true}})
	count := 3
	_, err := l.Start(context.Background(), session.ModeReview, session.ConfigPatch{QuestionsCount: &count})
	var verrs session.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("err = %v, want ValidationErrors", err)
	}
}
