package session

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/medprep/internal/question"
)

// Status is the lifecycle state of a session. The configuring state is
// implicit: a Session only exists from active onward.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// AnswerRecord captures one answered question. Immutable once created;
// IsCorrect is derived from the question's correct option at submit time,
// never stored independently elsewhere.
type AnswerRecord struct {
	QuestionID     string
	SelectedOption string
	IsCorrect      bool
	TimeSpent      time.Duration
	Timestamp      time.Time
}

// Session is the mutable aggregate owned exclusively by the Machine while
// active. Questions are fixed at start; AnswerRecords is append-only;
// CurrentIndex increases monotonically.
type Session struct {
	ID            string
	Config        Config
	StartTime     time.Time
	EndTime       time.Time // zero until completed
	Questions     []question.Question
	CurrentIndex  int
	AnswerRecords []AnswerRecord
	Status        Status

	pausedAt    time.Time
	pausedTotal time.Duration
}

// Paused reports whether the session is currently paused.
func (s *Session) Paused() bool {
	return !s.pausedAt.IsZero()
}

// CurrentView is what the UI needs to display the current question.
type CurrentView struct {
	Question     question.Question
	DisplayIndex int // 1-based
	Total        int
}

// NextResult is returned by NextQuestion so callers can distinguish
// "advanced to the next question" from "session over".
type NextResult struct {
	Advanced     bool
	Question     *question.Question
	DisplayIndex int
	Total        int

	Completed bool
	Session   *Session
	Summary   *Summary
}

// Sink persists a completed session. Failures are logged, never fatal.
type Sink interface {
	SaveSession(s *Session, summary *Summary) error
}

// Machine owns the lifecycle of one practice session:
// configuring → active → completed, with no way back.
type Machine struct {
	bus  *Bus
	sink Sink

	current         *Session
	questionShownAt time.Time

	now func() time.Time
}

// NewMachine creates a session machine publishing on bus. bus may be nil
// (a private bus is created); sink may be nil (no persistence).
func NewMachine(bus *Bus, sink Sink) *Machine {
	if bus == nil {
		bus = NewBus()
	}
	return &Machine{bus: bus, sink: sink, now: time.Now}
}

// Bus returns the machine's event bus.
func (m *Machine) Bus() *Bus {
	return m.bus
}

// Active returns the currently active session, or nil.
func (m *Machine) Active() *Session {
	if m.current != nil && m.current.Status == StatusActive {
		return m.current
	}
	return nil
}

// StartSession creates and activates a session over the given question
// sequence, truncated to cfg.QuestionsCount. Fails with
// ErrNoQuestionsAvailable on an empty pool and with ErrSessionActive if a
// session is already active (the prior session is never discarded
// implicitly). Emits EventSessionStart on success.
func (m *Machine) StartSession(cfg Config, questions []question.Question) (*Session, error) {
	if m.Active() != nil {
		return nil, ErrSessionActive
	}
	if len(questions) == 0 {
		return nil, ErrNoQuestionsAvailable
	}

	if cfg.QuestionsCount > 0 && len(questions) > cfg.QuestionsCount {
		questions = questions[:cfg.QuestionsCount]
	}
	picked := make([]question.Question, len(questions))
	copy(picked, questions)

	s := &Session{
		ID:        uuid.NewString(),
		Config:    cfg,
		StartTime: m.now(),
		Questions: picked,
		Status:    StatusActive,
	}
	m.current = s
	m.questionShownAt = s.StartTime

	m.bus.Emit(Event{
		Type:          EventSessionStart,
		Session:       s,
		QuestionCount: len(picked),
	})
	return s, nil
}

// CurrentQuestion returns the question at the current index with its
// 1-based display position.
func (m *Machine) CurrentQuestion() (CurrentView, error) {
	s := m.Active()
	if s == nil {
		return CurrentView{}, ErrSessionNotActive
	}
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return CurrentView{}, ErrSessionNotActive
	}
	return CurrentView{
		Question:     s.Questions[s.CurrentIndex],
		DisplayIndex: s.CurrentIndex + 1,
		Total:        len(s.Questions),
	}, nil
}

// SubmitAnswer records the selected option for the current question.
// Correctness is derived by comparing against the question's correct
// option. The current index does not advance; that is NextQuestion's job.
// A second submit for the same question fails with ErrAlreadyAnswered.
func (m *Machine) SubmitAnswer(selected string) (AnswerRecord, error) {
	s := m.Active()
	if s == nil {
		return AnswerRecord{}, ErrSessionNotActive
	}
	if s.CurrentIndex >= len(s.Questions) {
		return AnswerRecord{}, ErrInvalidAnswer
	}
	if len(s.AnswerRecords) > s.CurrentIndex {
		return AnswerRecord{}, ErrAlreadyAnswered
	}

	q := s.Questions[s.CurrentIndex]
	if selected == "" || !q.HasOption(selected) {
		return AnswerRecord{}, fmt.Errorf("%w: option %q", ErrInvalidAnswer, selected)
	}

	now := m.now()
	record := AnswerRecord{
		QuestionID:     q.ID,
		SelectedOption: selected,
		IsCorrect:      selected == q.CorrectOption,
		TimeSpent:      now.Sub(m.questionShownAt),
		Timestamp:      now,
	}
	s.AnswerRecords = append(s.AnswerRecords, record)

	m.bus.Emit(Event{
		Type:        EventAnswerSubmit,
		Session:     s,
		Record:      &record,
		Explanation: q.Explanation,
	})
	return record, nil
}

// NextQuestion advances the current index. Within bounds it emits
// EventQuestionShow and returns the new question; past the end it ends the
// session internally and returns the completed session with its summary.
func (m *Machine) NextQuestion() (NextResult, error) {
	s := m.Active()
	if s == nil {
		return NextResult{}, ErrSessionNotActive
	}

	s.CurrentIndex++
	if s.CurrentIndex < len(s.Questions) {
		q := s.Questions[s.CurrentIndex]
		m.questionShownAt = m.now()
		m.bus.Emit(Event{
			Type:         EventQuestionShow,
			Session:      s,
			Question:     &q,
			DisplayIndex: s.CurrentIndex + 1,
			Total:        len(s.Questions),
		})
		return NextResult{
			Advanced:     true,
			Question:     &q,
			DisplayIndex: s.CurrentIndex + 1,
			Total:        len(s.Questions),
		}, nil
	}

	completed, summary, err := m.EndSession()
	if err != nil {
		return NextResult{}, err
	}
	return NextResult{
		Completed: true,
		Session:   completed,
		Summary:   summary,
	}, nil
}

// EndSession freezes the session, computes its summary, persists it via the
// sink and emits EventSessionEnd. Persistence failures are logged and do
// not fail the call.
func (m *Machine) EndSession() (*Session, *Summary, error) {
	s := m.Active()
	if s == nil {
		return nil, nil, ErrSessionNotActive
	}

	if s.Paused() {
		s.pausedTotal += m.now().Sub(s.pausedAt)
		s.pausedAt = time.Time{}
	}
	s.EndTime = m.now()
	s.Status = StatusCompleted
	summary := Summarize(s)

	if m.sink != nil {
		if err := m.sink.SaveSession(s, summary); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to persist session %s: %v\n", s.ID, err)
		}
	}

	m.bus.Emit(Event{
		Type:    EventSessionEnd,
		Session: s,
		Summary: summary,
	})
	m.current = nil
	return s, summary, nil
}

// Pause suspends the session clock. Fails with ErrPauseNotAllowed when the
// session's config forbids pausing.
func (m *Machine) Pause() error {
	s := m.Active()
	if s == nil {
		return ErrSessionNotActive
	}
	if !s.Config.AllowPause {
		return ErrPauseNotAllowed
	}
	if s.Paused() {
		return nil
	}
	s.pausedAt = m.now()
	return nil
}

// Resume restarts the session clock after a pause.
func (m *Machine) Resume() error {
	s := m.Active()
	if s == nil {
		return ErrSessionNotActive
	}
	if !s.Paused() {
		return ErrNotPaused
	}
	s.pausedTotal += m.now().Sub(s.pausedAt)
	s.pausedAt = time.Time{}
	// Don't charge paused time against the current question either.
	m.questionShownAt = m.now()
	return nil
}

// Elapsed returns active time since session start, excluding pauses.
func (m *Machine) Elapsed() time.Duration {
	s := m.current
	if s == nil {
		return 0
	}
	end := m.now()
	if s.Status == StatusCompleted {
		end = s.EndTime
	}
	elapsed := end.Sub(s.StartTime) - s.pausedTotal
	if s.Paused() {
		elapsed -= end.Sub(s.pausedAt)
	}
	return elapsed
}

// TimeRemaining returns the remaining time and whether a limit applies.
func (m *Machine) TimeRemaining() (time.Duration, bool) {
	s := m.Active()
	if s == nil || s.Config.TimeLimit == 0 {
		return 0, false
	}
	remaining := s.Config.TimeLimit - m.Elapsed()
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}
