package session

import (
	"fmt"
	"os"

	"github.com/abhisek/medprep/internal/question"
)

// EventType names a session lifecycle event.
type EventType string

const (
	EventSessionStart EventType = "sessionStart"
	EventQuestionShow EventType = "questionShow"
	EventAnswerSubmit EventType = "answerSubmit"
	EventSessionEnd   EventType = "sessionEnd"
)

// Event is the payload delivered to subscribers. Fields are populated
// according to the event type; unused fields are zero.
type Event struct {
	Type    EventType
	Session *Session

	// EventSessionStart
	QuestionCount int

	// EventQuestionShow
	Question     *question.Question
	DisplayIndex int // 1-based
	Total        int

	// EventAnswerSubmit
	Record      *AnswerRecord
	Explanation string

	// EventSessionEnd
	Summary *Summary
}

// Listener receives events synchronously on the emitting goroutine.
type Listener func(Event)

// Subscription is the token returned by Subscribe, used to unsubscribe.
type Subscription struct {
	event EventType
	id    int
}

type subscriber struct {
	id int
	fn Listener
}

// Bus dispatches session events to subscribers synchronously, in
// registration order. A panicking listener is recovered and logged without
// aborting dispatch to the remaining listeners.
type Bus struct {
	subs   map[EventType][]subscriber
	nextID int
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[EventType][]subscriber)}
}

// Subscribe registers fn for the given event type and returns an
// unsubscribe token.
func (b *Bus) Subscribe(event EventType, fn Listener) Subscription {
	b.nextID++
	b.subs[event] = append(b.subs[event], subscriber{id: b.nextID, fn: fn})
	return Subscription{event: event, id: b.nextID}
}

// Unsubscribe removes the subscription identified by the token. Unknown
// tokens are a no-op.
func (b *Bus) Unsubscribe(token Subscription) {
	subs := b.subs[token.event]
	for i, s := range subs {
		if s.id == token.id {
			b.subs[token.event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit delivers the event to every subscriber of its type.
func (b *Bus) Emit(event Event) {
	for _, s := range b.subs[event.Type] {
		dispatch(s.fn, event)
	}
}

func dispatch(fn Listener, event Event) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "warning: %s listener panicked: %v\n", event.Type, r)
		}
	}()
	fn(event)
}
