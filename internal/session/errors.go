package session

import (
	"errors"
	"strings"
)

// Recoverable failures are sentinel errors so callers can branch with
// errors.Is instead of string matching.
var (
	// ErrNoQuestionsAvailable means the candidate pool at session start
	// was empty. No session is created.
	ErrNoQuestionsAvailable = errors.New("no questions available")

	// ErrSessionActive means StartSession was called while another session
	// is active. The active session is left untouched.
	ErrSessionActive = errors.New("a session is already active")

	// ErrSessionNotActive means an operation requires an active session.
	ErrSessionNotActive = errors.New("no active session")

	// ErrInvalidAnswer means the submitted option is empty or not one of
	// the current question's option keys.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrAlreadyAnswered means the current question already has an answer
	// record; no duplicate is appended.
	ErrAlreadyAnswered = errors.New("question already answered")

	// ErrPauseNotAllowed means the session's config forbids pausing.
	ErrPauseNotAllowed = errors.New("pause not allowed")

	// ErrNotPaused means Resume was called on a session that isn't paused.
	ErrNotPaused = errors.New("session is not paused")
)

// ValidationErrors collects every config violation; a config is accepted
// wholly or rejected wholly.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return "invalid configuration: " + strings.Join(v, "; ")
}
