// Package notify delivers short out-of-band messages to the learner,
// such as session milestones and reminders.
package notify

import (
	"fmt"
	"io"
)

// Notifier receives learner-facing notifications.
type Notifier interface {
	Notify(title, body string)
}

// WriterNotifier prints notifications to a writer, one per line.
type WriterNotifier struct {
	w io.Writer
}

// NewWriterNotifier builds a notifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

func (n *WriterNotifier) Notify(title, body string) {
	fmt.Fprintf(n.w, "[%s] %s\n", title, body)
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Notify(string, string) {}
