package notify

import (
	"fmt"

	"github.com/abhisek/medprep/internal/session"
)

// SubscribeMilestones watches session endings and raises a notification
// for noteworthy results. Returns the token for unsubscribing.
func SubscribeMilestones(bus *session.Bus, n Notifier) session.Subscription {
	return bus.Subscribe(session.EventSessionEnd, func(e session.Event) {
		if e.Summary == nil || e.Summary.TotalQuestions == 0 {
			return
		}
		switch {
		case e.Summary.Accuracy == 100:
			n.Notify("Puntuación perfecta",
				fmt.Sprintf("%d de %d correctas. ¡Impresionante!",
					e.Summary.CorrectAnswers, e.Summary.TotalQuestions))
		case e.Summary.Accuracy >= 80:
			n.Notify("Gran sesión",
				fmt.Sprintf("%d%% de precisión en %d preguntas.",
					e.Summary.Accuracy, e.Summary.TotalQuestions))
		}
	})
}
