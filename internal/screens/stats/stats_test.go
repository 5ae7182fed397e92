package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/medprep/internal/progress"
)

func loadedScreen() *StatsScreen {
	s := New(nil)
	s.Update(statsLoadedMsg{
		Overall: progress.Overall{
			TotalQuestions:   40,
			CorrectAnswers:   30,
			Accuracy:         75,
			PerformanceLevel: "intermediate",
			StreakDays:       3,
			Trend:            progress.TrendImproving,
		},
		Categories: map[string]progress.CategoryStats{
			"Cardiología": {Total: 20, Correct: 8, Accuracy: 40},
			"Neurología":  {Total: 20, Correct: 18, Accuracy: 90},
		},
		Weak:   map[string]bool{"Cardiología": true},
		Strong: map[string]bool{"Neurología": true},
	})
	return s
}

func TestStatsScreen_Title(t *testing.T) {
	assert.Equal(t, "Estadísticas", New(nil).Title())
}

func TestStatsScreen_View(t *testing.T) {
	view := loadedScreen().View(100, 30)

	assert.Contains(t, view, "Precisión global: 75%")
	assert.Contains(t, view, "Racha: 3 días")
	assert.Contains(t, view, "Intermedio")
	assert.Contains(t, view, "Mejorando")
	assert.Contains(t, view, "Cardiología")
	assert.Contains(t, view, "▼")
	assert.Contains(t, view, "▲")
}

func TestStatsScreen_EmptyHistory(t *testing.T) {
	s := New(nil)
	s.Update(statsLoadedMsg{Overall: progress.Overall{}})

	assert.Contains(t, s.View(100, 30), "Aún no hay sesiones")
}
