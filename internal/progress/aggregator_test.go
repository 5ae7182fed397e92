package progress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/medprep/internal/question"
	"github.com/abhisek/medprep/internal/session"
	"github.com/abhisek/medprep/internal/store"
)

func seededAggregator(t *testing.T) *Aggregator {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	qs := []question.Question{
		{
			ID: "c1", Category: "Cardiología", Difficulty: question.DifficultyBasic,
			Text: "p1", Options: map[string]string{"A": "a", "B": "b"}, CorrectOption: "A",
		},
		{
			ID: "n1", Category: "Neurología", Difficulty: question.DifficultyBasic,
			Text: "p2", Options: map[string]string{"A": "a", "B": "b"}, CorrectOption: "A",
		},
	}

	// Answer the cardiology question right and the neurology one wrong.
	m := session.NewMachine(nil, st.Sessions())
	_, err = m.StartSession(session.DefaultConfig(), qs)
	require.NoError(t, err)
	answers := []string{"A", "B"}
	for _, ans := range answers {
		_, err := m.SubmitAnswer(ans)
		require.NoError(t, err)
		_, err = m.NextQuestion()
		require.NoError(t, err)
	}

	_, err = st.Bookmarks().Toggle(context.Background(), "n1")
	require.NoError(t, err)

	return NewAggregator(st.Sessions(), st.Bookmarks())
}

func TestAggregator_HistorySets(t *testing.T) {
	a := seededAggregator(t)

	answered, err := a.AnsweredQuestionIDs()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"c1": true, "n1": true}, answered)

	incorrect, err := a.IncorrectQuestionIDs()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"n1": true}, incorrect)

	bookmarked, err := a.BookmarkedQuestionIDs()
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"n1": true}, bookmarked)
}

func TestAggregator_CategoriesAndOverall(t *testing.T) {
	a := seededAggregator(t)
	ctx := context.Background()

	stats, err := a.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, CategoryStats{Total: 1, Correct: 1, Accuracy: 100}, stats["Cardiología"])
	assert.Equal(t, CategoryStats{Total: 1, Correct: 0, Accuracy: 0}, stats["Neurología"])

	overall, err := a.Overall(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, overall.TotalQuestions)
	assert.Equal(t, 50, overall.Accuracy)
	assert.Equal(t, 1, overall.StreakDays)

	// Two answers is below the classification sample, so the tier stays basic.
	tier, err := a.PerformanceTier()
	require.NoError(t, err)
	assert.Equal(t, question.DifficultyBasic, tier)
}
