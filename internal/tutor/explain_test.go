package tutor

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/medprep/internal/question"
)

func sampleQuestion() question.Question {
	return question.Question{
		ID:       "q1",
		Category: "Cardiología",
		Text:     "¿Cuál es el tratamiento de primera línea?",
		Options: map[string]string{
			"A": "Aspirina",
			"B": "Heparina",
		},
		CorrectOption: "A",
		Explanation:   "La aspirina reduce la mortalidad.",
	}
}

func TestExplain_ParsesStructuredResponse(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{
			"summary": "La aspirina inhibe la agregación plaquetaria.",
			"keyPoints": ["Antiagregante de elección", "Reduce mortalidad"],
			"whyOthersFail": {"B": "La heparina no es primera línea aquí."}
		}`),
	})
	tut := New(mock)

	exp, err := tut.Explain(context.Background(), sampleQuestion(), "B")
	require.NoError(t, err)
	assert.Contains(t, exp.Summary, "aspirina")
	assert.Len(t, exp.KeyPoints, 2)
	assert.Contains(t, exp.WhyOthersFail, "B")
}

func TestExplain_PromptCarriesQuestionAndChoice(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"summary": "s", "keyPoints": ["k"]}`),
	})
	tut := New(mock)

	_, err := tut.Explain(context.Background(), sampleQuestion(), "B")
	require.NoError(t, err)

	require.Len(t, mock.Calls, 1)
	prompt := mock.Calls[0].Messages[0].Content
	assert.Contains(t, prompt, "¿Cuál es el tratamiento de primera línea?")
	assert.Contains(t, prompt, "Respuesta correcta: A")
	assert.Contains(t, prompt, "El estudiante eligió: B")
	require.NotNil(t, mock.Calls[0].Schema)
	assert.Equal(t, "answer-explanation", mock.Calls[0].Schema.Name)
}

func TestExplain_CorrectChoiceOmitsStudentLine(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"summary": "s", "keyPoints": ["k"]}`),
	})
	tut := New(mock)

	_, err := tut.Explain(context.Background(), sampleQuestion(), "A")
	require.NoError(t, err)
	assert.False(t, strings.Contains(mock.Calls[0].Messages[0].Content, "eligió"))
}

func TestExplain_ProviderFailure(t *testing.T) {
	tut := New(NewMockProvider()) // empty queue means unavailable

	_, err := tut.Explain(context.Background(), sampleQuestion(), "A")
	require.Error(t, err)
	var unavail *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavail)
}

func TestExplain_MalformedContent(t *testing.T) {
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`"just a string"`),
	})
	tut := New(mock)

	_, err := tut.Explain(context.Background(), sampleQuestion(), "A")
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}
