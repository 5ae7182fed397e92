package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/medprep/internal/question"
)

// Explanation is the tutor's expanded rationale for one question.
type Explanation struct {
	// Summary is the core rationale in two or three sentences.
	Summary string `json:"summary"`

	// KeyPoints are the facts worth memorizing for the exam.
	KeyPoints []string `json:"keyPoints"`

	// WhyOthersFail explains, per option key, why the distractors are wrong.
	WhyOthersFail map[string]string `json:"whyOthersFail,omitempty"`
}

const explainSystem = `Eres un tutor de medicina que prepara estudiantes para el
examen de residencia. Explica con precisión clínica y en español. Responde
únicamente con el JSON pedido.`

var explanationSchema = &Schema{
	Name:        "answer-explanation",
	Description: "Expanded rationale for a practice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"summary": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"keyPoints": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 1,
			},
			"whyOthersFail": map[string]any{
				"type":                 "object",
				"additionalProperties": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"summary", "keyPoints"},
		"additionalProperties": false,
	},
}

// maxExplanationTokens bounds a single explanation response.
const maxExplanationTokens = 1024

// Tutor turns practice questions into expanded explanations.
type Tutor struct {
	provider Provider
}

// New builds a Tutor over the given provider.
func New(p Provider) *Tutor {
	return &Tutor{provider: p}
}

// Explain asks the provider for a deeper rationale. selected is the option
// the learner chose, which may differ from the correct one.
func (t *Tutor) Explain(ctx context.Context, q question.Question, selected string) (*Explanation, error) {
	req := Request{
		System:    explainSystem,
		Messages:  []Message{{Role: RoleUser, Content: explainPrompt(q, selected)}},
		Schema:    explanationSchema,
		MaxTokens: maxExplanationTokens,
	}

	resp, err := t.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate explanation: %w", err)
	}

	var out Explanation
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, &ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return &out, nil
}

func explainPrompt(q question.Question, selected string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Especialidad: %s\nPregunta: %s\n", q.Category, q.Text)
	for _, key := range q.OptionKeys() {
		fmt.Fprintf(&b, "%s) %s\n", key, q.Options[key])
	}
	fmt.Fprintf(&b, "Respuesta correcta: %s\n", q.CorrectOption)
	if selected != "" && selected != q.CorrectOption {
		fmt.Fprintf(&b, "El estudiante eligió: %s\n", selected)
	}
	if q.Explanation != "" {
		fmt.Fprintf(&b, "Explicación del banco: %s\n", q.Explanation)
	}
	b.WriteString("Amplía la explicación para el estudiante.")
	return b.String()
}
