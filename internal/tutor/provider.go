// Package tutor generates deeper answer explanations through an LLM
// provider. The bank's own explanations are always shown first; the tutor
// is an optional second opinion.
package tutor

import (
	"context"
	"encoding/json"
)

// Provider is the LLM abstraction. Consumers call Generate with a Request
// and receive structured JSON.
type Provider interface {
	// Generate sends a prompt and returns a structured response. When the
	// request carries a Schema the returned Content is JSON validated
	// against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System sets the LLM's role and constraints.
	System string

	// Messages is the conversation. Explanations are single-turn, so this
	// usually holds one user message.
	Messages []Message

	// Schema, when set, instructs the provider to return JSON conforming
	// to it via the provider's native structured output mechanism.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 to 1.0. Zero is deterministic.
	Temperature float64
}

// Message is a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema. Kebab-case, e.g. "answer-explanation".
	Name string

	// Description guides the LLM on what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. With a Schema this is the validated
	// JSON object; without one it is the raw text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
