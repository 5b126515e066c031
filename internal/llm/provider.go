package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call. Implementations translate
// Request into their vendor API and normalise errors into the types in
// errors.go so the retry and metrics layers can classify them.
type Provider interface {
	// Generate returns the model output. With req.Schema set the content is
	// a JSON document checked against that schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request is a single-turn or multi-turn prompt.
type Request struct {
	System   string
	Messages []Message

	// Schema selects the provider's structured output mode. Nil means free
	// text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
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

// Schema names a JSON Schema document. Name doubles as the cache key for
// the compiled schema, so it must be unique per Definition.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Normalised stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that served the request, which may differ from
	// the configured alias.
	Model string

	// StopReason is StopEnd or StopMaxTokens.
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly alias to a vendor model ID. Unknown names
// are treated as model IDs.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
