package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Provider is the content generator every shelf card talks to.
// Callers send a prompt, optionally with a structured-output schema, and get
// back generated text or validated JSON.
type Provider interface {
	// Generate sends a prompt to the model. When req.Schema is set the
	// provider asks for JSON matching it and validates the reply before
	// returning; a reply that does not validate is an *ErrInvalidResponse.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's persona and house rules.
	System string

	// Messages is the conversation. Every card sends a single user turn.
	Messages []Message

	// Schema, when set, requests structured output conforming to it.
	// When nil, the response Content is the model's plain text.
	Schema *Schema

	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Zero means the provider default.
	Temperature float64
}

// Prompt builds a single-turn request.
func Prompt(system, user string) Request {
	return Request{
		System:   system,
		Messages: []Message{{Role: RoleUser, Content: user}},
	}
}

// Transcript renders the request the way the audit log stores it: the
// system prompt, each turn under its role and the schema, if any.
func (r Request) Transcript() string {
	var b strings.Builder
	if r.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", r.System)
	}
	for _, m := range r.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if r.Schema != nil {
		if def, err := json.Marshal(r.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", r.Schema.Name, def)
		}
	}
	return b.String()
}

// Message represents a single message in the conversation.
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

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name for
	// OpenAI, cache key for validation). Kebab-case, e.g. "story-questions".
	Name string

	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// otherwise the raw text reply.
	Content json.RawMessage

	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Text returns the reply as trimmed plain text.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
