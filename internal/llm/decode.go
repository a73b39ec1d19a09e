package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// StripCodeFence removes a surrounding markdown code fence (```json ... ```)
// that models like to add even in JSON mode.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		// Drop the info string ("json", "JSON", ...).
		if !strings.ContainsAny(s[:nl], "{[") {
			s = s[nl+1:]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// finishContent turns a provider's raw reply into Response content. Schema
// replies are unfenced and validated; plain text is passed through.
func finishContent(schema *Schema, text string) (json.RawMessage, error) {
	if schema == nil {
		return json.RawMessage(text), nil
	}
	content := json.RawMessage(StripCodeFence(text))
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Decode parses a structured reply into T. The shape is never trusted: a
// nil response, empty content or JSON that does not fit T all come back as
// *ErrInvalidResponse, the same class as a reply that failed validation.
func Decode[T any](resp *Response) (T, error) {
	var out T
	if resp == nil {
		return out, &ErrInvalidResponse{Err: errors.New("no response")}
	}
	raw := StripCodeFence(string(resp.Content))
	if raw == "" {
		return out, &ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty content")}
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return out, &ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode: %w", err)}
	}
	return out, nil
}
