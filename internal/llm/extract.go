package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ExtractJSON returns the JSON object embedded in text. Models often wrap
// structured output in prose or code fences, so when text is not already a
// JSON object the span from the first "{" to the last "}" is tried.
// Returns *ErrInvalidResponse when no valid object can be found.
func ExtractJSON(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ErrInvalidResponse{
			Kind: InvalidEmpty,
			Err:  errors.New("empty response"),
		}
	}

	if strings.HasPrefix(trimmed, "{") && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return nil, &ErrInvalidResponse{
			Kind:    InvalidJSON,
			Content: json.RawMessage(text),
			Err:     errors.New("no JSON object in response"),
		}
	}

	candidate := trimmed[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, &ErrInvalidResponse{
			Kind:    InvalidJSON,
			Content: json.RawMessage(text),
			Err:     errors.New("malformed JSON object in response"),
		}
	}
	return json.RawMessage(candidate), nil
}
