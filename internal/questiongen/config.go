package questiongen

import (
	"fmt"

	"github.com/abhisek/interviewer/internal/session"
)

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxAvoid is the maximum number of prior questions included in the
	// prompt for deduplication.
	MaxAvoid int

	// Fallback builds the draft used when the model output cannot be used.
	// The hint is dropped unless one was requested.
	Fallback func(topic string) session.QuestionDraft
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.4,
		MaxAvoid:    8,
		Fallback:    DefaultFallback,
	}
}

// DefaultFallback is the English canned question for a topic.
func DefaultFallback(topic string) session.QuestionDraft {
	return session.QuestionDraft{
		Question:    fmt.Sprintf("Let's start with the basics of %s: what is it, and where have you used it?", topic),
		Hint:        "Start with a simple definition, then give one concrete example.",
		IdealAnswer: fmt.Sprintf("A clear definition of %s with one practical example of its use.", topic),
	}
}
