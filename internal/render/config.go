package render

// Config holds message rendering settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// HintLabel prefixes the hint when the message is composed without the
	// model.
	HintLabel string
}

// DefaultConfig returns sensible defaults for rendering.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   400,
		Temperature: 0.5,
		HintLabel:   "Hint:",
	}
}
