package evaluation

// Config holds answer evaluation and topic verification settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	VerifyMaxTokens   int
	VerifyTemperature float64

	// FallbackScore and FallbackAcknowledgment fill the evaluation used when
	// the model output cannot be used.
	FallbackScore          int
	FallbackAcknowledgment string
}

// DefaultConfig returns sensible defaults for evaluation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:              512,
		Temperature:            0.2,
		VerifyMaxTokens:        128,
		VerifyTemperature:      0.0,
		FallbackScore:          45,
		FallbackAcknowledgment: "Okay, got it.",
	}
}
