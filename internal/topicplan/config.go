package topicplan

// Config holds topic planning settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MinTopics and MaxTopics bound the plan size requested from the model.
	// Longer plans are truncated to MaxTopics.
	MinTopics int
	MaxTopics int
}

// DefaultConfig returns sensible defaults for topic planning.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
		MinTopics:   6,
		MaxTopics:   10,
	}
}
