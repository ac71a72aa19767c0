package session

// Config holds the adaptation thresholds and defaults of a session.
type Config struct {
	// GoodScore is the minimum score counted toward the good streak.
	GoodScore int
	// PoorScore is the maximum score counted toward the poor streak. A score
	// at or below it also forces the next question to easy with a hint.
	PoorScore int
	// StreakLength is how many consecutive good or poor answers move the
	// difficulty one tier.
	StreakLength int

	// AvoidWindow bounds the anti-repetition list passed to generation.
	AvoidWindow int
	// MaxRegenAttempts bounds topic-consistency regenerations per question.
	// Zero disables the consistency check.
	MaxRegenAttempts int

	// HistoryWindow is how many trailing history messages collaborators see.
	HistoryWindow int
	// StateTopics and StateQuestions bound the recent topics and questions
	// reported to the evaluator.
	StateTopics    int
	StateQuestions int

	// FallbackTopics is the plan used when planning fails or returns nothing.
	FallbackTopics []string
	// Intro is pushed as the first interviewer message. Empty skips it.
	Intro string
	// WarmupIntent labels the first question request.
	WarmupIntent string
}

// DefaultConfig returns the standard thresholds.
func DefaultConfig() Config {
	return Config{
		GoodScore:        75,
		PoorScore:        45,
		StreakLength:     2,
		AvoidWindow:      8,
		MaxRegenAttempts: 1,
		HistoryWindow:    14,
		StateTopics:      8,
		StateQuestions:   5,
		FallbackTopics:   []string{"general_basics", "problem_solving", "tools_workflow"},
		WarmupIntent:     "warmup",
	}
}

// RegenIntentSuffix tags the intent of a question request retried after a
// topic mismatch.
const RegenIntentSuffix = "_regen_topic_mismatch"

func regenIntent(intent string) string {
	return intent + RegenIntentSuffix
}

// withDefaults fills unset thresholds and windows from DefaultConfig.
// MaxRegenAttempts is left alone since zero disables the guard.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.GoodScore == 0 {
		c.GoodScore = d.GoodScore
	}
	if c.PoorScore == 0 {
		c.PoorScore = d.PoorScore
	}
	if c.StreakLength == 0 {
		c.StreakLength = d.StreakLength
	}
	if c.AvoidWindow == 0 {
		c.AvoidWindow = d.AvoidWindow
	}
	if c.HistoryWindow == 0 {
		c.HistoryWindow = d.HistoryWindow
	}
	if c.StateTopics == 0 {
		c.StateTopics = d.StateTopics
	}
	if c.StateQuestions == 0 {
		c.StateQuestions = d.StateQuestions
	}
	if len(c.FallbackTopics) == 0 {
		c.FallbackTopics = d.FallbackTopics
	}
	if c.WarmupIntent == "" {
		c.WarmupIntent = d.WarmupIntent
	}
	return c
}
