package feedback

import "github.com/abhisek/interviewer/internal/session"

// Config holds final report settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Fallback is the report used when the model output cannot be used.
	Fallback session.FinalReport
}

// DefaultConfig returns sensible defaults for the final report.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.2,
		Fallback:    DefaultFallback(),
	}
}

// DefaultFallback is the conservative English report.
func DefaultFallback() session.FinalReport {
	return session.FinalReport{
		Grade:                "Junior",
		HiringRecommendation: "No Hire",
		Confidence:           45,
		ConfirmedSkills:      []string{},
		KnowledgeGaps:        []string{"The final report could not be generated."},
		Corrections:          []string{},
		SoftSkills: session.SoftSkills{
			Clarity:    session.LevelMedium,
			Honesty:    session.LevelMedium,
			Engagement: session.LevelLow,
		},
		Roadmap: []string{"Review the basics and retry the interview."},
	}
}
