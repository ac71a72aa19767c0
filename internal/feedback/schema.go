package feedback

import "github.com/abhisek/interviewer/internal/llm"

var level = map[string]any{
	"type": "string",
	"enum": []any{"low", "medium", "high"},
}

var stringList = map[string]any{
	"type":  "array",
	"items": map[string]any{"type": "string"},
}

// ReportSchema defines the JSON schema for the final hiring report.
var ReportSchema = &llm.Schema{
	Name:        "final-report",
	Description: "Structured hiring feedback after a technical interview",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"grade": map[string]any{
				"type": "string",
				"enum": []any{"Junior", "Middle", "Senior"},
			},
			"hiring_recommendation": map[string]any{
				"type": "string",
				"enum": []any{"Hire", "No Hire", "Strong Hire"},
			},
			"confidence_score_0_100": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"confirmed_skills": stringList,
			"knowledge_gaps":   stringList,
			"corrections": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short correct explanation for each gap, based on the ideal answers",
			},
			"clarity":    level,
			"honesty":    level,
			"engagement": level,
			"roadmap": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Concrete next steps for the candidate",
			},
		},
		"required": []any{
			"grade", "hiring_recommendation", "confidence_score_0_100", "confirmed_skills",
			"knowledge_gaps", "corrections", "clarity", "honesty", "engagement", "roadmap",
		},
		"additionalProperties": false,
	},
}
