package questiongen

import "github.com/abhisek/interviewer/internal/llm"

// QuestionSchema defines the JSON schema for generated questions.
var QuestionSchema = &llm.Schema{
	Name:        "question-draft",
	Description: "A single interview question with an optional hint and a short ideal answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question_text": map[string]any{
				"type":        "string",
				"description": "The question to ask the candidate",
			},
			"hint": map[string]any{
				"type":        "string",
				"description": "One sentence that helps without giving the answer away; empty when no hint is needed",
			},
			"ideal_answer_short": map[string]any{
				"type":        "string",
				"description": "Brief correct answer (1-4 sentences) used for grading and feedback",
			},
		},
		"required":             []any{"question_text", "hint", "ideal_answer_short"},
		"additionalProperties": false,
	},
}
