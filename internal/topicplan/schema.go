package topicplan

import "github.com/abhisek/interviewer/internal/llm"

// PlanSchema defines the JSON schema for topic plan responses.
var PlanSchema = &llm.Schema{
	Name:        "topic-plan",
	Description: "Ordered list of interview topics from fundamentals to advanced",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Short snake_case topic identifiers, e.g. sql_joins, go_concurrency",
			},
		},
		"required":             []any{"topics"},
		"additionalProperties": false,
	},
}
