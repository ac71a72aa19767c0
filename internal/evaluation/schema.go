package evaluation

import "github.com/abhisek/interviewer/internal/llm"

// EvaluationSchema defines the JSON schema for answer evaluation responses.
var EvaluationSchema = &llm.Schema{
	Name:        "turn-evaluation",
	Description: "Assessment of the candidate's last answer and the plan for the next question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"detected_offtopic": map[string]any{
				"type":        "boolean",
				"description": "True when the answer ignores the question or drifts to an unrelated subject",
			},
			"detected_hallucination": map[string]any{
				"type":        "boolean",
				"description": "True when the answer makes confident but false technical claims",
			},
			"answer_quality": map[string]any{
				"type": "string",
				"enum": []any{"good", "partial", "poor", "unknown"},
			},
			"score_0_100": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 100,
			},
			"next_difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
			"next_topic": map[string]any{
				"type":        "string",
				"description": "Topic for the next question, taken from the topic plan",
			},
			"intent": map[string]any{
				"type":        "string",
				"description": "Short label for what the next question should do, e.g. check_basics, deepen, clarify",
			},
			"should_move_on": map[string]any{
				"type":        "boolean",
				"description": "False to stay on the current topic",
			},
			"need_hint": map[string]any{
				"type": "boolean",
			},
			"acknowledge": map[string]any{
				"type":        "string",
				"description": "One natural sentence acknowledging the answer",
			},
			"notes": map[string]any{
				"type":        "string",
				"description": "Internal reasoning, never shown to the candidate",
			},
		},
		"required": []any{
			"detected_offtopic", "detected_hallucination", "answer_quality", "score_0_100",
			"next_difficulty", "next_topic", "intent", "should_move_on", "need_hint",
			"acknowledge", "notes",
		},
		"additionalProperties": false,
	},
}

// VerdictSchema defines the JSON schema for topic consistency checks.
var VerdictSchema = &llm.Schema{
	Name:        "topic-guard",
	Description: "Whether a drafted interview question addresses its intended topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topic_mismatch": map[string]any{
				"type":        "boolean",
				"description": "True only when the question is clearly about a different topic",
			},
			"reason": map[string]any{
				"type":        "string",
				"description": "One short sentence explaining the decision",
			},
		},
		"required":             []any{"topic_mismatch", "reason"},
		"additionalProperties": false,
	},
}
