package llm

import (
	"encoding/json"
	"strings"
)

// demoTopics is the plan the offline demo interviews on.
var demoTopics = []string{"go_basics", "http_handlers", "sql_joins", "go_concurrency", "testing", "docker_basics"}

// NewDemoProvider returns a MockProvider that answers every structured
// request with a valid canned document, keyed by schema name. Free-text
// requests get an empty reply so callers use their composed message.
// It backs INTERVIEWER_LLM_PROVIDER=mock for offline runs.
func NewDemoProvider() *MockProvider {
	return &MockProvider{Responder: demoResponse}
}

func demoResponse(req Request) MockResponse {
	if req.Schema == nil {
		return MockResponse{Content: json.RawMessage("")}
	}

	var doc any
	switch req.Schema.Name {
	case "topic-plan":
		doc = map[string]any{"topics": demoTopics}
	case "turn-evaluation":
		doc = map[string]any{
			"detected_offtopic":      false,
			"detected_hallucination": false,
			"answer_quality":         "partial",
			"score_0_100":            60,
			"next_difficulty":        "medium",
			"next_topic":             "",
			"intent":                 "deepen",
			"should_move_on":         true,
			"need_hint":              false,
			"acknowledge":            "Thanks, noted.",
			"notes":                  "demo evaluation",
		}
	case "topic-guard":
		doc = map[string]any{"topic_mismatch": false, "reason": "demo"}
	case "question-draft":
		doc = map[string]any{
			"question_text":      "Explain the key idea of " + demoTopicIn(req) + " and give an example from your work.",
			"hint":               "",
			"ideal_answer_short": "A concise explanation with one concrete example.",
		}
	case "final-report":
		doc = map[string]any{
			"grade":                  "Junior",
			"hiring_recommendation":  "No Hire",
			"confidence_score_0_100": 50,
			"confirmed_skills":       []string{},
			"knowledge_gaps":         []string{"Offline demo run, no real assessment"},
			"corrections":            []string{},
			"clarity":                "medium",
			"honesty":                "medium",
			"engagement":             "medium",
			"roadmap":                []string{"Configure a real LLM provider"},
		}
	default:
		return MockResponse{Err: &ErrInvalidResponse{Kind: InvalidJSON, Content: json.RawMessage("{}")}}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: raw}
}

// demoTopicIn reads the "Topic: ..." line of a question request.
func demoTopicIn(req Request) string {
	for _, m := range req.Messages {
		for line := range strings.Lines(m.Content) {
			if t, ok := strings.CutPrefix(strings.TrimSpace(line), "Topic: "); ok && t != "" {
				return t
			}
		}
	}
	return "this topic"
}
