package topicplan

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/session"
)

var testProfile = session.Profile{Position: "Backend Go Developer", Grade: "Middle", Experience: "3 years", Language: "en"}

func TestPlanner_ReturnsTopics(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topics": ["go_basics", "Go Concurrency", "sql joins", "go_basics", " "]}`),
	})
	p := New(mock, DefaultConfig(), nil)

	topics, err := p.Plan(t.Context(), testProfile)
	require.NoError(t, err)
	assert.Equal(t, []string{"go_basics", "go_concurrency", "sql_joins"}, topics)

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, PlanSchema, req.Schema)
	assert.InDelta(t, 0.3, req.Temperature, 1e-9)
	assert.Contains(t, req.Messages[0].Content, "Backend Go Developer")
	assert.Contains(t, req.Messages[0].Content, "6-10 topics")
}

func TestPlanner_TruncatesLongPlans(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"topics": ["a", "b", "c", "d"]}`),
	})
	cfg := DefaultConfig()
	cfg.MaxTopics = 2
	topics, err := New(mock, cfg, nil).Plan(t.Context(), testProfile)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, topics)
}

func TestPlanner_UnusableOutputYieldsEmptyPlan(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"not json", llm.MockResponse{Content: json.RawMessage(`sure, here are some topics`)}},
		{"wrong shape", llm.MockResponse{Content: json.RawMessage(`{"items": ["a"]}`)}},
		{"blank topics", llm.MockResponse{Content: json.RawMessage(`{"topics": ["", "  "]}`)}},
		{"truncated", llm.MockResponse{Err: &llm.ErrMaxTokensExceeded{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			topics, err := New(llm.NewMockProvider(tt.resp), DefaultConfig(), nil).Plan(t.Context(), testProfile)
			require.NoError(t, err)
			assert.Empty(t, topics)
		})
	}
}

func TestPlanner_TransportErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	_, err := New(mock, DefaultConfig(), nil).Plan(t.Context(), testProfile)
	var unavailable *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

func TestTopicIDNormalization(t *testing.T) {
	tests := map[string]string{
		"sql_joins":        "sql_joins",
		"  HTTP / REST  ":  "http_rest",
		"C++ templates":    "c_templates",
		"Сети и DNS":       "сети_и_dns",
		"---":              "",
		"k8s: deployments": "k8s_deployments",
	}
	for in, want := range tests {
		assert.Equal(t, want, session.TopicID(in), in)
	}
}
