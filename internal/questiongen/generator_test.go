package questiongen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/session"
)

func validQuestionJSON() json.RawMessage {
	return json.RawMessage(`{
		"question_text": "What is the difference between a buffered and an unbuffered channel?",
		"hint": "Think about when a send blocks.",
		"ideal_answer_short": "An unbuffered send blocks until a receiver is ready; a buffered send blocks only when the buffer is full."
	}`)
}

func testInput(needHint bool) session.GenerateInput {
	return session.GenerateInput{
		Profile:    session.Profile{Position: "Go Developer", Grade: "Middle", Language: "en"},
		Topic:      "go_channels",
		Difficulty: session.DifficultyMedium,
		Intent:     "deepen",
		NeedHint:   needHint,
		Avoid:      []string{"What is a goroutine?", "How does select work?"},
	}
}

func TestGenerator_GeneratesQuestion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	g := New(mock, DefaultConfig(), nil)

	q, err := g.Generate(t.Context(), testInput(true))
	require.NoError(t, err)
	assert.Equal(t, "What is the difference between a buffered and an unbuffered channel?", q.Question)
	assert.Equal(t, "Think about when a send blocks.", q.Hint)
	assert.NotEmpty(t, q.IdealAnswer)
	assert.False(t, q.Fallback)

	req := mock.Calls[0]
	assert.Equal(t, QuestionSchema, req.Schema)
	assert.InDelta(t, 0.4, req.Temperature, 1e-9)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Topic: go_channels")
	assert.Contains(t, msg, "Difficulty: medium")
	assert.Contains(t, msg, "Need hint: true")
	assert.Contains(t, msg, "1. What is a goroutine?\n2. How does select work?")
	assert.NotContains(t, msg, "drifted")
}

func TestGenerator_DropsUnrequestedHint(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validQuestionJSON()})
	q, err := New(mock, DefaultConfig(), nil).Generate(t.Context(), testInput(false))
	require.NoError(t, err)
	assert.Empty(t, q.Hint)
}

func TestGenerator_RegenerateNudgesPrompt(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: validQuestionJSON()},
		llm.MockResponse{Content: validQuestionJSON()},
	)
	g := New(mock, DefaultConfig(), nil)

	in := testInput(false)
	_, err := g.Generate(t.Context(), in)
	require.NoError(t, err)
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, "drifted away from the topic")

	in.Intent = "deepen" + session.RegenIntentSuffix
	in.Regenerate = true
	_, err = g.Generate(t.Context(), in)
	require.NoError(t, err)
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "drifted away from the topic")
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "Intent: deepen"+session.RegenIntentSuffix)
}

func TestGenerator_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		needHint bool
	}{
		{"unparsable", `Sure! Here's a great question about channels.`, true},
		{"empty question", `{"question_text": "  ", "hint": "", "ideal_answer_short": "x"}`, false},
		{"missing field", `{"question_text": "What is a channel?"}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			q, err := New(mock, DefaultConfig(), nil).Generate(t.Context(), testInput(tt.needHint))
			require.NoError(t, err)

			want := DefaultFallback("go_channels")
			want.Fallback = true
			if !tt.needHint {
				want.Hint = ""
			}
			assert.Equal(t, want, q)
		})
	}
}

func TestGenerator_CustomFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fallback = func(topic string) session.QuestionDraft {
		return session.QuestionDraft{Question: "Расскажи про " + topic}
	}
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`oops`)})
	q, err := New(mock, cfg, nil).Generate(t.Context(), testInput(false))
	require.NoError(t, err)
	assert.Equal(t, "Расскажи про go_channels", q.Question)
}

func TestGenerator_TransportErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	_, err := New(mock, DefaultConfig(), nil).Generate(t.Context(), testInput(false))
	var unavailable *llm.ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)
}

func TestBuildAvoid(t *testing.T) {
	assert.Equal(t, "None", buildAvoid(nil, 8))
	assert.Equal(t, "1. b\n2. c", buildAvoid([]string{"a", "b", "c"}, 2))
}
