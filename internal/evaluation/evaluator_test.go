package evaluation

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/session"
)

func validEvaluationJSON() json.RawMessage {
	return json.RawMessage(`{
		"detected_offtopic": false,
		"detected_hallucination": true,
		"answer_quality": "partial",
		"score_0_100": 62,
		"next_difficulty": "medium",
		"next_topic": " sql_joins ",
		"intent": "deepen",
		"should_move_on": true,
		"need_hint": false,
		"acknowledge": "Good, mostly right.",
		"notes": "Confused LEFT and INNER join."
	}`)
}

func testInput() session.EvaluateInput {
	return session.EvaluateInput{
		Profile:     session.Profile{Position: "Backend Developer", Grade: "Junior", Experience: "1 year"},
		History:     []session.Message{{Role: session.RoleInterviewer, Text: "What is an index?"}},
		LastMessage: "It speeds up lookups.",
		State:       session.StateView{TopicIndex: 1, AskedTopics: []string{"sql_basics"}},
		Topic:       "sql_basics",
		Difficulty:  session.DifficultyEasy,
		Plan:        []string{"sql_basics", "sql_joins"},
	}
}

func TestEvaluator_NormalizesNextTopic(t *testing.T) {
	raw := strings.Replace(string(validEvaluationJSON()), `" sql_joins "`, `"SQL Joins"`, 1)
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(raw)})

	ev, err := New(mock, DefaultConfig(), nil).Evaluate(t.Context(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "sql_joins", ev.NextTopic)
}

func TestEvaluator_ParsesEvaluation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validEvaluationJSON()})
	e := New(mock, DefaultConfig(), nil)

	ev, err := e.Evaluate(t.Context(), testInput())
	require.NoError(t, err)
	assert.Equal(t, session.Evaluation{
		Quality:        session.QualityPartial,
		Score:          62,
		Hallucination:  true,
		NextDifficulty: session.DifficultyMedium,
		NextTopic:      "sql_joins",
		Intent:         "deepen",
		ShouldMoveOn:   true,
		Acknowledgment: "Good, mostly right.",
		Notes:          "Confused LEFT and INNER join.",
	}, ev)

	req := mock.Calls[0]
	assert.Equal(t, EvaluationSchema, req.Schema)
	msg := req.Messages[0].Content
	assert.Contains(t, msg, "Current topic: sql_basics")
	assert.Contains(t, msg, "sql_basics, sql_joins")
	assert.Contains(t, msg, `"topic_index": 1`)
	assert.Contains(t, msg, "Interviewer: What is an index?")
	assert.Contains(t, msg, "It speeds up lookups.")
}

func TestEvaluator_FallbackOnMalformedOutput(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		kind llm.InvalidKind
	}{
		{"prose", llm.MockResponse{Content: json.RawMessage(`I think the answer was fine.`)}, llm.InvalidJSON},
		{"missing fields", llm.MockResponse{Content: json.RawMessage(`{"answer_quality": "good"}`)}, llm.InvalidSchema},
		{"score out of range", llm.MockResponse{Content: json.RawMessage(`{"detected_offtopic": false, "detected_hallucination": false, "answer_quality": "good", "score_0_100": 140, "next_difficulty": "hard", "next_topic": "x", "intent": "x", "should_move_on": true, "need_hint": false, "acknowledge": "x", "notes": ""}`)}, llm.InvalidSchema},
		{"provider rejected", llm.MockResponse{Err: &llm.ErrInvalidResponse{Kind: llm.InvalidEmpty, Err: errors.New("empty")}}, llm.InvalidEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(llm.NewMockProvider(tt.resp), DefaultConfig(), nil)
			in := testInput()
			ev, err := e.Evaluate(t.Context(), in)
			require.NoError(t, err)

			assert.True(t, ev.Fallback)
			assert.Equal(t, session.QualityUnknown, ev.Quality)
			assert.Equal(t, 45, ev.Score)
			assert.False(t, ev.ShouldMoveOn)
			assert.True(t, ev.NeedHint)
			assert.Equal(t, "fallback", ev.Intent)
			assert.Equal(t, in.Topic, ev.NextTopic)
			assert.Equal(t, in.Difficulty, ev.NextDifficulty)
			assert.Equal(t, "Okay, got it.", ev.Acknowledgment)
			assert.Contains(t, ev.Notes, string(tt.kind))
		})
	}
}

func TestEvaluator_FallbackIsConfigurable(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FallbackAcknowledgment = "Окей, понял."
	cfg.FallbackScore = 40
	e := New(llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`nope`)}), cfg, nil)
	ev, err := e.Evaluate(t.Context(), testInput())
	require.NoError(t, err)
	assert.Equal(t, "Окей, понял.", ev.Acknowledgment)
	assert.Equal(t, 40, ev.Score)
}

func TestEvaluator_TransportErrorPropagates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	_, err := New(mock, DefaultConfig(), nil).Evaluate(t.Context(), testInput())
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestEvaluator_Verify(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		mismatch bool
	}{
		{"match", `{"topic_mismatch": false, "reason": "asks about joins"}`, false},
		{"mismatch", `{"topic_mismatch": true, "reason": "asks about HTTP"}`, true},
		{"wrapped in prose", "Here you go: {\"topic_mismatch\": true, \"reason\": \"off\"} done", true},
		{"missing signal", `{"reason": "looks like a mismatch"}`, false},
		{"garbage", `mismatch!`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(tt.content)})
			v, err := New(mock, DefaultConfig(), nil).Verify(t.Context(), session.VerifyInput{Topic: "sql_joins", Question: "What is a LEFT JOIN?"})
			require.NoError(t, err)
			assert.Equal(t, tt.mismatch, v.Mismatch)
			assert.Equal(t, VerdictSchema, mock.Calls[0].Schema)
			assert.Contains(t, mock.Calls[0].Messages[0].Content, "Topic: sql_joins")
		})
	}
}

func TestEvaluator_VerifyTransportError(t *testing.T) {
	mock := llm.NewMockProvider()
	_, err := New(mock, DefaultConfig(), nil).Verify(t.Context(), session.VerifyInput{Topic: "x", Question: "y"})
	assert.Error(t, err)
}
