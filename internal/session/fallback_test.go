package session_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewer/internal/evaluation"
	"github.com/abhisek/interviewer/internal/feedback"
	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/questiongen"
	"github.com/abhisek/interviewer/internal/render"
	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/topicplan"
)

// garbageProvider answers every request with text that is not JSON.
func garbageProvider(n int) *llm.MockProvider {
	mock := llm.NewMockProvider()
	for range n {
		mock.AddResponse(llm.MockResponse{Content: json.RawMessage("I'd rather not answer in JSON today.")})
	}
	return mock
}

func TestSession_UnparsableModelUsesFallbacks(t *testing.T) {
	mock := garbageProvider(64)
	c := session.Collaborators{
		Planner:   topicplan.New(mock, topicplan.DefaultConfig(), nil),
		Evaluator: evaluation.New(mock, evaluation.DefaultConfig(), nil),
		Verifier:  evaluation.New(mock, evaluation.DefaultConfig(), nil),
		Generator: questiongen.New(mock, questiongen.DefaultConfig(), nil),
		Renderer:  render.New(mock, render.DefaultConfig(), nil),
		Finalizer: feedback.New(mock, feedback.DefaultConfig(), nil),
	}
	cfg := session.DefaultConfig()

	s, err := session.New(t.Context(), session.Profile{Position: "Backend Developer", Grade: "Junior"}, c, cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.FallbackTopics, s.Plan())

	warmup := questiongen.DefaultFallback(cfg.FallbackTopics[0])
	assert.Equal(t, []string{warmup.Question}, s.AskedQuestions())

	for range 3 {
		out, err := s.Step(t.Context(), "I don't know")
		require.NoError(t, err)
		// The renderer's free text is used as is, even when it is junk.
		assert.Equal(t, "I'd rather not answer in JSON today.", out)
	}

	for _, rec := range s.Turns() {
		assert.Equal(t, 45, rec.Score)
		assert.Equal(t, cfg.FallbackTopics[0], rec.Topic, "fallback evaluation stays on topic")
		assert.Equal(t, session.DifficultyEasy, rec.Difficulty)
		assert.Contains(t, rec.InternalNotes, "fallback=evaluation,question.")
		assert.Contains(t, rec.InternalNotes, "need_hint=true")
		assert.Equal(t, warmup.IdealAnswer, rec.IdealAnswer)
	}

	report, err := s.Finish(t.Context())
	require.NoError(t, err)
	want := feedback.DefaultFallback()
	want.Fallback = true
	assert.Equal(t, want, report)
}

func TestSession_ZeroTurnFinishWithFallbackReport(t *testing.T) {
	mock := garbageProvider(16)
	c := session.Collaborators{
		Planner:   topicplan.New(mock, topicplan.DefaultConfig(), nil),
		Evaluator: evaluation.New(mock, evaluation.DefaultConfig(), nil),
		Generator: questiongen.New(mock, questiongen.DefaultConfig(), nil),
		Renderer:  render.New(mock, render.DefaultConfig(), nil),
		Finalizer: feedback.New(mock, feedback.DefaultConfig(), nil),
	}
	s, err := session.New(t.Context(), session.Profile{}, c, session.DefaultConfig())
	require.NoError(t, err)

	report, err := s.Finish(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "Junior", report.Grade)
	assert.Equal(t, "No Hire", report.HiringRecommendation)
	assert.True(t, report.Fallback)
	assert.Equal(t, session.PhaseFinished, s.Phase())
}
