// Package evaluation judges candidate answers and checks that drafted
// questions stay on topic.
package evaluation

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/session"
)

// Evaluator implements session.Evaluator and session.Verifier using an
// LLM provider.
type Evaluator struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// New creates an Evaluator. A nil logger disables logging.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Evaluator {
	if log == nil {
		log = logger.Nop()
	}
	return &Evaluator{provider: provider, cfg: cfg, log: log}
}

// evaluationOutput is the raw LLM response.
type evaluationOutput struct {
	OffTopic       bool   `json:"detected_offtopic"`
	Hallucination  bool   `json:"detected_hallucination"`
	Quality        string `json:"answer_quality"`
	Score          int    `json:"score_0_100"`
	NextDifficulty string `json:"next_difficulty"`
	NextTopic      string `json:"next_topic"`
	Intent         string `json:"intent"`
	ShouldMoveOn   bool   `json:"should_move_on"`
	NeedHint       bool   `json:"need_hint"`
	Acknowledge    string `json:"acknowledge"`
	Notes          string `json:"notes"`
}

// Evaluate judges the candidate's last answer. Malformed output resolves to
// the fallback evaluation; only transport errors are returned.
func (e *Evaluator) Evaluate(ctx context.Context, in session.EvaluateInput) (session.Evaluation, error) {
	ctx = llm.WithPurpose(ctx, "evaluation")

	userMsg, err := buildEvaluationMessage(in)
	if err != nil {
		return session.Evaluation{}, fmt.Errorf("build evaluation prompt: %w", err)
	}

	req := llm.Request{
		System: evaluationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      EvaluationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	res, err := llm.Structured(ctx, e.provider, req, func(*llm.Failure) evaluationOutput {
		return evaluationOutput{}
	})
	if err != nil {
		return session.Evaluation{}, fmt.Errorf("evaluation: %w", err)
	}
	if res.Recovered() {
		e.log.Warn("evaluation unusable, using fallback", "kind", res.Failure.Kind, "error", res.Failure.Err)
		return e.Fallback(in, res.Failure), nil
	}

	out := res.Value
	return session.Evaluation{
		Quality:        session.Quality(out.Quality),
		Score:          out.Score,
		OffTopic:       out.OffTopic,
		Hallucination:  out.Hallucination,
		NextDifficulty: session.Difficulty(out.NextDifficulty),
		NextTopic:      session.TopicID(out.NextTopic),
		Intent:         strings.TrimSpace(out.Intent),
		ShouldMoveOn:   out.ShouldMoveOn,
		NeedHint:       out.NeedHint,
		Acknowledgment: strings.TrimSpace(out.Acknowledge),
		Notes:          out.Notes,
	}, nil
}

// Fallback returns the evaluation substituted for unusable model output:
// an unknown answer that keeps the topic and asks for a hint.
func (e *Evaluator) Fallback(in session.EvaluateInput, f *llm.Failure) session.Evaluation {
	notes := "evaluation unavailable"
	if f != nil {
		notes = fmt.Sprintf("evaluation parse failed (%s): %v. raw head: %s", f.Kind, f.Err, f.RawHead)
	}
	return session.Evaluation{
		Quality:        session.QualityUnknown,
		Score:          e.cfg.FallbackScore,
		NextDifficulty: in.Difficulty,
		NextTopic:      in.Topic,
		Intent:         "fallback",
		ShouldMoveOn:   false,
		NeedHint:       true,
		Acknowledgment: e.cfg.FallbackAcknowledgment,
		Notes:          notes,
		Fallback:       true,
	}
}

type verdictOutput struct {
	TopicMismatch bool   `json:"topic_mismatch"`
	Reason        string `json:"reason"`
}

// Verify reports whether the question drifted off its topic. Unusable
// output passes the question.
func (e *Evaluator) Verify(ctx context.Context, in session.VerifyInput) (session.Verdict, error) {
	ctx = llm.WithPurpose(ctx, "topic-guard")

	userMsg, err := buildVerifyMessage(in)
	if err != nil {
		return session.Verdict{}, fmt.Errorf("build verify prompt: %w", err)
	}

	req := llm.Request{
		System: verifySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      VerdictSchema,
		MaxTokens:   e.cfg.VerifyMaxTokens,
		Temperature: e.cfg.VerifyTemperature,
	}

	res, err := llm.Structured(ctx, e.provider, req, func(*llm.Failure) verdictOutput {
		return verdictOutput{}
	})
	if err != nil {
		return session.Verdict{}, fmt.Errorf("topic check: %w", err)
	}
	if res.Recovered() {
		e.log.Debug("topic check unusable, passing question", "kind", res.Failure.Kind)
	}
	return session.Verdict{Mismatch: res.Value.TopicMismatch, Reason: res.Value.Reason}, nil
}
