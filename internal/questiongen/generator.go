// Package questiongen drafts interview questions with an LLM provider.
package questiongen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/session"
)

// Generator implements session.Generator using the LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
	log      *logger.Logger
}

// New creates a Generator with the given provider and config. A nil
// logger disables logging.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if cfg.Fallback == nil {
		cfg.Fallback = DefaultFallback
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{provider: provider, config: cfg, log: log}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	QuestionText string `json:"question_text"`
	Hint         string `json:"hint"`
	IdealAnswer  string `json:"ideal_answer_short"`
}

// Check rejects drafts without a question.
func (o *questionOutput) Check() error {
	if strings.TrimSpace(o.QuestionText) == "" {
		return errors.New("question_text is empty")
	}
	return nil
}

// Generate produces a single question for the given input. Unusable model
// output resolves to the configured fallback draft.
func (g *Generator) Generate(ctx context.Context, in session.GenerateInput) (session.QuestionDraft, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in, g.config)},
		},
		Schema:      QuestionSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	res, err := llm.Structured(ctx, g.provider, req, func(*llm.Failure) questionOutput {
		return questionOutput{}
	})
	if err != nil {
		return session.QuestionDraft{}, fmt.Errorf("question generation: %w", err)
	}

	var q session.QuestionDraft
	if res.Recovered() {
		g.log.Warn("question unusable, using fallback", "topic", in.Topic, "kind", res.Failure.Kind, "error", res.Failure.Err)
		q = g.config.Fallback(in.Topic)
		q.Fallback = true
	} else {
		q = session.QuestionDraft{
			Question:    strings.TrimSpace(res.Value.QuestionText),
			Hint:        strings.TrimSpace(res.Value.Hint),
			IdealAnswer: strings.TrimSpace(res.Value.IdealAnswer),
		}
	}

	if !in.NeedHint {
		q.Hint = ""
	}
	return q, nil
}
