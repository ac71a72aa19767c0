// Package render writes the interviewer's visible message for a turn.
package render

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/session"
)

// Renderer implements session.Renderer using an LLM provider.
type Renderer struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// New creates a Renderer. A nil logger disables logging.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Renderer {
	if log == nil {
		log = logger.Nop()
	}
	return &Renderer{provider: provider, cfg: cfg, log: log}
}

// Render returns the free-text interviewer message. Empty or rejected
// output is replaced by Compose.
func (r *Renderer) Render(ctx context.Context, in session.RenderInput) (string, error) {
	ctx = llm.WithPurpose(ctx, "render")

	userMsg, err := buildUserMessage(in, r.cfg)
	if err != nil {
		return "", fmt.Errorf("build render prompt: %w", err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		var invErr *llm.ErrInvalidResponse
		var maxTok *llm.ErrMaxTokensExceeded
		if !errors.As(err, &invErr) && !errors.As(err, &maxTok) {
			return "", fmt.Errorf("render: %w", err)
		}
		r.log.Warn("rendered message unusable, composing", "error", err)
		return r.Compose(in), nil
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		r.log.Warn("rendered message empty, composing")
		return r.Compose(in), nil
	}
	return text, nil
}

// Compose builds the message without the model: acknowledgment, question
// and, when requested, the labelled hint.
func (r *Renderer) Compose(in session.RenderInput) string {
	var parts []string
	if ack := strings.TrimSpace(in.Acknowledgment); ack != "" {
		parts = append(parts, ack)
	}
	parts = append(parts, strings.TrimSpace(in.Question))
	msg := strings.Join(parts, " ")
	if in.NeedHint && strings.TrimSpace(in.Hint) != "" {
		msg += "\n" + r.cfg.HintLabel + " " + strings.TrimSpace(in.Hint)
	}
	return msg
}
