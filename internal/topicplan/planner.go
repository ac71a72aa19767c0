// Package topicplan asks the model for the ordered topic plan of an
// interview.
package topicplan

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/session"
)

// Planner implements session.Planner using an LLM provider.
type Planner struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// New creates a Planner. A nil logger disables logging.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Planner {
	if log == nil {
		log = logger.Nop()
	}
	return &Planner{provider: provider, cfg: cfg, log: log}
}

type planOutput struct {
	Topics []string `json:"topics"`
}

// Check rejects plans with no usable topic.
func (o *planOutput) Check() error {
	o.Topics = normalize(o.Topics)
	if len(o.Topics) == 0 {
		return errors.New("topic plan is empty")
	}
	return nil
}

// Plan returns the normalized topic plan. Unusable model output yields an
// empty plan and no error so the session applies its fallback topics.
func (p *Planner) Plan(ctx context.Context, profile session.Profile) ([]string, error) {
	ctx = llm.WithPurpose(ctx, "topic-plan")

	userMsg, err := buildUserMessage(profile, p.cfg)
	if err != nil {
		return nil, fmt.Errorf("build plan prompt: %w", err)
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      PlanSchema,
		MaxTokens:   p.cfg.MaxTokens,
		Temperature: p.cfg.Temperature,
	}

	res, err := llm.Structured(ctx, p.provider, req, func(*llm.Failure) planOutput {
		return planOutput{}
	})
	if err != nil {
		return nil, fmt.Errorf("topic planning: %w", err)
	}
	if res.Recovered() {
		p.log.Warn("topic plan unusable", "kind", res.Failure.Kind, "error", res.Failure.Err, "raw_head", res.Failure.RawHead)
		return nil, nil
	}

	topics := res.Value.Topics
	if p.cfg.MaxTopics > 0 && len(topics) > p.cfg.MaxTopics {
		topics = topics[:p.cfg.MaxTopics]
	}
	return topics, nil
}

// normalize lowercases topics, turns separators into underscores and drops
// blanks and repeats.
func normalize(topics []string) []string {
	seen := make(map[string]bool, len(topics))
	var out []string
	for _, t := range topics {
		id := session.TopicID(t)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
