// Package feedback produces the final hiring report of an interview.
package feedback

import (
	"context"
	"fmt"
	"slices"

	"github.com/abhisek/interviewer/internal/llm"
	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/session"
)

// Finalizer implements session.Finalizer using an LLM provider.
type Finalizer struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

// New creates a Finalizer. A nil logger disables logging.
func New(provider llm.Provider, cfg Config, log *logger.Logger) *Finalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Finalizer{provider: provider, cfg: cfg, log: log}
}

type reportOutput struct {
	Grade                string   `json:"grade"`
	HiringRecommendation string   `json:"hiring_recommendation"`
	Confidence           int      `json:"confidence_score_0_100"`
	ConfirmedSkills      []string `json:"confirmed_skills"`
	KnowledgeGaps        []string `json:"knowledge_gaps"`
	Corrections          []string `json:"corrections"`
	Clarity              string   `json:"clarity"`
	Honesty              string   `json:"honesty"`
	Engagement           string   `json:"engagement"`
	Roadmap              []string `json:"roadmap"`
}

// Finalize builds the report from the turn records and full history.
// Unusable model output resolves to the configured fallback report.
func (f *Finalizer) Finalize(ctx context.Context, in session.FinalizeInput) (session.FinalReport, error) {
	ctx = llm.WithPurpose(ctx, "final-report")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(in)},
		},
		Schema:      ReportSchema,
		MaxTokens:   f.cfg.MaxTokens,
		Temperature: f.cfg.Temperature,
	}

	res, err := llm.Structured(ctx, f.provider, req, func(*llm.Failure) reportOutput {
		return reportOutput{}
	})
	if err != nil {
		return session.FinalReport{}, fmt.Errorf("final report: %w", err)
	}
	if res.Recovered() {
		f.log.Warn("final report unusable, using fallback", "kind", res.Failure.Kind,
			"error", res.Failure.Err, "raw_head", res.Failure.RawHead)
		return f.Fallback(), nil
	}

	out := res.Value
	return session.FinalReport{
		Grade:                out.Grade,
		HiringRecommendation: out.HiringRecommendation,
		Confidence:           out.Confidence,
		ConfirmedSkills:      nonNil(out.ConfirmedSkills),
		KnowledgeGaps:        nonNil(out.KnowledgeGaps),
		Corrections:          nonNil(out.Corrections),
		SoftSkills: session.SoftSkills{
			Clarity:    session.Level(out.Clarity),
			Honesty:    session.Level(out.Honesty),
			Engagement: session.Level(out.Engagement),
		},
		Roadmap: nonNil(out.Roadmap),
	}, nil
}

// Fallback returns a copy of the configured fallback report.
func (f *Finalizer) Fallback() session.FinalReport {
	r := f.cfg.Fallback
	r.ConfirmedSkills = nonNil(slices.Clone(r.ConfirmedSkills))
	r.KnowledgeGaps = nonNil(slices.Clone(r.KnowledgeGaps))
	r.Corrections = nonNil(slices.Clone(r.Corrections))
	r.Roadmap = nonNil(slices.Clone(r.Roadmap))
	r.Fallback = true
	return r
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
