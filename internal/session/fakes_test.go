package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakePlanner struct {
	topics []string
	err    error
}

func (p *fakePlanner) Plan(context.Context, Profile) ([]string, error) {
	return p.topics, p.err
}

// scriptedEvaluator returns evals in order and repeats the last one.
type scriptedEvaluator struct {
	evals []Evaluation
	err   error
	calls []EvaluateInput
}

func (e *scriptedEvaluator) Evaluate(_ context.Context, in EvaluateInput) (Evaluation, error) {
	e.calls = append(e.calls, in)
	if e.err != nil {
		return Evaluation{}, e.err
	}
	i := min(len(e.calls)-1, len(e.evals)-1)
	return e.evals[i], nil
}

type fakeGenerator struct {
	calls []GenerateInput
	err   error
	// question overrides the generated text for call n (zero based).
	question func(n int, in GenerateInput) string
}

func (g *fakeGenerator) Generate(_ context.Context, in GenerateInput) (QuestionDraft, error) {
	n := len(g.calls)
	g.calls = append(g.calls, in)
	if g.err != nil {
		return QuestionDraft{}, g.err
	}
	q := fmt.Sprintf("question %d about %s", n, in.Topic)
	if g.question != nil {
		q = g.question(n, in)
	}
	d := QuestionDraft{Question: q, IdealAnswer: "ideal " + in.Topic}
	if in.NeedHint {
		d.Hint = "think about " + in.Topic
	}
	return d, nil
}

type fakeVerifier struct {
	verdicts []Verdict
	err      error
	calls    []VerifyInput
}

func (v *fakeVerifier) Verify(_ context.Context, in VerifyInput) (Verdict, error) {
	v.calls = append(v.calls, in)
	if v.err != nil {
		return Verdict{}, v.err
	}
	if len(v.verdicts) == 0 {
		return Verdict{}, nil
	}
	i := min(len(v.calls)-1, len(v.verdicts)-1)
	return v.verdicts[i], nil
}

type fakeRenderer struct {
	out   string
	err   error
	calls []RenderInput
}

func (r *fakeRenderer) Render(_ context.Context, in RenderInput) (string, error) {
	r.calls = append(r.calls, in)
	if r.err != nil {
		return "", r.err
	}
	if r.out != "" {
		return r.out, nil
	}
	return in.Acknowledgment + " | " + in.Question, nil
}

type fakeFinalizer struct {
	report FinalReport
	err    error
	calls  []FinalizeInput
}

func (f *fakeFinalizer) Finalize(_ context.Context, in FinalizeInput) (FinalReport, error) {
	f.calls = append(f.calls, in)
	return f.report, f.err
}

type recordingSink struct {
	turns   []TurnRecord
	reports []FinalReport
	err     error
}

func (s *recordingSink) RecordTurn(_ context.Context, rec TurnRecord) error {
	s.turns = append(s.turns, rec)
	return s.err
}

func (s *recordingSink) RecordReport(_ context.Context, r FinalReport) error {
	s.reports = append(s.reports, r)
	return s.err
}

type fixture struct {
	planner   *fakePlanner
	evaluator *scriptedEvaluator
	verifier  *fakeVerifier
	generator *fakeGenerator
	renderer  *fakeRenderer
	finalizer *fakeFinalizer
	sink      *recordingSink
	cfg       Config
}

func newFixture(topics []string, evals ...Evaluation) *fixture {
	if len(evals) == 0 {
		evals = []Evaluation{{Quality: QualityPartial, Score: 60, Acknowledgment: "Okay."}}
	}
	cfg := DefaultConfig()
	cfg.Intro = "Hi! Let's begin."
	return &fixture{
		planner:   &fakePlanner{topics: topics},
		evaluator: &scriptedEvaluator{evals: evals},
		verifier:  &fakeVerifier{},
		generator: &fakeGenerator{},
		renderer:  &fakeRenderer{},
		finalizer: &fakeFinalizer{report: FinalReport{Grade: "Middle", HiringRecommendation: "Hire", Confidence: 70}},
		sink:      &recordingSink{},
		cfg:       cfg,
	}
}

func (f *fixture) collaborators() Collaborators {
	c := Collaborators{
		Planner:   f.planner,
		Evaluator: f.evaluator,
		Generator: f.generator,
		Renderer:  f.renderer,
		Finalizer: f.finalizer,
		Sinks:     []Sink{f.sink},
	}
	if f.verifier != nil {
		c.Verifier = f.verifier
	}
	return c
}

func (f *fixture) start(t *testing.T) *Session {
	t.Helper()
	s, err := New(context.Background(), Profile{Name: "Ann", Position: "Backend Developer", Grade: "Junior"},
		f.collaborators(), f.cfg, WithID("test-session"))
	require.NoError(t, err)
	return s
}

func step(t *testing.T, s *Session, msg string) string {
	t.Helper()
	out, err := s.Step(context.Background(), msg)
	require.NoError(t, err)
	return out
}

func good(next string, moveOn bool) Evaluation {
	return Evaluation{Quality: QualityGood, Score: 80, ShouldMoveOn: moveOn, NextTopic: next, Intent: "deepen", Acknowledgment: "Nice."}
}
