// Package session runs an adaptive interview: it owns the topic plan,
// difficulty, streaks and anti-repetition state, and drives the
// model-backed collaborators through each turn in a fixed order.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/abhisek/interviewer/internal/logger"
)

// ErrSessionFinished is returned by Step and Finish once the final report
// has been produced.
var ErrSessionFinished = errors.New("session already finished")

const tracerName = "github.com/abhisek/interviewer/internal/session"

// Session is one interview. It is not safe for concurrent use.
type Session struct {
	id      string
	profile Profile
	cfg     Config
	c       Collaborators
	log     *logger.Logger
	tracer  trace.Tracer

	state   State
	history []Message
	turns   []TurnRecord
	report  *FinalReport
}

// Option customizes a Session.
type Option func(*Session)

// WithID sets the session ID instead of generating one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithLogger sets the logger.
func WithLogger(log *logger.Logger) Option {
	return func(s *Session) { s.log = log }
}

// New plans the interview, pushes the intro and asks the warm-up question.
// The returned session is in progress.
func New(ctx context.Context, profile Profile, c Collaborators, cfg Config, opts ...Option) (*Session, error) {
	if c.Planner == nil || c.Evaluator == nil || c.Generator == nil || c.Renderer == nil || c.Finalizer == nil {
		return nil, errors.New("session: planner, evaluator, generator, renderer and finalizer are required")
	}

	s := &Session{
		profile: profile,
		cfg:     cfg.withDefaults(),
		c:       c,
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	s.log = s.log.With("session_id", s.id)

	ctx, span := s.tracer.Start(ctx, "session.start", trace.WithAttributes(
		attribute.String("interview.session_id", s.id),
		attribute.String("interview.position", profile.Position),
	))
	defer span.End()

	topics, err := c.Planner.Plan(ctx, profile)
	if err != nil {
		s.log.Warn("topic planning failed, using fallback topics", "error", err)
	}
	plan := NewTopicPlan(topics, s.cfg.FallbackTopics)
	s.log.Info("topic plan ready", "topics", []string(plan))

	st := State{
		Plan:       plan,
		Difficulty: DifficultyEasy,
		Phase:      PhaseNotStarted,
	}

	if s.cfg.Intro != "" {
		s.history = append(s.history, Message{Role: RoleInterviewer, Text: s.cfg.Intro})
	}

	q, _, err := s.draft(ctx, &st, GenerateInput{
		Topic:      st.Topic(),
		Difficulty: st.Difficulty,
		Intent:     s.cfg.WarmupIntent,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("warm-up question: %w", err)
	}

	st.recordAsked(st.Topic(), q.Question)
	st.Phase = PhaseInProgress
	s.state = st
	s.history = append(s.history, Message{Role: RoleInterviewer, Text: q.Question})

	return s, nil
}

// Step runs one turn for the candidate's message and returns the next
// visible interviewer message. On error nothing is committed and the same
// message may be submitted again.
func (s *Session) Step(ctx context.Context, userMessage string) (string, error) {
	if s.state.Phase != PhaseInProgress {
		return "", ErrSessionFinished
	}

	turn := s.state.Turn + 1
	ctx, span := s.tracer.Start(ctx, "session.turn", trace.WithAttributes(
		attribute.String("interview.session_id", s.id),
		attribute.Int("interview.turn", turn),
	))
	defer span.End()

	visible, err := s.step(ctx, turn, userMessage)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return visible, nil
}

func (s *Session) step(ctx context.Context, turn int, userMessage string) (string, error) {
	history := append(append([]Message(nil), s.history...), Message{Role: RoleCandidate, Text: userMessage})

	ev, err := s.c.Evaluator.Evaluate(ctx, EvaluateInput{
		Profile:     s.profile,
		History:     lastN(history, s.cfg.HistoryWindow),
		LastMessage: userMessage,
		State:       s.view(),
		Topic:       s.state.Topic(),
		Difficulty:  s.state.Difficulty,
		Plan:        append([]string(nil), s.state.Plan...),
	})
	if err != nil {
		return "", fmt.Errorf("evaluate answer: %w", err)
	}
	ev.Score = clampScore(ev.Score)

	next := s.state.clone()
	next.Streaks.Observe(s.cfg, ev.Score, ev.Quality)
	next.Difficulty = next.Streaks.Adjust(s.cfg, next.Difficulty)

	needHint := ev.NeedHint
	if struggling(s.cfg, ev.Score) {
		next.Difficulty = DifficultyEasy
		needHint = true
	}

	next.TopicIndex = nextTopicIndex(next.Plan, next.TopicIndex, ev)
	topic := next.Topic()

	intent := strings.TrimSpace(ev.Intent)
	if intent == "" {
		intent = "next_question"
	}

	q, regens, err := s.draft(ctx, &next, GenerateInput{
		Topic:      topic,
		Difficulty: next.Difficulty,
		Intent:     intent,
		NeedHint:   needHint,
	})
	if err != nil {
		return "", err
	}

	visible, err := s.c.Renderer.Render(ctx, RenderInput{
		Profile:        s.profile,
		History:        lastN(history, s.cfg.HistoryWindow),
		LastMessage:    userMessage,
		Acknowledgment: ev.Acknowledgment,
		OffTopic:       ev.OffTopic,
		Hallucination:  ev.Hallucination,
		NeedHint:       needHint,
		Question:       q.Question,
		Hint:           q.Hint,
	})
	if err != nil {
		return "", fmt.Errorf("render message: %w", err)
	}
	visible = strings.TrimSpace(visible)
	if visible == "" {
		visible = composeMessage(ev.Acknowledgment, q, needHint)
	}

	rec := TurnRecord{
		Turn:           turn,
		Topic:          topic,
		Difficulty:     next.Difficulty,
		Score:          ev.Score,
		IdealAnswer:    q.IdealAnswer,
		VisibleMessage: visible,
		UserMessage:    userMessage,
		InternalNotes:  internalNotes(topic, ev, needHint, next.Difficulty, q, regens),
	}

	next.recordAsked(topic, q.Question)
	next.LastTopic = topic
	next.LastIntent = intent
	next.Turn = turn

	s.state = next
	s.history = append(history, Message{Role: RoleInterviewer, Text: visible})
	s.turns = append(s.turns, rec)

	s.log.Debug("turn committed", "turn", turn, "topic", topic, "difficulty", next.Difficulty,
		"score", ev.Score, "regenerated", regens, "evaluation_fallback", ev.Fallback)

	for _, sink := range s.c.Sinks {
		if err := sink.RecordTurn(ctx, rec); err != nil {
			s.log.Warn("failed to record turn", "turn", turn, "error", err)
		}
	}
	return visible, nil
}

// Finish produces the final report and ends the session. If the finalizer
// fails the session stays in progress so Finish can be retried.
func (s *Session) Finish(ctx context.Context) (FinalReport, error) {
	if s.state.Phase != PhaseInProgress {
		return FinalReport{}, ErrSessionFinished
	}

	ctx, span := s.tracer.Start(ctx, "session.finish", trace.WithAttributes(
		attribute.String("interview.session_id", s.id),
		attribute.Int("interview.turns", len(s.turns)),
	))
	defer span.End()

	report, err := s.c.Finalizer.Finalize(ctx, FinalizeInput{
		Profile: s.profile,
		Turns:   s.Turns(),
		History: s.History(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return FinalReport{}, fmt.Errorf("final report: %w", err)
	}

	s.report = &report
	s.state.Phase = PhaseFinished
	s.log.Info("session finished", "turns", len(s.turns), "grade", report.Grade,
		"recommendation", report.HiringRecommendation, "report_fallback", report.Fallback)

	for _, sink := range s.c.Sinks {
		if err := sink.RecordReport(ctx, report); err != nil {
			s.log.Warn("failed to record final report", "error", err)
		}
	}
	return report, nil
}

// view snapshots the state for the evaluator.
func (s *Session) view() StateView {
	return StateView{
		TopicIndex:     s.state.TopicIndex,
		StreakGood:     s.state.Streaks.Good,
		StreakPoor:     s.state.Streaks.Poor,
		LastTopic:      s.state.LastTopic,
		LastIntent:     s.state.LastIntent,
		AskedTopics:    lastN(s.state.AskedTopics, s.cfg.StateTopics),
		AskedQuestions: lastN(s.state.AskedQuestions, s.cfg.StateQuestions),
	}
}

// composeMessage is used when the renderer returns nothing.
func composeMessage(ack string, q QuestionDraft, needHint bool) string {
	parts := []string{strings.TrimSpace(ack), q.Question}
	if needHint && q.Hint != "" {
		parts = append(parts, q.Hint)
	}
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Profile returns the interview profile.
func (s *Session) Profile() Profile { return s.profile }

// Plan returns a copy of the topic plan.
func (s *Session) Plan() []string { return append([]string(nil), s.state.Plan...) }

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.state.Phase }

// History returns a copy of the full conversation.
func (s *Session) History() []Message { return append([]Message(nil), s.history...) }

// Turns returns a copy of the committed turn records.
func (s *Session) Turns() []TurnRecord { return append([]TurnRecord(nil), s.turns...) }

// Report returns the final report, or nil before Finish succeeds.
func (s *Session) Report() *FinalReport { return s.report }

// InterviewerMessages returns every visible interviewer message so far,
// starting with the intro and warm-up question.
func (s *Session) InterviewerMessages() []string {
	var out []string
	for _, m := range s.history {
		if m.Role == RoleInterviewer {
			out = append(out, m.Text)
		}
	}
	return out
}

// AskedQuestions returns the questions asked so far in order.
func (s *Session) AskedQuestions() []string {
	return append([]string(nil), s.state.AskedQuestions...)
}

// Status summarizes the session for display.
func (s *Session) Status() Status {
	return Status{
		SessionID:  s.id,
		Phase:      s.state.Phase,
		Turn:       s.state.Turn,
		Topic:      s.state.Topic(),
		TopicIndex: s.state.TopicIndex,
		TopicCount: len(s.state.Plan),
		Difficulty: s.state.Difficulty,
		StreakGood: s.state.Streaks.Good,
		StreakPoor: s.state.Streaks.Poor,
	}
}
