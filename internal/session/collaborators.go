package session

import "context"

// Planner produces the ordered topic plan for a session. An error or an
// empty plan makes the session fall back to Config.FallbackTopics.
type Planner interface {
	Plan(ctx context.Context, profile Profile) ([]string, error)
}

// EvaluateInput is everything the evaluator sees about the turn.
type EvaluateInput struct {
	Profile     Profile
	History     []Message
	LastMessage string
	State       StateView
	Topic       string
	Difficulty  Difficulty
	Plan        []string
}

// StateView is the evaluator's read-only view of the adaptation state.
type StateView struct {
	TopicIndex     int      `json:"topic_index"`
	StreakGood     int      `json:"streak_good"`
	StreakPoor     int      `json:"streak_poor"`
	LastTopic      string   `json:"last_topic"`
	LastIntent     string   `json:"last_intent"`
	AskedTopics    []string `json:"asked_topics"`
	AskedQuestions []string `json:"asked_questions_sample"`
}

// Evaluator judges candidate answers. Malformed model output must resolve
// to a fallback Evaluation; only transport failures are returned as errors.
type Evaluator interface {
	Evaluate(ctx context.Context, in EvaluateInput) (Evaluation, error)
}

// VerifyInput asks whether a drafted question addresses its topic.
type VerifyInput struct {
	Profile  Profile
	Topic    string
	Question string
}

// Verifier checks topic consistency. Any error is treated as a pass.
type Verifier interface {
	Verify(ctx context.Context, in VerifyInput) (Verdict, error)
}

// GenerateInput describes the question wanted.
type GenerateInput struct {
	Profile    Profile
	Topic      string
	Difficulty Difficulty
	Intent     string
	NeedHint   bool
	// Avoid lists recent questions that should not be repeated.
	Avoid []string
	// Regenerate is set when the previous draft drifted off the topic.
	Regenerate bool
}

// Generator drafts questions. Malformed model output must resolve to a
// fallback draft.
type Generator interface {
	Generate(ctx context.Context, in GenerateInput) (QuestionDraft, error)
}

// RenderInput carries what the interviewer may say. It deliberately has no
// access to the evaluator's notes.
type RenderInput struct {
	Profile        Profile
	History        []Message
	LastMessage    string
	Acknowledgment string
	OffTopic       bool
	Hallucination  bool
	NeedHint       bool
	Question       string
	Hint           string
}

// Renderer composes the visible interviewer message.
type Renderer interface {
	Render(ctx context.Context, in RenderInput) (string, error)
}

// FinalizeInput carries the whole interview for the final report.
type FinalizeInput struct {
	Profile Profile
	Turns   []TurnRecord
	History []Message
}

// Finalizer produces the final report. Malformed model output must resolve
// to a fallback report.
type Finalizer interface {
	Finalize(ctx context.Context, in FinalizeInput) (FinalReport, error)
}

// Sink receives committed turns and the final report.
type Sink interface {
	RecordTurn(ctx context.Context, rec TurnRecord) error
	RecordReport(ctx context.Context, report FinalReport) error
}

// Collaborators bundles the model-backed components a session drives.
// Verifier and Sinks are optional.
type Collaborators struct {
	Planner   Planner
	Evaluator Evaluator
	Verifier  Verifier
	Generator Generator
	Renderer  Renderer
	Finalizer Finalizer
	Sinks     []Sink
}
