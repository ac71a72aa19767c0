package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	Purpose   string    // LLM events only
	SessionID string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates token usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Session lifecycle actions.
const (
	SessionStart  = "start"
	SessionFinish = "finish"
)

// SessionEventData captures a session lifecycle transition.
type SessionEventData struct {
	SessionID   string
	Action      string
	Participant string
	Position    string
	Grade       string
	Topics      []string
	Turns       int
	FinalGrade  string
	Verdict     string
	LogPath     string
}

// SessionSummary is one interview session folded from its lifecycle events.
type SessionSummary struct {
	SessionID   string
	Participant string
	Position    string
	Grade       string
	StartedAt   time.Time
	FinishedAt  time.Time // zero while unfinished
	Turns       int
	FinalGrade  string
	Verdict     string
	LogPath     string
}

// TurnEventData captures one committed interview turn.
type TurnEventData struct {
	SessionID      string
	Turn           int
	Topic          string
	Difficulty     string
	Score          int
	IdealAnswer    string
	VisibleMessage string
	UserMessage    string
	InternalNotes  string
}

// TurnEvent is a stored turn event.
type TurnEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	TurnEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
	// GetLLMEvent returns one LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)
	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AppendSessionEvent records a session start or finish.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	// RecentSessions folds session events into summaries, newest first.
	RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error)

	// AppendTurnEvent records a committed turn.
	AppendTurnEvent(ctx context.Context, data TurnEventData) error
	// QueryTurnEvents returns turns in sequence order.
	QueryTurnEvents(ctx context.Context, opts QueryOpts) ([]TurnEvent, error)
}

// eventRepo implements EventRepo with plain SQL and the global sequence counter.
type eventRepo struct {
	db  dbtx
	seq *sequenceCounter
}
