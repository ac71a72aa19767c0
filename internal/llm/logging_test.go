package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/interviewer/internal/logger"
	"github.com/abhisek/interviewer/internal/store"
)

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"topics":["http"]}`), Usage: Usage{InputTokens: 12, OutputTokens: 4}},
		MockResponse{Err: &ErrInvalidResponse{Kind: InvalidJSON, Content: json.RawMessage("not json")}},
	)
	p := WithLogging(mock, "mock", repo, logger.Nop())

	ctx := WithSession(WithPurpose(context.Background(), "topic-plan"), "sess-1")
	req := Request{System: "plan topics", Messages: []Message{{Role: RoleUser, Content: "Backend, Middle"}}}
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected error from second call")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{SessionID: "sess-1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}

	failed, ok := events[0], events[1]
	if !ok.Success || ok.Purpose != "topic-plan" || ok.InputTokens != 12 || ok.Provider != "mock" {
		t.Errorf("success event = %+v", ok.LLMRequestEventData)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nplan topics") || !strings.Contains(ok.RequestBody, "[user]\nBackend, Middle") {
		t.Errorf("request body = %q", ok.RequestBody)
	}
	if failed.Success || failed.ResponseBody != "not json" || failed.ErrorMessage == "" {
		t.Errorf("failed event = %+v", failed.LLMRequestEventData)
	}
}

// ctxProvider fails with the context error, like a backend hitting its deadline.
type ctxProvider struct{}

func (ctxProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (ctxProvider) ModelID() string { return "slow-model" }

func TestLoggingProvider_RecordsTimedOutCalls(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	p := WithTimeout(WithLogging(ctxProvider{}, "mock", repo, logger.Nop()), 10*time.Millisecond)

	ctx := WithSession(WithPurpose(context.Background(), "evaluation"), "sess-timeout")
	if _, err := p.Generate(ctx, Request{System: "evaluate"}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{SessionID: "sess-timeout"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Success || events[0].Purpose != "evaluation" || events[0].ErrorMessage == "" {
		t.Errorf("event = %+v", events[0].LLMRequestEventData)
	}
}
