package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"llm_request_events", "session_events", "turn_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{SessionID: "s1", Provider: "ollama", Model: "qwen2.5:7b-instruct", Purpose: "evaluation", InputTokens: 100, OutputTokens: 40, LatencyMs: 300, Success: true, RequestBody: "[user]\nhi"},
		{SessionID: "s1", Provider: "ollama", Model: "qwen2.5:7b-instruct", Purpose: "question-gen", InputTokens: 80, OutputTokens: 60, LatencyMs: 500, Success: true},
		{SessionID: "s1", Provider: "ollama", Model: "gpt-4o-mini", Purpose: "evaluation", InputTokens: 20, OutputTokens: 0, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[0].Sequence <= got[1].Sequence {
		t.Errorf("events not newest first: %d, %d", got[0].Sequence, got[1].Sequence)
	}
	if got[0].ErrorMessage != "boom" || got[0].Success {
		t.Errorf("newest event = %+v", got[0].LLMRequestEventData)
	}

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query by purpose: %v", err)
	}
	if len(filtered) != 1 || filtered[0].OutputTokens != 60 {
		t.Fatalf("purpose filter returned %+v", filtered)
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.Purpose != "question-gen" {
		t.Fatalf("get returned %+v", one)
	}
	if time.Since(one.Timestamp) > time.Minute {
		t.Errorf("timestamp not recent: %v", one.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing event, got %+v", missing)
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Provider: "p", Model: "m1", Purpose: "evaluation", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: true},
		{Provider: "p", Model: "m1", Purpose: "evaluation", InputTokens: 30, OutputTokens: 15, LatencyMs: 300, Success: true},
		{Provider: "p", Model: "m2", Purpose: "render", InputTokens: 7, OutputTokens: 3, LatencyMs: 50, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purposes, want 2", len(byPurpose))
	}
	eval := byPurpose[0]
	if eval.Purpose != "evaluation" || eval.Calls != 2 || eval.InputTokens != 40 || eval.OutputTokens != 20 || eval.AvgLatencyMs != 200 {
		t.Errorf("evaluation usage = %+v", eval)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Errorf("model usage = %+v", byModel)
	}
}

func TestSessionsAndTurns(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	mustAppend := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	mustAppend(repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: SessionStart, Participant: "Ann", Position: "Backend", Grade: "Middle", Topics: []string{"http", "sql"}}))
	mustAppend(repo.AppendTurnEvent(ctx, TurnEventData{SessionID: "a", Turn: 1, Topic: "http", Difficulty: "easy", Score: 80, UserMessage: "GET is idempotent"}))
	mustAppend(repo.AppendTurnEvent(ctx, TurnEventData{SessionID: "a", Turn: 2, Topic: "sql", Difficulty: "easy", Score: 40}))
	mustAppend(repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "a", Action: SessionFinish, Turns: 2, FinalGrade: "Junior", Verdict: "No Hire", LogPath: "logs/a.json"}))
	mustAppend(repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "b", Action: SessionStart, Participant: "Bo"}))

	sessions, err := repo.RecentSessions(ctx, 10)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("got %d sessions, want 2", len(sessions))
	}
	if sessions[0].SessionID != "b" || !sessions[0].FinishedAt.IsZero() {
		t.Errorf("newest session = %+v", sessions[0])
	}
	a := sessions[1]
	if a.Participant != "Ann" || a.Turns != 2 || a.Verdict != "No Hire" || a.LogPath != "logs/a.json" || a.FinishedAt.IsZero() {
		t.Errorf("finished session = %+v", a)
	}

	turns, err := repo.QueryTurnEvents(ctx, QueryOpts{SessionID: "a"})
	if err != nil {
		t.Fatalf("turns: %v", err)
	}
	if len(turns) != 2 || turns[0].Turn != 1 || turns[1].Topic != "sql" {
		t.Fatalf("turns = %+v", turns)
	}
	if turns[0].Sequence >= turns[1].Sequence {
		t.Errorf("turns out of order")
	}
}
