// Package sessionlog keeps the flat JSON record of one interview: the
// committed turns and the final report.
package sessionlog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/abhisek/interviewer/internal/session"
)

// ErrAlreadySaved is returned when Save is called a second time.
var ErrAlreadySaved = errors.New("session log already saved")

// Document is the persisted log format.
type Document struct {
	ParticipantName string               `json:"participant_name"`
	SessionID       string               `json:"session_id"`
	StartedAt       time.Time            `json:"started_at"`
	Profile         session.Profile      `json:"profile"`
	TopicPlan       []string             `json:"topic_plan"`
	Turns           []session.TurnRecord `json:"turns"`
	FinalFeedback   *session.FinalReport `json:"final_feedback"`
}

// Log implements session.Sink. It is safe for concurrent use.
type Log struct {
	mu    sync.Mutex
	doc   Document
	saved string
}

// New creates an empty log for a session.
func New(sessionID string, profile session.Profile, startedAt time.Time) *Log {
	return &Log{doc: Document{
		ParticipantName: profile.Name,
		SessionID:       sessionID,
		StartedAt:       startedAt.UTC(),
		Profile:         profile,
		Turns:           []session.TurnRecord{},
	}}
}

// SetPlan records the topic plan once the session has started.
func (l *Log) SetPlan(plan []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.doc.TopicPlan = append([]string(nil), plan...)
}

// RecordTurn appends a committed turn.
func (l *Log) RecordTurn(_ context.Context, rec session.TurnRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n := len(l.doc.Turns); n > 0 && l.doc.Turns[n-1].Turn >= rec.Turn {
		return fmt.Errorf("turn %d recorded out of order after turn %d", rec.Turn, l.doc.Turns[n-1].Turn)
	}
	l.doc.Turns = append(l.doc.Turns, rec)
	return nil
}

// RecordReport stores the final report.
func (l *Log) RecordReport(_ context.Context, report session.FinalReport) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.doc.FinalFeedback != nil {
		return errors.New("final report already recorded")
	}
	l.doc.FinalFeedback = &report
	return nil
}

// Document returns a snapshot of the log.
func (l *Log) Document() Document {
	l.mu.Lock()
	defer l.mu.Unlock()
	doc := l.doc
	doc.TopicPlan = append([]string(nil), doc.TopicPlan...)
	doc.Turns = append([]session.TurnRecord{}, doc.Turns...)
	return doc
}

// Save writes the document to path, creating parent directories. A log is
// written at most once; later calls return ErrAlreadySaved.
func (l *Log) Save(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.saved != "" {
		return ErrAlreadySaved
	}

	data, err := json.MarshalIndent(l.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session log: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write session log: %w", err)
	}
	l.saved = path
	return nil
}

// SavedPath returns where the log was written, or "".
func (l *Log) SavedPath() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saved
}

// DefaultPath returns logs/interview_<timestamp>.json under dir.
func DefaultPath(dir string, t time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("interview_%s.json", t.Format("20060102_150405")))
}

// Load reads a saved document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read session log: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode session log: %w", err)
	}
	return &doc, nil
}
