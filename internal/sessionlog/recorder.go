package sessionlog

import (
	"context"
	"fmt"

	"github.com/abhisek/interviewer/internal/session"
	"github.com/abhisek/interviewer/internal/store"
)

// Recorder implements session.Sink by appending lifecycle and turn events
// to the event store.
type Recorder struct {
	repo      store.EventRepo
	sessionID string
	logPath   string
	turns     int
}

// NewRecorder creates a Recorder. logPath is stored with the finish event.
func NewRecorder(repo store.EventRepo, sessionID, logPath string) *Recorder {
	return &Recorder{repo: repo, sessionID: sessionID, logPath: logPath}
}

// Start records the session start with its profile and topic plan.
func (r *Recorder) Start(ctx context.Context, profile session.Profile, plan []string) error {
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:   r.sessionID,
		Action:      store.SessionStart,
		Participant: profile.Name,
		Position:    profile.Position,
		Grade:       profile.Grade,
		Topics:      plan,
		LogPath:     r.logPath,
	})
	if err != nil {
		return fmt.Errorf("record session start: %w", err)
	}
	return nil
}

// RecordTurn appends a turn event.
func (r *Recorder) RecordTurn(ctx context.Context, rec session.TurnRecord) error {
	err := r.repo.AppendTurnEvent(ctx, store.TurnEventData{
		SessionID:      r.sessionID,
		Turn:           rec.Turn,
		Topic:          rec.Topic,
		Difficulty:     string(rec.Difficulty),
		Score:          rec.Score,
		IdealAnswer:    rec.IdealAnswer,
		VisibleMessage: rec.VisibleMessage,
		UserMessage:    rec.UserMessage,
		InternalNotes:  rec.InternalNotes,
	})
	if err != nil {
		return fmt.Errorf("record turn %d: %w", rec.Turn, err)
	}
	r.turns++
	return nil
}

// RecordReport records the session finish.
func (r *Recorder) RecordReport(ctx context.Context, report session.FinalReport) error {
	err := r.repo.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:  r.sessionID,
		Action:     store.SessionFinish,
		Turns:      r.turns,
		FinalGrade: report.Grade,
		Verdict:    report.HiringRecommendation,
		LogPath:    r.logPath,
	})
	if err != nil {
		return fmt.Errorf("record session finish: %w", err)
	}
	return nil
}
