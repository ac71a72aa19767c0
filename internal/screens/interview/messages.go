package interview

import (
	"time"

	"github.com/abhisek/interviewer/internal/session"
)

// snapshot is the part of the session the view renders. It is read on the
// command goroutine right after the session call returns, so the view never
// touches the session while a command is in flight.
type snapshot struct {
	History []session.Message
	Status  session.Status
}

func takeSnapshot(iv Interview) snapshot {
	return snapshot{History: iv.History(), Status: iv.Status()}
}

// startedMsg is sent when planning and the warm-up question are ready.
type startedMsg struct {
	Interview Interview
	Snapshot  snapshot
	Err       error
}

// replyMsg carries the interviewer's reply to a submitted answer.
type replyMsg struct {
	Text     string
	Snapshot snapshot
	Err      error
}

// finishedMsg carries the final report.
type finishedMsg struct {
	Report session.FinalReport
	Turns  int
	Err    error
}

// spinnerTickMsg animates the busy indicator.
type spinnerTickMsg time.Time
