package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	topics := ""
	if len(data.Topics) > 0 {
		b, err := json.Marshal(data.Topics)
		if err != nil {
			return fmt.Errorf("marshal topics: %w", err)
		}
		topics = string(b)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO session_events
		(sequence, timestamp, session_id, action, participant, position, grade, topics,
		 turns, final_grade, verdict, log_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(time.Now()), data.SessionID, data.Action, data.Participant,
		data.Position, data.Grade, topics, data.Turns, data.FinalGrade, data.Verdict, data.LogPath,
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

// RecentSessions pairs each start event with its finish event, if any.
func (r *eventRepo) RecentSessions(ctx context.Context, limit int) ([]SessionSummary, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT s.session_id, s.participant, s.position, s.grade, s.timestamp,
		COALESCE(f.timestamp, ''), COALESCE(f.turns, 0), COALESCE(f.final_grade, ''),
		COALESCE(f.verdict, ''), COALESCE(f.log_path, '')
		FROM session_events s
		LEFT JOIN session_events f ON f.session_id = s.session_id AND f.action = ?
		WHERE s.action = ?
		ORDER BY s.sequence DESC`+limitClause(limit),
		SessionFinish, SessionStart)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionSummary
	for rows.Next() {
		var s SessionSummary
		var started, finished string
		if err := rows.Scan(&s.SessionID, &s.Participant, &s.Position, &s.Grade, &started,
			&finished, &s.Turns, &s.FinalGrade, &s.Verdict, &s.LogPath); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if s.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if finished != "" {
			if s.FinishedAt, err = parseTime(finished); err != nil {
				return nil, err
			}
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
