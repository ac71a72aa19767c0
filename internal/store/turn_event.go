package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendTurnEvent(ctx context.Context, data TurnEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO turn_events
		(sequence, timestamp, session_id, turn, topic, difficulty, score, ideal_answer,
		 visible_message, user_message, internal_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, formatTime(time.Now()), data.SessionID, data.Turn, data.Topic, data.Difficulty,
		data.Score, data.IdealAnswer, data.VisibleMessage, data.UserMessage, data.InternalNotes,
	)
	if err != nil {
		return fmt.Errorf("save turn event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryTurnEvents(ctx context.Context, opts QueryOpts) ([]TurnEvent, error) {
	where, args := whereClause(opts, false)
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, timestamp, session_id, turn, topic,
		difficulty, score, ideal_answer, visible_message, user_message, internal_notes
		FROM turn_events`+where+" ORDER BY sequence"+limitClause(opts.Limit), args...)
	if err != nil {
		return nil, fmt.Errorf("query turn events: %w", err)
	}
	defer rows.Close()

	var out []TurnEvent
	for rows.Next() {
		var e TurnEvent
		var ts string
		if err := rows.Scan(&e.ID, &e.Sequence, &ts, &e.SessionID, &e.Turn, &e.Topic,
			&e.Difficulty, &e.Score, &e.IdealAnswer, &e.VisibleMessage, &e.UserMessage,
			&e.InternalNotes); err != nil {
			return nil, fmt.Errorf("scan turn event: %w", err)
		}
		if e.Timestamp, err = parseTime(ts); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
