package store

import (
	"database/sql"
	"fmt"
)

// Every event table carries the global sequence and a UTC timestamp so rows
// of different kinds can be merged into one ordered stream.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence      INTEGER NOT NULL UNIQUE,
		timestamp     TEXT    NOT NULL,
		session_id    TEXT    NOT NULL DEFAULT '',
		provider      TEXT    NOT NULL,
		model         TEXT    NOT NULL,
		purpose       TEXT    NOT NULL,
		input_tokens  INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms    INTEGER NOT NULL DEFAULT 0,
		success       INTEGER NOT NULL,
		error_message TEXT    NOT NULL DEFAULT '',
		request_body  TEXT    NOT NULL DEFAULT '',
		response_body TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_llm_request_events_purpose ON llm_request_events (purpose)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence     INTEGER NOT NULL UNIQUE,
		timestamp    TEXT    NOT NULL,
		session_id   TEXT    NOT NULL,
		action       TEXT    NOT NULL,
		participant  TEXT    NOT NULL DEFAULT '',
		position     TEXT    NOT NULL DEFAULT '',
		grade        TEXT    NOT NULL DEFAULT '',
		topics       TEXT    NOT NULL DEFAULT '',
		turns        INTEGER NOT NULL DEFAULT 0,
		final_grade  TEXT    NOT NULL DEFAULT '',
		verdict      TEXT    NOT NULL DEFAULT '',
		log_path     TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS turn_events (
		id              INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence        INTEGER NOT NULL UNIQUE,
		timestamp       TEXT    NOT NULL,
		session_id      TEXT    NOT NULL,
		turn            INTEGER NOT NULL,
		topic           TEXT    NOT NULL,
		difficulty      TEXT    NOT NULL,
		score           INTEGER NOT NULL,
		ideal_answer    TEXT    NOT NULL DEFAULT '',
		visible_message TEXT    NOT NULL DEFAULT '',
		user_message    TEXT    NOT NULL DEFAULT '',
		internal_notes  TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS idx_turn_events_session ON turn_events (session_id, turn)`,
}

func migrate(db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec migration: %w", err)
		}
	}
	return nil
}
