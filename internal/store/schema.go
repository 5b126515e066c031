package store

import "strings"

// schemaStatements is valid for both SQLite and Postgres. Timestamps are
// unix milliseconds so the two dialects scan identically.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val BIGINT NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		resume_id TEXT NOT NULL,
		job_role TEXT NOT NULL,
		status TEXT NOT NULL,
		version BIGINT NOT NULL,
		data TEXT NOT NULL,
		created_at BIGINT NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sessions_candidate_idx ON sessions (candidate_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS resumes (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		name TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS llm_request_events (
		sequence BIGINT PRIMARY KEY,
		created_at BIGINT NOT NULL,
		session_id TEXT NOT NULL DEFAULT '',
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms BIGINT NOT NULL,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL,
		request_body TEXT NOT NULL,
		response_body TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_purpose_idx ON llm_request_events (purpose)`,
	`CREATE INDEX IF NOT EXISTS llm_request_events_session_idx ON llm_request_events (session_id)`,
	`CREATE TABLE IF NOT EXISTS session_events (
		sequence BIGINT PRIMARY KEY,
		created_at BIGINT NOT NULL,
		session_id TEXT NOT NULL,
		action TEXT NOT NULL,
		question_number INTEGER NOT NULL,
		status TEXT NOT NULL,
		detail TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS session_events_session_idx ON session_events (session_id, sequence)`,
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return strings.TrimSpace(stmt[:i])
	}
	return stmt
}
