package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const sessionEventsTable = "session_events"

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(sessionEventsTable).
		Columns("sequence", "created_at", "session_id", "action", "question_number", "status", "detail").
		Values(seqNum, toMillis(time.Now()), data.SessionID, data.Action, data.QuestionNumber, data.Status, data.Detail).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionEvents(ctx context.Context, sessionID string) ([]SessionEventRecord, error) {
	query, args := entsql.Dialect(r.dialect).
		Select("sequence", "created_at", "session_id", "action", "question_number", "status", "detail").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		OrderBy("sequence").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var out []SessionEventRecord
	for rows.Next() {
		var (
			rec     SessionEventRecord
			created int64
		)
		if err := rows.Scan(&rec.Sequence, &created, &rec.SessionID, &rec.Action,
			&rec.QuestionNumber, &rec.Status, &rec.Detail); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		rec.Timestamp = fromMillis(created)
		out = append(out, rec)
	}
	return out, rows.Err()
}
