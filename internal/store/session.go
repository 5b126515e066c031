package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const sessionsTable = "sessions"

var sessionColumns = []string{
	"id", "candidate_id", "resume_id", "job_role", "status",
	"version", "data", "created_at", "updated_at",
}

// sessionRepo implements SessionRepo.
type sessionRepo struct {
	db      *sql.DB
	dialect string
}

func (r *sessionRepo) Create(ctx context.Context, rec SessionRecord) error {
	query, args := entsql.Dialect(r.dialect).
		Insert(sessionsTable).
		Columns(sessionColumns...).
		Values(
			rec.ID, rec.CandidateID, rec.ResumeID, rec.JobRole, rec.Status,
			rec.Version, string(rec.Data), toMillis(rec.CreatedAt), toMillis(rec.UpdatedAt),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert session %s: %w", rec.ID, err)
	}
	return nil
}

func (r *sessionRepo) Get(ctx context.Context, id string) (*SessionRecord, error) {
	query, args := entsql.Dialect(r.dialect).
		Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("id", id)).
		Query()

	rec, err := scanSession(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query session %s: %w", id, err)
	}
	return rec, nil
}

func (r *sessionRepo) Update(ctx context.Context, rec SessionRecord, expectedVersion int64) error {
	if rec.Version != expectedVersion+1 {
		return fmt.Errorf("update session %s: version %d does not follow %d", rec.ID, rec.Version, expectedVersion)
	}

	query, args := entsql.Dialect(r.dialect).
		Update(sessionsTable).
		Set("status", rec.Status).
		Set("version", rec.Version).
		Set("data", string(rec.Data)).
		Set("updated_at", toMillis(rec.UpdatedAt)).
		Where(entsql.And(
			entsql.EQ("id", rec.ID),
			entsql.EQ("version", expectedVersion),
		)).
		Query()

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update session %s: %w", rec.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update session %s: rows affected: %w", rec.ID, err)
	}
	if n == 1 {
		return nil
	}

	// Distinguish a missing row from a stale version.
	if _, err := r.Get(ctx, rec.ID); err != nil {
		return err
	}
	return ErrVersionConflict
}

func (r *sessionRepo) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]SessionRecord, error) {
	sel := entsql.Dialect(r.dialect).
		Select(sessionColumns...).
		From(entsql.Table(sessionsTable)).
		Where(entsql.EQ("candidate_id", candidateID)).
		OrderBy(entsql.Desc("created_at"))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*SessionRecord, error) {
	var (
		rec              SessionRecord
		data             string
		created, updated int64
	)
	err := row.Scan(
		&rec.ID, &rec.CandidateID, &rec.ResumeID, &rec.JobRole, &rec.Status,
		&rec.Version, &data, &created, &updated,
	)
	if err != nil {
		return nil, err
	}
	rec.Data = []byte(data)
	rec.CreatedAt = fromMillis(created)
	rec.UpdatedAt = fromMillis(updated)
	return &rec, nil
}
