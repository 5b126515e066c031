package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const resumesTable = "resumes"

type resumeRepo struct {
	db      *sql.DB
	dialect string
}

func (r *resumeRepo) Create(ctx context.Context, rec ResumeRecord) error {
	query, args := entsql.Dialect(r.dialect).
		Insert(resumesTable).
		Columns("id", "candidate_id", "name", "data", "created_at").
		Values(rec.ID, rec.CandidateID, rec.Name, string(rec.Data), toMillis(rec.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert resume %s: %w", rec.ID, err)
	}
	return nil
}

func (r *resumeRepo) Get(ctx context.Context, id string) (*ResumeRecord, error) {
	query, args := entsql.Dialect(r.dialect).
		Select("id", "candidate_id", "name", "data", "created_at").
		From(entsql.Table(resumesTable)).
		Where(entsql.EQ("id", id)).
		Query()

	var (
		rec     ResumeRecord
		data    string
		created int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&rec.ID, &rec.CandidateID, &rec.Name, &data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query resume %s: %w", id, err)
	}
	rec.Data = []byte(data)
	rec.CreatedAt = fromMillis(created)
	return &rec, nil
}
