package interview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/interviewd/internal/store"
)

// Repository loads and saves sessions. Update is optimistic: it succeeds
// only if the stored version equals s.Version, and bumps s.Version on
// success. Lookups of unknown ids return an error wrapping
// store.ErrNotFound.
type Repository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, s *Session) error
	ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*Session, error)
}

// StoreRepository persists sessions as JSON documents in the store's
// sessions table.
type StoreRepository struct {
	repo store.SessionRepo
}

// NewStoreRepository adapts a store.SessionRepo.
func NewStoreRepository(repo store.SessionRepo) *StoreRepository {
	return &StoreRepository{repo: repo}
}

func (r *StoreRepository) Create(ctx context.Context, s *Session) error {
	s.Version = 1
	rec, err := encodeSession(s)
	if err != nil {
		return err
	}
	return r.repo.Create(ctx, rec)
}

func (r *StoreRepository) Get(ctx context.Context, id string) (*Session, error) {
	rec, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return decodeSession(rec)
}

func (r *StoreRepository) Update(ctx context.Context, s *Session) error {
	expected := s.Version
	s.Version = expected + 1
	rec, err := encodeSession(s)
	if err != nil {
		s.Version = expected
		return err
	}
	if err := r.repo.Update(ctx, rec, expected); err != nil {
		s.Version = expected
		return err
	}
	return nil
}

func (r *StoreRepository) ListByCandidate(ctx context.Context, candidateID string, limit int) ([]*Session, error) {
	recs, err := r.repo.ListByCandidate(ctx, candidateID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*Session, 0, len(recs))
	for i := range recs {
		s, err := decodeSession(&recs[i])
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

func encodeSession(s *Session) (store.SessionRecord, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return store.SessionRecord{}, fmt.Errorf("encode session %s: %w", s.ID, err)
	}
	return store.SessionRecord{
		ID:          s.ID,
		CandidateID: s.CandidateID,
		ResumeID:    s.ResumeID,
		JobRole:     s.JobRole,
		Status:      string(s.Status),
		Version:     s.Version,
		Data:        data,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

func decodeSession(rec *store.SessionRecord) (*Session, error) {
	var s Session
	if err := json.Unmarshal(rec.Data, &s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", rec.ID, err)
	}
	// Columns are authoritative for the fields they carry.
	s.ID = rec.ID
	s.Version = rec.Version
	return &s, nil
}
