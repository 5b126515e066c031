package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/interviewd/internal/store"
	"github.com/google/uuid"
)

// StoreDirectory keeps profiles in the local database.
type StoreDirectory struct {
	repo store.ResumeRepo
	now  func() time.Time
}

// NewStoreDirectory returns a Directory backed by repo.
func NewStoreDirectory(repo store.ResumeRepo) *StoreDirectory {
	return &StoreDirectory{repo: repo, now: time.Now}
}

// Create registers a profile and returns it with its assigned id.
func (d *StoreDirectory) Create(ctx context.Context, p Profile) (*Profile, error) {
	p.Normalize()
	if p.CandidateID == "" {
		return nil, fmt.Errorf("%w: candidateId is required", ErrInvalid)
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.CreatedAt = d.now().UTC()

	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}
	err = d.repo.Create(ctx, store.ResumeRecord{
		ID:          p.ID,
		CandidateID: p.CandidateID,
		Name:        p.Name,
		Data:        data,
		CreatedAt:   p.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}
	return &p, nil
}

// Get implements Directory.
func (d *StoreDirectory) Get(ctx context.Context, id string) (*Profile, error) {
	rec, err := d.repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load resume %s: %w", id, err)
	}

	var p Profile
	if err := json.Unmarshal(rec.Data, &p); err != nil {
		return nil, fmt.Errorf("decode resume %s: %w", id, err)
	}
	p.ID = rec.ID
	p.CandidateID = rec.CandidateID
	p.CreatedAt = rec.CreatedAt
	return &p, nil
}
