// Package resume resolves candidate resume profiles used to tailor
// interview questions.
package resume

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned when a resume id cannot be resolved.
	ErrNotFound = errors.New("resume not found")
	// ErrInvalid is returned when a profile is missing required fields.
	ErrInvalid = errors.New("invalid resume")
)

// Profile is the parsed resume data the question prompt draws on.
type Profile struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	Name        string    `json:"name"`
	Skills      []string  `json:"skills"`
	Experience  string    `json:"experience"`
	Education   string    `json:"education"`
	Projects    string    `json:"projects"`
	Summary     string    `json:"summary,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Directory looks up resume profiles by id.
type Directory interface {
	// Get returns the profile or an error wrapping ErrNotFound.
	Get(ctx context.Context, id string) (*Profile, error)
}

// Normalize trims fields and drops empty skills.
func (p *Profile) Normalize() {
	p.CandidateID = strings.TrimSpace(p.CandidateID)
	p.Name = strings.TrimSpace(p.Name)
	p.Experience = strings.TrimSpace(p.Experience)
	p.Education = strings.TrimSpace(p.Education)
	p.Projects = strings.TrimSpace(p.Projects)
	p.Summary = strings.TrimSpace(p.Summary)

	skills := p.Skills[:0]
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	p.Skills = skills
}
