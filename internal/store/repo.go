package store

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a keyed lookup matches no row.
	ErrNotFound = errors.New("store: not found")

	// ErrVersionConflict is returned when an update's expected version no
	// longer matches the stored row.
	ErrVersionConflict = errors.New("store: version conflict")
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// SessionID and Purpose restrict LLM events when set.
	SessionID string
	Purpose   string
}

// SessionRecord is the persisted form of one interview session. Data holds
// the JSON-encoded session; the other columns are copies used for lookup.
type SessionRecord struct {
	ID          string
	CandidateID string
	ResumeID    string
	JobRole     string
	Status      string
	Version     int64
	Data        []byte
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionRepo persists interview sessions with optimistic versioning.
type SessionRepo interface {
	// Create inserts a new record. rec.Version is stored as given.
	Create(ctx context.Context, rec SessionRecord) error

	// Get returns the record with the given id or ErrNotFound.
	Get(ctx context.Context, id string) (*SessionRecord, error)

	// Update replaces the record if its stored version equals
	// expectedVersion. rec.Version must be expectedVersion+1.
	// Returns ErrNotFound or ErrVersionConflict.
	Update(ctx context.Context, rec SessionRecord, expectedVersion int64) error

	// ListByCandidate returns the newest sessions first. limit <= 0 means
	// no limit.
	ListByCandidate(ctx context.Context, candidateID string, limit int) ([]SessionRecord, error)
}

// ResumeRecord is a stored resume profile. Data holds the JSON profile.
type ResumeRecord struct {
	ID          string
	CandidateID string
	Name        string
	Data        []byte
	CreatedAt   time.Time
}

// ResumeRepo stores resume profiles.
type ResumeRepo interface {
	Create(ctx context.Context, rec ResumeRecord) error
	Get(ctx context.Context, id string) (*ResumeRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStat aggregates LLM usage for one purpose or model.
type LLMUsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// SessionEventData captures one interview lifecycle transition.
type SessionEventData struct {
	SessionID      string
	Action         string // "started", "answered", "question-asked", "completed", "terminated"
	QuestionNumber int
	Status         string
	Detail         string
}

// SessionEventRecord is a stored session event.
type SessionEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single LLM event, or nil if it doesn't exist.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsageStat, error)

	// AppendSessionEvent records a session lifecycle event.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// QuerySessionEvents returns a session's events in sequence order.
	QuerySessionEvents(ctx context.Context, sessionID string) ([]SessionEventRecord, error)
}

func toMillis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
