package interview

import (
	"errors"
	"fmt"

	"github.com/abhisek/interviewd/internal/resume"
)

// ValidationError reports a missing or malformed request field. The
// session is never touched.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NotFoundError reports an unknown session, question number or resume.
type NotFoundError struct {
	Kind string // "session", "question", "resume"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// InvalidStateError reports an event that is not legal in the session's
// current state.
type InvalidStateError struct {
	SessionID string
	Status    Status
	Message   string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("session %s (%s): %s", e.SessionID, e.Status, e.Message)
}

// OracleError wraps a failed or unparseable oracle call. It is retryable:
// the session is left exactly as it was.
type OracleError struct {
	Op             string // "propose-question", "score-answer", "write-report"
	SessionID      string
	QuestionNumber int
	Err            error
}

func (e *OracleError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("oracle %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("oracle %s failed (session %s, question %d): %v", e.Op, e.SessionID, e.QuestionNumber, e.Err)
}

func (e *OracleError) Unwrap() error { return e.Err }

// Retryable is always true; the caller may repeat the same request.
func (e *OracleError) Retryable() bool { return true }

// PersistenceError wraps a storage failure. The whole operation should be
// retried.
type PersistenceError struct {
	Op        string
	SessionID string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed (session %s): %v", e.Op, e.SessionID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrorKind returns a short label for err, used for metrics and by
// transports that map errors to status codes.
func ErrorKind(err error) string {
	var (
		verr *ValidationError
		nerr *NotFoundError
		serr *InvalidStateError
		oerr *OracleError
		perr *PersistenceError
	)
	switch {
	case err == nil:
		return "none"
	case errors.As(err, &verr), errors.Is(err, resume.ErrInvalid):
		return "validation"
	case errors.As(err, &nerr):
		return "not_found"
	case errors.As(err, &serr):
		return "invalid_state"
	case errors.As(err, &oerr):
		return "oracle"
	case errors.As(err, &perr):
		return "persistence"
	default:
		return "internal"
	}
}
