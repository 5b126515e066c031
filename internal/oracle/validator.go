package oracle

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/interviewd/internal/interview"
)

// ValidationError describes why an oracle response failed a semantic check
// that the JSON schema cannot express.
type ValidationError struct {
	Validator string // Name of the check that failed
	Message   string // Human-readable description of the failure
	Retryable bool   // Whether asking again is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

func checkQuestion(q interview.Question, maxTime int) *ValidationError {
	if strings.TrimSpace(q.Text) == "" {
		return &ValidationError{Validator: "question", Message: "question text is empty", Retryable: true}
	}
	if !q.Difficulty.Valid() {
		return &ValidationError{Validator: "question", Message: fmt.Sprintf("unknown difficulty %q", q.Difficulty), Retryable: true}
	}
	if !q.Category.Valid() {
		return &ValidationError{Validator: "question", Message: fmt.Sprintf("unknown category %q", q.Category), Retryable: true}
	}
	if q.TimeAllowed <= 0 || (maxTime > 0 && q.TimeAllowed > maxTime) {
		return &ValidationError{Validator: "question", Message: fmt.Sprintf("time allowed %ds out of range", q.TimeAllowed), Retryable: true}
	}
	return nil
}

func checkScore(s interview.Score) *ValidationError {
	fields := []struct {
		name string
		v    float64
	}{
		{"accuracy", s.Accuracy},
		{"clarity", s.Clarity},
		{"depth", s.Depth},
		{"relevance", s.Relevance},
		{"timeEfficiency", s.TimeEfficiency},
		{"overall", s.Overall},
	}
	for _, f := range fields {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 100 {
			return &ValidationError{Validator: "score", Message: fmt.Sprintf("%s score %v outside 0-100", f.name, f.v), Retryable: true}
		}
	}
	return nil
}
