package interview

import (
	"fmt"
	"strings"
	"time"
)

// StartInput identifies the candidate and role for a new session.
type StartInput struct {
	CandidateID    string
	ResumeID       string
	JobDescription string
	JobRole        string
}

// Validate checks that every field is present.
func (in StartInput) Validate() error {
	for _, f := range []struct{ name, value string }{
		{"candidateId", in.CandidateID},
		{"resumeId", in.ResumeID},
		{"jobDescription", in.JobDescription},
		{"jobRole", in.JobRole},
	} {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Message: "is required"}
		}
	}
	return nil
}

// AnswerInput is one submitted answer.
type AnswerInput struct {
	SessionID      string
	QuestionNumber int
	Answer         string
	TimeTaken      int
}

// Validate checks the request fields without looking at session state.
func (in AnswerInput) Validate() error {
	switch {
	case strings.TrimSpace(in.SessionID) == "":
		return &ValidationError{Field: "interviewId", Message: "is required"}
	case in.QuestionNumber < 1:
		return &ValidationError{Field: "questionNumber", Message: "must be at least 1"}
	case strings.TrimSpace(in.Answer) == "":
		return &ValidationError{Field: "answer", Message: "is required"}
	case in.TimeTaken < 0:
		return &ValidationError{Field: "timeTaken", Message: "must not be negative"}
	}
	return nil
}

// The functions below are the state machine. Each takes a session, returns
// a new one and leaves its argument untouched.

// NewSession builds an in-progress session whose only attempt is q.
func NewSession(id string, in StartInput, q Question, cfg Config, now time.Time) *Session {
	s := &Session{
		ID:                id,
		CandidateID:       strings.TrimSpace(in.CandidateID),
		ResumeID:          strings.TrimSpace(in.ResumeID),
		JobDescription:    in.JobDescription,
		JobRole:           strings.TrimSpace(in.JobRole),
		Status:            StatusInProgress,
		CurrentDifficulty: DifficultyEasy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	s.Attempts = []Attempt{newAttempt(1, q, DifficultyEasy, CategoryTechnical, cfg, now)}
	s.Performance = Aggregate(Performance{}, s.Attempts)
	return s
}

// CheckAnswerable returns the open attempt numbered n, or the error that
// explains why it cannot be answered.
func CheckAnswerable(s *Session, n int) (*Attempt, error) {
	if s.Status != StatusInProgress {
		return nil, &InvalidStateError{SessionID: s.ID, Status: s.Status, Message: "session is no longer in progress"}
	}
	a, ok := s.Attempt(n)
	if !ok {
		return nil, &NotFoundError{Kind: "question", ID: fmt.Sprintf("%s#%d", s.ID, n)}
	}
	if a.Answered() {
		return nil, &InvalidStateError{
			SessionID: s.ID,
			Status:    s.Status,
			Message:   fmt.Sprintf("question %d has already been answered", n),
		}
	}
	return a, nil
}

// ApplyAnswer records the answer and its evaluation on the open attempt and
// recomputes performance.
func ApplyAnswer(s *Session, in AnswerInput, ev Evaluation, now time.Time) (*Session, error) {
	if _, err := CheckAnswerable(s, in.QuestionNumber); err != nil {
		return nil, err
	}

	next := s.Clone()
	a := &next.Attempts[in.QuestionNumber-1]
	answeredAt := now
	score := ev.Score
	a.Answer = in.Answer
	a.AnsweredAt = &answeredAt
	a.TimeTaken = in.TimeTaken
	a.Score = &score
	a.Feedback = ev.Feedback
	a.Adjustment = ev.Adjustment

	next.Performance = Aggregate(s.Performance, next.Attempts)
	next.UpdatedAt = now
	return next, nil
}

// NextSlot is the difficulty and category the policies choose for the
// next question.
type NextSlot struct {
	Number     int
	Difficulty Difficulty
	Category   Category
}

// PlanNext runs the difficulty and category policies for s.
func PlanNext(s *Session, cfg Config) NextSlot {
	adj := AdjustMaintain
	if n := len(s.Attempts); n > 0 {
		adj = s.Attempts[n-1].Adjustment
	}
	n := len(s.Attempts) + 1
	return NextSlot{
		Number:     n,
		Difficulty: NextDifficulty(s.CurrentDifficulty, adj),
		Category:   CategoryFor(n, cfg.MaxQuestions),
	}
}

// Advance appends q as the new open attempt.
func Advance(s *Session, slot NextSlot, q Question, cfg Config, now time.Time) *Session {
	next := s.Clone()
	next.CurrentDifficulty = slot.Difficulty
	next.Attempts = append(next.Attempts, newAttempt(slot.Number, q, slot.Difficulty, slot.Category, cfg, now))
	next.Performance = Aggregate(s.Performance, next.Attempts)
	next.UpdatedAt = now
	return next
}

// Conclude ends the session according to d and attaches the verdict.
func Conclude(s *Session, d Decision, r Report, now time.Time) *Session {
	next := s.Clone()
	score := FinalScore(next.Performance)
	v := &Verdict{
		FinalScore:                 score,
		Readiness:                  ReadinessFor(score),
		Strengths:                  cloneStrings(r.Strengths),
		Weaknesses:                 cloneStrings(r.Weaknesses),
		ActionableFeedback:         cloneStrings(r.ActionableFeedback),
		HiringReadiness:            r.HiringReadiness,
		HiringReadinessExplanation: r.HiringReadinessExplanation,
		CompletedAt:                now,
	}
	if d.Outcome == OutcomeTerminate {
		next.Status = StatusTerminated
		v.TerminationReason = d.Reason
	} else {
		next.Status = StatusCompleted
	}
	next.Verdict = v
	next.UpdatedAt = now
	return next
}

// newAttempt trusts the question's own difficulty and category when they
// are valid and falls back to the requested slot otherwise.
func newAttempt(n int, q Question, d Difficulty, c Category, cfg Config, now time.Time) Attempt {
	if q.Difficulty.Valid() {
		d = q.Difficulty
	}
	if q.Category.Valid() {
		c = q.Category
	}
	allowed := q.TimeAllowed
	if allowed <= 0 {
		allowed = cfg.TimeLimits.For(d)
	}
	return Attempt{
		Number:            n,
		Question:          q.Text,
		Difficulty:        d,
		Category:          c,
		TimeAllowed:       allowed,
		AskedAt:           now,
		ExpectedKeyPoints: cloneStrings(q.ExpectedKeyPoints),
	}
}
