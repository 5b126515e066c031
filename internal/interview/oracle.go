package interview

import (
	"context"

	"github.com/abhisek/interviewd/internal/resume"
)

// Oracle produces question content, answer scores and the closing report.
// It never mutates session state; every call may fail.
type Oracle interface {
	ProposeQuestion(ctx context.Context, in QuestionContext) (Question, error)
	ScoreAnswer(ctx context.Context, in AnswerContext) (Evaluation, error)
	WriteReport(ctx context.Context, in ReportContext) (Report, error)
}

// QuestionContext is everything the oracle sees when proposing a question.
type QuestionContext struct {
	// SessionID is informational; it lets adapters correlate calls.
	SessionID      string
	Resume         *resume.Profile
	JobRole        string
	JobDescription string
	Difficulty     Difficulty
	Category       Category
	TimeLimit      int
	PriorQuestions []string

	// HasPerformance is false for question #1.
	HasPerformance bool
	AverageScore   float64
	LastScore      float64
}

// Question is a proposed question. Difficulty and Category are what was
// actually asked, which may differ from what was requested.
type Question struct {
	Text              string
	Difficulty        Difficulty
	Category          Category
	TimeAllowed       int
	ExpectedKeyPoints []string
}

// AnswerContext is everything the oracle sees when scoring an answer.
type AnswerContext struct {
	SessionID         string
	Question          string
	ExpectedKeyPoints []string
	Answer            string
	Difficulty        Difficulty
	Category          Category
	TimeTaken         int
	TimeAllowed       int
}

// Evaluation is the oracle's score for one answer.
type Evaluation struct {
	Score      Score
	Feedback   string
	Adjustment Adjustment
}

// ReportContext seeds the closing report.
type ReportContext struct {
	SessionID   string
	JobRole     string
	FinalScore  int
	Readiness   Readiness
	Performance Performance
	Attempts    []Attempt
}

// Report is the oracle-authored qualitative verdict.
type Report struct {
	Strengths                  []string
	Weaknesses                 []string
	ActionableFeedback         []string
	HiringReadiness            HiringReadiness
	HiringReadinessExplanation string
}
