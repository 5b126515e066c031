package interview

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func testStartInput() StartInput {
	return StartInput{
		CandidateID:    "cand-1",
		ResumeID:       "resume-1",
		JobDescription: "Build and operate Go services.",
		JobRole:        "Backend Engineer",
	}
}

// checkOpenInvariant fails the test unless an in-progress session has
// exactly one open attempt and a terminal one has none.
func checkOpenInvariant(t *testing.T, s *Session) {
	t.Helper()
	open := 0
	for i, a := range s.Attempts {
		if a.Number != i+1 {
			t.Fatalf("attempt %d has number %d", i+1, a.Number)
		}
		if !a.Answered() {
			open++
		}
	}
	switch {
	case s.Status == StatusInProgress && open != 1:
		t.Fatalf("in-progress session has %d open attempts", open)
	case s.Status.Terminal() && open != 0:
		t.Fatalf("%s session has %d open attempts", s.Status, open)
	case s.Status == StatusInProgress && s.Verdict != nil:
		t.Fatal("in-progress session carries a verdict")
	case s.Status.Terminal() && s.Verdict == nil:
		t.Fatal("terminal session has no verdict")
	}
}

func TestNewSession(t *testing.T) {
	q := Question{Text: "What is a goroutine?", Difficulty: DifficultyEasy, Category: CategoryTechnical, TimeAllowed: 90, ExpectedKeyPoints: []string{"lightweight"}}
	s := NewSession("s1", testStartInput(), q, DefaultConfig(), t0)

	if s.Status != StatusInProgress || s.CurrentDifficulty != DifficultyEasy {
		t.Fatalf("unexpected initial state: %s/%s", s.Status, s.CurrentDifficulty)
	}
	if s.Performance.TotalQuestions != 1 || s.Performance.QuestionsAnswered != 0 {
		t.Errorf("unexpected performance: %+v", s.Performance)
	}
	checkOpenInvariant(t, s)
}

func TestNewAttempt_TrustsReturnedValues(t *testing.T) {
	cfg := DefaultConfig()
	q := Question{Text: "Design a cache", Difficulty: DifficultyHard, Category: CategoryScenario}
	a := newAttempt(4, q, DifficultyMedium, CategoryTechnical, cfg, t0)

	if a.Difficulty != DifficultyHard || a.Category != CategoryScenario {
		t.Errorf("returned difficulty/category not trusted: %s/%s", a.Difficulty, a.Category)
	}
	if a.TimeAllowed != 180 {
		t.Errorf("TimeAllowed = %d, want hard default 180", a.TimeAllowed)
	}

	q = Question{Text: "x", Difficulty: "impossible", Category: "trivia", TimeAllowed: 75}
	a = newAttempt(2, q, DifficultyMedium, CategoryTechnical, cfg, t0)
	if a.Difficulty != DifficultyMedium || a.Category != CategoryTechnical {
		t.Errorf("invalid values should fall back to the requested slot: %s/%s", a.Difficulty, a.Category)
	}
	if a.TimeAllowed != 75 {
		t.Errorf("TimeAllowed = %d, want 75", a.TimeAllowed)
	}
}

func TestApplyAnswer_DoesNotMutateInput(t *testing.T) {
	s := NewSession("s1", testStartInput(), Question{Text: "q1"}, DefaultConfig(), t0)
	before, _ := json.Marshal(s)

	next, err := ApplyAnswer(s, AnswerInput{SessionID: "s1", QuestionNumber: 1, Answer: "a", TimeTaken: 30},
		Evaluation{Score: Score{Overall: 70, TimeEfficiency: 60}, Feedback: "ok", Adjustment: AdjustIncrease}, t0.Add(time.Minute))
	if err != nil {
		t.Fatalf("ApplyAnswer: %v", err)
	}

	after, _ := json.Marshal(s)
	if string(before) != string(after) {
		t.Fatal("ApplyAnswer mutated its input session")
	}
	a := next.Attempts[0]
	if !a.Answered() || a.Answer != "a" || a.TimeTaken != 30 || a.Adjustment != AdjustIncrease {
		t.Errorf("answer not recorded: %+v", a)
	}
	if next.Performance.AverageScore != 70 || next.Performance.TechnicalScore != 70 {
		t.Errorf("performance not recomputed: %+v", next.Performance)
	}
}

func TestApplyAnswer_Errors(t *testing.T) {
	s := NewSession("s1", testStartInput(), Question{Text: "q1"}, DefaultConfig(), t0)
	ev := Evaluation{Score: Score{Overall: 50}}

	_, err := ApplyAnswer(s, AnswerInput{SessionID: "s1", QuestionNumber: 2, Answer: "a"}, ev, t0)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != "question" {
		t.Errorf("expected question NotFoundError, got %v", err)
	}

	next, err := ApplyAnswer(s, AnswerInput{SessionID: "s1", QuestionNumber: 1, Answer: "a"}, ev, t0)
	if err != nil {
		t.Fatal(err)
	}
	_, err = ApplyAnswer(next, AnswerInput{SessionID: "s1", QuestionNumber: 1, Answer: "again"}, ev, t0)
	var ise *InvalidStateError
	if !errors.As(err, &ise) {
		t.Errorf("expected InvalidStateError for answered question, got %v", err)
	}

	done := Conclude(next, Decision{Outcome: OutcomeComplete}, Report{}, t0)
	_, err = ApplyAnswer(done, AnswerInput{SessionID: "s1", QuestionNumber: 1, Answer: "a"}, ev, t0)
	if !errors.As(err, &ise) {
		t.Errorf("expected InvalidStateError for completed session, got %v", err)
	}
}

func TestPlanNextAndAdvance(t *testing.T) {
	cfg := DefaultConfig()
	s := NewSession("s1", testStartInput(), Question{Text: "q1"}, cfg, t0)
	s, err := ApplyAnswer(s, AnswerInput{SessionID: "s1", QuestionNumber: 1, Answer: "a"},
		Evaluation{Score: Score{Overall: 90}, Adjustment: AdjustIncrease}, t0)
	if err != nil {
		t.Fatal(err)
	}

	slot := PlanNext(s, cfg)
	if slot.Number != 2 || slot.Difficulty != DifficultyMedium || slot.Category != CategoryTechnical {
		t.Fatalf("unexpected slot: %+v", slot)
	}

	next := Advance(s, slot, Question{Text: "q2", Difficulty: DifficultyMedium, Category: CategoryTechnical}, cfg, t0)
	if next.CurrentDifficulty != DifficultyMedium {
		t.Errorf("CurrentDifficulty = %s, want medium", next.CurrentDifficulty)
	}
	if len(s.Attempts) != 1 {
		t.Error("Advance mutated its input")
	}
	if next.Performance.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", next.Performance.TotalQuestions)
	}
	checkOpenInvariant(t, next)
}

func TestConclude(t *testing.T) {
	s := NewSession("s1", testStartInput(), Question{Text: "q1"}, DefaultConfig(), t0)
	s, _ = ApplyAnswer(s, AnswerInput{SessionID: "s1", QuestionNumber: 1, Answer: "a"},
		Evaluation{Score: Score{Overall: 10, TimeEfficiency: 10}}, t0)

	report := Report{Strengths: []string{"honest"}, HiringReadiness: HiringNotReady}
	done := Conclude(s, Decision{Outcome: OutcomeTerminate, Reason: ReasonBelowThreshold}, report, t0)
	if done.Status != StatusTerminated {
		t.Fatalf("status = %s", done.Status)
	}
	if done.Verdict.TerminationReason != ReasonBelowThreshold {
		t.Errorf("reason = %q", done.Verdict.TerminationReason)
	}
	if done.Verdict.Readiness != ReadinessNeedsImprovement {
		t.Errorf("readiness = %s", done.Verdict.Readiness)
	}
	checkOpenInvariant(t, done)

	report.Strengths[0] = "changed"
	if done.Verdict.Strengths[0] != "honest" {
		t.Error("verdict aliases the report slices")
	}

	completed := Conclude(s, Decision{Outcome: OutcomeComplete}, Report{}, t0)
	if completed.Status != StatusCompleted || completed.Verdict.TerminationReason != "" {
		t.Errorf("unexpected completed verdict: %s %+v", completed.Status, completed.Verdict)
	}
}

func TestInputValidation(t *testing.T) {
	in := testStartInput()
	in.JobRole = "  "
	var verr *ValidationError
	if err := in.Validate(); !errors.As(err, &verr) || verr.Field != "jobRole" {
		t.Errorf("expected jobRole validation error, got %v", err)
	}

	tests := []struct {
		in    AnswerInput
		field string
	}{
		{AnswerInput{QuestionNumber: 1, Answer: "a"}, "interviewId"},
		{AnswerInput{SessionID: "s", QuestionNumber: 0, Answer: "a"}, "questionNumber"},
		{AnswerInput{SessionID: "s", QuestionNumber: 1, Answer: " "}, "answer"},
		{AnswerInput{SessionID: "s", QuestionNumber: 1, Answer: "a", TimeTaken: -1}, "timeTaken"},
	}
	for _, tt := range tests {
		err := tt.in.Validate()
		if !errors.As(err, &verr) || verr.Field != tt.field {
			t.Errorf("Validate(%+v) = %v, want field %s", tt.in, err, tt.field)
		}
	}
}
