package interview

import "math"

// NextDifficulty moves one step along [easy, medium, hard] in the direction
// of adj, saturating at both ends. Unknown signals and unknown current
// values are treated conservatively: maintain, and easy respectively.
func NextDifficulty(current Difficulty, adj Adjustment) Difficulty {
	i := current.index()
	if i < 0 {
		return DifficultyEasy
	}
	switch adj {
	case AdjustIncrease:
		if i < len(difficultyScale)-1 {
			i++
		}
	case AdjustDecrease:
		if i > 0 {
			i--
		}
	}
	return difficultyScale[i]
}

// CategoryFor returns the scheduled category for the n-th question.
// The schedule depends only on position. The second argument is the
// session's question ceiling, kept so longer interviews can be scheduled
// without changing callers.
//
//	n      even        odd
//	1-3    technical   conceptual
//	4-7    technical   scenario
//	8+     behavioral  technical
func CategoryFor(n, _ int) Category {
	even := n%2 == 0
	switch {
	case n <= 3:
		if even {
			return CategoryTechnical
		}
		return CategoryConceptual
	case n <= 7:
		if even {
			return CategoryTechnical
		}
		return CategoryScenario
	default:
		if even {
			return CategoryBehavioral
		}
		return CategoryTechnical
	}
}

// Outcome is the termination policy's decision.
type Outcome int

const (
	OutcomeContinue Outcome = iota
	OutcomeTerminate
	OutcomeComplete
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTerminate:
		return "terminate"
	case OutcomeComplete:
		return "complete"
	default:
		return "continue"
	}
}

// ReasonBelowThreshold is recorded when a session ends early.
const ReasonBelowThreshold = "performance below threshold"

// Decision pairs an outcome with the reason for early termination.
type Decision struct {
	Outcome Outcome
	Reason  string
}

// Decide applies the termination rules in order: the answer floor, then
// the score threshold, then the question ceiling.
func Decide(cfg Config, perf Performance) Decision {
	if perf.QuestionsAnswered < cfg.MinQuestions {
		return Decision{Outcome: OutcomeContinue}
	}
	if perf.AverageScore < cfg.TerminationThreshold {
		return Decision{Outcome: OutcomeTerminate, Reason: ReasonBelowThreshold}
	}
	if perf.TotalQuestions >= cfg.MaxQuestions {
		return Decision{Outcome: OutcomeComplete}
	}
	return Decision{Outcome: OutcomeContinue}
}

// FinalScore blends the performance snapshot into a single 0-100 score.
func FinalScore(p Performance) int {
	v := 0.4*p.AverageScore +
		0.2*p.TimeManagement +
		0.2*p.TechnicalScore +
		0.1*p.BehavioralScore +
		0.1*p.ConceptualScore
	return int(math.Round(v))
}

// ReadinessFor maps a final score to its tier.
func ReadinessFor(score int) Readiness {
	switch {
	case score >= 75:
		return ReadinessStrong
	case score >= 50:
		return ReadinessAverage
	default:
		return ReadinessNeedsImprovement
	}
}
