package interview

import "time"

// Status is the lifecycle state of a session.
type Status string

const (
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusTerminated Status = "terminated"
)

// Terminal reports whether no further events are accepted.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusTerminated
}

// Difficulty is the ordinal difficulty of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// difficultyScale orders difficulties from easiest to hardest.
var difficultyScale = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	return d.index() >= 0
}

func (d Difficulty) index() int {
	for i, s := range difficultyScale {
		if s == d {
			return i
		}
	}
	return -1
}

// Category is the kind of question being asked.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryBehavioral Category = "behavioral"
	CategoryConceptual Category = "conceptual"
	CategoryScenario   Category = "scenario"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{CategoryTechnical, CategoryBehavioral, CategoryConceptual, CategoryScenario}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, k := range AllCategories {
		if k == c {
			return true
		}
	}
	return false
}

// Adjustment is the oracle's signal for the next question's difficulty.
type Adjustment string

const (
	AdjustIncrease Adjustment = "increase"
	AdjustMaintain Adjustment = "maintain"
	AdjustDecrease Adjustment = "decrease"
)

// Readiness is the coarse tier derived from the final score.
type Readiness string

const (
	ReadinessStrong           Readiness = "Strong"
	ReadinessAverage          Readiness = "Average"
	ReadinessNeedsImprovement Readiness = "Needs Improvement"
)

// HiringReadiness is the oracle's own hiring recommendation.
type HiringReadiness string

const (
	HiringReady       HiringReadiness = "ready"
	HiringConditional HiringReadiness = "conditional"
	HiringNotReady    HiringReadiness = "not-ready"
)

// Score holds the evaluation of one answer. All values are 0-100.
type Score struct {
	Accuracy       float64 `json:"accuracy"`
	Clarity        float64 `json:"clarity"`
	Depth          float64 `json:"depth"`
	Relevance      float64 `json:"relevance"`
	TimeEfficiency float64 `json:"timeEfficiency"`
	Overall        float64 `json:"overall"`
}

// Attempt is one asked, and possibly answered, question.
type Attempt struct {
	Number      int        `json:"questionNumber"`
	Question    string     `json:"question"`
	Difficulty  Difficulty `json:"difficulty"`
	Category    Category   `json:"category"`
	TimeAllowed int        `json:"timeAllowed"`
	AskedAt     time.Time  `json:"askedAt"`

	Answer     string     `json:"answer,omitempty"`
	AnsweredAt *time.Time `json:"answeredAt,omitempty"`
	TimeTaken  int        `json:"timeTaken,omitempty"`
	Score      *Score     `json:"score,omitempty"`
	Feedback   string     `json:"feedback,omitempty"`
	Adjustment Adjustment `json:"adjustment,omitempty"`

	// ExpectedKeyPoints are supplied with the question and never shown to
	// the candidate while the session runs.
	ExpectedKeyPoints []string `json:"expectedKeyPoints,omitempty"`
}

// Answered reports whether the attempt has been scored.
func (a Attempt) Answered() bool {
	return a.AnsweredAt != nil && a.Score != nil
}

// Performance is the aggregate snapshot recomputed after every answer.
type Performance struct {
	TotalQuestions    int     `json:"totalQuestions"`
	QuestionsAnswered int     `json:"questionsAnswered"`
	AverageScore      float64 `json:"averageScore"`
	TimeManagement    float64 `json:"timeManagement"`
	TechnicalScore    float64 `json:"technicalScore"`
	BehavioralScore   float64 `json:"behavioralScore"`
	ConceptualScore   float64 `json:"conceptualScore"`
	ScenarioScore     float64 `json:"scenarioScore"`
}

// CategoryScore returns the score tracked for c.
func (p Performance) CategoryScore(c Category) float64 {
	switch c {
	case CategoryTechnical:
		return p.TechnicalScore
	case CategoryBehavioral:
		return p.BehavioralScore
	case CategoryConceptual:
		return p.ConceptualScore
	case CategoryScenario:
		return p.ScenarioScore
	}
	return 0
}

func (p *Performance) setCategoryScore(c Category, v float64) {
	switch c {
	case CategoryTechnical:
		p.TechnicalScore = v
	case CategoryBehavioral:
		p.BehavioralScore = v
	case CategoryConceptual:
		p.ConceptualScore = v
	case CategoryScenario:
		p.ScenarioScore = v
	}
}

// Verdict is produced once when the session ends and is never recomputed.
type Verdict struct {
	FinalScore                 int             `json:"finalScore"`
	Readiness                  Readiness       `json:"readinessLevel"`
	Strengths                  []string        `json:"strengths"`
	Weaknesses                 []string        `json:"weaknesses"`
	ActionableFeedback         []string        `json:"actionableFeedback"`
	HiringReadiness            HiringReadiness `json:"hiringReadiness,omitempty"`
	HiringReadinessExplanation string          `json:"hiringReadinessExplanation,omitempty"`
	TerminationReason          string          `json:"terminationReason,omitempty"`
	CompletedAt                time.Time       `json:"completedAt"`
}

// Session is the full record of one candidate's interview.
type Session struct {
	ID                string      `json:"id"`
	CandidateID       string      `json:"candidateId"`
	ResumeID          string      `json:"resumeId"`
	JobDescription    string      `json:"jobDescription"`
	JobRole           string      `json:"jobRole"`
	Status            Status      `json:"status"`
	CurrentDifficulty Difficulty  `json:"currentDifficulty"`
	Attempts          []Attempt   `json:"questions"`
	Performance       Performance `json:"performance"`
	Verdict           *Verdict    `json:"verdict,omitempty"`

	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OpenAttempt returns the asked-but-unanswered attempt, if any.
func (s *Session) OpenAttempt() (*Attempt, bool) {
	for i := range s.Attempts {
		if !s.Attempts[i].Answered() {
			return &s.Attempts[i], true
		}
	}
	return nil, false
}

// Attempt returns the attempt with the given 1-based number.
func (s *Session) Attempt(number int) (*Attempt, bool) {
	if number < 1 || number > len(s.Attempts) {
		return nil, false
	}
	return &s.Attempts[number-1], true
}

// PriorQuestions returns the text of every question asked so far.
func (s *Session) PriorQuestions() []string {
	out := make([]string, len(s.Attempts))
	for i, a := range s.Attempts {
		out[i] = a.Question
	}
	return out
}

// LastScore returns the overall score of the most recently answered attempt.
func (s *Session) LastScore() (float64, bool) {
	for i := len(s.Attempts) - 1; i >= 0; i-- {
		if s.Attempts[i].Answered() {
			return s.Attempts[i].Score.Overall, true
		}
	}
	return 0, false
}

// Clone returns a deep copy so transitions never alias the caller's value.
func (s *Session) Clone() *Session {
	c := *s
	c.Attempts = make([]Attempt, len(s.Attempts))
	for i, a := range s.Attempts {
		c.Attempts[i] = a.clone()
	}
	if s.Verdict != nil {
		v := *s.Verdict
		v.Strengths = cloneStrings(v.Strengths)
		v.Weaknesses = cloneStrings(v.Weaknesses)
		v.ActionableFeedback = cloneStrings(v.ActionableFeedback)
		c.Verdict = &v
	}
	return &c
}

func (a Attempt) clone() Attempt {
	if a.AnsweredAt != nil {
		t := *a.AnsweredAt
		a.AnsweredAt = &t
	}
	if a.Score != nil {
		sc := *a.Score
		a.Score = &sc
	}
	a.ExpectedKeyPoints = cloneStrings(a.ExpectedKeyPoints)
	return a
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
