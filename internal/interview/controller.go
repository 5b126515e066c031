package interview

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/abhisek/interviewd/internal/lock"
	"github.com/abhisek/interviewd/internal/metrics"
	"github.com/abhisek/interviewd/internal/resume"
	"github.com/abhisek/interviewd/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Event actions recorded in the session event log.
const (
	ActionStarted       = "started"
	ActionAnswered      = "answered"
	ActionQuestionAsked = "question-asked"
	ActionCompleted     = "completed"
	ActionTerminated    = "terminated"
)

// EventRecorder receives session lifecycle events. Failures are logged and
// never fail the operation.
type EventRecorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
}

// Controller drives sessions through their lifecycle. It is the only
// component that calls the oracle or writes sessions.
type Controller struct {
	cfg     Config
	oracle  Oracle
	repo    Repository
	resumes resume.Directory
	locker  lock.Locker
	events  EventRecorder
	log     *zap.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocker replaces the default in-process locker.
func WithLocker(l lock.Locker) Option {
	return func(c *Controller) { c.locker = l }
}

// WithEvents enables the session event log.
func WithEvents(r EventRecorder) Option {
	return func(c *Controller) { c.events = r }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides session id generation.
func WithIDGenerator(f func() string) Option {
	return func(c *Controller) { c.newID = f }
}

// NewController validates cfg and wires the collaborators.
func NewController(cfg Config, oracle Oracle, repo Repository, resumes resume.Directory, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("interview config: %w", err)
	}
	if oracle == nil || repo == nil || resumes == nil {
		return nil, errors.New("interview: oracle, repository and resume directory are required")
	}
	c := &Controller{
		cfg:     cfg,
		oracle:  oracle,
		repo:    repo,
		resumes: resumes,
		locker:  lock.NewLocal(),
		log:     zap.NewNop(),
		now:     func() time.Time { return time.Now().UTC() },
		newID:   uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Config returns the controller's settings.
func (c *Controller) Config() Config { return c.cfg }

// PublicQuestion is a question as shown to the candidate. Expected key
// points are deliberately absent.
type PublicQuestion struct {
	QuestionNumber int        `json:"questionNumber"`
	Question       string     `json:"question"`
	Difficulty     Difficulty `json:"difficulty"`
	Category       Category   `json:"category"`
	TimeAllowed    int        `json:"timeAllowed"`
}

func publicQuestion(a Attempt) PublicQuestion {
	return PublicQuestion{
		QuestionNumber: a.Number,
		Question:       a.Question,
		Difficulty:     a.Difficulty,
		Category:       a.Category,
		TimeAllowed:    a.TimeAllowed,
	}
}

// StartResult is returned by Start.
type StartResult struct {
	SessionID string         `json:"interviewId"`
	Question  PublicQuestion `json:"currentQuestion"`
}

// AnswerResult is returned by SubmitAnswer. Exactly one of NextQuestion and
// Verdict is set.
type AnswerResult struct {
	SessionID      string          `json:"interviewId"`
	QuestionNumber int             `json:"questionNumber"`
	Score          Score           `json:"score"`
	Feedback       string          `json:"feedback"`
	Status         Status          `json:"status"`
	NextQuestion   *PublicQuestion `json:"nextQuestion,omitempty"`
	Verdict        *Verdict        `json:"verdict,omitempty"`
	Performance    Performance     `json:"performance"`
}

// StatusView is returned by Status.
type StatusView struct {
	SessionID         string          `json:"interviewId"`
	CandidateID       string          `json:"candidateId"`
	JobRole           string          `json:"jobRole"`
	Status            Status          `json:"status"`
	CurrentDifficulty Difficulty      `json:"currentDifficulty"`
	CurrentQuestion   *PublicQuestion `json:"currentQuestion,omitempty"`
	Performance       Performance     `json:"performance"`
	Verdict           *Verdict        `json:"verdict,omitempty"`
}

// ReportView is returned by Report.
type ReportView struct {
	SessionID   string      `json:"interviewId"`
	CandidateID string      `json:"candidateId"`
	JobRole     string      `json:"jobRole"`
	Status      Status      `json:"status"`
	Performance Performance `json:"performance"`
	Verdict     Verdict     `json:"verdict"`
	Attempts    []Attempt   `json:"questions"`
}

// Summary is one row of a candidate's session list.
type Summary struct {
	SessionID      string    `json:"interviewId"`
	JobRole        string    `json:"jobRole"`
	Status         Status    `json:"status"`
	QuestionsAsked int       `json:"questionsAsked"`
	FinalScore     *int      `json:"finalScore,omitempty"`
	Readiness      Readiness `json:"readinessLevel,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Start creates a session and asks question #1 (easy, technical).
func (c *Controller) Start(ctx context.Context, in StartInput) (res *StartResult, err error) {
	defer c.observe("start", &err)

	if err := in.Validate(); err != nil {
		return nil, err
	}
	profile, err := c.resolveResume(ctx, in.ResumeID)
	if err != nil {
		return nil, err
	}

	id := c.newID()
	q, err := c.propose(ctx, "", 1, QuestionContext{
		SessionID:      id,
		Resume:         profile,
		JobRole:        in.JobRole,
		JobDescription: in.JobDescription,
		Difficulty:     DifficultyEasy,
		Category:       CategoryTechnical,
		TimeLimit:      c.cfg.TimeLimits.For(DifficultyEasy),
	})
	if err != nil {
		return nil, err
	}

	s := NewSession(id, in, q, c.cfg, c.now())
	if err := c.repo.Create(ctx, s); err != nil {
		return nil, &PersistenceError{Op: "create", SessionID: s.ID, Err: err}
	}

	metrics.SessionsStarted.Inc()
	c.log.Info("interview started",
		zap.String("session_id", s.ID),
		zap.String("candidate_id", s.CandidateID),
		zap.String("job_role", s.JobRole))
	c.record(ctx, s, ActionStarted, 0, "")
	c.record(ctx, s, ActionQuestionAsked, 1, string(s.Attempts[0].Category))

	return &StartResult{SessionID: s.ID, Question: publicQuestion(s.Attempts[0])}, nil
}

// SubmitAnswer scores the answer to the open question and either asks the
// next question or ends the session. Nothing is persisted unless every
// oracle call in the event succeeds.
func (c *Controller) SubmitAnswer(ctx context.Context, in AnswerInput) (res *AnswerResult, err error) {
	defer c.observe("submit-answer", &err)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	unlock, err := c.locker.Lock(ctx, in.SessionID)
	if err != nil {
		return nil, &PersistenceError{Op: "lock", SessionID: in.SessionID, Err: err}
	}
	defer unlock()

	s, err := c.load(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}
	open, err := CheckAnswerable(s, in.QuestionNumber)
	if err != nil {
		return nil, err
	}

	ev, err := c.score(ctx, s.ID, AnswerContext{
		SessionID:         s.ID,
		Question:          open.Question,
		ExpectedKeyPoints: open.ExpectedKeyPoints,
		Answer:            in.Answer,
		Difficulty:        open.Difficulty,
		Category:          open.Category,
		TimeTaken:         in.TimeTaken,
		TimeAllowed:       open.TimeAllowed,
	}, in.QuestionNumber)
	if err != nil {
		return nil, err
	}

	next, err := ApplyAnswer(s, in, ev, c.now())
	if err != nil {
		return nil, err
	}
	answered := next.Attempts[in.QuestionNumber-1]

	decision := Decide(c.cfg, next.Performance)
	switch decision.Outcome {
	case OutcomeContinue:
		slot := PlanNext(next, c.cfg)
		last, _ := next.LastScore()
		q, err := c.propose(ctx, s.ID, slot.Number, QuestionContext{
			SessionID:      s.ID,
			Resume:         c.resumeFor(ctx, next),
			JobRole:        next.JobRole,
			JobDescription: next.JobDescription,
			Difficulty:     slot.Difficulty,
			Category:       slot.Category,
			TimeLimit:      c.cfg.TimeLimits.For(slot.Difficulty),
			PriorQuestions: next.PriorQuestions(),
			HasPerformance: true,
			AverageScore:   next.Performance.AverageScore,
			LastScore:      last,
		})
		if err != nil {
			return nil, err
		}
		next = Advance(next, slot, q, c.cfg, c.now())

	default:
		score := FinalScore(next.Performance)
		report, err := c.report(ctx, next.ID, in.QuestionNumber, ReportContext{
			SessionID:   next.ID,
			JobRole:     next.JobRole,
			FinalScore:  score,
			Readiness:   ReadinessFor(score),
			Performance: next.Performance,
			Attempts:    next.Attempts,
		})
		if err != nil {
			return nil, err
		}
		next = Conclude(next, decision, report, c.now())
	}

	if err := c.repo.Update(ctx, next); err != nil {
		return nil, &PersistenceError{Op: "update", SessionID: next.ID, Err: err}
	}

	metrics.AnswersScored.WithLabelValues(string(answered.Category), string(answered.Difficulty)).Inc()
	metrics.AnswerScore.WithLabelValues(string(answered.Category)).Observe(answered.Score.Overall)
	c.record(ctx, next, ActionAnswered, in.QuestionNumber, fmt.Sprintf("overall=%.0f", answered.Score.Overall))

	res = &AnswerResult{
		SessionID:      next.ID,
		QuestionNumber: in.QuestionNumber,
		Score:          *answered.Score,
		Feedback:       answered.Feedback,
		Status:         next.Status,
		Performance:    next.Performance,
	}
	if next.Status.Terminal() {
		v := *next.Verdict
		res.Verdict = &v
		c.finished(ctx, next)
	} else {
		open, _ := next.OpenAttempt()
		pq := publicQuestion(*open)
		res.NextQuestion = &pq
		c.record(ctx, next, ActionQuestionAsked, open.Number, string(open.Category))
	}
	return res, nil
}

// Status returns the session's current state.
func (c *Controller) Status(ctx context.Context, sessionID string) (view *StatusView, err error) {
	defer c.observe("status", &err)

	s, err := c.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	view = &StatusView{
		SessionID:         s.ID,
		CandidateID:       s.CandidateID,
		JobRole:           s.JobRole,
		Status:            s.Status,
		CurrentDifficulty: s.CurrentDifficulty,
		Performance:       s.Performance,
		Verdict:           s.Verdict,
	}
	if open, ok := s.OpenAttempt(); ok && !s.Status.Terminal() {
		pq := publicQuestion(*open)
		view.CurrentQuestion = &pq
	}
	return view, nil
}

// Report returns the verdict and full attempt history of a finished
// session.
func (c *Controller) Report(ctx context.Context, sessionID string) (view *ReportView, err error) {
	defer c.observe("report", &err)

	s, err := c.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !s.Status.Terminal() || s.Verdict == nil {
		return nil, &InvalidStateError{SessionID: s.ID, Status: s.Status, Message: "interview is still in progress"}
	}
	return &ReportView{
		SessionID:   s.ID,
		CandidateID: s.CandidateID,
		JobRole:     s.JobRole,
		Status:      s.Status,
		Performance: s.Performance,
		Verdict:     *s.Verdict,
		Attempts:    s.Attempts,
	}, nil
}

// List returns a candidate's sessions, newest first.
func (c *Controller) List(ctx context.Context, candidateID string, limit int) (out []Summary, err error) {
	defer c.observe("list", &err)

	if strings.TrimSpace(candidateID) == "" {
		return nil, &ValidationError{Field: "candidateId", Message: "is required"}
	}
	if limit <= 0 {
		limit = 20
	}
	sessions, err := c.repo.ListByCandidate(ctx, candidateID, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	out = make([]Summary, 0, len(sessions))
	for _, s := range sessions {
		sum := Summary{
			SessionID:      s.ID,
			JobRole:        s.JobRole,
			Status:         s.Status,
			QuestionsAsked: len(s.Attempts),
			CreatedAt:      s.CreatedAt,
			UpdatedAt:      s.UpdatedAt,
		}
		if s.Verdict != nil {
			score := s.Verdict.FinalScore
			sum.FinalScore = &score
			sum.Readiness = s.Verdict.Readiness
		}
		out = append(out, sum)
	}
	return out, nil
}

func (c *Controller) load(ctx context.Context, id string) (*Session, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Field: "interviewId", Message: "is required"}
	}
	s, err := c.repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &NotFoundError{Kind: "session", ID: id}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", SessionID: id, Err: err}
	}
	return s, nil
}

func (c *Controller) resolveResume(ctx context.Context, id string) (*resume.Profile, error) {
	p, err := c.resumes.Get(ctx, id)
	if errors.Is(err, resume.ErrNotFound) {
		return nil, &NotFoundError{Kind: "resume", ID: id}
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load-resume", Err: err}
	}
	return p, nil
}

// resumeFor returns the session's resume for prompting. A resume that has
// since become unavailable only degrades the prompt.
func (c *Controller) resumeFor(ctx context.Context, s *Session) *resume.Profile {
	p, err := c.resumes.Get(ctx, s.ResumeID)
	if err != nil {
		c.log.Warn("resume unavailable for question prompt",
			zap.String("session_id", s.ID),
			zap.String("resume_id", s.ResumeID),
			zap.Error(err))
		return nil
	}
	return p
}

func (c *Controller) oracleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.OracleTimeout > 0 {
		return context.WithTimeout(ctx, c.cfg.OracleTimeout)
	}
	return context.WithCancel(ctx)
}

func (c *Controller) propose(ctx context.Context, sessionID string, n int, in QuestionContext) (Question, error) {
	octx, cancel := c.oracleContext(ctx)
	defer cancel()

	q, err := c.oracle.ProposeQuestion(octx, in)
	if err == nil && strings.TrimSpace(q.Text) == "" {
		err = errors.New("empty question text")
	}
	if err != nil {
		return Question{}, &OracleError{Op: "propose-question", SessionID: sessionID, QuestionNumber: n, Err: err}
	}
	return q, nil
}

func (c *Controller) score(ctx context.Context, sessionID string, in AnswerContext, n int) (Evaluation, error) {
	octx, cancel := c.oracleContext(ctx)
	defer cancel()

	ev, err := c.oracle.ScoreAnswer(octx, in)
	if err == nil {
		err = checkScore(ev.Score)
	}
	if err != nil {
		return Evaluation{}, &OracleError{Op: "score-answer", SessionID: sessionID, QuestionNumber: n, Err: err}
	}
	return ev, nil
}

func (c *Controller) report(ctx context.Context, sessionID string, n int, in ReportContext) (Report, error) {
	octx, cancel := c.oracleContext(ctx)
	defer cancel()

	r, err := c.oracle.WriteReport(octx, in)
	if err != nil {
		return Report{}, &OracleError{Op: "write-report", SessionID: sessionID, QuestionNumber: n, Err: err}
	}
	return r, nil
}

func checkScore(s Score) error {
	for name, v := range map[string]float64{
		"accuracy":       s.Accuracy,
		"clarity":        s.Clarity,
		"depth":          s.Depth,
		"relevance":      s.Relevance,
		"timeEfficiency": s.TimeEfficiency,
		"overall":        s.Overall,
	} {
		if math.IsNaN(v) || v < 0 || v > 100 {
			return fmt.Errorf("score %s out of range: %v", name, v)
		}
	}
	return nil
}

func (c *Controller) finished(ctx context.Context, s *Session) {
	action := ActionCompleted
	if s.Status == StatusTerminated {
		action = ActionTerminated
	}
	metrics.SessionsFinished.WithLabelValues(string(s.Status), string(s.Verdict.Readiness)).Inc()
	c.log.Info("interview finished",
		zap.String("session_id", s.ID),
		zap.String("status", string(s.Status)),
		zap.Int("final_score", s.Verdict.FinalScore),
		zap.String("readiness", string(s.Verdict.Readiness)),
		zap.String("reason", s.Verdict.TerminationReason))
	c.record(ctx, s, action, len(s.Attempts), s.Verdict.TerminationReason)
}

// record appends a lifecycle event. It never fails the caller.
func (c *Controller) record(ctx context.Context, s *Session, action string, n int, detail string) {
	if c.events == nil {
		return
	}
	err := c.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:      s.ID,
		Action:         action,
		QuestionNumber: n,
		Status:         string(s.Status),
		Detail:         detail,
	})
	if err != nil {
		c.log.Warn("failed to record session event",
			zap.String("session_id", s.ID),
			zap.String("action", action),
			zap.Error(err))
	}
}

func (c *Controller) observe(op string, errp *error) {
	if *errp == nil {
		return
	}
	kind := ErrorKind(*errp)
	metrics.ControllerErrors.WithLabelValues(op, kind).Inc()
	if kind == "oracle" || kind == "persistence" || kind == "internal" {
		c.log.Warn("interview operation failed", zap.String("op", op), zap.Error(*errp))
	}
}
