package api

import (
	"errors"
	"math"
	"time"

	"github.com/abhisek/interviewd/internal/interview"
	"github.com/abhisek/interviewd/internal/resume"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func (s *Server) registerRoutes(r fiber.Router) {
	iv := r.Group("/interview")
	iv.Post("/start", s.startInterview)
	iv.Post("/submit-answer", s.submitAnswer)
	iv.Get("/status/:interviewId", s.interviewStatus)
	iv.Get("/report/:interviewId", s.interviewReport)
	iv.Get("/sessions", s.listSessions)

	r.Post("/resumes", s.createResume)
	r.Get("/resumes/:resumeId", s.getResume)
}

type startRequest struct {
	CandidateID    string `json:"candidateId"`
	ResumeID       string `json:"resumeId"`
	JobDescription string `json:"jobDescription"`
	JobRole        string `json:"jobRole"`
}

type answerRequest struct {
	InterviewID    string `json:"interviewId"`
	QuestionNumber int    `json:"questionNumber"`
	Answer         string `json:"answer"`
	TimeTaken      *int   `json:"timeTaken"`
}

func (s *Server) startInterview(c *fiber.Ctx) error {
	var req startRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	res, err := s.ctrl.Start(c.UserContext(), interview.StartInput{
		CandidateID:    req.CandidateID,
		ResumeID:       req.ResumeID,
		JobDescription: req.JobDescription,
		JobRole:        req.JobRole,
	})
	if err != nil {
		return s.fail(c, "start interview", err)
	}
	return success(c, fiber.StatusCreated, "Interview started successfully", res)
}

func (s *Server) submitAnswer(c *fiber.Ctx) error {
	var req answerRequest
	if err := c.BodyParser(&req); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	// An absent timeTaken would otherwise decode as zero seconds.
	if req.TimeTaken == nil {
		return s.fail(c, "submit answer", &interview.ValidationError{Field: "timeTaken", Message: "is required"})
	}

	res, err := s.ctrl.SubmitAnswer(c.UserContext(), interview.AnswerInput{
		SessionID:      req.InterviewID,
		QuestionNumber: req.QuestionNumber,
		Answer:         req.Answer,
		TimeTaken:      *req.TimeTaken,
	})
	if err != nil {
		return s.fail(c, "submit answer", err)
	}

	msg := "Answer submitted successfully"
	switch res.Status {
	case interview.StatusTerminated:
		msg = "Interview terminated early due to poor performance"
	case interview.StatusCompleted:
		msg = "Interview completed successfully"
	}
	return success(c, fiber.StatusOK, msg, res)
}

func (s *Server) interviewStatus(c *fiber.Ctx) error {
	view, err := s.ctrl.Status(c.UserContext(), c.Params("interviewId"))
	if err != nil {
		return s.fail(c, "fetch interview status", err)
	}
	return success(c, fiber.StatusOK, "", view)
}

// reportBody flattens the verdict into the report payload and rounds the
// performance figures for display.
type reportBody struct {
	InterviewID                string                `json:"interviewId"`
	CandidateID                string                `json:"candidateId"`
	JobRole                    string                `json:"jobRole"`
	Status                     interview.Status      `json:"status"`
	FinalScore                 int                   `json:"finalScore"`
	ReadinessLevel             interview.Readiness   `json:"readinessLevel"`
	Performance                interview.Performance `json:"performance"`
	Strengths                  []string              `json:"strengths"`
	Weaknesses                 []string              `json:"weaknesses"`
	ActionableFeedback         []string              `json:"actionableFeedback"`
	HiringReadiness            string                `json:"hiringReadiness,omitempty"`
	HiringReadinessExplanation string                `json:"hiringReadinessExplanation,omitempty"`
	Questions                  []interview.Attempt   `json:"questions"`
	TerminationReason          string                `json:"terminationReason,omitempty"`
	CompletedAt                time.Time             `json:"completedAt"`
}

func (s *Server) interviewReport(c *fiber.Ctx) error {
	view, err := s.ctrl.Report(c.UserContext(), c.Params("interviewId"))
	if err != nil {
		return s.fail(c, "fetch interview report", err)
	}

	v := view.Verdict
	return success(c, fiber.StatusOK, "", reportBody{
		InterviewID:                view.SessionID,
		CandidateID:                view.CandidateID,
		JobRole:                    view.JobRole,
		Status:                     view.Status,
		FinalScore:                 v.FinalScore,
		ReadinessLevel:             v.Readiness,
		Performance:                roundPerformance(view.Performance),
		Strengths:                  v.Strengths,
		Weaknesses:                 v.Weaknesses,
		ActionableFeedback:         v.ActionableFeedback,
		HiringReadiness:            string(v.HiringReadiness),
		HiringReadinessExplanation: v.HiringReadinessExplanation,
		Questions:                  view.Attempts,
		TerminationReason:          v.TerminationReason,
		CompletedAt:                v.CompletedAt,
	})
}

func (s *Server) listSessions(c *fiber.Ctx) error {
	out, err := s.ctrl.List(c.UserContext(), c.Query("candidateId"), c.QueryInt("limit", 20))
	if err != nil {
		return s.fail(c, "list interviews", err)
	}
	return success(c, fiber.StatusOK, "", out)
}

func (s *Server) createResume(c *fiber.Ctx) error {
	reg, ok := s.resumes.(ResumeRegistry)
	if !ok {
		return failure(c, fiber.StatusMethodNotAllowed, "Resume registration is disabled for this resume source", nil)
	}

	var p resume.Profile
	if err := c.BodyParser(&p); err != nil {
		return failure(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	created, err := reg.Create(c.UserContext(), p)
	if err != nil {
		return s.fail(c, "store resume", err)
	}
	return success(c, fiber.StatusCreated, "Resume stored successfully", created)
}

func (s *Server) getResume(c *fiber.Ctx) error {
	p, err := s.resumes.Get(c.UserContext(), c.Params("resumeId"))
	if errors.Is(err, resume.ErrNotFound) {
		return failure(c, fiber.StatusNotFound, "Resume not found", err)
	}
	if err != nil {
		return s.fail(c, "fetch resume", err)
	}
	return success(c, fiber.StatusOK, "", p)
}

func (s *Server) fail(c *fiber.Ctx, op string, err error) error {
	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		s.log.Error("request failed",
			zap.String("op", op),
			zap.String("path", c.Path()),
			zap.Error(err))
	}
	return failure(c, code, messageFor(op, err), err)
}

func roundPerformance(p interview.Performance) interview.Performance {
	p.AverageScore = math.Round(p.AverageScore)
	p.TimeManagement = math.Round(p.TimeManagement)
	p.TechnicalScore = math.Round(p.TechnicalScore)
	p.BehavioralScore = math.Round(p.BehavioralScore)
	p.ConceptualScore = math.Round(p.ConceptualScore)
	p.ScenarioScore = math.Round(p.ScenarioScore)
	return p
}
