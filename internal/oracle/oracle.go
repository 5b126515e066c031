// Package oracle implements the interview oracle on top of an LLM provider.
package oracle

import (
	"context"
	"fmt"

	"github.com/abhisek/interviewd/internal/interview"
	"github.com/abhisek/interviewd/internal/llm"
)

// Purposes tag provider calls for event logs and metrics.
const (
	PurposeQuestion = "question-gen"
	PurposeEvaluate = "answer-eval"
	PurposeReport   = "final-report"
)

// LLMOracle implements interview.Oracle using the LLM provider.
type LLMOracle struct {
	provider llm.Provider
	config   Config
}

var _ interview.Oracle = (*LLMOracle)(nil)

// New creates a new LLMOracle with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMOracle {
	return &LLMOracle{provider: provider, config: cfg}
}

type questionOutput struct {
	Question          string   `json:"question"`
	ExpectedKeyPoints []string `json:"expectedKeyPoints"`
	TimeAllowed       int      `json:"timeAllowed"`
	Category          string   `json:"category"`
	Difficulty        string   `json:"difficulty"`
}

type evaluationOutput struct {
	Scores         interview.Score `json:"scores"`
	Feedback       string          `json:"feedback"`
	NextDifficulty string          `json:"nextDifficulty"`
}

type reportOutput struct {
	Strengths                  []string `json:"strengths"`
	Weaknesses                 []string `json:"weaknesses"`
	ActionableFeedback         []string `json:"actionableFeedback"`
	HiringReadiness            string   `json:"hiringReadiness"`
	HiringReadinessExplanation string   `json:"hiringReadinessExplanation"`
}

// ProposeQuestion asks the model for the next interview question.
func (o *LLMOracle) ProposeQuestion(ctx context.Context, in interview.QuestionContext) (interview.Question, error) {
	ctx = llm.WithSession(llm.WithPurpose(ctx, PurposeQuestion), in.SessionID)

	var raw questionOutput
	err := o.call(ctx, questionSystemPrompt, buildQuestionMessage(in, o.config.MaxPriorQuestions),
		QuestionSchema, o.config.Question, &raw)
	if err != nil {
		return interview.Question{}, err
	}

	q := interview.Question{
		Text:              raw.Question,
		Difficulty:        interview.Difficulty(raw.Difficulty),
		Category:          interview.Category(raw.Category),
		TimeAllowed:       raw.TimeAllowed,
		ExpectedKeyPoints: raw.ExpectedKeyPoints,
	}
	if verr := checkQuestion(q, o.config.MaxTimeAllowed); verr != nil {
		return interview.Question{}, verr
	}
	return q, nil
}

// ScoreAnswer asks the model to grade one answer.
func (o *LLMOracle) ScoreAnswer(ctx context.Context, in interview.AnswerContext) (interview.Evaluation, error) {
	ctx = llm.WithSession(llm.WithPurpose(ctx, PurposeEvaluate), in.SessionID)

	var raw evaluationOutput
	err := o.call(ctx, evaluationSystemPrompt, buildEvaluationMessage(in),
		EvaluationSchema, o.config.Evaluation, &raw)
	if err != nil {
		return interview.Evaluation{}, err
	}
	if verr := checkScore(raw.Scores); verr != nil {
		return interview.Evaluation{}, verr
	}

	return interview.Evaluation{
		Score:      raw.Scores,
		Feedback:   raw.Feedback,
		Adjustment: interview.Adjustment(raw.NextDifficulty),
	}, nil
}

// WriteReport asks the model for the qualitative part of the verdict.
func (o *LLMOracle) WriteReport(ctx context.Context, in interview.ReportContext) (interview.Report, error) {
	ctx = llm.WithSession(llm.WithPurpose(ctx, PurposeReport), in.SessionID)

	msg, err := buildReportMessage(in)
	if err != nil {
		return interview.Report{}, err
	}

	var raw reportOutput
	if err := o.call(ctx, reportSystemPrompt, msg, ReportSchema, o.config.Report, &raw); err != nil {
		return interview.Report{}, err
	}

	return interview.Report{
		Strengths:                  raw.Strengths,
		Weaknesses:                 raw.Weaknesses,
		ActionableFeedback:         raw.ActionableFeedback,
		HiringReadiness:            interview.HiringReadiness(raw.HiringReadiness),
		HiringReadinessExplanation: raw.HiringReadinessExplanation,
	}, nil
}

func (o *LLMOracle) call(ctx context.Context, system, user string, schema *llm.Schema, cc CallConfig, out any) error {
	req := llm.Request{
		System: system,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: user},
		},
		Schema:      schema,
		MaxTokens:   cc.MaxTokens,
		Temperature: cc.Temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		return fmt.Errorf("LLM generation failed: %w", err)
	}
	if err := decode(schema, resp.Content, out); err != nil {
		return fmt.Errorf("failed to parse LLM response: %w", err)
	}
	return nil
}
