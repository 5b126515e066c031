package oracle

import "github.com/abhisek/interviewd/internal/llm"

var (
	difficultyEnum = []any{"easy", "medium", "hard"}
	categoryEnum   = []any{"technical", "behavioral", "conceptual", "scenario"}
)

func scoreProperty(desc string) map[string]any {
	return map[string]any{
		"type":        "number",
		"minimum":     0,
		"maximum":     100,
		"description": desc,
	}
}

func stringList(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

// QuestionSchema defines the JSON schema for interview question responses.
var QuestionSchema = &llm.Schema{
	Name:        "interview-question",
	Description: "A single interview question with the key points a strong answer covers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The interview question shown to the candidate",
			},
			"expectedKeyPoints": stringList("Three to five points a complete answer should mention"),
			"timeAllowed": map[string]any{
				"type":        "integer",
				"minimum":     1,
				"maximum":     900,
				"description": "Seconds the candidate has to answer",
			},
			"category": map[string]any{
				"type": "string",
				"enum": categoryEnum,
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": difficultyEnum,
			},
		},
		"required":             []any{"question", "expectedKeyPoints", "timeAllowed", "category", "difficulty"},
		"additionalProperties": false,
	},
}

// EvaluationSchema defines the JSON schema for answer evaluation responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Scores and feedback for one interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"scores": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"accuracy":       scoreProperty("How correct and factual the answer is"),
					"clarity":        scoreProperty("How clear and well structured the answer is"),
					"depth":          scoreProperty("How thorough the answer is"),
					"relevance":      scoreProperty("How well the answer addresses the question"),
					"timeEfficiency": scoreProperty("How well the answer fit the time allowed"),
					"overall":        scoreProperty("Overall score for the answer"),
				},
				"required":             []any{"accuracy", "clarity", "depth", "relevance", "timeEfficiency", "overall"},
				"additionalProperties": false,
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Two or three sentences of feedback for the candidate",
			},
			"nextDifficulty": map[string]any{
				"type":        "string",
				"enum":        []any{"increase", "maintain", "decrease"},
				"description": "Whether the next question should be harder, the same, or easier",
			},
		},
		"required":             []any{"scores", "feedback", "nextDifficulty"},
		"additionalProperties": false,
	},
}

// ReportSchema defines the JSON schema for the closing interview report.
var ReportSchema = &llm.Schema{
	Name:        "interview-report",
	Description: "Qualitative summary of a finished interview",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"strengths":          stringList("Top three to five strengths"),
			"weaknesses":         stringList("Top three to five areas for improvement"),
			"actionableFeedback": stringList("Five to seven concrete recommendations"),
			"hiringReadiness": map[string]any{
				"type": "string",
				"enum": []any{"ready", "conditional", "not-ready"},
			},
			"hiringReadinessExplanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining the hiring readiness",
			},
		},
		"required":             []any{"strengths", "weaknesses", "actionableFeedback", "hiringReadiness", "hiringReadinessExplanation"},
		"additionalProperties": false,
	},
}
