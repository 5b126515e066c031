package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "interviewd_sessions_started_total",
			Help: "Total number of interview sessions started",
		},
	)

	SessionsFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviewd_sessions_finished_total",
			Help: "Total number of interview sessions that reached a terminal status",
		},
		[]string{"status", "readiness"},
	)

	AnswersScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviewd_answers_scored_total",
			Help: "Total number of answers scored by the oracle",
		},
		[]string{"category", "difficulty"},
	)

	AnswerScore = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interviewd_answer_overall_score",
			Help:    "Distribution of overall answer scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
		[]string{"category"},
	)

	ControllerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviewd_controller_errors_total",
			Help: "Total number of failed controller operations by error kind",
		},
		[]string{"operation", "kind"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviewd_llm_requests_total",
			Help: "Total number of LLM requests",
		},
		[]string{"purpose", "result"},
	)

	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "interviewd_llm_request_duration_seconds",
			Help:    "Duration of LLM requests in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
		[]string{"purpose"},
	)

	LLMRetries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviewd_llm_retries_total",
			Help: "LLM attempts repeated after a transient failure",
		},
		[]string{"purpose", "kind"},
	)

	LLMTokens = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviewd_llm_tokens_total",
			Help: "Total number of LLM tokens consumed",
		},
		[]string{"model", "direction"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interviewd_http_requests_total",
			Help: "Total number of HTTP requests by route and status code",
		},
		[]string{"route", "status"},
	)
)
