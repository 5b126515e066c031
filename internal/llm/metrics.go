package llm

import (
	"context"
	"time"

	"github.com/abhisek/interviewd/internal/metrics"
)

// MetricsProvider is a decorator that exports request counts, latency and
// token usage to Prometheus.
type MetricsProvider struct {
	inner Provider
}

// WithMetrics wraps a Provider with Prometheus instrumentation.
func WithMetrics(p Provider) Provider {
	return &MetricsProvider{inner: p}
}

func (m *MetricsProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	start := time.Now()

	resp, err := m.inner.Generate(ctx, req)

	metrics.LLMDuration.WithLabelValues(purpose).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.LLMRequests.WithLabelValues(purpose, errorKind(err)).Inc()
		return nil, err
	}

	metrics.LLMRequests.WithLabelValues(purpose, "ok").Inc()
	metrics.LLMTokens.WithLabelValues(resp.Model, "input").Add(float64(resp.Usage.InputTokens))
	metrics.LLMTokens.WithLabelValues(resp.Model, "output").Add(float64(resp.Usage.OutputTokens))
	return resp, nil
}

func (m *MetricsProvider) ModelID() string {
	return m.inner.ModelID()
}
