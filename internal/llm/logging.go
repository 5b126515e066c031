package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/interviewd/internal/store"
	"go.uber.org/zap"
)

// LoggingProvider records every attempt in the LLM event log, tagged with
// the purpose and session carried by the context.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
	log       *zap.Logger
}

// WithLogging wraps p. A nil repo only logs.
func WithLogging(p Provider, repo store.EventRepo, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingProvider{inner: p, name: providerName(p), eventRepo: repo, log: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		SessionID:   SessionFrom(ctx),
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}

	l.logAttempt(ev, err)
	if l.eventRepo != nil {
		if rerr := l.eventRepo.AppendLLMRequest(ctx, ev); rerr != nil {
			l.log.Warn("record llm event", zap.String("session_id", ev.SessionID), zap.Error(rerr))
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func (l *LoggingProvider) logAttempt(ev store.LLMRequestEventData, err error) {
	fields := []zap.Field{
		zap.String("session_id", ev.SessionID),
		zap.String("purpose", ev.Purpose),
		zap.String("provider", ev.Provider),
		zap.String("model", ev.Model),
		zap.Int64("latency_ms", ev.LatencyMs),
		zap.Int("input_tokens", ev.InputTokens),
		zap.Int("output_tokens", ev.OutputTokens),
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, zap.String("kind", errorKind(err)), zap.Error(err))...)
		return
	}
	l.log.Debug("llm request", fields...)
}

func providerName(p Provider) string {
	switch p.(type) {
	case *AnthropicProvider:
		return ProviderAnthropic
	case *OpenAIProvider:
		return ProviderOpenAI
	case *GeminiProvider:
		return ProviderGemini
	case *OpenRouterProvider:
		return ProviderOpenRouter
	case *AzureProvider:
		return ProviderAzure
	case *MockProvider:
		return ProviderMock
	}
	return p.ModelID()
}

// transcript renders a request the way `llm view` shows it: one block per
// message, then the output schema if any.
func transcript(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "max_tokens=%d temperature=%.2f\n\n", req.MaxTokens, req.Temperature)
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
