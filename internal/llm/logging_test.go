package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/interviewd/internal/store"
	"go.uber.org/zap/zaptest"
)

// recordingRepo captures LLM events; the other EventRepo methods are unused.
type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"question":"q"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 7},
	})
	p := WithLogging(mock, repo, zaptest.NewLogger(t))

	ctx := WithSession(WithPurpose(context.Background(), "question-gen"), "sess-9")
	_, err := p.Generate(ctx, Request{
		System:    "sys",
		Messages:  []Message{{Role: RoleUser, Content: "ask"}},
		MaxTokens: 64,
		Schema:    &Schema{Name: "interview-question", Definition: map[string]any{"type": "object"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	e := repo.events[0]
	if e.SessionID != "sess-9" || e.Purpose != "question-gen" || !e.Success || e.InputTokens != 12 || e.OutputTokens != 7 {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Provider != ProviderMock || e.Model != "mock" {
		t.Errorf("provider/model = %q/%q", e.Provider, e.Model)
	}
	for _, want := range []string{"max_tokens=64", "[system]\nsys", "[user]\nask", "[schema: interview-question]"} {
		if !strings.Contains(e.RequestBody, want) {
			t.Errorf("request body missing %q: %q", want, e.RequestBody)
		}
	}
	if e.ResponseBody != `{"question":"q"}` {
		t.Errorf("response body = %q", e.ResponseBody)
	}
}

func TestLogging_RecordsFailureAndIgnoresRepoError(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, repo, nil)

	_, err := p.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("unexpected events: %+v", repo.events)
	}
}

func TestLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestWrap_RetriesThroughMiddleware(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`{"ok":true}`)},
	)
	p := Wrap(mock, retryConfig(), time.Second, repo, nil)

	if _, err := p.Generate(WithPurpose(context.Background(), "answer-eval"), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Each attempt is recorded.
	if len(repo.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(repo.events))
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&ErrRateLimit{}, "rate_limit"},
		{&ErrInvalidResponse{Err: errors.New("x")}, "invalid_response"},
		{&ErrProviderUnavailable{}, "unavailable"},
		{&ErrMaxTokensExceeded{}, "max_tokens"},
		{context.DeadlineExceeded, "timeout"},
		{context.Canceled, "canceled"},
		{errors.New("other"), "error"},
	}
	for _, tt := range tests {
		if got := errorKind(tt.err); got != tt.want {
			t.Errorf("errorKind(%T) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
