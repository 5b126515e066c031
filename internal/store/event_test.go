package store

import (
	"context"
	"testing"
)

func TestAppendAndQueryLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "m1", Purpose: "question-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100, Success: true},
		{SessionID: "s1", Provider: "mock", Model: "m1", Purpose: "answer-eval", InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true},
		{Provider: "mock", Model: "m2", Purpose: "question-gen", InputTokens: 30, OutputTokens: 40, LatencyMs: 300, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	// Newest first.
	if got[0].Model != "m2" || got[0].Success || got[0].ErrorMessage != "boom" {
		t.Errorf("unexpected newest event: %+v", got[0])
	}

	after, err := repo.QueryLLMEvents(ctx, QueryOpts{After: got[1].ID})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].ID != got[0].ID {
		t.Errorf("after filter returned %d events", len(after))
	}

	bySession, err := repo.QueryLLMEvents(ctx, QueryOpts{SessionID: "s1"})
	if err != nil {
		t.Fatalf("query session: %v", err)
	}
	if len(bySession) != 1 || bySession[0].SessionID != "s1" || bySession[0].Purpose != "answer-eval" {
		t.Errorf("session filter returned %+v", bySession)
	}

	byPurpose, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "question-gen", Limit: 1})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(byPurpose) != 1 || byPurpose[0].Model != "m2" {
		t.Errorf("purpose filter returned %+v", byPurpose)
	}

	one, err := repo.GetLLMEvent(ctx, got[1].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if one == nil || one.Purpose != "answer-eval" {
		t.Fatalf("unexpected event: %+v", one)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "m1", Purpose: "question-gen", InputTokens: 10, OutputTokens: 20, LatencyMs: 100},
		{Model: "m1", Purpose: "question-gen", InputTokens: 30, OutputTokens: 40, LatencyMs: 300},
		{Model: "m2", Purpose: "final-report", InputTokens: 1, OutputTokens: 2, LatencyMs: 10},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("len = %d, want 2", len(byPurpose))
	}
	qg := byPurpose[1]
	if qg.Purpose != "question-gen" || qg.Calls != 2 || qg.InputTokens != 40 || qg.OutputTokens != 60 || qg.AvgLatencyMs != 200 {
		t.Errorf("unexpected question-gen stat: %+v", qg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "m1" || byModel[0].Calls != 2 {
		t.Errorf("unexpected model stats: %+v", byModel)
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []SessionEventData{
		{SessionID: "s1", Action: "started", QuestionNumber: 1, Status: "in-progress"},
		{SessionID: "s2", Action: "started", QuestionNumber: 1, Status: "in-progress"},
		{SessionID: "s1", Action: "answered", QuestionNumber: 1, Status: "in-progress", Detail: "overall=80"},
	} {
		if err := repo.AppendSessionEvent(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	got, err := repo.QuerySessionEvents(ctx, "s1")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Action != "started" || got[1].Action != "answered" || got[1].Detail != "overall=80" {
		t.Errorf("unexpected events: %+v", got)
	}
	if got[0].Sequence >= got[1].Sequence {
		t.Errorf("events out of order: %d >= %d", got[0].Sequence, got[1].Sequence)
	}
}
