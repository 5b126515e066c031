package llm

import "testing"

func TestNewAzureProvider_RequiresConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  AzureConfig
	}{
		{"missing key", AzureConfig{Endpoint: "https://x.openai.azure.com", Deployment: "gpt-4o"}},
		{"missing endpoint", AzureConfig{APIKey: "k", Deployment: "gpt-4o"}},
		{"missing deployment", AzureConfig{APIKey: "k", Endpoint: "https://x.openai.azure.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewAzureProvider(tt.cfg); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNewAzureProvider_ModelIDIsDeployment(t *testing.T) {
	p, err := NewAzureProvider(AzureConfig{
		APIKey:     "k",
		Endpoint:   "https://x.openai.azure.com",
		Deployment: "interview-gpt4o",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "interview-gpt4o" {
		t.Errorf("model = %q, want %q", p.ModelID(), "interview-gpt4o")
	}
}

func TestBuildAzureMessages(t *testing.T) {
	req := Request{
		System: "You are an interviewer.",
		Messages: []Message{
			{Role: RoleUser, Content: "Ask one question."},
			{Role: RoleAssistant, Content: "What is a goroutine?"},
			{Role: RoleUser, Content: "Another."},
		},
		Schema: &Schema{Name: "interview-question", Definition: map[string]any{"type": "object"}},
	}
	if got := len(buildAzureMessages(req)); got != 3 {
		t.Fatalf("expected 3 messages, got %d", got)
	}

	onlySystem := Request{System: "You are an interviewer."}
	if got := len(buildAzureMessages(onlySystem)); got != 1 {
		t.Fatalf("expected system prompt to become one message, got %d", got)
	}
}
