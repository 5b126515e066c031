package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  float64 // input price per MTok, 0 for unknown
	}{
		{"claude-haiku-4-5", 1},
		{"claude-sonnet-4-20250514", 3},
		{"claude-3-5-haiku-latest", 0.8},
		{"gpt-4o-2024-08-06", 2.5},
		{"GPT-4.1-mini", 0.4},
		{"google/gemini-2.0-flash-exp", 0.1},
		{"mock", 0},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			if tt.want == 0 {
				if c != nil {
					t.Fatalf("expected no price, got %+v", c)
				}
				return
			}
			if c == nil || c.InputPerMTok != tt.want {
				t.Fatalf("LookupCost(%q) = %+v, want input %v", tt.model, c, tt.want)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 3, OutputPerMTok: 15}
	got := c.Cost(2_000, 1_000)
	if math.Abs(got-0.021) > 1e-9 {
		t.Fatalf("Cost = %v, want 0.021", got)
	}
}
