package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gemini-2.0-flash", &ModelCost{0.1, 0.4}},
		{"gemini-2.0-flash-001", &ModelCost{0.1, 0.4}},
		{"claude-haiku-4-5-20251001", &ModelCost{1, 5}},
		{"gpt-4o-mini-2024-07-18", &ModelCost{0.15, 0.6}},
		{"google/gemini-2.0-flash-exp", &ModelCost{0, 0}},
		{"meta-llama/llama-3.1-8b-instruct:free", &ModelCost{0.02, 0.05}},
		{" GPT-4o ", &ModelCost{2.5, 10}},
		{"llama3.1", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got := LookupCost(tt.model)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("LookupCost(%q) = %+v, want nil", tt.model, *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("LookupCost(%q) = nil, want %+v", tt.model, *tt.want)
			}
			if *got != *tt.want {
				t.Errorf("LookupCost(%q) = %+v, want %+v", tt.model, *got, *tt.want)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 0.1, OutputPerMTok: 0.4}
	got := c.Cost(2_000, 500)
	want := 0.0002 + 0.0002
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("Cost = %v, want %v", got, want)
	}
}
