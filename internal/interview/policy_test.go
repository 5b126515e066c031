package interview

import "testing"

func TestNextDifficulty(t *testing.T) {
	tests := []struct {
		current Difficulty
		adj     Adjustment
		want    Difficulty
	}{
		{DifficultyEasy, AdjustIncrease, DifficultyMedium},
		{DifficultyMedium, AdjustIncrease, DifficultyHard},
		{DifficultyHard, AdjustIncrease, DifficultyHard},
		{DifficultyHard, AdjustDecrease, DifficultyMedium},
		{DifficultyMedium, AdjustDecrease, DifficultyEasy},
		{DifficultyEasy, AdjustDecrease, DifficultyEasy},
		{DifficultyMedium, AdjustMaintain, DifficultyMedium},
		{DifficultyMedium, Adjustment("sideways"), DifficultyMedium},
		{DifficultyMedium, "", DifficultyMedium},
		{Difficulty("extreme"), AdjustIncrease, DifficultyEasy},
	}
	for _, tt := range tests {
		got := NextDifficulty(tt.current, tt.adj)
		if got != tt.want {
			t.Errorf("NextDifficulty(%q, %q) = %q, want %q", tt.current, tt.adj, got, tt.want)
		}
		if !got.Valid() {
			t.Errorf("NextDifficulty(%q, %q) produced invalid %q", tt.current, tt.adj, got)
		}
	}
}

func TestCategoryFor_Schedule(t *testing.T) {
	want := map[int]Category{
		1:  CategoryConceptual,
		2:  CategoryTechnical,
		3:  CategoryConceptual,
		4:  CategoryTechnical,
		5:  CategoryScenario,
		6:  CategoryTechnical,
		7:  CategoryScenario,
		8:  CategoryBehavioral,
		9:  CategoryTechnical,
		10: CategoryBehavioral,
	}
	for n := 1; n <= 10; n++ {
		if got := CategoryFor(n, 10); got != want[n] {
			t.Errorf("CategoryFor(%d) = %q, want %q", n, got, want[n])
		}
	}
	if got := CategoryFor(15, 20); got != CategoryTechnical {
		t.Errorf("CategoryFor(15) = %q, want technical", got)
	}
}

func TestDecide(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		perf Performance
		want Outcome
	}{
		{"below floor with zero average", Performance{TotalQuestions: 2, QuestionsAnswered: 2, AverageScore: 0}, OutcomeContinue},
		{"floor reached below threshold", Performance{TotalQuestions: 3, QuestionsAnswered: 3, AverageScore: 10}, OutcomeTerminate},
		{"floor reached at threshold", Performance{TotalQuestions: 3, QuestionsAnswered: 3, AverageScore: 30}, OutcomeContinue},
		{"ceiling reached", Performance{TotalQuestions: 10, QuestionsAnswered: 10, AverageScore: 70}, OutcomeComplete},
		{"ceiling and threshold together", Performance{TotalQuestions: 10, QuestionsAnswered: 10, AverageScore: 20}, OutcomeTerminate},
		{"midway", Performance{TotalQuestions: 6, QuestionsAnswered: 6, AverageScore: 55}, OutcomeContinue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(cfg, tt.perf)
			if d.Outcome != tt.want {
				t.Fatalf("Decide = %s, want %s", d.Outcome, tt.want)
			}
			if d.Outcome == OutcomeTerminate && d.Reason != ReasonBelowThreshold {
				t.Errorf("reason = %q", d.Reason)
			}
			if d.Outcome != OutcomeTerminate && d.Reason != "" {
				t.Errorf("unexpected reason %q", d.Reason)
			}
		})
	}
}

func TestFinalScore_AllEighty(t *testing.T) {
	p := Performance{
		AverageScore:    80,
		TimeManagement:  80,
		TechnicalScore:  80,
		BehavioralScore: 80,
		ConceptualScore: 80,
	}
	score := FinalScore(p)
	if score != 80 {
		t.Fatalf("FinalScore = %d, want 80", score)
	}
	if r := ReadinessFor(score); r != ReadinessStrong {
		t.Errorf("readiness = %q, want Strong", r)
	}
}

func TestFinalScore_Weights(t *testing.T) {
	// 0.4*50 + 0.2*100 + 0.2*0 + 0.1*10 + 0.1*20 = 43; scenario carries no weight
	p := Performance{AverageScore: 50, TimeManagement: 100, BehavioralScore: 10, ConceptualScore: 20, ScenarioScore: 100}
	if got := FinalScore(p); got != 43 {
		t.Errorf("FinalScore = %d, want 43", got)
	}
}

func TestReadinessFor(t *testing.T) {
	tests := []struct {
		score int
		want  Readiness
	}{
		{100, ReadinessStrong},
		{75, ReadinessStrong},
		{74, ReadinessAverage},
		{50, ReadinessAverage},
		{49, ReadinessNeedsImprovement},
		{0, ReadinessNeedsImprovement},
	}
	for _, tt := range tests {
		if got := ReadinessFor(tt.score); got != tt.want {
			t.Errorf("ReadinessFor(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	bad := DefaultConfig()
	bad.MaxQuestions = 2
	if err := bad.Validate(); err == nil {
		t.Error("expected error when max < min")
	}

	bad = DefaultConfig()
	bad.TimeLimits.Hard = 0
	if err := bad.Validate(); err == nil {
		t.Error("expected error for zero time limit")
	}

	bad = DefaultConfig()
	bad.TerminationThreshold = 120
	if err := bad.Validate(); err == nil {
		t.Error("expected error for threshold above 100")
	}
}

func TestTimeLimitsFor(t *testing.T) {
	tl := DefaultConfig().TimeLimits
	if tl.For(DifficultyEasy) != 90 || tl.For(DifficultyMedium) != 120 || tl.For(DifficultyHard) != 180 {
		t.Errorf("unexpected limits: %+v", tl)
	}
	if tl.For("unknown") != 120 {
		t.Errorf("unknown difficulty should fall back to medium")
	}
}
