package scoring

import (
	"math"
	"testing"

	"edumatch/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSupportRule(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		trait model.TraitLevel
		want  float64
	}{
		{"extreme low with support", 2.0, model.TraitHigh, 1.2},
		{"low with support", 3.0, model.TraitHigh, 1.0},
		{"low without support", 3.0, model.TraitLow, 0},
		{"mid with support", 5.0, model.TraitHigh, 0.8},
		{"mid without support", 5.0, model.TraitLow, 0},
		{"high with autonomy", 8.0, model.TraitLow, 1.0},
		{"extreme high with autonomy", 9.0, model.TraitLow, 1.2},
		{"high with needless support", 8.0, model.TraitHigh, 0.3},
		{"boundary low cut", 4.0, model.TraitHigh, 1.0},
		{"boundary high cut", 7.0, model.TraitLow, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := supportRule(tt.value, tt.trait); !almostEqual(got, tt.want) {
				t.Errorf("supportRule(%v, %v) = %v, want %v", tt.value, tt.trait, got, tt.want)
			}
		})
	}
}

// neutralTraits keeps every rule except the one under test at zero credit
// against the paired fingerprint below.
func neutralTraits() MatcherTraits {
	return MatcherTraits{
		Confidence:      5,
		Anxiety:         5,
		ProcessingSpeed: 5,
		WorkingMemory:   5,
		Precision:       5,
		ErrorCorrection: 5,
		Exploration:     5,
		Impulsivity:     5,
		Reasoning:       5,
	}
}

func neutralFingerprint() model.PedagogyFingerprint {
	return model.PedagogyFingerprint{
		TCS: model.TraitLow, TSPI: model.TraitLow, TWMLS: model.TraitLow,
		TPO: model.TraitLow, TECP: model.TraitLow, TET: model.TraitHigh,
		TICS: model.TraitLow, TRD: model.TraitLow,
	}
}

func TestCognitiveScoreNeutralBaseline(t *testing.T) {
	traits := neutralTraits()
	f := neutralFingerprint()
	if got := CognitiveScore(traits, &f); !almostEqual(got, 0) {
		t.Errorf("neutral pairing should score 0, got %v", got)
	}
}

func TestCognitiveScoreConfidenceRule(t *testing.T) {
	f := neutralFingerprint()
	f.TCS = model.TraitHigh

	traits := neutralTraits()
	traits.Confidence = 3.0
	if got := CognitiveScore(traits, &f); !almostEqual(got, 1.0) {
		t.Errorf("low confidence with high support = %v, want 1.0", got)
	}

	traits.Confidence = 2.0
	if got := CognitiveScore(traits, &f); !almostEqual(got, 1.2) {
		t.Errorf("extreme low confidence should earn the extremity bonus, got %v", got)
	}

	// High anxiety alone also triggers the support rule.
	traits = neutralTraits()
	traits.Anxiety = 9.0
	if got := CognitiveScore(traits, &f); !almostEqual(got, 1.2) {
		t.Errorf("extreme anxiety with high support = %v, want 1.2", got)
	}
}

func TestCognitiveScoreExplorationDependsOnPrecision(t *testing.T) {
	// Mid-band exploration: the learner's precision decides whether TET HIGH
	// or TET LOW earns the credit. TPO stays LOW throughout, so the only
	// difference between the two fingerprints is the exploration rule.
	structured := neutralFingerprint() // TET HIGH
	free := structured
	free.TET = model.TraitLow

	lowPrecision := neutralTraits()
	lowPrecision.Precision = 3.0
	withStructure := CognitiveScore(lowPrecision, &structured)
	withFreedom := CognitiveScore(lowPrecision, &free)
	if !almostEqual(withStructure-withFreedom, 0.8) {
		t.Errorf("low-precision mid explorer should favor a structured tutor by 0.8, got %v vs %v",
			withStructure, withFreedom)
	}

	highPrecision := neutralTraits()
	highPrecision.Precision = 6.0
	withStructure = CognitiveScore(highPrecision, &structured)
	withFreedom = CognitiveScore(highPrecision, &free)
	if !almostEqual(withFreedom-withStructure, 0.8) {
		t.Errorf("high-precision mid explorer should favor a freer tutor by 0.8, got %v vs %v",
			withFreedom, withStructure)
	}
}

func TestCognitiveScoreOrdersSeedTutors(t *testing.T) {
	learner := MatcherTraits{
		Confidence:      2.5,
		Anxiety:         7.5,
		ProcessingSpeed: 3.0,
		WorkingMemory:   4.0,
		Precision:       3.5,
		ErrorCorrection: 4.5,
		Exploration:     6.0,
		Impulsivity:     7.0,
		Reasoning:       5.25,
	}

	perfect := model.PedagogyFingerprint{
		TCS: model.TraitHigh, TSPI: model.TraitHigh, TWMLS: model.TraitHigh,
		TPO: model.TraitHigh, TECP: model.TraitHigh, TET: model.TraitLow,
		TICS: model.TraitHigh, TRD: model.TraitHigh,
	}
	good := model.PedagogyFingerprint{
		TCS: model.TraitHigh, TSPI: model.TraitLow, TWMLS: model.TraitHigh,
		TPO: model.TraitHigh, TECP: model.TraitLow, TET: model.TraitLow,
		TICS: model.TraitHigh, TRD: model.TraitLow,
	}
	poor := model.PedagogyFingerprint{
		TCS: model.TraitLow, TSPI: model.TraitLow, TWMLS: model.TraitLow,
		TPO: model.TraitLow, TECP: model.TraitLow, TET: model.TraitHigh,
		TICS: model.TraitLow, TRD: model.TraitLow,
	}

	perfectScore := CognitiveScore(learner, &perfect)
	goodScore := CognitiveScore(learner, &good)
	poorScore := CognitiveScore(learner, &poor)

	if !almostEqual(perfectScore, 6.6) {
		t.Errorf("perfect match = %v, want 6.6", perfectScore)
	}
	if !almostEqual(goodScore, 4.0) {
		t.Errorf("good match = %v, want 4.0", goodScore)
	}
	if !almostEqual(poorScore, 0.8) {
		t.Errorf("poor match = %v, want 0.8", poorScore)
	}
	if !(perfectScore > goodScore && goodScore > poorScore) {
		t.Errorf("expected strict ordering perfect > good > poor, got %v, %v, %v",
			perfectScore, goodScore, poorScore)
	}
}

func TestSubjectScore(t *testing.T) {
	tests := []struct {
		name    string
		learner []string
		tutor   string
		want    float64
	}{
		{"exact match", []string{"Maths"}, `["Maths"]`, 10},
		{"case and spacing", []string{"maths"}, `[" Maths "]`, 10},
		{"no semantic matching", []string{"Maths"}, `["Mathematics"]`, 0},
		{"partial overlap", []string{"Maths", "Physics"}, `["physics","biology"]`, 5},
		{"duplicates not double counted", []string{"Maths"}, `["Maths","maths"]`, 10},
		{"malformed tutor json", []string{"Maths"}, `not-json`, 0},
		{"empty tutor list", []string{"Maths"}, `[]`, 0},
		{"no learner subjects", nil, `["Maths"]`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SubjectScore(tt.learner, tt.tutor); !almostEqual(got, tt.want) {
				t.Errorf("SubjectScore(%v, %q) = %v, want %v", tt.learner, tt.tutor, got, tt.want)
			}
		})
	}
}

func TestPriceScore(t *testing.T) {
	tests := []struct {
		price, ceiling, want float64
	}{
		{0, 2000, 10},
		{500, 2000, 7.5},
		{1000, 2000, 5},
		{2000, 2000, 0},
		{3000, 2000, 0},
		{100, 0, 0},
	}

	for _, tt := range tests {
		if got := PriceScore(tt.price, tt.ceiling); !almostEqual(got, tt.want) {
			t.Errorf("PriceScore(%v, %v) = %v, want %v", tt.price, tt.ceiling, got, tt.want)
		}
	}
}
