package scoring

import "edumatch/internal/model"

// MatcherTraits is the view of a cognitive profile consumed by the pedagogy
// rule scorer. The rule set predates the twelve-parameter profile, so this
// adapter pins down exactly which fields feed which rule instead of assuming
// field parity: attention and cognitive flexibility are not consulted, and
// the two reasoning parameters collapse into a composite.
type MatcherTraits struct {
	Confidence      float64
	Anxiety         float64
	ProcessingSpeed float64
	WorkingMemory   float64
	Precision       float64
	ErrorCorrection float64
	Exploration     float64
	Impulsivity     float64
	Reasoning       float64 // mean of logical and hypothetical reasoning
}

// TraitsFrom adapts a cognitive profile to the matcher's trait view.
func TraitsFrom(p *model.CognitiveProfile) MatcherTraits {
	return MatcherTraits{
		Confidence:      p.Confidence.Score,
		Anxiety:         p.Anxiety.Score,
		ProcessingSpeed: p.ProcessingSpeed.Score,
		WorkingMemory:   p.WorkingMemory.Score,
		Precision:       p.Precision.Score,
		ErrorCorrection: p.ErrorCorrection.Score,
		Exploration:     p.Exploration.Score,
		Impulsivity:     p.Impulsivity.Score,
		Reasoning:       (p.LogicalReasoning.Score + p.HypotheticalReasoning.Score) / 2,
	}
}
