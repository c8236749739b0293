package scoring

import (
	"fmt"

	"edumatch/internal/model"
)

// The weighting constants below are the scoring contract carried over from
// the assessment design. They are empirical values; do not reinterpret them.

// Score derives the full cognitive profile from a raw behavioral sample.
// Pure and total: any well-formed sample (bands outside 0-4 are clamped)
// yields a valid profile with every parameter in [0,10].
func Score(sample model.BehavioralSample) model.CognitiveProfile {
	q1, q2, q3, q4, q5 := sample.Q1, sample.Q2, sample.Q3, sample.Q4, sample.Q5

	// Confidence: long hovering and answer churn read as hesitation;
	// correctness restores it. Averaged over the three recall questions.
	confidence := mean(
		0.4*quick(q1.HoverBand)+0.4*correctVal(q1.Correct, 10, 2)+0.2*quick(q1.AnswerChanges),
		0.4*quick(q4.HoverBand)+0.4*correctVal(q4.Correct, 10, 2)+0.2*quick(q4.AnswerChanges),
		0.4*quick(q5.HoverBand)+0.4*correctVal(q5.Correct, 10, 2)+0.2*quick(q5.AnswerChanges),
	)

	// Anxiety: rises with hovering, answer churn and correction churn.
	anxiety := mean(
		0.5*slow(q1.HoverBand)+0.5*slow(q1.AnswerChanges),
		0.5*slow(q4.HoverBand)+0.5*slow(q4.AnswerChanges),
		0.5*slow(q5.HoverBand)+0.5*slow(q5.AnswerChanges),
		0.6*slow(q2.CorrectionsBand)+0.4*slow(q2.IdleBand),
	)

	// Processing speed: reaction and completion-time bands across tasks.
	processingSpeed := mean(
		0.6*quick(q1.ReactionBand)+0.4*quick(q1.HoverBand),
		0.6*quick(q4.ReactionBand)+0.4*quick(q4.HoverBand),
		0.6*quick(q5.ReactionBand)+0.4*quick(q5.HoverBand),
		quick(q2.TimeBand),
		quick(q3.TimeBand),
	)

	// Working memory: recall accuracy with low churn, plus clean ordering.
	workingMemory := mean(
		0.5*correctVal(q1.Correct, 10, 3)+0.5*quick(q1.AnswerChanges),
		0.6*quick(q3.MisplacementBand)+0.4*quick(q3.SwapBand),
	)

	// Attention: idle gaps and stray taps indicate drift.
	attention := mean(
		0.7*quick(q2.IdleBand)+0.3*quick(q2.TimeBand),
		0.6*quick(q3.TapBand)+0.4*quick(q3.TimeBand),
	)

	// Precision: placement accuracy and correction count.
	precision := mean(
		0.5*quick(q3.MisplacementBand)+0.3*quick(q3.SwapBand)+0.2*quick(q3.TapBand),
		0.6*quick(q2.CorrectionsBand)+0.4*correctVal(q2.Correct, 10, 4),
	)

	// Error correction: ending correct despite churn along the way.
	errorCorrection := mean(
		0.6*correctVal(q2.Correct, 10, 2)+0.4*quick(q2.CorrectionsBand),
		0.6*correctVal(q4.Correct, 10, 2)+0.4*quick(q4.AnswerChanges),
	)

	// Exploration: hovering over alternatives and rearranging freely.
	exploration := mean(
		slow(q1.HoverBand),
		0.5*slow(q3.TapBand)+0.5*slow(q3.SwapBand),
		slow(q5.HoverBand),
	)

	// Impulsivity: fast reactions paired with answer churn.
	impulsivity := mean(
		0.6*slow(q1.AnswerChanges)+0.4*quick(q1.ReactionBand),
		0.6*slow(q4.AnswerChanges)+0.4*quick(q4.ReactionBand),
		0.6*slow(q5.AnswerChanges)+0.4*quick(q5.ReactionBand),
	)

	// Cognitive flexibility: recovering through corrections and reordering.
	cognitiveFlexibility := mean(
		0.5*slow(q2.CorrectionsBand)+0.5*correctVal(q2.Correct, 10, 3),
		0.6*quick(q3.MisplacementBand)+0.4*slow(q3.SwapBand),
	)

	// Logical reasoning: sequence accuracy and odd-one-out performance.
	logicalReasoning := mean(
		0.6*quick(q3.MisplacementBand)+0.4*quick(q3.TimeBand),
		0.7*correctVal(q4.Correct, 10, 2)+0.3*quick(q4.ReactionBand),
	)

	// Hypothetical reasoning: the analogy task, backed by odd-one-out.
	hypotheticalReasoning := mean(
		0.7*correctVal(q5.Correct, 10, 2)+0.3*quick(q5.HoverBand),
		correctVal(q4.Correct, 10, 3),
	)

	profile := model.CognitiveProfile{
		Confidence:            newParameterScore(confidence),
		Anxiety:               newParameterScore(anxiety),
		ProcessingSpeed:       newParameterScore(processingSpeed),
		WorkingMemory:         newParameterScore(workingMemory),
		Attention:             newParameterScore(attention),
		Precision:             newParameterScore(precision),
		ErrorCorrection:       newParameterScore(errorCorrection),
		Exploration:           newParameterScore(exploration),
		Impulsivity:           newParameterScore(impulsivity),
		CognitiveFlexibility:  newParameterScore(cognitiveFlexibility),
		LogicalReasoning:      newParameterScore(logicalReasoning),
		HypotheticalReasoning: newParameterScore(hypotheticalReasoning),
	}
	profile.Summary = buildSummary(&profile)
	return profile
}

// buildSummary thresholds the headline parameters into a fixed prose
// template: learning pace, memory support and reasoning level.
func buildSummary(p *model.CognitiveProfile) string {
	pace := "steady"
	if p.ProcessingSpeed.Score < 4 {
		pace = "deliberate"
	} else if p.ProcessingSpeed.Score >= 7 {
		pace = "quick"
	}

	memory := "holds multi-step instructions comfortably"
	if p.WorkingMemory.Score < 4 {
		memory = "benefits from short, chunked instructions"
	} else if p.WorkingMemory.Score < 7 {
		memory = "works best with occasional recaps"
	}

	reasoning := (p.LogicalReasoning.Score + p.HypotheticalReasoning.Score) / 2
	reasoningLevel := "is building abstract reasoning and needs concrete examples"
	if reasoning >= 7 {
		reasoningLevel = "reasons abstractly and enjoys open-ended problems"
	} else if reasoning >= 4 {
		reasoningLevel = "reasons well with guided examples"
	}

	return fmt.Sprintf(
		"Learns at a %s pace and %s. This learner %s.",
		pace, memory, reasoningLevel,
	)
}

// slow maps a 0-4 band to [0,10], higher band giving the higher value.
// Out-of-range bands are clamped, keeping the engine total.
func slow(band int) float64 {
	if band < 0 {
		band = 0
	}
	if band > 4 {
		band = 4
	}
	return float64(band) * 2.5
}

// quick is the inverse reading of a band: 0 maps to 10, 4 maps to 0.
func quick(band int) float64 {
	return 10 - slow(band)
}

func correctVal(correct bool, yes, no float64) float64 {
	if correct {
		return yes
	}
	return no
}

func mean(vals ...float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
