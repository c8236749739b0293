package scoring

import (
	"strings"

	"edumatch/internal/model"
)

// Rule thresholds on the 0-10 trait scale. Values at or below lowCut read as
// "needs support", values at or above highCut as "self-sufficient".
const (
	lowCut  = 4.0
	highCut = 7.0

	// Extremity bonus applies when a trait sits at the far edge of its band.
	extremeLow   = 2.0
	extremeHigh  = 8.5
	extremeBonus = 0.2

	fullCredit   = 1.0
	midCredit    = 0.8 // mid-band learner with a supporting tutor
	benignCredit = 0.3 // support offered where none is needed
	maxCognitive = 10.0
)

// CognitiveScore runs the eight pedagogy matching rules and returns the
// summed credit, capped at 10. Each rule classifies a learner trait as
// low/mid/high against fixed thresholds and awards credit when the tutor's
// HIGH/LOW trait is the compatible one.
func CognitiveScore(t MatcherTraits, f *model.PedagogyFingerprint) float64 {
	var score float64

	// Confidence support: low confidence or high anxiety calls for a
	// high-support tutor.
	switch {
	case t.Confidence <= lowCut || t.Anxiety >= highCut:
		if f.TCS == model.TraitHigh {
			score += fullCredit
			if t.Confidence <= extremeLow || t.Anxiety >= extremeHigh {
				score += extremeBonus
			}
		}
	case t.Confidence >= highCut && t.Anxiety <= lowCut:
		if f.TCS == model.TraitLow {
			score += fullCredit
		} else {
			score += benignCredit
		}
	default:
		if f.TCS == model.TraitHigh {
			score += midCredit
		}
	}

	score += supportRule(t.ProcessingSpeed, f.TSPI)
	score += supportRule(t.WorkingMemory, f.TWMLS)
	score += supportRule(t.Precision, f.TPO)
	score += supportRule(t.ErrorCorrection, f.TECP)

	// Exploration control: high explorers pair with low-control tutors. In
	// the mid band the call depends on the learner's precision.
	switch {
	case t.Exploration >= highCut:
		if f.TET == model.TraitLow {
			score += fullCredit
			if t.Exploration >= extremeHigh {
				score += extremeBonus
			}
		}
	case t.Exploration <= lowCut:
		if f.TET == model.TraitHigh {
			score += fullCredit
			if t.Exploration <= extremeLow {
				score += extremeBonus
			}
		}
	default:
		if t.Precision <= lowCut && f.TET == model.TraitHigh {
			score += midCredit
		} else if t.Precision > lowCut && f.TET == model.TraitLow {
			score += midCredit
		}
	}

	// Impulse regulation: high impulsivity calls for high-control tutors.
	switch {
	case t.Impulsivity >= highCut:
		if f.TICS == model.TraitHigh {
			score += fullCredit
			if t.Impulsivity >= extremeHigh {
				score += extremeBonus
			}
		}
	case t.Impulsivity <= lowCut:
		if f.TICS == model.TraitLow {
			score += fullCredit
		} else {
			score += benignCredit
		}
	default:
		if f.TICS == model.TraitHigh {
			score += midCredit
		}
	}

	// Reasoning depth: strong composite reasoning pairs with depth-oriented
	// tutors; weak reasoning pairs with tutors who keep things concrete.
	switch {
	case t.Reasoning >= highCut:
		if f.TRD == model.TraitHigh {
			score += fullCredit
			if t.Reasoning >= extremeHigh {
				score += extremeBonus
			}
		}
	case t.Reasoning <= lowCut:
		if f.TRD == model.TraitLow {
			score += fullCredit
			if t.Reasoning <= extremeLow {
				score += extremeBonus
			}
		}
	default:
		if f.TRD == model.TraitHigh {
			score += midCredit
		}
	}

	if score > maxCognitive {
		score = maxCognitive
	}
	return score
}

// supportRule covers the four symmetric rules (speed, working memory,
// precision, error correction): low trait wants HIGH support, high trait
// wants LOW support, mid trait gets partial credit from a HIGH tutor.
func supportRule(v float64, trait model.TraitLevel) float64 {
	switch {
	case v <= lowCut:
		if trait == model.TraitHigh {
			if v <= extremeLow {
				return fullCredit + extremeBonus
			}
			return fullCredit
		}
		return 0
	case v >= highCut:
		if trait == model.TraitLow {
			if v >= extremeHigh {
				return fullCredit + extremeBonus
			}
			return fullCredit
		}
		// Extra support for a self-sufficient learner is harmless.
		return benignCredit
	default:
		if trait == model.TraitHigh {
			return midCredit
		}
		return 0
	}
}

// SubjectScore is the local, literal subject overlap: intersection size over
// learner subject count, scaled to 10. No semantic reconciliation happens
// here ("Maths" does not match "Mathematics"); that is the ranking model's
// job. Malformed or absent input scores 0.
func SubjectScore(learnerSubjects []string, tutorSubjectsJSON string) float64 {
	if len(learnerSubjects) == 0 || tutorSubjectsJSON == "" {
		return 0
	}

	tutorSubjects := model.ParseSubjects(tutorSubjectsJSON)
	if len(tutorSubjects) == 0 {
		return 0
	}

	learnerSet := make(map[string]struct{}, len(learnerSubjects))
	for _, s := range learnerSubjects {
		learnerSet[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	overlap := 0
	seen := make(map[string]struct{}, len(tutorSubjects))
	for _, s := range tutorSubjects {
		key := strings.ToLower(strings.TrimSpace(s))
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		if _, ok := learnerSet[key]; ok {
			overlap++
		}
	}

	return float64(overlap) / float64(len(learnerSet)) * 10
}

// PriceScore scores a lesson price linearly against a ceiling: free scores
// 10, at or above the ceiling scores 0.
func PriceScore(price, ceiling float64) float64 {
	if ceiling <= 0 {
		return 0
	}
	s := 10 - price/ceiling*10
	if s < 0 {
		return 0
	}
	if s > 10 {
		s = 10
	}
	return s
}
