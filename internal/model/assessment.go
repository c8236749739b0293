package model

import "time"

// RecallQuestion captures behavior on a timed recognition question (Q1, Q4,
// Q5): how fast the learner reacted, how long they hovered over options, how
// often they changed their answer, and whether they ended up correct.
// Bands are small discrete buckets produced by the assessment UI.
type RecallQuestion struct {
	ReactionBand  int  `json:"rtBand" bson:"rtBand"`               // 0-4, higher = slower
	HoverBand     int  `json:"hoverBand" bson:"hoverBand"`         // 0-4, higher = longer
	AnswerChanges int  `json:"answerChanges" bson:"answerChanges"` // 0-4
	Correct       bool `json:"correct" bson:"correct"`
}

// SortingQuestion captures behavior on the grouping task (Q2).
type SortingQuestion struct {
	CorrectionsBand int  `json:"corrBand" bson:"corrBand"` // 0-4, higher = more corrections
	IdleBand        int  `json:"idleBand" bson:"idleBand"` // 0-4, higher = longer idle
	TimeBand        int  `json:"timeBand" bson:"timeBand"` // 0-4, higher = slower
	Correct         bool `json:"correct" bson:"correct"`
}

// OrderingQuestion captures behavior on the sequence-ordering task (Q3).
type OrderingQuestion struct {
	SwapBand         int `json:"swapBand" bson:"swapBand"`                 // 0-4
	MisplacementBand int `json:"misplacementBand" bson:"misplacementBand"` // 0-4
	TapBand          int `json:"tapBand" bson:"tapBand"`                   // 0-4, stray taps
	TimeBand         int `json:"timeBand" bson:"timeBand"`                 // 0-4
}

// BehavioralSample is the raw per-question measurement set from one
// assessment run. Immutable once submitted; a learner gets exactly one.
type BehavioralSample struct {
	Q1 RecallQuestion   `json:"q1" bson:"q1"` // pattern recall
	Q2 SortingQuestion  `json:"q2" bson:"q2"` // grouping
	Q3 OrderingQuestion `json:"q3" bson:"q3"` // sequence ordering
	Q4 RecallQuestion   `json:"q4" bson:"q4"` // odd one out
	Q5 RecallQuestion   `json:"q5" bson:"q5"` // analogy
}

// Band is one of five ordered score bands over [0,10].
type Band int

const (
	B1 Band = iota + 1
	B2
	B3
	B4
	B5
)

// ParameterScore is a single cognitive parameter: raw score in [0,10], its
// band, and the band's qualitative reading.
type ParameterScore struct {
	Score          float64 `json:"score" bson:"score"`
	Band           Band    `json:"band" bson:"band"`
	Label          string  `json:"label" bson:"label"`
	Interpretation string  `json:"interpretation" bson:"interpretation"`
}

// CognitiveProfile holds the twelve derived cognitive parameters plus a
// templated prose summary. Write-once, derived entirely from the sample.
type CognitiveProfile struct {
	Confidence            ParameterScore `json:"confidence" bson:"confidence"`
	Anxiety               ParameterScore `json:"anxiety" bson:"anxiety"`
	ProcessingSpeed       ParameterScore `json:"processingSpeed" bson:"processingSpeed"`
	WorkingMemory         ParameterScore `json:"workingMemory" bson:"workingMemory"`
	Attention             ParameterScore `json:"attention" bson:"attention"`
	Precision             ParameterScore `json:"precision" bson:"precision"`
	ErrorCorrection       ParameterScore `json:"errorCorrection" bson:"errorCorrection"`
	Exploration           ParameterScore `json:"exploration" bson:"exploration"`
	Impulsivity           ParameterScore `json:"impulsivity" bson:"impulsivity"`
	CognitiveFlexibility  ParameterScore `json:"cognitiveFlexibility" bson:"cognitiveFlexibility"`
	LogicalReasoning      ParameterScore `json:"logicalReasoning" bson:"logicalReasoning"`
	HypotheticalReasoning ParameterScore `json:"hypotheticalReasoning" bson:"hypotheticalReasoning"`
	Summary               string         `json:"summary" bson:"summary"`
}

// ParameterScores returns the twelve raw scores in a fixed order, used for
// the cognitive digest in cache keys.
func (p *CognitiveProfile) ParameterScores() []float64 {
	return []float64{
		p.Confidence.Score,
		p.Anxiety.Score,
		p.ProcessingSpeed.Score,
		p.WorkingMemory.Score,
		p.Attention.Score,
		p.Precision.Score,
		p.ErrorCorrection.Score,
		p.Exploration.Score,
		p.Impulsivity.Score,
		p.CognitiveFlexibility.Score,
		p.LogicalReasoning.Score,
		p.HypotheticalReasoning.Score,
	}
}

// CognitiveAssessment is the persisted record: the immutable sample and the
// profile derived from it. One per learner.
type CognitiveAssessment struct {
	ID        string           `json:"id" bson:"_id,omitempty"`
	LearnerID string           `json:"learnerId" bson:"learnerId"`
	Sample    BehavioralSample `json:"sample" bson:"sample"`
	Profile   CognitiveProfile `json:"profile" bson:"profile"`
	CreatedAt time.Time        `json:"createdAt" bson:"createdAt"`
}
