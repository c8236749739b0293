package model

// TutorCandidate is the per-tutor scoring record computed for a single
// matching request. Never persisted.
type TutorCandidate struct {
	Tutor          *Tutor  `json:"-"`
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Subjects       string  `json:"subjects"`
	CognitiveScore float64 `json:"cognitive_score"`
	SubjectScore   float64 `json:"subject_score"`
	PriceScore     float64 `json:"price_score"`
}

// RankedMatch is one entry of a ranking result, either from the ranking
// model or from the deterministic fallback.
type RankedMatch struct {
	TutorID            string  `json:"tutor_id"`
	FinalScore         float64 `json:"final_score"`
	Reasoning          string  `json:"reasoning"`
	SubjectExplanation string  `json:"subject_explanation"`
}

// MatchRanking is the cached unit: up to three ranked matches plus
// processing metadata.
type MatchRanking struct {
	Matches          []RankedMatch `json:"matches"`
	ProcessingTimeMS int64         `json:"ai_processing_time_ms"`
	CacheHit         bool          `json:"cache_hit"`
}

// MatchDetails is the per-match scoring breakdown returned to callers.
type MatchDetails struct {
	CompatibilityScore float64 `json:"compatibility_score"`
	Reasoning          string  `json:"reasoning"`
	SubjectExplanation string  `json:"subject_explanation"`
}

// TutorMatch pairs a hydrated tutor record with its match details.
type TutorMatch struct {
	Tutor        *Tutor       `json:"tutor"`
	MatchDetails MatchDetails `json:"match_details"`
}

// MatchResponse is the final response of a matching request.
type MatchResponse struct {
	Success  bool         `json:"success"`
	CacheHit bool         `json:"cache_hit"`
	Matches  []TutorMatch `json:"matches"`
}
