package scoring

import "edumatch/internal/model"

// bandDef describes one band of the five-way partition of [0,10]. Bands are
// contiguous: each owns (lower, upper], with B1 additionally owning 0, so a
// score landing exactly on a boundary resolves to the lower band.
type bandDef struct {
	band           model.Band
	upper          float64
	label          string
	interpretation string
}

var bandDefs = [5]bandDef{
	{model.B1, 2, "Very Low", "Needs substantial scaffolding and close guidance in this area."},
	{model.B2, 4, "Low", "Below typical range; benefits from structured support."},
	{model.B3, 6, "Moderate", "Within typical range; standard pacing works well."},
	{model.B4, 8, "High", "Above typical range; can handle increased challenge."},
	{model.B5, 10, "Very High", "Well above typical range; thrives with independence and depth."},
}

// BandFor maps a score in [0,10] to its band. Boundary values fall into the
// lower band.
func BandFor(score float64) model.Band {
	for _, d := range bandDefs[:4] {
		if score <= d.upper {
			return d.band
		}
	}
	return model.B5
}

func bandInfo(b model.Band) (label, interpretation string) {
	for _, d := range bandDefs {
		if d.band == b {
			return d.label, d.interpretation
		}
	}
	return "", ""
}

// newParameterScore clamps a raw score to [0,10] and attaches band metadata.
func newParameterScore(raw float64) model.ParameterScore {
	s := clamp(raw, 0, 10)
	b := BandFor(s)
	label, interp := bandInfo(b)
	return model.ParameterScore{
		Score:          s,
		Band:           b,
		Label:          label,
		Interpretation: interp,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
