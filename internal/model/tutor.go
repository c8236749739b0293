package model

import "time"

// TraitLevel is a binary pedagogy trait value. The zero value means unset.
type TraitLevel string

const (
	TraitHigh TraitLevel = "HIGH"
	TraitLow  TraitLevel = "LOW"
)

// PedagogyFingerprint holds a tutor's eight teaching-style traits. A tutor is
// eligible for matching only when every trait is set.
type PedagogyFingerprint struct {
	TCS   TraitLevel `json:"tcs" bson:"tcs"`     // confidence support
	TSPI  TraitLevel `json:"tspi" bson:"tspi"`   // speed regulation
	TWMLS TraitLevel `json:"twmls" bson:"twmls"` // working-memory support
	TPO   TraitLevel `json:"tpo" bson:"tpo"`     // precision focus
	TECP  TraitLevel `json:"tecp" bson:"tecp"`   // error regulation
	TET   TraitLevel `json:"tet" bson:"tet"`     // exploration control
	TICS  TraitLevel `json:"tics" bson:"tics"`   // impulse regulation
	TRD   TraitLevel `json:"trd" bson:"trd"`     // reasoning depth

	CompletedAt *time.Time `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
}

// Complete reports whether all eight traits are populated.
func (f *PedagogyFingerprint) Complete() bool {
	for _, t := range f.traits() {
		if t != TraitHigh && t != TraitLow {
			return false
		}
	}
	return true
}

// Map returns the fingerprint in trait-name order, used for compact prompt
// serialization.
func (f *PedagogyFingerprint) Map() map[string]string {
	return map[string]string{
		"tcs":   string(f.TCS),
		"tspi":  string(f.TSPI),
		"twmls": string(f.TWMLS),
		"tpo":   string(f.TPO),
		"tecp":  string(f.TECP),
		"tet":   string(f.TET),
		"tics":  string(f.TICS),
		"trd":   string(f.TRD),
	}
}

func (f *PedagogyFingerprint) traits() [8]TraitLevel {
	return [8]TraitLevel{f.TCS, f.TSPI, f.TWMLS, f.TPO, f.TECP, f.TET, f.TICS, f.TRD}
}

// Tutor represents a tutor account with its pedagogy fingerprint embedded.
type Tutor struct {
	ID             string              `json:"id" bson:"_id,omitempty"`
	CRMID          string              `json:"crmId,omitempty" bson:"crmId,omitempty"`
	Name           string              `json:"name" bson:"name"`
	PrimaryContact string              `json:"primaryContact" bson:"primaryContact"`
	Email          string              `json:"email" bson:"email"`
	Password       string              `json:"-" bson:"password"`
	Introduction   string              `json:"introduction,omitempty" bson:"introduction,omitempty"`
	Subjects       string              `json:"subjects" bson:"subjects"` // JSON array string
	LessonPrice    float64             `json:"lessonPrice" bson:"lessonPrice"`
	TeachingMode   string              `json:"teachingMode" bson:"teachingMode"`
	Area           string              `json:"area" bson:"area"`
	State          string              `json:"state" bson:"state"`
	Pincode        string              `json:"pincode" bson:"pincode"`
	Pedagogy       PedagogyFingerprint `json:"pedagogy" bson:"pedagogy"`
	CreatedAt      time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updatedAt"`
}

// SubjectList parses the stored subjects JSON, tolerating bad input.
func (t *Tutor) SubjectList() []string {
	return ParseSubjects(t.Subjects)
}
