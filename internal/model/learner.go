package model

import (
	"encoding/json"
	"strings"
	"time"
)

// PreferredMode is how a learner wants lessons delivered.
type PreferredMode string

const (
	ModeOnline  PreferredMode = "Online"
	ModeOffline PreferredMode = "Offline"
	ModeBoth    PreferredMode = "Both"
)

// Learner represents a student account.
type Learner struct {
	ID             string        `json:"id" bson:"_id,omitempty"`
	CRMID          string        `json:"crmId,omitempty" bson:"crmId,omitempty"`
	Name           string        `json:"name" bson:"name"`
	PrimaryContact string        `json:"primaryContact" bson:"primaryContact"`
	Email          string        `json:"email" bson:"email"`
	Password       string        `json:"-" bson:"password"`
	GuardianName   string        `json:"guardianName" bson:"guardianName"`
	GuardianEmail  string        `json:"guardianEmail" bson:"guardianEmail"`
	EducationLevel string        `json:"educationLevel" bson:"educationLevel"`
	Board          string        `json:"board" bson:"board"`
	Subjects       string        `json:"subjects" bson:"subjects"` // JSON array string
	Budget         float64       `json:"budget" bson:"budget"`
	PreferredMode  PreferredMode `json:"preferredMode" bson:"preferredMode"`
	Area           string        `json:"area" bson:"area"`
	State          string        `json:"state" bson:"state"`
	Pincode        string        `json:"pincode" bson:"pincode"`
	Latitude       string        `json:"latitude" bson:"latitude"`
	Longitude      string        `json:"longitude" bson:"longitude"`
	CreatedAt      time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// SubjectList parses the stored subjects JSON. Malformed or empty input
// yields an empty list rather than an error.
func (l *Learner) SubjectList() []string {
	return ParseSubjects(l.Subjects)
}

// Normalize lowercases email fields before persistence.
func (l *Learner) Normalize() {
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	l.GuardianEmail = strings.ToLower(strings.TrimSpace(l.GuardianEmail))
}

// ParseSubjects decodes a JSON array of subject names, tolerating bad input.
func ParseSubjects(raw string) []string {
	if raw == "" {
		return nil
	}
	var subjects []string
	if err := json.Unmarshal([]byte(raw), &subjects); err != nil {
		return nil
	}
	return subjects
}

// JobListing is a marketplace posting auto-created for a learner. Creation is
// best-effort: failures are logged by the caller and never block registration.
type JobListing struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	LearnerID string    `json:"learnerId" bson:"learnerId"`
	Status    string    `json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
