package model

// RegisterLearnerRequest is the request body for learner registration.
type RegisterLearnerRequest struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	PrimaryContact string   `json:"primaryContact" validate:"required"`
	GuardianName   string   `json:"guardianName"`
	GuardianEmail  string   `json:"guardianEmail" validate:"omitempty,email"`
	EducationLevel string   `json:"educationLevel"`
	Board          string   `json:"board"`
	Subjects       []string `json:"subjects" validate:"required,min=1,dive,required"`
	Budget         float64  `json:"budget" validate:"gte=0"`
	PreferredMode  string   `json:"preferredMode" validate:"omitempty,oneof=Online Offline Both"`
	Area           string   `json:"area"`
	State          string   `json:"state"`
	Pincode        string   `json:"pincode"`
	Latitude       string   `json:"latitude"`
	Longitude      string   `json:"longitude"`
}

// RegisterTutorRequest is the request body for tutor registration.
type RegisterTutorRequest struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Password       string   `json:"password" validate:"required,min=8"`
	PrimaryContact string   `json:"primaryContact" validate:"required"`
	Introduction   string   `json:"introduction"`
	Subjects       []string `json:"subjects" validate:"required,min=1,dive,required"`
	LessonPrice    float64  `json:"lessonPrice" validate:"gte=0"`
	TeachingMode   string   `json:"teachingMode" validate:"omitempty,oneof=Online Offline Both"`
	Area           string   `json:"area"`
	State          string   `json:"state"`
	Pincode        string   `json:"pincode"`
}

// PedagogyUpdateRequest sets all eight pedagogy traits at once.
type PedagogyUpdateRequest struct {
	TCS   string `json:"tcs" validate:"required,oneof=HIGH LOW"`
	TSPI  string `json:"tspi" validate:"required,oneof=HIGH LOW"`
	TWMLS string `json:"twmls" validate:"required,oneof=HIGH LOW"`
	TPO   string `json:"tpo" validate:"required,oneof=HIGH LOW"`
	TECP  string `json:"tecp" validate:"required,oneof=HIGH LOW"`
	TET   string `json:"tet" validate:"required,oneof=HIGH LOW"`
	TICS  string `json:"tics" validate:"required,oneof=HIGH LOW"`
	TRD   string `json:"trd" validate:"required,oneof=HIGH LOW"`
}
