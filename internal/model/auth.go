package model

import "github.com/golang-jwt/jwt/v5"

// UserType distinguishes learner and tutor tokens.
type UserType string

const (
	UserLearner UserType = "learner"
	UserTutor   UserType = "tutor"
)

// UserClaims are JWT claims for learner and tutor authentication.
type UserClaims struct {
	UserID   string   `json:"userId"`
	UserType UserType `json:"userType"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"userType" validate:"required,oneof=learner tutor"`
}

// LoginResponse is returned after successful login.
type LoginResponse struct {
	Token    string   `json:"token"`
	UserID   string   `json:"userId"`
	UserType UserType `json:"userType"`
}
