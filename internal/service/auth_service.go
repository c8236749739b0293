package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"edumatch/internal/model"
	"edumatch/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService handles learner and tutor authentication.
type AuthService struct {
	learners  repository.LearnerRepo
	tutors    repository.TutorRepo
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(learners repository.LearnerRepo, tutors repository.TutorRepo, jwtSecret string) *AuthService {
	return &AuthService{
		learners:  learners,
		tutors:    tutors,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  72 * time.Hour,
	}
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// normalizeEmail matches the form emails are stored in.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login validates credentials against the requested account type and returns
// a signed token. A wrong password and an unknown email produce the same
// error.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	var (
		userID   string
		hash     string
		userType model.UserType
	)

	email := normalizeEmail(req.Email)

	switch model.UserType(req.UserType) {
	case model.UserLearner:
		learner, err := s.learners.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if learner == nil {
			return nil, ErrInvalidCredentials
		}
		userID, hash, userType = learner.ID, learner.Password, model.UserLearner
	case model.UserTutor:
		tutor, err := s.tutors.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if tutor == nil {
			return nil, ErrInvalidCredentials
		}
		userID, hash, userType = tutor.ID, tutor.Password, model.UserTutor
	default:
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(userID, userType)
	if err != nil {
		return nil, err
	}

	return &model.LoginResponse{
		Token:    token,
		UserID:   userID,
		UserType: userType,
	}, nil
}

func (s *AuthService) generateToken(userID string, userType model.UserType) (string, error) {
	claims := &model.UserClaims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken validates a JWT and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*model.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
