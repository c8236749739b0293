package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"edumatch/internal/model"
	"edumatch/internal/repository"
)

var ErrTutorNotFound = errors.New("tutor not found")

// TutorService handles tutor registration and pedagogy fingerprints.
type TutorService struct {
	tutors   repository.TutorRepo
	crm      *CRMSyncService
	validate *validator.Validate
	log      zerolog.Logger
}

// NewTutorService creates a new tutor service.
func NewTutorService(tutors repository.TutorRepo, crm *CRMSyncService, log zerolog.Logger) *TutorService {
	return &TutorService{
		tutors:   tutors,
		crm:      crm,
		validate: validator.New(),
		log:      log,
	}
}

// Register creates a tutor account. The pedagogy fingerprint starts empty;
// the tutor is not matchable until it is completed.
func (s *TutorService) Register(ctx context.Context, req *model.RegisterTutorRequest) (*model.Tutor, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	existing, err := s.tutors.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	subjects, err := json.Marshal(req.Subjects)
	if err != nil {
		return nil, err
	}

	tutor := &model.Tutor{
		Name:           req.Name,
		Email:          email,
		Password:       hash,
		PrimaryContact: req.PrimaryContact,
		Introduction:   req.Introduction,
		Subjects:       string(subjects),
		LessonPrice:    req.LessonPrice,
		TeachingMode:   req.TeachingMode,
		Area:           req.Area,
		State:          req.State,
		Pincode:        req.Pincode,
	}

	if err := s.tutors.Create(ctx, tutor); err != nil {
		return nil, err
	}

	if s.crm != nil {
		if err := s.crm.SyncTutor(ctx, tutor); err != nil {
			s.log.Warn().Err(err).Str("tutor", tutor.ID).Msg("CRM contact sync failed")
		}
	}

	return tutor, nil
}

// GetProfile returns a tutor by id.
func (s *TutorService) GetProfile(ctx context.Context, tutorID string) (*model.Tutor, error) {
	tutor, err := s.tutors.GetByID(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if tutor == nil {
		return nil, ErrTutorNotFound
	}
	return tutor, nil
}

// UpdatePedagogy replaces the tutor's pedagogy fingerprint. All eight traits
// are set in one call; completing them makes the tutor eligible for matching.
func (s *TutorService) UpdatePedagogy(ctx context.Context, tutorID string, req *model.PedagogyUpdateRequest) (*model.PedagogyFingerprint, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	fingerprint := &model.PedagogyFingerprint{
		TCS:         model.TraitLevel(req.TCS),
		TSPI:        model.TraitLevel(req.TSPI),
		TWMLS:       model.TraitLevel(req.TWMLS),
		TPO:         model.TraitLevel(req.TPO),
		TECP:        model.TraitLevel(req.TECP),
		TET:         model.TraitLevel(req.TET),
		TICS:        model.TraitLevel(req.TICS),
		TRD:         model.TraitLevel(req.TRD),
		CompletedAt: &now,
	}

	if err := s.tutors.UpdatePedagogy(ctx, tutorID, fingerprint); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrTutorNotFound
		}
		return nil, err
	}

	s.log.Info().Str("tutor", tutorID).Msg("pedagogy fingerprint completed")
	return fingerprint, nil
}
