package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"edumatch/internal/metrics"
	"edumatch/internal/model"
	"edumatch/internal/repository"
	"edumatch/internal/scoring"
)

var (
	ErrEmailTaken        = errors.New("email already registered")
	ErrAssessmentExists  = errors.New("assessment already submitted")
	ErrAssessmentMissing = errors.New("assessment not submitted yet")
)

// LearnerService handles learner registration, profiles and assessments.
type LearnerService struct {
	learners    repository.LearnerRepo
	assessments repository.AssessmentRepo
	listings    repository.ListingRepo
	crm         *CRMSyncService
	validate    *validator.Validate
	log         zerolog.Logger
}

// NewLearnerService creates a new learner service.
func NewLearnerService(
	learners repository.LearnerRepo,
	assessments repository.AssessmentRepo,
	listings repository.ListingRepo,
	crm *CRMSyncService,
	log zerolog.Logger,
) *LearnerService {
	return &LearnerService{
		learners:    learners,
		assessments: assessments,
		listings:    listings,
		crm:         crm,
		validate:    validator.New(),
		log:         log,
	}
}

// Register creates a learner account. The marketplace listing and the CRM
// contact push are best-effort side effects: their failures are logged and
// never fail the registration.
func (s *LearnerService) Register(ctx context.Context, req *model.RegisterLearnerRequest) (*model.Learner, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	existing, err := s.learners.GetByEmail(ctx, email)
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

	learner := &model.Learner{
		Name:           req.Name,
		Email:          email,
		Password:       hash,
		PrimaryContact: req.PrimaryContact,
		GuardianName:   req.GuardianName,
		GuardianEmail:  req.GuardianEmail,
		EducationLevel: req.EducationLevel,
		Board:          req.Board,
		Subjects:       string(subjects),
		Budget:         req.Budget,
		PreferredMode:  model.PreferredMode(req.PreferredMode),
		Area:           req.Area,
		State:          req.State,
		Pincode:        req.Pincode,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
	}

	if err := s.learners.Create(ctx, learner); err != nil {
		return nil, err
	}

	listing := &model.JobListing{LearnerID: learner.ID, Status: "OPEN"}
	if err := s.listings.Create(ctx, listing); err != nil {
		s.log.Warn().Err(err).Str("learner", learner.ID).Msg("failed to create job listing")
	}

	if s.crm != nil {
		if err := s.crm.SyncLearner(ctx, learner); err != nil {
			s.log.Warn().Err(err).Str("learner", learner.ID).Msg("CRM contact sync failed")
		}
	}

	return learner, nil
}

// GetProfile returns a learner by id.
func (s *LearnerService) GetProfile(ctx context.Context, learnerID string) (*model.Learner, error) {
	learner, err := s.learners.GetByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, ErrLearnerNotFound
	}
	return learner, nil
}

// SubmitAssessment scores a behavioral sample into a cognitive profile and
// persists it. A learner gets exactly one assessment; resubmission fails.
func (s *LearnerService) SubmitAssessment(ctx context.Context, learnerID string, sample model.BehavioralSample) (*model.CognitiveAssessment, error) {
	learner, err := s.learners.GetByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, ErrLearnerNotFound
	}

	existing, err := s.assessments.GetByLearnerID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAssessmentExists
	}

	assessment := &model.CognitiveAssessment{
		LearnerID: learnerID,
		Sample:    sample,
		Profile:   scoring.Score(sample),
	}

	if err := s.assessments.Create(ctx, assessment); err != nil {
		return nil, err
	}
	metrics.AssessmentsScored.Inc()

	s.log.Info().Str("learner", learnerID).Msg("cognitive assessment scored")
	return assessment, nil
}

// GetAssessment returns a learner's assessment, or ErrAssessmentMissing.
func (s *LearnerService) GetAssessment(ctx context.Context, learnerID string) (*model.CognitiveAssessment, error) {
	assessment, err := s.assessments.GetByLearnerID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrAssessmentMissing
	}
	return assessment, nil
}
