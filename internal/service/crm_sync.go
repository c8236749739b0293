package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"edumatch/internal/metrics"
	"edumatch/internal/model"
	"edumatch/internal/repository"
)

// CRMSyncService pushes learner and tutor contacts to the CRM and records
// the resulting CRM id locally. All calls are best effort: callers log the
// returned error and move on.
type CRMSyncService struct {
	client   *CRMClient
	learners repository.LearnerRepo
	tutors   repository.TutorRepo
	log      zerolog.Logger
}

// NewCRMSyncService creates a new CRM sync service.
func NewCRMSyncService(client *CRMClient, learners repository.LearnerRepo, tutors repository.TutorRepo, log zerolog.Logger) *CRMSyncService {
	return &CRMSyncService{
		client:   client,
		learners: learners,
		tutors:   tutors,
		log:      log,
	}
}

// SyncLearner upserts the learner as a CRM contact and stores the CRM id.
func (s *CRMSyncService) SyncLearner(ctx context.Context, learner *model.Learner) error {
	if !s.client.IsConfigured() {
		return nil
	}

	contact := CRMContact{
		LastName:    learner.Name,
		Email:       learner.Email,
		Phone:       learner.PrimaryContact,
		ContactType: "Learner",
		LeadSource:  "Platform Signup",
	}

	id, err := s.client.UpsertContact(ctx, contact)
	if err != nil {
		metrics.CRMSyncFailures.Inc()
		return fmt.Errorf("failed to upsert learner contact: %w", err)
	}

	learner.CRMID = id
	if err := s.learners.Update(ctx, learner); err != nil {
		return fmt.Errorf("failed to store CRM id: %w", err)
	}

	s.log.Info().Str("learner", learner.ID).Str("crmId", id).Msg("learner synced to CRM")
	return nil
}

// SyncTutor upserts the tutor as a CRM contact and stores the CRM id.
func (s *CRMSyncService) SyncTutor(ctx context.Context, tutor *model.Tutor) error {
	if !s.client.IsConfigured() {
		return nil
	}

	contact := CRMContact{
		LastName:    tutor.Name,
		Email:       tutor.Email,
		Phone:       tutor.PrimaryContact,
		ContactType: "Tutor",
		LeadSource:  "Platform Signup",
	}

	id, err := s.client.UpsertContact(ctx, contact)
	if err != nil {
		metrics.CRMSyncFailures.Inc()
		return fmt.Errorf("failed to upsert tutor contact: %w", err)
	}

	tutor.CRMID = id
	if err := s.tutors.Update(ctx, tutor); err != nil {
		return fmt.Errorf("failed to store CRM id: %w", err)
	}

	s.log.Info().Str("tutor", tutor.ID).Str("crmId", id).Msg("tutor synced to CRM")
	return nil
}
