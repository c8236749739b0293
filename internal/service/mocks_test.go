package service

import (
	"context"
	"fmt"

	"edumatch/internal/model"
	"edumatch/internal/scoring"
)

type mockLearnerRepo struct {
	learners map[string]*model.Learner
}

func newMockLearnerRepo() *mockLearnerRepo {
	return &mockLearnerRepo{learners: make(map[string]*model.Learner)}
}

func (m *mockLearnerRepo) Create(ctx context.Context, learner *model.Learner) error {
	if learner.ID == "" {
		learner.ID = fmt.Sprintf("learner-%d", len(m.learners)+1)
	}
	learner.Normalize()
	m.learners[learner.ID] = learner
	return nil
}

func (m *mockLearnerRepo) GetByID(ctx context.Context, id string) (*model.Learner, error) {
	return m.learners[id], nil
}

func (m *mockLearnerRepo) GetByEmail(ctx context.Context, email string) (*model.Learner, error) {
	for _, l := range m.learners {
		if l.Email == email {
			return l, nil
		}
	}
	return nil, nil
}

func (m *mockLearnerRepo) Update(ctx context.Context, learner *model.Learner) error {
	m.learners[learner.ID] = learner
	return nil
}

type mockTutorRepo struct {
	tutors []*model.Tutor
}

func (m *mockTutorRepo) Create(ctx context.Context, tutor *model.Tutor) error {
	if tutor.ID == "" {
		tutor.ID = fmt.Sprintf("tutor-%d", len(m.tutors)+1)
	}
	m.tutors = append(m.tutors, tutor)
	return nil
}

func (m *mockTutorRepo) GetByID(ctx context.Context, id string) (*model.Tutor, error) {
	for _, t := range m.tutors {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockTutorRepo) GetByEmail(ctx context.Context, email string) (*model.Tutor, error) {
	for _, t := range m.tutors {
		if t.Email == email {
			return t, nil
		}
	}
	return nil, nil
}

func (m *mockTutorRepo) Update(ctx context.Context, tutor *model.Tutor) error {
	for i, t := range m.tutors {
		if t.ID == tutor.ID {
			m.tutors[i] = tutor
		}
	}
	return nil
}

func (m *mockTutorRepo) UpdatePedagogy(ctx context.Context, tutorID string, fingerprint *model.PedagogyFingerprint) error {
	for _, t := range m.tutors {
		if t.ID == tutorID {
			t.Pedagogy = *fingerprint
			return nil
		}
	}
	return errNotFound
}

func (m *mockTutorRepo) ListQualified(ctx context.Context) ([]*model.Tutor, error) {
	var qualified []*model.Tutor
	for _, t := range m.tutors {
		if t.Pedagogy.Complete() {
			qualified = append(qualified, t)
		}
	}
	return qualified, nil
}

var errNotFound = fmt.Errorf("not found")

type mockAssessmentRepo struct {
	byLearner map[string]*model.CognitiveAssessment
}

func newMockAssessmentRepo() *mockAssessmentRepo {
	return &mockAssessmentRepo{byLearner: make(map[string]*model.CognitiveAssessment)}
}

func (m *mockAssessmentRepo) Create(ctx context.Context, assessment *model.CognitiveAssessment) error {
	if assessment.ID == "" {
		assessment.ID = fmt.Sprintf("assessment-%d", len(m.byLearner)+1)
	}
	m.byLearner[assessment.LearnerID] = assessment
	return nil
}

func (m *mockAssessmentRepo) GetByLearnerID(ctx context.Context, learnerID string) (*model.CognitiveAssessment, error) {
	return m.byLearner[learnerID], nil
}

type mockListingRepo struct {
	created []*model.JobListing
	failErr error
}

func (m *mockListingRepo) Create(ctx context.Context, listing *model.JobListing) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.created = append(m.created, listing)
	return nil
}

type mockMatchCache struct {
	store  map[string]*model.MatchRanking
	getErr error
	setErr error
}

func newMockMatchCache() *mockMatchCache {
	return &mockMatchCache{store: make(map[string]*model.MatchRanking)}
}

func (m *mockMatchCache) Get(ctx context.Context, key string) (*model.MatchRanking, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.store[key], nil
}

func (m *mockMatchCache) Set(ctx context.Context, key string, ranking *model.MatchRanking) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.store[key] = ranking
	return nil
}

type mockRanker struct {
	matches []model.RankedMatch
	err     error
	calls   int
}

func (m *mockRanker) Rank(ctx context.Context, learner *model.Learner, traits scoring.MatcherTraits, candidates []model.TutorCandidate) ([]model.RankedMatch, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.matches, nil
}
