package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"edumatch/internal/model"
)

func param(score float64) model.ParameterScore {
	return model.ParameterScore{Score: score}
}

// seedProfile mirrors the anxious, support-needing learner used in the seed
// data: low confidence, high anxiety, slow processing.
func seedProfile() model.CognitiveProfile {
	return model.CognitiveProfile{
		Confidence:            param(2.5),
		Anxiety:               param(7.5),
		ProcessingSpeed:       param(3.0),
		WorkingMemory:         param(4.0),
		Attention:             param(5.0),
		Precision:             param(3.5),
		ErrorCorrection:       param(4.5),
		Exploration:           param(6.0),
		Impulsivity:           param(7.0),
		CognitiveFlexibility:  param(5.0),
		LogicalReasoning:      param(5.5),
		HypotheticalReasoning: param(5.0),
	}
}

func seedTutors() []*model.Tutor {
	return []*model.Tutor{
		{
			ID: "tutor-perfect", Name: "Perfect Match Tutor",
			Subjects: `["Mathematics","Physics","Algebra"]`, LessonPrice: 800,
			Pedagogy: model.PedagogyFingerprint{
				TCS: model.TraitHigh, TSPI: model.TraitHigh, TWMLS: model.TraitHigh,
				TPO: model.TraitHigh, TECP: model.TraitHigh, TET: model.TraitLow,
				TICS: model.TraitHigh, TRD: model.TraitHigh,
			},
		},
		{
			ID: "tutor-good", Name: "Good Match Tutor",
			Subjects: `["Mathematics","Chemistry","Science"]`, LessonPrice: 600,
			Pedagogy: model.PedagogyFingerprint{
				TCS: model.TraitHigh, TSPI: model.TraitLow, TWMLS: model.TraitHigh,
				TPO: model.TraitHigh, TECP: model.TraitLow, TET: model.TraitLow,
				TICS: model.TraitHigh, TRD: model.TraitLow,
			},
		},
		{
			ID: "tutor-poor", Name: "Poor Match Tutor",
			Subjects: `["Biology","English","History"]`, LessonPrice: 400,
			Pedagogy: model.PedagogyFingerprint{
				TCS: model.TraitLow, TSPI: model.TraitLow, TWMLS: model.TraitLow,
				TPO: model.TraitLow, TECP: model.TraitLow, TET: model.TraitHigh,
				TICS: model.TraitLow, TRD: model.TraitLow,
			},
		},
	}
}

type matchFixture struct {
	svc         *MatchingService
	learners    *mockLearnerRepo
	tutors      *mockTutorRepo
	assessments *mockAssessmentRepo
	cache       *mockMatchCache
	ranker      *mockRanker
}

func newMatchFixture(ranker *mockRanker) *matchFixture {
	learners := newMockLearnerRepo()
	tutors := &mockTutorRepo{tutors: seedTutors()}
	assessments := newMockAssessmentRepo()
	matchCache := newMockMatchCache()

	learners.learners["learner-1"] = &model.Learner{
		ID:       "learner-1",
		Name:     "Test Student",
		Email:    "teststudent@example.com",
		Subjects: `["Mathematics","Physics","Chemistry"]`,
	}
	assessments.byLearner["learner-1"] = &model.CognitiveAssessment{
		ID:        "assessment-1",
		LearnerID: "learner-1",
		Profile:   seedProfile(),
	}

	svc := NewMatchingService(
		learners, tutors, assessments,
		matchCache, ranker,
		2000, 0, zerolog.Nop(),
	)
	return &matchFixture{
		svc:         svc,
		learners:    learners,
		tutors:      tutors,
		assessments: assessments,
		cache:       matchCache,
		ranker:      ranker,
	}
}

func TestMatchFallbackOrdering(t *testing.T) {
	fx := newMatchFixture(&mockRanker{err: errors.New("model down")})

	resp, err := fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if !resp.Success || resp.CacheHit {
		t.Errorf("expected fresh successful response, got %+v", resp)
	}
	if len(resp.Matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(resp.Matches))
	}

	wantOrder := []string{"tutor-perfect", "tutor-good", "tutor-poor"}
	for i, want := range wantOrder {
		if resp.Matches[i].Tutor.ID != want {
			t.Errorf("match %d = %s, want %s", i, resp.Matches[i].Tutor.ID, want)
		}
	}

	// Perfect tutor: cognitive 6.6, subject overlap 2 of 3 subjects.
	wantScore := 6.6*10 + 2.0/3.0*10
	got := resp.Matches[0].MatchDetails.CompatibilityScore
	if math.Abs(got-wantScore) > 1e-9 {
		t.Errorf("top compatibility score = %v, want %v", got, wantScore)
	}
}

func TestMatchValidationErrors(t *testing.T) {
	fx := newMatchFixture(&mockRanker{})

	if _, err := fx.svc.Match(context.Background(), "nobody"); !errors.Is(err, ErrLearnerNotFound) {
		t.Errorf("unknown learner: got %v, want ErrLearnerNotFound", err)
	}

	fx.learners.learners["learner-2"] = &model.Learner{ID: "learner-2", Email: "x@example.com"}
	if _, err := fx.svc.Match(context.Background(), "learner-2"); !errors.Is(err, ErrMissingCognitiveProfile) {
		t.Errorf("no assessment: got %v, want ErrMissingCognitiveProfile", err)
	}

	fx.tutors.tutors = nil
	if _, err := fx.svc.Match(context.Background(), "learner-1"); !errors.Is(err, ErrNoQualifiedTutors) {
		t.Errorf("no tutors: got %v, want ErrNoQualifiedTutors", err)
	}
}

func TestMatchExcludesIncompleteFingerprints(t *testing.T) {
	fx := newMatchFixture(&mockRanker{err: errors.New("model down")})
	fx.tutors.tutors = append(fx.tutors.tutors, &model.Tutor{
		ID: "tutor-unqualified", Subjects: `["Mathematics"]`, LessonPrice: 100,
		Pedagogy: model.PedagogyFingerprint{TCS: model.TraitHigh}, // seven traits unset
	})

	resp, err := fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	for _, m := range resp.Matches {
		if m.Tutor.ID == "tutor-unqualified" {
			t.Error("tutor with incomplete fingerprint must not be matched")
		}
	}
}

func TestMatchCacheHit(t *testing.T) {
	ranker := &mockRanker{matches: []model.RankedMatch{
		{TutorID: "tutor-good", FinalScore: 88, Reasoning: "fits"},
	}}
	fx := newMatchFixture(ranker)

	first, err := fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("first Match failed: %v", err)
	}
	if first.CacheHit {
		t.Error("first call must be a cache miss")
	}

	second, err := fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("second Match failed: %v", err)
	}
	if !second.CacheHit {
		t.Error("second identical call must be a cache hit")
	}
	if ranker.calls != 1 {
		t.Errorf("ranker called %d times, want 1", ranker.calls)
	}
	if second.Matches[0].Tutor.ID != "tutor-good" {
		t.Errorf("cached match = %s, want tutor-good", second.Matches[0].Tutor.ID)
	}
}

func TestMatchCacheKeyChurn(t *testing.T) {
	ranker := &mockRanker{matches: []model.RankedMatch{
		{TutorID: "tutor-good", FinalScore: 88},
	}}
	fx := newMatchFixture(ranker)

	if _, err := fx.svc.Match(context.Background(), "learner-1"); err != nil {
		t.Fatalf("first Match failed: %v", err)
	}

	// A changed profile must land on a fresh key.
	assessment := fx.assessments.byLearner["learner-1"]
	assessment.Profile.Confidence = param(9.0)

	resp, err := fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("second Match failed: %v", err)
	}
	if resp.CacheHit {
		t.Error("changed cognitive profile must force a cache miss")
	}
	if ranker.calls != 2 {
		t.Errorf("ranker called %d times, want 2", ranker.calls)
	}

	// A changed tutor roster must too.
	fx.tutors.tutors = fx.tutors.tutors[:2]
	resp, err = fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("third Match failed: %v", err)
	}
	if resp.CacheHit {
		t.Error("changed tutor roster must force a cache miss")
	}
}

func TestMatchDropsUnknownTutorIDs(t *testing.T) {
	ranker := &mockRanker{matches: []model.RankedMatch{
		{TutorID: "tutor-good", FinalScore: 88},
		{TutorID: "tutor-ghost", FinalScore: 70},
	}}
	fx := newMatchFixture(ranker)

	resp, err := fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].Tutor.ID != "tutor-good" {
		t.Errorf("unresolvable tutor ids must be dropped, got %+v", resp.Matches)
	}
}

func TestMatchCacheErrorsDegradeToMiss(t *testing.T) {
	ranker := &mockRanker{matches: []model.RankedMatch{
		{TutorID: "tutor-good", FinalScore: 88},
	}}
	fx := newMatchFixture(ranker)
	fx.cache.getErr = errors.New("redis down")
	fx.cache.setErr = errors.New("redis down")

	resp, err := fx.svc.Match(context.Background(), "learner-1")
	if err != nil {
		t.Fatalf("Match must survive a cache outage: %v", err)
	}
	if resp.CacheHit || len(resp.Matches) != 1 {
		t.Errorf("expected fresh single-match response, got %+v", resp)
	}
}

func TestFallbackRankBreaksExactTiesOnly(t *testing.T) {
	candidates := []model.TutorCandidate{
		{ID: "a", CognitiveScore: 5, SubjectScore: 5, Price: 500},
		{ID: "b", CognitiveScore: 5, SubjectScore: 5, Price: 400},
		{ID: "c", CognitiveScore: 5, SubjectScore: 3, Price: 100},
	}

	for i := 0; i < 20; i++ {
		matches := fallbackRank(candidates)
		if len(matches) != 3 {
			t.Fatalf("expected 3 matches, got %d", len(matches))
		}
		// b beats a on price, both beat c on subject score. Ordering is
		// deterministic because no exact triple tie exists.
		if matches[0].TutorID != "b" || matches[1].TutorID != "a" || matches[2].TutorID != "c" {
			t.Fatalf("iteration %d: unexpected order %s, %s, %s",
				i, matches[0].TutorID, matches[1].TutorID, matches[2].TutorID)
		}
	}
}

func TestFallbackRankCapsAtThree(t *testing.T) {
	var candidates []model.TutorCandidate
	for i := 0; i < 6; i++ {
		candidates = append(candidates, model.TutorCandidate{
			ID: string(rune('a' + i)), CognitiveScore: float64(i), Price: 100,
		})
	}
	matches := fallbackRank(candidates)
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matches))
	}
	if matches[0].TutorID != "f" {
		t.Errorf("highest cognitive score must rank first, got %s", matches[0].TutorID)
	}
}

func TestCacheKeyIgnoresTutorOrder(t *testing.T) {
	fx := newMatchFixture(&mockRanker{})
	profile := seedProfile()

	key1 := fx.svc.cacheKey("learner-1", seedTutors(), &profile)

	reversed := seedTutors()
	reversed[0], reversed[2] = reversed[2], reversed[0]
	key2 := fx.svc.cacheKey("learner-1", reversed, &profile)

	if key1 != key2 {
		t.Error("cache key must be independent of tutor listing order")
	}
	if len(key1) != 16 {
		t.Errorf("cache key length = %d, want 16", len(key1))
	}
}

func TestCacheKeyTimeBucket(t *testing.T) {
	fx := newMatchFixture(&mockRanker{})
	fx.svc.timeBucket = time.Hour
	profile := seedProfile()

	key1 := fx.svc.cacheKey("learner-1", seedTutors(), &profile)
	key2 := fx.svc.cacheKey("learner-1", seedTutors(), &profile)
	if key1 != key2 {
		t.Error("keys within the same time bucket must be equal")
	}
}
