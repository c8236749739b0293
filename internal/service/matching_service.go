package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"edumatch/internal/cache"
	"edumatch/internal/metrics"
	"edumatch/internal/model"
	"edumatch/internal/repository"
	"edumatch/internal/scoring"
)

var (
	ErrLearnerNotFound         = errors.New("learner not found")
	ErrMissingCognitiveProfile = errors.New("learner has not completed the cognitive assessment")
	ErrNoQualifiedTutors       = errors.New("no tutors with a complete pedagogy fingerprint")
)

// MatchingService runs the full matching pipeline: eligibility, deterministic
// scoring, cache lookup, model ranking with deterministic fallback, and
// hydration of the final response.
type MatchingService struct {
	learners     repository.LearnerRepo
	tutors       repository.TutorRepo
	assessments  repository.AssessmentRepo
	cache        cache.MatchCache
	ranker       TutorRanker
	priceCeiling float64
	timeBucket   time.Duration
	log          zerolog.Logger
}

// NewMatchingService creates a new matching service.
func NewMatchingService(
	learners repository.LearnerRepo,
	tutors repository.TutorRepo,
	assessments repository.AssessmentRepo,
	matchCache cache.MatchCache,
	ranker TutorRanker,
	priceCeiling float64,
	timeBucket time.Duration,
	log zerolog.Logger,
) *MatchingService {
	return &MatchingService{
		learners:     learners,
		tutors:       tutors,
		assessments:  assessments,
		cache:        matchCache,
		ranker:       ranker,
		priceCeiling: priceCeiling,
		timeBucket:   timeBucket,
		log:          log,
	}
}

// Match returns the top tutor matches for a learner.
func (s *MatchingService) Match(ctx context.Context, learnerID string) (*model.MatchResponse, error) {
	metrics.MatchRequests.Inc()

	learner, err := s.learners.GetByID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if learner == nil {
		return nil, ErrLearnerNotFound
	}

	assessment, err := s.assessments.GetByLearnerID(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	if assessment == nil {
		return nil, ErrMissingCognitiveProfile
	}

	tutors, err := s.tutors.ListQualified(ctx)
	if err != nil {
		return nil, err
	}
	if len(tutors) == 0 {
		return nil, ErrNoQualifiedTutors
	}

	traits := scoring.TraitsFrom(&assessment.Profile)
	candidates := s.scoreCandidates(learner, traits, tutors)

	key := s.cacheKey(learnerID, tutors, &assessment.Profile)

	if ranking := s.cacheLookup(ctx, key); ranking != nil {
		metrics.MatchCacheHits.Inc()
		return s.hydrate(ranking, tutors, true), nil
	}
	metrics.MatchCacheMisses.Inc()

	ranking := s.rank(ctx, learner, traits, candidates)

	if err := s.cache.Set(ctx, key, ranking); err != nil {
		s.log.Warn().Err(err).Str("learner", learnerID).Msg("failed to cache match result")
	}

	return s.hydrate(ranking, tutors, false), nil
}

// scoreCandidates computes the deterministic per-tutor scores.
func (s *MatchingService) scoreCandidates(learner *model.Learner, traits scoring.MatcherTraits, tutors []*model.Tutor) []model.TutorCandidate {
	learnerSubjects := learner.SubjectList()

	candidates := make([]model.TutorCandidate, 0, len(tutors))
	for _, t := range tutors {
		candidates = append(candidates, model.TutorCandidate{
			Tutor:          t,
			ID:             t.ID,
			Name:           t.Name,
			Price:          t.LessonPrice,
			Subjects:       t.Subjects,
			CognitiveScore: scoring.CognitiveScore(traits, &t.Pedagogy),
			SubjectScore:   scoring.SubjectScore(learnerSubjects, t.Subjects),
			PriceScore:     scoring.PriceScore(t.LessonPrice, s.priceCeiling),
		})
	}
	return candidates
}

// rank asks the ranking model and falls back to the deterministic ordering on
// any failure.
func (s *MatchingService) rank(ctx context.Context, learner *model.Learner, traits scoring.MatcherTraits, candidates []model.TutorCandidate) *model.MatchRanking {
	start := time.Now()
	matches, err := s.ranker.Rank(ctx, learner, traits, candidates)
	elapsed := time.Since(start)
	metrics.RankerLatency.Observe(elapsed.Seconds())

	if err != nil {
		metrics.RankerFailures.Inc()
		metrics.RankerFallbacks.Inc()
		s.log.Warn().Err(err).Str("learner", learner.ID).Msg("ranking model unavailable, using fallback")
		return &model.MatchRanking{
			Matches:          fallbackRank(candidates),
			ProcessingTimeMS: 0,
		}
	}

	return &model.MatchRanking{
		Matches:          matches,
		ProcessingTimeMS: elapsed.Milliseconds(),
	}
}

// fallbackRank orders candidates by cognitive score, then subject score, then
// price ascending. Exact ties are broken randomly so equal tutors share
// exposure across requests.
func fallbackRank(candidates []model.TutorCandidate) []model.RankedMatch {
	sorted := make([]model.TutorCandidate, len(candidates))
	copy(sorted, candidates)
	rand.Shuffle(len(sorted), func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CognitiveScore != sorted[j].CognitiveScore {
			return sorted[i].CognitiveScore > sorted[j].CognitiveScore
		}
		if sorted[i].SubjectScore != sorted[j].SubjectScore {
			return sorted[i].SubjectScore > sorted[j].SubjectScore
		}
		return sorted[i].Price < sorted[j].Price
	})

	if len(sorted) > maxRankedMatches {
		sorted = sorted[:maxRankedMatches]
	}

	matches := make([]model.RankedMatch, 0, len(sorted))
	for _, c := range sorted {
		final := c.CognitiveScore*10 + c.SubjectScore
		if final > 100 {
			final = 100
		}
		matches = append(matches, model.RankedMatch{
			TutorID:            c.ID,
			FinalScore:         final,
			Reasoning:          fmt.Sprintf("Cognitive compatibility: %.1f/10. Subject match: %.1f/10.", c.CognitiveScore, c.SubjectScore),
			SubjectExplanation: "Basic subject overlap analysis",
		})
	}
	return matches
}

// cacheLookup treats cache errors as misses.
func (s *MatchingService) cacheLookup(ctx context.Context, key string) *model.MatchRanking {
	ranking, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Msg("match cache unavailable")
		return nil
	}
	return ranking
}

// hydrate joins ranked tutor ids back to full tutor records. Ids that no
// longer resolve (tutor deleted since the result was cached) are dropped.
func (s *MatchingService) hydrate(ranking *model.MatchRanking, tutors []*model.Tutor, cacheHit bool) *model.MatchResponse {
	byID := make(map[string]*model.Tutor, len(tutors))
	for _, t := range tutors {
		byID[t.ID] = t
	}

	matches := make([]model.TutorMatch, 0, len(ranking.Matches))
	for _, m := range ranking.Matches {
		tutor, ok := byID[m.TutorID]
		if !ok {
			s.log.Debug().Str("tutor", m.TutorID).Msg("dropping stale tutor from cached ranking")
			continue
		}
		matches = append(matches, model.TutorMatch{
			Tutor: tutor,
			MatchDetails: model.MatchDetails{
				CompatibilityScore: m.FinalScore,
				Reasoning:          m.Reasoning,
				SubjectExplanation: m.SubjectExplanation,
			},
		})
	}

	return &model.MatchResponse{
		Success:  true,
		CacheHit: cacheHit,
		Matches:  matches,
	}
}

// cacheKey derives the content-hash key: any change to the learner's profile
// or the qualified tutor roster lands on a fresh key, so no explicit
// invalidation is needed.
func (s *MatchingService) cacheKey(learnerID string, tutors []*model.Tutor, profile *model.CognitiveProfile) string {
	ids := make([]string, 0, len(tutors))
	for _, t := range tutors {
		ids = append(ids, t.ID)
	}
	sort.Strings(ids)
	tutorsHash := shortHash(strings.Join(ids, "|"), 8)

	scores := profile.ParameterScores()
	parts := make([]string, 0, len(scores))
	for _, v := range scores {
		parts = append(parts, strconv.FormatFloat(v, 'f', 2, 64))
	}
	cognitiveHash := shortHash(strings.Join(parts, "|"), 8)

	keyData := fmt.Sprintf("match_%s_%s_%s", learnerID, tutorsHash, cognitiveHash)
	if s.timeBucket > 0 {
		keyData += fmt.Sprintf("_%d", time.Now().Truncate(s.timeBucket).Unix())
	}
	return shortHash(keyData, 16)
}

func shortHash(data string, n int) string {
	sum := md5.Sum([]byte(data))
	return fmt.Sprintf("%x", sum)[:n]
}
