package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	"edumatch/internal/config"
	"edumatch/internal/model"
	"edumatch/internal/scoring"
)

const maxRankedMatches = 3

// TutorRanker produces the final ranking for a scored candidate set. An error
// from Rank means the caller should use the deterministic fallback; a nil
// error guarantees a valid, non-empty ranking.
type TutorRanker interface {
	Rank(ctx context.Context, learner *model.Learner, traits scoring.MatcherTraits, candidates []model.TutorCandidate) ([]model.RankedMatch, error)
}

// GeminiRanker ranks candidates via the Gemini API. A circuit breaker guards
// the upstream so a flapping model degrades to the fallback quickly instead
// of burning the request timeout on every match.
type GeminiRanker struct {
	config  *config.AIConfig
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[[]model.RankedMatch]
	log     zerolog.Logger
}

// NewGeminiRanker creates a Gemini-backed ranker.
func NewGeminiRanker(cfg *config.AIConfig, log zerolog.Logger) *GeminiRanker {
	breaker := gobreaker.NewCircuitBreaker[[]model.RankedMatch](gobreaker.Settings{
		Name:    "gemini-ranker",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &GeminiRanker{
		config:  cfg,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond},
		breaker: breaker,
		log:     log,
	}
}

// Rank asks the ranking model for the top matches and validates the response
// against the candidate set.
func (r *GeminiRanker) Rank(ctx context.Context, learner *model.Learner, traits scoring.MatcherTraits, candidates []model.TutorCandidate) ([]model.RankedMatch, error) {
	if !r.config.IsEnabled() {
		return nil, fmt.Errorf("ranking model not configured")
	}

	prompt := buildRankingPrompt(learner, traits, candidates)

	return r.breaker.Execute(func() ([]model.RankedMatch, error) {
		response, err := r.callGemini(ctx, prompt)
		if err != nil {
			return nil, err
		}
		matches, err := parseRankingResponse(response, candidates)
		if err != nil {
			r.log.Warn().Err(err).Msg("ranking model returned invalid output")
			return nil, err
		}
		return matches, nil
	})
}

// buildRankingPrompt renders the compact matching prompt: one line of learner
// traits, one line per candidate with its precomputed scores and pedagogy.
func buildRankingPrompt(learner *model.Learner, traits scoring.MatcherTraits, candidates []model.TutorCandidate) string {
	var tutors strings.Builder
	for i, c := range candidates {
		pedagogy := ""
		if c.Tutor != nil {
			m := c.Tutor.Pedagogy.Map()
			pairs := make([]string, 0, len(m))
			for _, k := range []string{"tcs", "tspi", "twmls", "tpo", "tecp", "tet", "tics", "trd"} {
				pairs = append(pairs, fmt.Sprintf("%s:%s", k, m[k]))
			}
			pedagogy = strings.Join(pairs, ",")
		}
		tutors.WriteString(fmt.Sprintf(
			"%d. %s (cog:%.1f/10, subj:%.1f/10, price:%.0f) subjects:%q pedagogy:%q\n",
			i+1, c.ID, c.CognitiveScore, c.SubjectScore, c.Price, c.Subjects, pedagogy))
	}

	subjects, _ := json.Marshal(model.ParseSubjects(learner.Subjects))

	return fmt.Sprintf(`You are a tutor-student matching expert. Rank tutors by cognitive+subject compatibility+price.

Student: confidence=%.1f, anxiety=%.1f, processing_speed=%.1f, working_memory=%.1f, precision=%.1f, error_correction=%.1f, exploration=%.1f, impulsivity=%.1f, reasoning=%.1f
Subjects: %s

Tutors (cognitive_score/10, subject_score/10):
%s
Subject matching rules:
- Handle variations: Maths=Mathematics, Science=Physics/Chemistry/Biology
- Partial overlap allowed, reward close matches
- Consider semantic similarity

Return top 3 as JSON:
{"matches":[{"tutor_id":"id","final_score":85,"reasoning":"High TCS matches low confidence (3). TSPI suits slow processing (2). Strong subject match.","subject_explanation":"Maths matches Mathematics expertise"}]}

Rank by: 1)Cognitive compatibility 2)Subject overlap 3)Lower price for ties. Be concise but clear.`,
		traits.Confidence, traits.Anxiety, traits.ProcessingSpeed, traits.WorkingMemory,
		traits.Precision, traits.ErrorCorrection, traits.Exploration, traits.Impulsivity,
		traits.Reasoning, subjects, tutors.String())
}

// parseRankingResponse validates model output: known tutor ids only, no
// duplicates, scores in range, at most three matches.
func parseRankingResponse(response string, candidates []model.TutorCandidate) ([]model.RankedMatch, error) {
	var parsed struct {
		Matches []model.RankedMatch `json:"matches"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil, fmt.Errorf("invalid ranking JSON: %w", err)
	}
	if len(parsed.Matches) == 0 {
		return nil, fmt.Errorf("ranking response contains no matches")
	}

	known := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		known[c.ID] = true
	}

	seen := make(map[string]bool, len(parsed.Matches))
	for _, m := range parsed.Matches {
		if !known[m.TutorID] {
			return nil, fmt.Errorf("ranking references unknown tutor %q", m.TutorID)
		}
		if seen[m.TutorID] {
			return nil, fmt.Errorf("ranking repeats tutor %q", m.TutorID)
		}
		seen[m.TutorID] = true
		if m.FinalScore < 0 || m.FinalScore > 100 {
			return nil, fmt.Errorf("final score %.1f out of range for tutor %q", m.FinalScore, m.TutorID)
		}
	}

	if len(parsed.Matches) > maxRankedMatches {
		parsed.Matches = parsed.Matches[:maxRankedMatches]
	}
	return parsed.Matches, nil
}

// callGemini makes a request to the Gemini API.
func (r *GeminiRanker) callGemini(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"responseMimeType": "application/json",
			"maxOutputTokens":  r.config.MaxTokens,
			"temperature":      r.config.Temperature,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s?key=%s", r.config.ModelEndpoint(), r.config.APIKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("ranking API error %d: %s", resp.StatusCode, string(body))
	}

	var geminiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", err
	}

	if len(geminiResp.Candidates) > 0 && len(geminiResp.Candidates[0].Content.Parts) > 0 {
		return geminiResp.Candidates[0].Content.Parts[0].Text, nil
	}

	return "", fmt.Errorf("empty response from ranking model")
}
