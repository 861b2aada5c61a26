// Package usecase contains application business logic services.
package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/observability"
	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
	"github.com/fairyhunter13/candidate-evaluator/internal/scoring"
)

// Blend ratio: external AI score vs deterministic score when both exist.
const (
	aiBlendWeight  = 0.6
	detBlendWeight = 0.4
)

// maxBlendedItems caps the merged strengths/gaps/risks lists.
const maxBlendedItems = 5

// EvaluateService is the blending layer: it always computes the deterministic
// score first, then optionally merges an external AI judgment. Evaluate never
// fails for a well-formed job/candidate pair.
type EvaluateService struct {
	Engine     *scoring.Engine
	Judge      domain.JudgeClient
	Jobs       domain.JobRepository
	Candidates domain.CandidateRepository
	Readiness  domain.ReadinessProvider
}

// NewEvaluateService constructs an EvaluateService with its dependencies.
// Judge, Jobs, Candidates and Readiness may be nil; the service degrades to
// deterministic-only or direct-input evaluation accordingly.
func NewEvaluateService(engine *scoring.Engine, judge domain.JudgeClient, jobs domain.JobRepository, candidates domain.CandidateRepository, readiness domain.ReadinessProvider) EvaluateService {
	return EvaluateService{Engine: engine, Judge: judge, Jobs: jobs, Candidates: candidates, Readiness: readiness}
}

// Evaluate produces a blended evaluation for one candidate against one job.
// The deterministic result is the resilience floor: any AI failure is caught
// here and the deterministic result is returned instead.
func (s EvaluateService) Evaluate(ctx domain.Context, job domain.JobRequirement, profile domain.CandidateProfile) domain.BlendedEvaluation {
	start := time.Now()
	det := s.Engine.Score(job, profile)

	if s.Judge == nil || !s.Judge.Enabled() {
		ev := s.deterministicOnly(det, job)
		observability.ObserveEvaluation(string(job.Category), string(ev.Recommendation), "deterministic", ev.OverallScore, time.Since(start).Seconds())
		return ev
	}

	judgment, err := s.Judge.Judge(ctx, job, profile, det)
	if err != nil {
		slog.Warn("ai judge failed, falling back to deterministic result",
			slog.String("job_title", job.Title),
			slog.Any("error", err))
		observability.AIFallbacksTotal.Inc()
		ev := s.deterministicOnly(det, job)
		observability.ObserveEvaluation(string(job.Category), string(ev.Recommendation), "fallback", ev.OverallScore, time.Since(start).Seconds())
		return ev
	}

	ev := blend(det, judgment)
	observability.ObserveEvaluation(string(job.Category), string(ev.Recommendation), "blended", ev.OverallScore, time.Since(start).Seconds())
	slog.Info("evaluation blended",
		slog.String("id", ev.ID),
		slog.Int("deterministic", det.OverallScore),
		slog.Float64("ai", judgment.OverallScore),
		slog.Int("blended", ev.OverallScore))
	return ev
}

// deterministicOnly maps the deterministic result into the blended shape,
// synthesizing the narrative fields.
func (s EvaluateService) deterministicOnly(det domain.ScoringResult, job domain.JobRequirement) domain.BlendedEvaluation {
	topStrength := "a balanced profile"
	if len(det.Strengths) > 0 {
		topStrength = det.Strengths[0]
	}
	questions := make([]string, 0, 2)
	suggestions := make([]string, 0, len(det.Gaps))
	for _, gap := range det.Gaps {
		skill := strings.TrimSuffix(gap, " experience")
		if len(questions) < 2 {
			questions = append(questions, fmt.Sprintf("Tell us about any exposure you have had to %s.", skill))
		}
		suggestions = append(suggestions, fmt.Sprintf("Build demonstrable experience with %s.", skill))
	}
	return domain.BlendedEvaluation{
		ID:                     ulid.Make().String(),
		ScoringResult:          det,
		AISummary:              fmt.Sprintf("Scored %d/100 for the %s role; notable: %s.", det.OverallScore, job.Title, topStrength),
		InterviewQuestions:     questions,
		ImprovementSuggestions: suggestions,
		AIUsed:                 false,
		CreatedAt:              time.Now().UTC(),
	}
}

// blend merges the deterministic result with a validated AI judgment.
func blend(det domain.ScoringResult, j domain.AIJudgment) domain.BlendedEvaluation {
	blended := int(math.Round(aiBlendWeight*j.OverallScore + detBlendWeight*float64(det.OverallScore)))

	risks := mergeRisks(det.Risks, j.RiskFactors)
	result := domain.ScoringResult{
		OverallScore:    blended,
		ConfidenceScore: int(math.Round(j.Confidence)),
		Risks:           risks,
		Breakdown:       det.Breakdown,
		Strengths:       mergeUnique(det.Strengths, j.Strengths),
		Gaps:            mergeUnique(det.Gaps, j.Gaps),
	}
	if j.ConfidenceLevel != "" {
		result.ConfidenceLevel = domain.ConfidenceLevel(j.ConfidenceLevel)
	} else {
		switch {
		case j.Confidence >= 70:
			result.ConfidenceLevel = domain.ConfidenceHigh
		case j.Confidence >= 50:
			result.ConfidenceLevel = domain.ConfidenceMedium
		default:
			result.ConfidenceLevel = domain.ConfidenceLow
		}
	}
	result.Recommendation = scoring.Recommend(blended, result.BlockerCount())

	ev := domain.BlendedEvaluation{
		ID:                     ulid.Make().String(),
		ScoringResult:          result,
		AISummary:              j.Summary,
		InterviewQuestions:     j.InterviewQuestions,
		ImprovementSuggestions: j.ImprovementSuggestions,
		AIUsed:                 true,
		CreatedAt:              time.Now().UTC(),
	}
	// Deterministic equivalents backfill absent AI narrative fields.
	if ev.AISummary == "" {
		top := "a balanced profile"
		if len(result.Strengths) > 0 {
			top = result.Strengths[0]
		}
		ev.AISummary = fmt.Sprintf("Scored %d/100; notable: %s.", blended, top)
	}
	if len(ev.InterviewQuestions) == 0 {
		for _, gap := range result.Gaps {
			ev.InterviewQuestions = append(ev.InterviewQuestions, fmt.Sprintf("Tell us about any exposure you have had to %s.", strings.TrimSuffix(gap, " experience")))
			if len(ev.InterviewQuestions) == 2 {
				break
			}
		}
	}
	if len(ev.ImprovementSuggestions) == 0 {
		for _, gap := range result.Gaps {
			ev.ImprovementSuggestions = append(ev.ImprovementSuggestions, fmt.Sprintf("Build demonstrable experience with %s.", strings.TrimSuffix(gap, " experience")))
		}
	}
	return ev
}

// mergeUnique unions two string lists, de-duplicated case-insensitively and
// capped at maxBlendedItems, deterministic side first.
func mergeUnique(det, ai []string) []string {
	out := make([]string, 0, maxBlendedItems)
	seen := make(map[string]bool, maxBlendedItems)
	for _, list := range [][]string{det, ai} {
		for _, item := range list {
			item = strings.TrimSpace(item)
			key := strings.ToLower(item)
			if item == "" || seen[key] || len(out) >= maxBlendedItems {
				continue
			}
			seen[key] = true
			out = append(out, item)
		}
	}
	return out
}

// mergeRisks unions deterministic risk factors with AI-reported risk strings
// (carried as concerns), de-duplicated by message and capped.
func mergeRisks(det []domain.RiskFactor, ai []string) []domain.RiskFactor {
	out := make([]domain.RiskFactor, 0, maxBlendedItems)
	seen := make(map[string]bool, maxBlendedItems)
	for _, r := range det {
		key := strings.ToLower(strings.TrimSpace(r.Message))
		if key == "" || seen[key] || len(out) >= maxBlendedItems {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	for _, msg := range ai {
		msg = strings.TrimSpace(msg)
		key := strings.ToLower(msg)
		if msg == "" || seen[key] || len(out) >= maxBlendedItems {
			continue
		}
		seen[key] = true
		out = append(out, domain.RiskFactor{Severity: domain.SeverityConcern, Message: msg, Category: domain.RiskProfile})
	}
	return out
}

// EvaluateByID resolves job, candidate and readiness signal via the
// collaborator ports, then evaluates.
func (s EvaluateService) EvaluateByID(ctx domain.Context, jobID, candidateID string) (domain.BlendedEvaluation, error) {
	if s.Jobs == nil || s.Candidates == nil {
		return domain.BlendedEvaluation{}, fmt.Errorf("%w: repositories not configured", domain.ErrInvalidArgument)
	}
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return domain.BlendedEvaluation{}, fmt.Errorf("get job %s: %w", jobID, err)
	}
	profile, err := s.Candidates.Get(ctx, candidateID)
	if err != nil {
		return domain.BlendedEvaluation{}, fmt.Errorf("get candidate %s: %w", candidateID, err)
	}
	if profile.ReadinessScore == nil && s.Readiness != nil {
		score, ok, rerr := s.Readiness.LatestScore(ctx, candidateID)
		if rerr != nil {
			// Readiness is an optional signal; absence is neutral, not fatal.
			slog.Warn("readiness lookup failed", slog.String("candidate_id", candidateID), slog.Any("error", rerr))
		} else if ok {
			profile.ReadinessScore = &score
		}
	}
	return s.Evaluate(ctx, job, profile), nil
}
