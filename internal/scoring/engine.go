// Package scoring implements the deterministic candidate scoring engine:
// eight independent 0-100 sub-scores combined with category-specific weights
// into an overall score, confidence, risk factors, strengths, gaps and a
// recommendation. The engine is total: it never fails for well-typed inputs
// and has no network dependency.
package scoring

import (
	"log/slog"
	"math"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

// Recommendation thresholds, shared with the blending layer.
const (
	SelectThreshold = 75
	ReviewThreshold = 50
)

// Engine scores a candidate profile against a job requirement.
type Engine struct {
	weights map[domain.JobCategory]Weights
}

// New constructs an Engine from the embedded weight table.
func New() (*Engine, error) {
	table, err := loadWeights()
	if err != nil {
		return nil, err
	}
	return &Engine{weights: table}, nil
}

// WeightsFor returns the weight row for a category, defaulting unknown
// categories to the software row.
func (e *Engine) WeightsFor(category domain.JobCategory) Weights {
	if w, ok := e.weights[category]; ok {
		return w
	}
	return e.weights[domain.CategorySoftware]
}

// Score evaluates a candidate against a job and returns the full deterministic
// result. Missing optional profile fields drive the relevant sub-score to 0,
// which is then surfaced as a risk factor rather than an error.
func (e *Engine) Score(job domain.JobRequirement, profile domain.CandidateProfile) domain.ScoringResult {
	w := e.WeightsFor(domain.NormalizeCategory(string(job.Category)))

	breakdown := domain.ScoringBreakdown{
		SkillMatch:       skillMatchScore(job.Skills, profile.Skills),
		CodeActivity:     signalScore(profile.CodeActivityScore, w.Activity),
		Algorithmic:      signalScore(profile.AlgorithmicScore, w.Algorithmic),
		ExperienceFit:    experienceFitScore(domain.NormalizeLevel(string(job.Level)), profile.Years()),
		Education:        educationScore(profile.Education, profile.Certifications),
		ProfileComplete:  completenessScore(profile),
		ProjectRelevance: projectRelevanceScore(job.Skills, profile.Projects),
		Readiness:        clamp(profile.Readiness()),
	}
	if w.Projects <= 0 {
		breakdown.ProjectRelevance = 0
	}

	overall := int(math.Round((breakdown.SkillMatch*w.Skills +
		breakdown.CodeActivity*w.Activity +
		breakdown.Algorithmic*w.Algorithmic +
		breakdown.ExperienceFit*w.Experience +
		breakdown.ProjectRelevance*w.Projects +
		breakdown.Education*w.Education +
		breakdown.ProfileComplete*w.Profile +
		breakdown.Readiness*w.Readiness) / 100))

	confScore, confLevel := confidence(profile, breakdown)
	risks := riskFactors(job, profile, breakdown, w)

	result := domain.ScoringResult{
		OverallScore:    overall,
		ConfidenceLevel: confLevel,
		ConfidenceScore: confScore,
		Risks:           risks,
		Breakdown:       breakdown,
		Strengths:       strengths(breakdown, w),
		Gaps:            gaps(job.Skills, profile.Skills),
	}
	result.Recommendation = Recommend(overall, result.BlockerCount())

	slog.Debug("deterministic score computed",
		slog.String("job_title", job.Title),
		slog.String("category", string(job.Category)),
		slog.Int("overall", overall),
		slog.Int("confidence", confScore),
		slog.Int("risks", len(risks)),
		slog.String("recommendation", string(result.Recommendation)))
	return result
}

// Recommend derives the hiring recommendation from an overall score and the
// number of blocker-severity risks. The blending layer reuses it for blended
// scores.
func Recommend(overall, blockers int) domain.Recommendation {
	switch {
	case overall >= SelectThreshold && blockers == 0:
		return domain.RecommendSelect
	case overall >= ReviewThreshold || blockers <= 1:
		return domain.RecommendReview
	default:
		return domain.RecommendReject
	}
}
