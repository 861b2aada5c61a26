package scoring

import "github.com/fairyhunter13/candidate-evaluator/internal/domain"

// Confidence level thresholds on the raw 0-100 confidence score.
const (
	confidenceHighMin   = 70
	confidenceMediumMin = 45
)

// confidence computes the raw confidence score and its level. The score is
// independent of the overall score: completeness of the input (40 max),
// consistency across sub-scores (20 max) and quality of the non-zero
// sub-scores (30 max).
func confidence(profile domain.CandidateProfile, b domain.ScoringBreakdown) (int, domain.ConfidenceLevel) {
	score := 0

	// Completeness of the underlying data.
	if len(profile.ResumeText) > 100 {
		score += 15
	}
	if len(profile.Skills) >= 3 {
		score += 10
	}
	if len(profile.Experience) >= 1 {
		score += 10
	}
	if profile.CodeActivityScore != nil {
		score += 5
	}

	// Consistency: how many factors produced signal at all.
	nonZero, sum := 0, 0.0
	for _, v := range []float64{
		b.SkillMatch, b.CodeActivity, b.Algorithmic, b.ExperienceFit,
		b.Education, b.ProfileComplete, b.ProjectRelevance, b.Readiness,
	} {
		if v > 0 {
			nonZero++
			sum += v
		}
	}
	switch {
	case nonZero >= 3:
		score += 20
	case nonZero >= 2:
		score += 10
	}

	// Quality: tiered on the mean of the non-zero sub-scores.
	mean := 0.0
	if nonZero > 0 {
		mean = sum / float64(nonZero)
	}
	switch {
	case mean >= 70:
		score += 30
	case mean >= 50:
		score += 20
	default:
		score += 10
	}

	return score, ConfidenceLevelFor(score)
}

// ConfidenceLevelFor buckets a raw confidence score into a level.
func ConfidenceLevelFor(score int) domain.ConfidenceLevel {
	switch {
	case score >= confidenceHighMin:
		return domain.ConfidenceHigh
	case score >= confidenceMediumMin:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
