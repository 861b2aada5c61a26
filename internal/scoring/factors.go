package scoring

import (
	"math"
	"regexp"
	"strings"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
	"github.com/fairyhunter13/candidate-evaluator/internal/skillnorm"
)

// clamp keeps a sub-score inside [0,100]. Out-of-range values are clamped
// silently, never rejected.
func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// bucketTier re-buckets a raw 0-100 score into coarse tiers to dampen noise
// from near-miss percentages.
func bucketTier(raw float64) float64 {
	switch {
	case raw >= 80:
		return 100
	case raw >= 60:
		return 85
	case raw >= 40:
		return 70
	case raw >= 20:
		return 50
	default:
		return 30
	}
}

// skillMatchScore buckets the set-overlap score of required vs candidate skills.
func skillMatchScore(required, candidate []string) float64 {
	return bucketTier(float64(skillnorm.MatchSet(required, candidate).Score))
}

// signalScore buckets an optional external 0-100 signal. An absent signal or
// a zero-weight factor scores 0 so the weighted sum and risk rules see the gap.
func signalScore(signal *float64, weight float64) float64 {
	if weight <= 0 || signal == nil {
		return 0
	}
	return bucketTier(clamp(*signal))
}

// levelRange maps a required experience level to its [min,max] year range.
// Senior has no upper bound.
func levelRange(level domain.ExperienceLevel) (min, max float64) {
	switch level {
	case domain.LevelFresher:
		return 0, 1
	case domain.LevelJunior:
		return 1, 3
	case domain.LevelSenior:
		return 6, math.Inf(1)
	default:
		return 3, 6
	}
}

// experienceFitScore grades candidate years against the job's level range.
// Inside the range is a perfect fit; slightly over or under degrades gently,
// far under degrades hard.
func experienceFitScore(level domain.ExperienceLevel, years float64) float64 {
	min, max := levelRange(level)
	switch {
	case years >= min && years <= max:
		return 100
	case years > max && years <= max+3:
		return 90
	case years < min && years >= min-1:
		return 75
	case years > max+3:
		return 70
	case years < min-1:
		return 40
	default:
		return 50
	}
}

var (
	postgradPattern = regexp.MustCompile(`(?i)\b(master|msc|m\.sc|mca|phd|ph\.d)\b`)
	bachelorPattern = regexp.MustCompile(`(?i)\b(bachelor|bsc|b\.sc|btech|b\.tech|bca|b\.e)\b`)
)

// educationScore accumulates degree and certification strength.
func educationScore(education []domain.EducationEntry, certifications []string) float64 {
	score := 20.0
	if len(education) > 0 || len(certifications) > 0 {
		score = 40
	}
	postgrad, bachelor := false, false
	for _, e := range education {
		if postgradPattern.MatchString(e.Degree) {
			postgrad = true
		}
		if bachelorPattern.MatchString(e.Degree) {
			bachelor = true
		}
	}
	if postgrad {
		score += 30
	} else if bachelor {
		score += 20
	}
	if extra := len(education) - 1; extra > 0 {
		score += math.Min(float64(extra)*10, 20)
	}
	if len(certifications) > 0 {
		score += math.Min(float64(len(certifications))*5, 20)
	}
	return clamp(score)
}

// completenessScore is a weighted checklist over the profile's fields.
// The weights sum to 100 by construction.
func completenessScore(p domain.CandidateProfile) float64 {
	score := 0.0
	if len(p.Skills) > 0 {
		score += 20
	}
	if strings.TrimSpace(p.ResumeText) != "" {
		score += 20
	}
	if len(p.Experience) > 0 {
		score += 15
	}
	if len(p.Education) > 0 {
		score += 15
	}
	if p.GitHubHandle != "" {
		score += 10
	}
	if p.LinkedInURL != "" {
		score += 5
	}
	if p.PortfolioURL != "" {
		score += 5
	}
	if len(p.Projects) > 0 {
		score += 10
	}
	return score
}

// projectRelevanceScore averages the tech-stack overlap of projects that share
// at least one skill with the job, plus a capped per-relevant-project bonus.
func projectRelevanceScore(jobSkills []string, projects []domain.Project) float64 {
	if len(projects) == 0 {
		return 0
	}
	var relevant int
	var sum float64
	for _, proj := range projects {
		res := skillnorm.MatchSet(jobSkills, proj.TechStack)
		if len(res.Matched) > 0 {
			relevant++
			sum += float64(res.Score)
		}
	}
	if relevant == 0 {
		return 0
	}
	bonus := math.Min(float64(relevant)*5, 20)
	return clamp(sum/float64(relevant) + bonus)
}
