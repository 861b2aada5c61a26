package scoring

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
	"github.com/fairyhunter13/candidate-evaluator/internal/skillnorm"
)

// riskFactors applies one threshold rule per factor. Signal rules (activity,
// algorithmic) and project rules only fire when the category weights the
// factor non-zero, so non-technical roles are not flagged for signals they
// are never scored on.
func riskFactors(job domain.JobRequirement, profile domain.CandidateProfile, b domain.ScoringBreakdown, w Weights) []domain.RiskFactor {
	risks := []domain.RiskFactor{}

	switch {
	case b.SkillMatch < 50:
		risks = append(risks, domain.RiskFactor{
			Severity: domain.SeverityBlocker,
			Message:  "significant skill gap against the required skill set",
			Category: domain.RiskSkills,
		})
	case b.SkillMatch < 70:
		risks = append(risks, domain.RiskFactor{
			Severity: domain.SeverityWarning,
			Message:  "partial skill coverage; several required skills unmatched",
			Category: domain.RiskSkills,
		})
	}

	if w.Activity > 0 && b.CodeActivity == 0 {
		risks = append(risks, domain.RiskFactor{
			Severity: domain.SeverityConcern,
			Message:  "no code activity signal available",
			Category: domain.RiskActivity,
		})
	}
	if w.Algorithmic > 0 && b.Algorithmic == 0 {
		risks = append(risks, domain.RiskFactor{
			Severity: domain.SeverityConcern,
			Message:  "no algorithmic problem-solving signal available",
			Category: domain.RiskActivity,
		})
	}

	if b.ExperienceFit < 40 {
		risks = append(risks, domain.RiskFactor{
			Severity: domain.SeverityBlocker,
			Message:  fmt.Sprintf("experience does not meet the %s level required for this role", domain.NormalizeLevel(string(job.Level))),
			Category: domain.RiskExperience,
		})
	}

	if b.ProfileComplete < 60 {
		risks = append(risks, domain.RiskFactor{
			Severity: domain.SeverityWarning,
			Message:  "profile is largely incomplete",
			Category: domain.RiskProfile,
		})
	}

	if w.Projects > 0 {
		if len(profile.Projects) == 0 {
			risks = append(risks, domain.RiskFactor{
				Severity: domain.SeverityConcern,
				Message:  "no projects listed on the profile",
				Category: domain.RiskProfile,
			})
		} else if b.ProjectRelevance < 30 {
			risks = append(risks, domain.RiskFactor{
				Severity: domain.SeverityWarning,
				Message:  "project tech stacks do not match the role's requirements",
				Category: domain.RiskSkills,
			})
		}
	}

	if len(strings.TrimSpace(profile.ResumeText)) < 100 {
		risks = append(risks, domain.RiskFactor{
			Severity: domain.SeverityConcern,
			Message:  "resume text is missing or too short to evaluate",
			Category: domain.RiskProfile,
		})
	}

	return risks
}

// strengths mirrors the risk thresholds: high sub-scores become positive
// statements. Signal strengths respect the same weight gating as risks.
func strengths(b domain.ScoringBreakdown, w Weights) []string {
	out := []string{}
	if b.SkillMatch >= 85 {
		out = append(out, "strong alignment with the required skill set")
	}
	if w.Activity > 0 && b.CodeActivity >= 85 {
		out = append(out, "consistent code activity signal")
	}
	if w.Algorithmic > 0 && b.Algorithmic >= 85 {
		out = append(out, "strong algorithmic problem-solving signal")
	}
	if b.ExperienceFit >= 90 {
		out = append(out, "experience level fits the role")
	}
	if b.Education >= 70 {
		out = append(out, "solid educational background")
	}
	if b.ProfileComplete >= 80 {
		out = append(out, "complete, well-rounded profile")
	}
	if w.Projects > 0 && b.ProjectRelevance >= 70 {
		out = append(out, "projects closely aligned with the role's tech stack")
	}
	if b.Readiness >= 70 {
		out = append(out, "high external readiness assessment")
	}
	return out
}

// maxGaps caps how many missing skills are reported.
const maxGaps = 5

// gaps lists the required skills absent from the candidate's normalized skill
// set, capped to the first maxGaps, each rendered as "<skill> experience".
func gaps(required, candidate []string) []string {
	missing := skillnorm.MatchSet(required, candidate).Missing
	if len(missing) > maxGaps {
		missing = missing[:maxGaps]
	}
	out := make([]string, 0, len(missing))
	for _, skill := range missing {
		out = append(out, skill+" experience")
	}
	return out
}
