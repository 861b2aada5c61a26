// Package ai builds prompts for the external AI judge and parses its
// responses into validated judgments.
package ai

import (
	"fmt"
	"strings"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
	"github.com/fairyhunter13/candidate-evaluator/pkg/textx"
)

// maxResumeChars bounds how much resume text is embedded in the prompt.
const maxResumeChars = 4000

// SystemPrompt is the judge's role and output contract.
const SystemPrompt = `You are a senior technical recruiter evaluating a job candidate against a job's requirements. You respond with ONLY valid JSON matching the requested structure. No reasoning, explanations, or chain-of-thought in your response.`

// categoryInstructions tailors the judge's focus per job family.
func categoryInstructions(category domain.JobCategory) string {
	switch category {
	case domain.CategoryDataScience:
		return "Weight statistical and ML skills, data tooling and algorithmic depth heavily."
	case domain.CategoryQAAutomation:
		return "Weight test automation frameworks, CI experience and defect-finding rigor heavily."
	case domain.CategoryNonTechnical, domain.CategoryBusiness:
		return "Weight domain expertise, communication and relevant business experience; ignore coding signals."
	default:
		return "Weight hands-on engineering skills, shipped projects and code activity heavily."
	}
}

// BuildJudgePrompt renders the user prompt: candidate summary, job summary,
// category-aware instructions and the confidence-computation contract the
// external service is expected to honor.
func BuildJudgePrompt(job domain.JobRequirement, profile domain.CandidateProfile, det domain.ScoringResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Job:\n- Title: %s\n- Category: %s\n- Required level: %s\n- Required skills: %s\n\n",
		job.Title, job.Category, job.Level, strings.Join(job.Skills, ", "))

	fmt.Fprintf(&b, "Candidate:\n- Skills: %s\n- Years of experience: %.1f\n",
		strings.Join(profile.Skills, ", "), profile.Years())
	for _, e := range profile.Experience {
		fmt.Fprintf(&b, "- Worked as %s at %s\n", e.Role, e.Company)
	}
	for _, ed := range profile.Education {
		fmt.Fprintf(&b, "- Education: %s, %s\n", ed.Degree, ed.Institution)
	}
	if len(profile.Certifications) > 0 {
		fmt.Fprintf(&b, "- Certifications: %s\n", strings.Join(profile.Certifications, ", "))
	}
	for _, p := range profile.Projects {
		fmt.Fprintf(&b, "- Project %q using %s\n", p.Name, strings.Join(p.TechStack, ", "))
	}
	if resume := textx.SanitizeText(profile.ResumeText); resume != "" {
		fmt.Fprintf(&b, "\nResume text:\n%s\n", textx.Truncate(resume, maxResumeChars))
	}

	fmt.Fprintf(&b, "\nDeterministic pre-screen: overall %d/100, skill match %.0f/100, %d risk factor(s).\n",
		det.OverallScore, det.Breakdown.SkillMatch, len(det.Risks))

	fmt.Fprintf(&b, "\nEvaluation focus: %s\n", categoryInstructions(domain.NormalizeCategory(string(job.Category))))

	b.WriteString(`
Compute your confidence (0-100) as follows:
- start from the candidate's skill coverage of the job's required skills, as a percentage
- adjust for experience alignment: full tier for within-range experience, partial tier otherwise
- adjust for signal reliability: full tier when resume, experience and projects are all present
- subtract 10 points for every risk factor you identify

CRITICAL: Respond with ONLY valid JSON following this structure:
{
  "overallScore": 72,
  "skillMatch": 80,
  "experienceScore": 70,
  "educationScore": 60,
  "projectAlignmentScore": 65,
  "confidenceLevel": "medium",
  "confidence": 62,
  "riskFactors": ["..."],
  "strengths": ["..."],
  "gaps": ["..."],
  "recommendation": "review",
  "summary": "Professional narrative summary",
  "interviewQuestions": ["..."],
  "improvementSuggestions": ["..."]
}

Rules:
- All scores: 0-100
- recommendation: one of select, review, reject
- confidenceLevel: one of low, medium, high
- NO reasoning, explanations, or chain-of-thought
`)
	return b.String()
}
