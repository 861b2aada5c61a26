// Package stub provides a fast, deterministic AI judge for local use and
// tests: no network, judgments derived from hashed inputs.
package stub

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

// Client implements domain.JudgeClient deterministically.
type Client struct{}

// New constructs a stub judge client.
func New() *Client { return &Client{} }

// Enabled always reports true; the stub needs no credentials.
func (c *Client) Enabled() bool { return true }

// Judge derives a judgment from the deterministic result, nudged by a hash of
// the inputs so distinct candidates produce distinct judgments.
func (c *Client) Judge(_ domain.Context, job domain.JobRequirement, profile domain.CandidateProfile, det domain.ScoringResult) (domain.AIJudgment, error) {
	nudge := float64(hashMod(strings.Join(profile.Skills, ",")+"|"+job.Title, 11)) - 5 // [-5, +5]
	overall := clamp(float64(det.OverallScore) + nudge)

	level := "low"
	switch {
	case det.ConfidenceScore >= 70:
		level = "high"
	case det.ConfidenceScore >= 50:
		level = "medium"
	}

	topSkill := "the required stack"
	if len(job.Skills) > 0 {
		topSkill = job.Skills[0]
	}
	return domain.AIJudgment{
		OverallScore:     overall,
		SkillMatch:       det.Breakdown.SkillMatch,
		ExperienceScore:  det.Breakdown.ExperienceFit,
		EducationScore:   det.Breakdown.Education,
		ProjectAlignment: det.Breakdown.ProjectRelevance,
		ConfidenceLevel:  level,
		Confidence:       clamp(float64(det.ConfidenceScore) + nudge),
		Strengths:        det.Strengths,
		Gaps:             det.Gaps,
		Recommendation:   string(det.Recommendation),
		Summary:          fmt.Sprintf("Candidate scores %.0f/100 for the %s role.", overall, job.Title),
		InterviewQuestions: []string{
			fmt.Sprintf("Describe a project where you used %s in production.", topSkill),
			"Walk through a technical decision you later reversed, and why.",
		},
		ImprovementSuggestions: []string{
			fmt.Sprintf("Deepen hands-on experience with %s.", topSkill),
		},
	}, nil
}

func hashMod(s string, mod uint32) uint32 {
	h := sha1.Sum([]byte(s))
	return binary.BigEndian.Uint32(h[:4]) % mod
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
