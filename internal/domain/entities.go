// Package domain holds the core entities and ports of the candidate evaluator.
package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNotFound          = errors.New("not found")
	ErrJudgeDisabled     = errors.New("ai judge disabled")
	ErrUpstreamTimeout   = errors.New("upstream timeout")
	ErrUpstreamRateLimit = errors.New("upstream rate limit")
	ErrSchemaInvalid     = errors.New("schema invalid")
	ErrInternal          = errors.New("internal error")
)

// JobCategory enumerates the job families the weight table knows about.
type JobCategory string

const (
	CategorySoftware     JobCategory = "software"
	CategoryDataScience  JobCategory = "data-science"
	CategoryQAAutomation JobCategory = "qa-automation"
	CategoryNonTechnical JobCategory = "non-technical"
	CategoryBusiness     JobCategory = "business"
)

// NormalizeCategory maps an arbitrary category string onto a known category.
// Unknown categories default to software so scoring always has a weight row.
func NormalizeCategory(s string) JobCategory {
	switch JobCategory(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryDataScience:
		return CategoryDataScience
	case CategoryQAAutomation:
		return CategoryQAAutomation
	case CategoryNonTechnical:
		return CategoryNonTechnical
	case CategoryBusiness:
		return CategoryBusiness
	default:
		return CategorySoftware
	}
}

// ExperienceLevel enumerates required seniority for a job.
type ExperienceLevel string

const (
	LevelFresher ExperienceLevel = "fresher"
	LevelJunior  ExperienceLevel = "junior"
	LevelMid     ExperienceLevel = "mid"
	LevelSenior  ExperienceLevel = "senior"
)

// NormalizeLevel maps an arbitrary level string onto a known level.
// Legacy aliases: entry -> fresher, lead -> senior. Unknown -> mid.
func NormalizeLevel(s string) ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fresher", "entry":
		return LevelFresher
	case "junior":
		return LevelJunior
	case "senior", "lead":
		return LevelSenior
	default:
		return LevelMid
	}
}

// JobRequirement is the immutable job side of an evaluation.
type JobRequirement struct {
	ID       string          `json:"id,omitempty"`
	Title    string          `json:"title"`
	Category JobCategory     `json:"category"`
	Level    ExperienceLevel `json:"experience_level"`
	Skills   []string        `json:"skills"`
}

// ExperienceEntry is one period of work history.
type ExperienceEntry struct {
	Company   string     `json:"company"`
	Role      string     `json:"role"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Current   bool       `json:"current,omitempty"`
}

// EducationEntry is one degree or diploma.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        int    `json:"year,omitempty"`
}

// Project is a candidate project with its technology stack.
type Project struct {
	Name      string   `json:"name"`
	TechStack []string `json:"tech_stack"`
}

// NeutralReadinessScore is the "no signal" readiness default.
const NeutralReadinessScore = 50

// CandidateProfile is the immutable candidate side of an evaluation.
// Optional numeric signals are pointers; nil means the signal is absent.
type CandidateProfile struct {
	ID             string            `json:"id,omitempty"`
	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Certifications []string          `json:"certifications"`
	Projects       []Project         `json:"projects"`
	YearsOfExp     *float64          `json:"years_of_experience,omitempty"`
	ResumeText     string            `json:"resume_text,omitempty"`
	GitHubHandle   string            `json:"github_handle,omitempty"`
	LinkedInURL    string            `json:"linkedin_url,omitempty"`
	PortfolioURL   string            `json:"portfolio_url,omitempty"`
	// External signals, all 0-100 when present.
	CodeActivityScore *float64 `json:"code_activity_score,omitempty"`
	AlgorithmicScore  *float64 `json:"algorithmic_score,omitempty"`
	ReadinessScore    *float64 `json:"readiness_score,omitempty"`
}

// Years returns the candidate's years of experience, approximated from the
// experience entry count when the explicit field is absent.
func (p CandidateProfile) Years() float64 {
	if p.YearsOfExp != nil {
		return *p.YearsOfExp
	}
	return float64(len(p.Experience))
}

// Readiness returns the external readiness signal, or the neutral default.
func (p CandidateProfile) Readiness() float64 {
	if p.ReadinessScore != nil {
		return *p.ReadinessScore
	}
	return NeutralReadinessScore
}

// ScoringBreakdown carries every per-factor sub-score, clamped to [0,100].
// Factors the job category does not weight are present with value 0.
type ScoringBreakdown struct {
	SkillMatch       float64 `json:"skill_match"`
	CodeActivity     float64 `json:"code_activity"`
	Algorithmic      float64 `json:"algorithmic"`
	ExperienceFit    float64 `json:"experience_fit"`
	Education        float64 `json:"education"`
	ProfileComplete  float64 `json:"profile_completeness"`
	ProjectRelevance float64 `json:"project_relevance"`
	Readiness        float64 `json:"readiness"`
}

// RiskSeverity orders how strongly a risk blocks a select recommendation.
type RiskSeverity string

const (
	SeverityWarning RiskSeverity = "warning"
	SeverityConcern RiskSeverity = "concern"
	SeverityBlocker RiskSeverity = "blocker"
)

// RiskCategory groups risk factors by the profile area they concern.
type RiskCategory string

const (
	RiskSkills     RiskCategory = "skills"
	RiskExperience RiskCategory = "experience"
	RiskActivity   RiskCategory = "activity"
	RiskProfile    RiskCategory = "profile"
)

// RiskFactor is a single rule-derived risk attached to a ScoringResult.
type RiskFactor struct {
	Severity RiskSeverity `json:"severity"`
	Message  string       `json:"message"`
	Category RiskCategory `json:"category"`
}

// ConfidenceLevel buckets the raw confidence score.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// Recommendation is the final hiring suggestion for one evaluation.
type Recommendation string

const (
	RecommendSelect Recommendation = "select"
	RecommendReview Recommendation = "review"
	RecommendReject Recommendation = "reject"
)

// ScoringResult is the deterministic engine output.
type ScoringResult struct {
	OverallScore    int              `json:"overall_score"`
	ConfidenceLevel ConfidenceLevel  `json:"confidence_level"`
	ConfidenceScore int              `json:"confidence_score"`
	Risks           []RiskFactor     `json:"risk_factors"`
	Breakdown       ScoringBreakdown `json:"breakdown"`
	Strengths       []string         `json:"strengths"`
	Gaps            []string         `json:"gaps"`
	Recommendation  Recommendation   `json:"recommendation"`
}

// BlockerCount reports how many blocker-severity risks the result carries.
func (r ScoringResult) BlockerCount() int {
	n := 0
	for _, rf := range r.Risks {
		if rf.Severity == SeverityBlocker {
			n++
		}
	}
	return n
}

// AIJudgment is the structured response contract of the external AI judge.
// Validation tags enforce the schema before a judgment is blended; a judgment
// that fails validation is treated like a network failure.
type AIJudgment struct {
	OverallScore           float64  `json:"overallScore" validate:"gte=0,lte=100"`
	SkillMatch             float64  `json:"skillMatch" validate:"gte=0,lte=100"`
	ExperienceScore        float64  `json:"experienceScore" validate:"gte=0,lte=100"`
	EducationScore         float64  `json:"educationScore" validate:"gte=0,lte=100"`
	ProjectAlignment       float64  `json:"projectAlignmentScore" validate:"gte=0,lte=100"`
	ConfidenceLevel        string   `json:"confidenceLevel" validate:"omitempty,oneof=low medium high"`
	Confidence             float64  `json:"confidence" validate:"gte=0,lte=100"`
	RiskFactors            []string `json:"riskFactors"`
	Strengths              []string `json:"strengths"`
	Gaps                   []string `json:"gaps"`
	Recommendation         string   `json:"recommendation" validate:"omitempty,oneof=select review reject"`
	Summary                string   `json:"summary"`
	InterviewQuestions     []string `json:"interviewQuestions"`
	ImprovementSuggestions []string `json:"improvementSuggestions"`
}

// BlendedEvaluation is the unified output of the blending layer: the
// deterministic result, optionally merged with the AI judgment.
type BlendedEvaluation struct {
	ID string `json:"id"`
	ScoringResult
	AISummary              string    `json:"ai_summary,omitempty"`
	InterviewQuestions     []string  `json:"interview_questions,omitempty"`
	ImprovementSuggestions []string  `json:"improvement_suggestions,omitempty"`
	AIUsed                 bool      `json:"ai_used"`
	CreatedAt              time.Time `json:"created_at"`
}

// Ports (collaborator interfaces)

// JudgeClient is the external AI judgment collaborator. Judge receives the
// deterministic result so the prompt can reference computed coverage; the
// blending layer is the only caller and always degrades to deterministic-only
// when Judge fails.
type JudgeClient interface {
	Judge(ctx Context, job JobRequirement, profile CandidateProfile, det ScoringResult) (AIJudgment, error)
	Enabled() bool
}

// JobRepository resolves job requirements by identifier.
type JobRepository interface {
	Get(ctx Context, id string) (JobRequirement, error)
}

// CandidateRepository resolves candidate profiles by identifier.
type CandidateRepository interface {
	Get(ctx Context, id string) (CandidateProfile, error)
}

// ReadinessProvider supplies the latest completed external readiness score for
// a candidate. ok=false means no completed assessment exists.
type ReadinessProvider interface {
	LatestScore(ctx Context, candidateID string) (score float64, ok bool, err error)
}

// Context is an alias to allow decoupling from std context in domain
// signatures; adapters and usecases pass context.Context through.
type Context = context.Context
