package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/ai"
	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

const validBody = `{
  "overallScore": 72,
  "skillMatch": 80,
  "experienceScore": 70,
  "educationScore": 60,
  "projectAlignmentScore": 65,
  "confidenceLevel": "medium",
  "confidence": 62,
  "riskFactors": ["limited cloud exposure"],
  "strengths": ["solid backend fundamentals"],
  "gaps": ["kafka experience"],
  "recommendation": "review",
  "summary": "A capable mid-level engineer.",
  "interviewQuestions": ["Describe a production incident you handled."],
  "improvementSuggestions": ["Gain hands-on Kafka experience."]
}`

func TestParseJudgment_PlainJSON(t *testing.T) {
	t.Parallel()
	j, err := ai.ParseJudgment(validBody)
	require.NoError(t, err)
	assert.Equal(t, 72.0, j.OverallScore)
	assert.Equal(t, "medium", j.ConfidenceLevel)
	assert.Equal(t, "review", j.Recommendation)
	assert.Equal(t, []string{"kafka experience"}, j.Gaps)
}

func TestParseJudgment_MarkdownFenced(t *testing.T) {
	t.Parallel()
	j, err := ai.ParseJudgment("```json\n" + validBody + "\n```")
	require.NoError(t, err)
	assert.Equal(t, 72.0, j.OverallScore)
}

func TestParseJudgment_ProseWrapped(t *testing.T) {
	t.Parallel()
	j, err := ai.ParseJudgment("Here is my evaluation:\n" + validBody + "\nLet me know if you need more.")
	require.NoError(t, err)
	assert.Equal(t, 72.0, j.OverallScore)
}

func TestParseJudgment_OutOfRangeScoresClamp(t *testing.T) {
	t.Parallel()
	j, err := ai.ParseJudgment(`{"overallScore": 140, "confidence": -10}`)
	require.NoError(t, err, "out-of-range values clamp silently, they are not failures")
	assert.Equal(t, 100.0, j.OverallScore)
	assert.Equal(t, 0.0, j.Confidence)
}

func TestParseJudgment_MalformedIsSchemaInvalid(t *testing.T) {
	t.Parallel()
	for _, raw := range []string{"", "not json at all", `{"overallScore": "high"}`} {
		_, err := ai.ParseJudgment(raw)
		require.Error(t, err, "input %q", raw)
		assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
	}
}

func TestParseJudgment_BadEnumIsSchemaInvalid(t *testing.T) {
	t.Parallel()
	_, err := ai.ParseJudgment(`{"overallScore": 50, "recommendation": "hire immediately"}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
}

func TestCleanJSONResponse_BalancedBraces(t *testing.T) {
	t.Parallel()
	raw := `noise {"a": {"b": "}"}, "c": 1} trailing`
	assert.Equal(t, `{"a": {"b": "}"}, "c": 1}`, ai.CleanJSONResponse(raw),
		"brace counting must ignore braces inside string literals")
}

func TestBuildJudgePrompt_ContainsContractAndContext(t *testing.T) {
	t.Parallel()
	job := domain.JobRequirement{
		Title:    "Data Scientist",
		Category: domain.CategoryDataScience,
		Level:    domain.LevelSenior,
		Skills:   []string{"python", "pandas"},
	}
	profile := domain.CandidateProfile{
		Skills:     []string{"python"},
		ResumeText: "ten years of applied machine learning",
	}
	det := domain.ScoringResult{OverallScore: 64}

	prompt := ai.BuildJudgePrompt(job, profile, det)
	assert.Contains(t, prompt, "Data Scientist")
	assert.Contains(t, prompt, "python, pandas")
	assert.Contains(t, prompt, "subtract 10 points for every risk factor")
	assert.Contains(t, prompt, `"overallScore"`)
	assert.Contains(t, prompt, "ten years of applied machine learning")
}
