package scoring

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

func TestLoadWeights_RowsSumTo100(t *testing.T) {
	t.Parallel()
	table, err := loadWeights()
	require.NoError(t, err)
	require.Len(t, table, 5)
	for category, row := range table {
		assert.Equal(t, 100.0, row.sum(), "category %s", category)
	}
}

func TestBucketTier(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw  float64
		want float64
	}{
		{100, 100}, {80, 100}, {79, 85}, {60, 85}, {59, 70},
		{40, 70}, {39, 50}, {20, 50}, {19, 30}, {0, 30},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, bucketTier(tc.raw), "raw %.0f", tc.raw)
	}
}

func TestSignalScore(t *testing.T) {
	t.Parallel()
	v := 90.0
	assert.Equal(t, 100.0, signalScore(&v, 15))
	assert.Equal(t, 0.0, signalScore(nil, 15), "absent signal scores zero")
	assert.Equal(t, 0.0, signalScore(&v, 0), "zero-weight factor is forced to zero")
	over := 250.0
	assert.Equal(t, 100.0, signalScore(&over, 10), "out-of-range input is clamped first")
}

func TestExperienceFitScore(t *testing.T) {
	t.Parallel()
	cases := []struct {
		level domain.ExperienceLevel
		years float64
		want  float64
	}{
		{domain.LevelMid, 4, 100},    // inside 3-6
		{domain.LevelMid, 3, 100},    // lower bound
		{domain.LevelMid, 6, 100},    // upper bound
		{domain.LevelMid, 8, 90},     // up to 3 over max
		{domain.LevelMid, 2.5, 75},   // up to 1 under min
		{domain.LevelMid, 12, 70},    // far over
		{domain.LevelMid, 0, 40},     // far under
		{domain.LevelFresher, 0, 100},
		{domain.LevelFresher, 3, 90},
		{domain.LevelJunior, 2, 100},
		{domain.LevelSenior, 10, 100}, // senior has no upper bound
		{domain.LevelSenior, 5.5, 75},
		{domain.LevelSenior, 2, 40},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, experienceFitScore(tc.level, tc.years),
			"level %s years %.1f", tc.level, tc.years)
	}
}

func TestEducationScore(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 20.0, educationScore(nil, nil))
	assert.Equal(t, 45.0, educationScore(nil, []string{"AWS SAA"}), "certs alone: base 40 + 5")

	bachelor := []domain.EducationEntry{{Degree: "B.Tech Computer Science", Institution: "IIT"}}
	assert.Equal(t, 60.0, educationScore(bachelor, nil), "40 base + 20 bachelor")

	masters := []domain.EducationEntry{{Degree: "MSc Data Science", Institution: "TU Delft"}}
	assert.Equal(t, 70.0, educationScore(masters, nil), "40 base + 30 postgrad")

	both := []domain.EducationEntry{
		{Degree: "Master of Science"},
		{Degree: "Bachelor of Engineering"},
	}
	// 40 base + 30 postgrad (no +20 bachelor on top) + 10 extra degree.
	assert.Equal(t, 80.0, educationScore(both, nil))

	many := []domain.EducationEntry{
		{Degree: "PhD"}, {Degree: "MSc"}, {Degree: "BSc"}, {Degree: "Diploma"}, {Degree: "Diploma"},
	}
	certs := []string{"a", "b", "c", "d", "e", "f"}
	// 40 + 30 + capped 20 extra degrees + capped 20 certs, clamped to 100.
	assert.Equal(t, 100.0, educationScore(many, certs))
}

func TestCompletenessScore(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, completenessScore(domain.CandidateProfile{}))

	full := domain.CandidateProfile{
		Skills:       []string{"go"},
		ResumeText:   "resume",
		Experience:   []domain.ExperienceEntry{{Company: "Acme"}},
		Education:    []domain.EducationEntry{{Degree: "BSc"}},
		GitHubHandle: "octocat",
		LinkedInURL:  "https://linkedin.com/in/x",
		PortfolioURL: "https://x.dev",
		Projects:     []domain.Project{{Name: "p"}},
	}
	assert.Equal(t, 100.0, completenessScore(full))

	partial := domain.CandidateProfile{Skills: []string{"go"}, ResumeText: "r"}
	assert.Equal(t, 40.0, completenessScore(partial))
}

func TestProjectRelevanceScore(t *testing.T) {
	t.Parallel()
	jobSkills := []string{"React", "Node.js"}

	assert.Equal(t, 0.0, projectRelevanceScore(jobSkills, nil))
	assert.Equal(t, 0.0, projectRelevanceScore(jobSkills, []domain.Project{
		{Name: "irrelevant", TechStack: []string{"cobol"}},
	}))

	// One fully matching project: relevance 100 capped, bonus 5 -> clamp 100.
	one := []domain.Project{{Name: "shop", TechStack: []string{"react", "nodejs"}}}
	assert.Equal(t, 100.0, projectRelevanceScore(jobSkills, one))

	// One half-matching project: score 50 + 5 bonus.
	half := []domain.Project{{Name: "api", TechStack: []string{"nodejs", "redis"}}}
	assert.Equal(t, 55.0, projectRelevanceScore(jobSkills, half))
}

func TestConfidence_LevelThresholds(t *testing.T) {
	t.Parallel()
	assert.Equal(t, domain.ConfidenceHigh, ConfidenceLevelFor(70))
	assert.Equal(t, domain.ConfidenceMedium, ConfidenceLevelFor(69))
	assert.Equal(t, domain.ConfidenceMedium, ConfidenceLevelFor(45))
	assert.Equal(t, domain.ConfidenceLow, ConfidenceLevelFor(44))
}

func TestConfidence_Computation(t *testing.T) {
	t.Parallel()
	activity := 80.0
	profile := domain.CandidateProfile{
		ResumeText:        string(make([]byte, 150)),
		Skills:            []string{"a", "b", "c"},
		Experience:        []domain.ExperienceEntry{{Company: "x"}},
		CodeActivityScore: &activity,
	}
	b := domain.ScoringBreakdown{SkillMatch: 85, ExperienceFit: 100, Education: 60, ProfileComplete: 80}
	score, level := confidence(profile, b)
	// completeness 15+10+10+5=40, consistency 20 (4 non-zero), quality 30 (mean 81.25).
	assert.Equal(t, 90, score)
	assert.Equal(t, domain.ConfidenceHigh, level)

	empty := domain.CandidateProfile{}
	score, level = confidence(empty, domain.ScoringBreakdown{Readiness: 50})
	// completeness 0, consistency 0 (1 non-zero), quality 20 (mean 50).
	assert.Equal(t, 20, score)
	assert.Equal(t, domain.ConfidenceLow, level)
}

func TestClamp(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0.0, clamp(-3))
	assert.Equal(t, 100.0, clamp(250))
	assert.Equal(t, 42.0, clamp(42))
	assert.False(t, math.IsNaN(clamp(42)))
}
