package skillnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/candidate-evaluator/internal/skillnorm"
)

func TestNormalize_AliasVariants(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"Node.js", "nodejs"},
		{"nodejs", "nodejs"},
		{"node js", "nodejs"},
		{"Node", "nodejs"},
		{"NODE.JS", "nodejs"},
		{"ReactJS", "react"},
		{"react.js", "react"},
		{"Vue.js", "vue"},
		{"K8s", "kubernetes"},
		{"Golang", "golang"},
		{"go", "golang"},
		{"C#", "csharp"},
		{"c++", "cpp"},
		{".NET Core", "dotnet"},
		{"PostgreSQL", "postgresql"},
		{"postgres", "postgresql"},
		{"CI/CD", "cicd"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, skillnorm.Normalize(tc.in), "input %q", tc.in)
	}
}

func TestNormalize_UnknownDegradesToCleanedToken(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "frobnicator 3000", skillnorm.Normalize("  Frobnicator,   3000!! "))
	assert.Equal(t, "", skillnorm.Normalize("   "))
}

func TestNormalize_TrailingJSSuffixRetry(t *testing.T) {
	t.Parallel()
	// "nuxtjs" is a known variant; a doubled suffix still resolves via retry.
	assert.Equal(t, "nuxtjs", skillnorm.Normalize("nuxt.js"))
	// Unknown tokens keep their cleaned form even with a js suffix.
	assert.Equal(t, "backbonejs", skillnorm.Normalize("BackboneJS"))
}

func TestMatch(t *testing.T) {
	t.Parallel()
	assert.True(t, skillnorm.Match("Node", "node.js"))
	assert.True(t, skillnorm.Match("React", "reactjs"))
	assert.True(t, skillnorm.Match("java", "javascript"), "substring containment matches")
	assert.True(t, skillnorm.Match("amazon web services", "AWS"))
	assert.False(t, skillnorm.Match("python", "rust"))
	assert.False(t, skillnorm.Match("", "rust"))
}

func TestMatchSet_Scoring(t *testing.T) {
	t.Parallel()
	res := skillnorm.MatchSet([]string{"React", "Node.js", "GraphQL"}, []string{"react", "nodejs", "python"})
	assert.Equal(t, 67, res.Score)
	assert.Equal(t, []string{"React", "Node.js"}, res.Matched)
	assert.Equal(t, []string{"GraphQL"}, res.Missing)
}

func TestMatchSet_EdgeCases(t *testing.T) {
	t.Parallel()
	empty := skillnorm.MatchSet(nil, []string{"go"})
	require.Equal(t, 100, empty.Score)
	assert.Empty(t, empty.Matched)
	assert.Empty(t, empty.Missing)

	noCandidate := skillnorm.MatchSet([]string{"go", "python"}, nil)
	require.Equal(t, 0, noCandidate.Score)
	assert.Equal(t, []string{"go", "python"}, noCandidate.Missing)
}
