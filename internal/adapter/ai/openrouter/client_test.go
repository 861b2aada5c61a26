package openrouter_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/ai/openrouter"
	"github.com/fairyhunter13/candidate-evaluator/internal/config"
	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

const judgmentContent = `{
  "overallScore": 70,
  "skillMatch": 75,
  "experienceScore": 70,
  "educationScore": 60,
  "projectAlignmentScore": 50,
  "confidenceLevel": "medium",
  "confidence": 60,
  "riskFactors": [],
  "strengths": ["clear communicator"],
  "gaps": [],
  "recommendation": "review",
  "summary": "Reasonable fit.",
  "interviewQuestions": ["Walk me through your last project."],
  "improvementSuggestions": ["Broaden system design exposure."]
}`

func chatResponse(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": content}},
		},
	})
	return b
}

func testConfig(baseURL string, keys ...string) config.Config {
	return config.Config{
		AppEnv:               "test",
		AIAPIKeys:            keys,
		AIBaseURL:            baseURL,
		AIModel:              "test/model",
		AIMaxTokens:          512,
		AIRequestTimeout:     5 * time.Second,
		AICredentialCooldown: time.Minute,
	}
}

func judgeArgs() (domain.JobRequirement, domain.CandidateProfile, domain.ScoringResult) {
	job := domain.JobRequirement{
		Title:    "Backend Engineer",
		Category: domain.CategorySoftware,
		Level:    domain.LevelMid,
		Skills:   []string{"go"},
	}
	profile := domain.CandidateProfile{Skills: []string{"go"}}
	det := domain.ScoringResult{OverallScore: 65}
	return job, profile, det
}

func TestJudge_Success(t *testing.T) {
	t.Parallel()
	var auth atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth.Store(r.Header.Get("Authorization"))
		_, _ = w.Write(chatResponse(judgmentContent))
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL, "k1"))
	require.True(t, c.Enabled())

	job, profile, det := judgeArgs()
	j, err := c.Judge(context.Background(), job, profile, det)
	require.NoError(t, err)
	assert.Equal(t, 70.0, j.OverallScore)
	assert.Equal(t, "review", j.Recommendation)
	assert.Equal(t, "Bearer k1", auth.Load())
}

func TestJudge_RateLimitRotatesToNextCredential(t *testing.T) {
	t.Parallel()
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Header.Get("Authorization") == "Bearer k1" {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write(chatResponse(judgmentContent))
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL, "k1", "k2"))

	job, profile, det := judgeArgs()
	j, err := c.Judge(context.Background(), job, profile, det)
	require.NoError(t, err, "second credential must serve after the first is rate limited")
	assert.Equal(t, 70.0, j.OverallScore)
	assert.Equal(t, int32(2), requests.Load(), "429 must not retry on the same credential")
}

func TestJudge_AllCredentialsRateLimited(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL, "k1", "k2"))

	job, profile, det := judgeArgs()
	_, err := c.Judge(context.Background(), job, profile, det)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamRateLimit)
}

func TestJudge_PersistentServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL, "k1"))

	job, profile, det := judgeArgs()
	_, err := c.Judge(context.Background(), job, profile, det)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat status 500")
}

func TestJudge_InvalidContentDoesNotRotate(t *testing.T) {
	t.Parallel()
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		_, _ = w.Write(chatResponse("I cannot produce JSON today."))
	}))
	defer srv.Close()

	c := openrouter.New(testConfig(srv.URL, "k1", "k2"))

	job, profile, det := judgeArgs()
	_, err := c.Judge(context.Background(), job, profile, det)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchemaInvalid)
	assert.Equal(t, int32(1), requests.Load(), "model output problems are not credential problems")
}

func TestJudge_NoCredentials(t *testing.T) {
	t.Parallel()
	c := openrouter.New(testConfig("http://unused"))
	require.False(t, c.Enabled())

	job, profile, det := judgeArgs()
	_, err := c.Judge(context.Background(), job, profile, det)
	assert.ErrorIs(t, err, domain.ErrJudgeDisabled)
}
