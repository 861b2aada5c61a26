package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	EvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "evaluations_total",
			Help: "Total number of candidate evaluations by category, recommendation and mode",
		},
		[]string{"category", "recommendation", "mode"},
	)
	EvaluationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "evaluation_duration_seconds",
			Help:    "Candidate evaluation duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"mode"},
	)
	EvaluationScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "evaluation_overall_score",
			Help:    "Distribution of blended overall scores (0-100)",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)

	AIJudgeRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_judge_requests_total",
			Help: "Total number of AI judge requests by credential slot and outcome",
		},
		[]string{"slot", "outcome"},
	)
	AIJudgeRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_judge_request_duration_seconds",
			Help:    "AI judge request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"slot"},
	)
	AIFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ai_fallbacks_total",
			Help: "Total number of evaluations that fell back to the deterministic result",
		},
	)

	BatchCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_candidates_total",
			Help: "Total number of batch candidates by result",
		},
		[]string{"result"},
	)
)

// InitMetrics registers all collectors; call once at startup.
func InitMetrics() {
	prometheus.MustRegister(EvaluationsTotal)
	prometheus.MustRegister(EvaluationDuration)
	prometheus.MustRegister(EvaluationScore)
	prometheus.MustRegister(AIJudgeRequestsTotal)
	prometheus.MustRegister(AIJudgeRequestDuration)
	prometheus.MustRegister(AIFallbacksTotal)
	prometheus.MustRegister(BatchCandidatesTotal)
}

// ObserveEvaluation records one finished evaluation.
func ObserveEvaluation(category, recommendation, mode string, score int, seconds float64) {
	EvaluationsTotal.WithLabelValues(category, recommendation, mode).Inc()
	EvaluationDuration.WithLabelValues(mode).Observe(seconds)
	if score >= 0 && score <= 100 {
		EvaluationScore.Observe(float64(score))
	}
}
