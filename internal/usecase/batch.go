package usecase

import (
	"fmt"
	"sync"

	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/observability"
	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
)

// BatchReport summarizes a batch run.
type BatchReport struct {
	Total     int `json:"total"`
	Evaluated int `json:"evaluated"`
	Failed    int `json:"failed"`
}

// EvaluateBatch evaluates many candidates against one job with bounded
// parallelism. Candidates are isolated: a lookup failure increments the
// failure counter and the batch continues; no per-candidate error escapes.
// The returned evaluations are ordered like candidateIDs, with zero-value
// holes for failed candidates.
func (s EvaluateService) EvaluateBatch(ctx domain.Context, jobID string, candidateIDs []string, maxConcurrency int) (BatchReport, []domain.BlendedEvaluation, error) {
	report := BatchReport{Total: len(candidateIDs)}
	if s.Jobs == nil || s.Candidates == nil {
		return report, nil, fmt.Errorf("%w: repositories not configured", domain.ErrInvalidArgument)
	}
	// The job is shared by every candidate; a missing job fails the batch.
	job, err := s.Jobs.Get(ctx, jobID)
	if err != nil {
		return report, nil, fmt.Errorf("get job %s: %w", jobID, err)
	}
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	runID := uuid.NewString()
	slog.Info("batch evaluation started",
		slog.String("run_id", runID),
		slog.String("job_id", jobID),
		slog.Int("candidates", len(candidateIDs)),
		slog.Int("max_concurrency", maxConcurrency))

	results := make([]domain.BlendedEvaluation, len(candidateIDs))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, candidateID := range candidateIDs {
		i, candidateID := i, candidateID
		g.Go(func() error {
			profile, cerr := s.Candidates.Get(gctx, candidateID)
			if cerr != nil {
				slog.Warn("batch candidate lookup failed",
					slog.String("run_id", runID),
					slog.String("candidate_id", candidateID),
					slog.Any("error", cerr))
				observability.BatchCandidatesTotal.WithLabelValues("failed").Inc()
				mu.Lock()
				report.Failed++
				mu.Unlock()
				return nil
			}
			if profile.ReadinessScore == nil && s.Readiness != nil {
				if score, ok, rerr := s.Readiness.LatestScore(gctx, candidateID); rerr == nil && ok {
					profile.ReadinessScore = &score
				}
			}
			ev := s.Evaluate(gctx, job, profile)
			observability.BatchCandidatesTotal.WithLabelValues("evaluated").Inc()
			mu.Lock()
			results[i] = ev
			report.Evaluated++
			mu.Unlock()
			return nil
		})
	}
	// Workers never return errors; Wait only observes context cancellation.
	_ = g.Wait()

	slog.Info("batch evaluation finished",
		slog.String("run_id", runID),
		slog.Int("total", report.Total),
		slog.Int("evaluated", report.Evaluated),
		slog.Int("failed", report.Failed))
	return report, results, nil
}
