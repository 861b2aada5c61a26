// Package main provides the evaluator entry point: it scores one candidate
// (or a directory of candidates) against a job and prints the blended
// evaluation as JSON. The surrounding hiring workflow calls the usecase
// package directly; this binary is the thin local I/O surface.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"log/slog"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/ai/openrouter"
	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/ai/stub"
	"github.com/fairyhunter13/candidate-evaluator/internal/adapter/observability"
	"github.com/fairyhunter13/candidate-evaluator/internal/config"
	"github.com/fairyhunter13/candidate-evaluator/internal/domain"
	"github.com/fairyhunter13/candidate-evaluator/internal/scoring"
	"github.com/fairyhunter13/candidate-evaluator/internal/usecase"
)

func main() {
	jobPath := flag.String("job", "", "path to job requirement JSON")
	candidatePath := flag.String("candidate", "", "path to candidate profile JSON")
	batchDir := flag.String("batch", "", "directory of candidate profile JSON files (batch mode)")
	useStub := flag.Bool("stub", false, "use the deterministic stub judge instead of the real AI")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("error", err))
		os.Exit(1)
	}

	// Setup logging
	logger := observability.SetupLogger(cfg)
	slog.SetDefault(logger)

	observability.InitMetrics()
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				slog.Error("metrics server error", slog.Any("error", err))
			}
		}()
	}

	if *jobPath == "" || (*candidatePath == "" && *batchDir == "") {
		slog.Error("usage: evaluator -job job.json (-candidate candidate.json | -batch dir/)")
		os.Exit(2)
	}

	engine, err := scoring.New()
	if err != nil {
		slog.Error("scoring engine init failed", slog.Any("error", err))
		os.Exit(1)
	}

	var judge domain.JudgeClient
	switch {
	case *useStub:
		judge = stub.New()
	case cfg.AIEnabled():
		judge = openrouter.New(cfg)
	default:
		slog.Info("no AI credentials configured; running deterministic-only")
	}
	svc := usecase.NewEvaluateService(engine, judge, nil, nil, nil)

	var job domain.JobRequirement
	if err := readJSON(*jobPath, &job); err != nil {
		slog.Error("read job", slog.String("path", *jobPath), slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	if *candidatePath != "" {
		var profile domain.CandidateProfile
		if err := readJSON(*candidatePath, &profile); err != nil {
			slog.Error("read candidate", slog.String("path", *candidatePath), slog.Any("error", err))
			os.Exit(1)
		}
		ev := svc.Evaluate(ctx, job, profile)
		if err := enc.Encode(ev); err != nil {
			slog.Error("encode evaluation", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	// Batch mode over a directory of candidate files. Per-candidate failures
	// are counted, not fatal.
	entries, err := os.ReadDir(*batchDir)
	if err != nil {
		slog.Error("read batch dir", slog.String("dir", *batchDir), slog.Any("error", err))
		os.Exit(1)
	}
	report := usecase.BatchReport{}
	evaluations := []domain.BlendedEvaluation{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		report.Total++
		var profile domain.CandidateProfile
		if err := readJSON(filepath.Join(*batchDir, e.Name()), &profile); err != nil {
			slog.Warn("skipping unreadable candidate file", slog.String("file", e.Name()), slog.Any("error", err))
			report.Failed++
			continue
		}
		evaluations = append(evaluations, svc.Evaluate(ctx, job, profile))
		report.Evaluated++
	}
	out := struct {
		Report      usecase.BatchReport        `json:"report"`
		Evaluations []domain.BlendedEvaluation `json:"evaluations"`
	}{report, evaluations}
	if err := enc.Encode(out); err != nil {
		slog.Error("encode batch output", slog.Any("error", err))
		os.Exit(1)
	}
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}
