// Package worker runs the background sweeper that evaluates artifacts which
// have never been scored, such as freshly imported ones.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/brandeval/brandeval/internal/engine"
	"github.com/brandeval/brandeval/internal/model"
)

// UnscoredSource yields artifacts that have no cached score yet.
type UnscoredSource interface {
	NextUnscoredArtifact(ctx context.Context) (*model.Artifact, error)
}

// Evaluator runs the evaluation pipeline for a single artifact.
type Evaluator interface {
	Evaluate(ctx context.Context, artifactID string) (*engine.Result, error)
}

// Sweeper polls for unscored artifacts and evaluates them. A successful
// evaluation sets the cached score, which removes the artifact from the
// unscored set; concurrent sweeps therefore converge without claims.
type Sweeper struct {
	source    UnscoredSource
	evaluator Evaluator
	interval  time.Duration
}

// New creates a new Sweeper.
func New(source UnscoredSource, evaluator Evaluator, interval time.Duration) *Sweeper {
	return &Sweeper{source: source, evaluator: evaluator, interval: interval}
}

// Start begins the polling loop. It blocks until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	slog.Info("sweeper started", "interval", s.interval.String())
	for {
		select {
		case <-ctx.Done():
			slog.Info("sweeper stopped")
			return
		default:
		}

		artifact, err := s.source.NextUnscoredArtifact(ctx)
		if err != nil {
			slog.Error("sweeper: listing unscored artifacts failed", "error", err)
			s.sleep(ctx)
			continue
		}
		if artifact == nil {
			s.sleep(ctx)
			continue
		}

		slog.Info("sweeper: evaluating artifact", "artifact_id", artifact.ID)
		result, err := s.evaluator.Evaluate(ctx, artifact.ID)
		if err != nil {
			slog.Error("sweeper: evaluation failed", "artifact_id", artifact.ID, "error", err)
			// Back off instead of spinning on the same artifact.
			s.sleep(ctx)
			continue
		}

		slog.Info("sweeper: artifact evaluated",
			"artifact_id", artifact.ID,
			"evaluation_id", result.EvaluationID,
			"composite_score", result.CompositeScore)
	}
}

func (s *Sweeper) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(s.interval):
	}
}
