package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/brandeval/brandeval/internal/model"
)

// HistoryStore is the persistence surface the recorder writes through.
type HistoryStore interface {
	AppendEvaluation(ctx context.Context, e model.Evaluation) error
	UpdateCachedScore(ctx context.Context, artifactID string, score float64) error
}

// Recorder persists evaluation results. It is the sole writer of the
// artifact's cached score: one append plus one cache refresh per invocation.
type Recorder struct {
	history HistoryStore
}

// NewRecorder creates a Recorder backed by the given store.
func NewRecorder(h HistoryStore) *Recorder {
	return &Recorder{history: h}
}

// Record computes the composite, appends one immutable evaluation record and
// refreshes the artifact's cached score. If the append fails the cache is
// left untouched and the error is returned. If only the cache refresh fails,
// the record is already durable; the cache is stale until the next
// evaluation, which is not an error condition.
func (r *Recorder) Record(ctx context.Context, artifactID string, scores model.ScoreSet) (model.Evaluation, error) {
	composite := Aggregate(scores)
	eval := model.NewEvaluation(uuid.New().String(), artifactID, scores, composite)

	if err := r.history.AppendEvaluation(ctx, eval); err != nil {
		return model.Evaluation{}, fmt.Errorf("append evaluation: %w", err)
	}

	if err := r.history.UpdateCachedScore(ctx, artifactID, float64(composite)); err != nil {
		slog.Warn("cached score refresh failed, cache stale until next evaluation",
			"artifact_id", artifactID, "evaluation_id", eval.ID, "error", err)
	}

	return eval, nil
}
