package engine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/brandeval/brandeval/internal/model"
)

// ArtifactFinder loads the artifact under evaluation.
type ArtifactFinder interface {
	GetArtifact(ctx context.Context, id string) (*model.Artifact, error)
}

// Pipeline orchestrates one evaluation invocation: load the artifact, run
// the three scoring agents concurrently, aggregate, persist.
//
// Agents absorb their own failures and always produce a value, so the
// pipeline itself never retries at the agent level. The errors it can return
// are artifact lookup failures (including model.ErrNotFound), context
// cancellation, and *PersistError.
type Pipeline struct {
	artifacts  ArtifactFinder
	size       SizeScorer
	subject    SubjectScorer
	expression ExpressionScorer
	recorder   *Recorder
}

// NewPipeline creates a pipeline with the given dependencies.
func NewPipeline(artifacts ArtifactFinder, size SizeScorer, subject SubjectScorer, expression ExpressionScorer, recorder *Recorder) *Pipeline {
	return &Pipeline{
		artifacts:  artifacts,
		size:       size,
		subject:    subject,
		expression: expression,
		recorder:   recorder,
	}
}

// Result is the full score breakdown of one evaluation invocation.
// EvaluationID is empty when the record could not be persisted.
type Result struct {
	EvaluationID    string `json:"evaluation_id,omitempty"`
	ArtifactID      string `json:"artifact_id"`
	SizeScore       int    `json:"size_score"`
	SubjectScore    int    `json:"subject_score"`
	CreativityScore int    `json:"creativity_score"`
	MoodScore       int    `json:"mood_score"`
	CompositeScore  int    `json:"composite_score"`
}

// PersistError reports that scoring succeeded but the evaluation record
// could not be appended. The caller still receives the computed Result so it
// can surface the scores without presenting them as durably saved.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return "persist evaluation: " + e.Err.Error()
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Evaluate runs the full pipeline for one artifact.
//
// On persistence failure the returned *Result is non-nil alongside a
// *PersistError. On any other error the Result is nil and no record was
// created.
func (p *Pipeline) Evaluate(ctx context.Context, artifactID string) (*Result, error) {
	artifact, err := p.artifacts.GetArtifact(ctx, artifactID)
	if err != nil {
		return nil, fmt.Errorf("load artifact %s: %w", artifactID, err)
	}

	// The three agents have no data dependency on each other; run them
	// concurrently and join before aggregating. Agents never return errors,
	// the group is purely the barrier.
	var scores model.ScoreSet
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scores.Size = p.size.Score(gctx, artifact.ImagePath).Value
		return nil
	})
	g.Go(func() error {
		scores.Subject = p.subject.Score(gctx, artifact.Prompt, artifact.ImagePath).Value
		return nil
	})
	g.Go(func() error {
		creativity, mood := p.expression.Score(gctx, artifact.Prompt)
		scores.Creativity = creativity.Value
		scores.Mood = mood.Value
		return nil
	})
	_ = g.Wait()

	result := &Result{
		ArtifactID:      artifact.ID,
		SizeScore:       scores.Size,
		SubjectScore:    scores.Subject,
		CreativityScore: scores.Creativity,
		MoodScore:       scores.Mood,
		CompositeScore:  Aggregate(scores),
	}

	// A cancelled invocation must never become partially durable.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eval, err := p.recorder.Record(ctx, artifact.ID, scores)
	if err != nil {
		return result, &PersistError{Err: err}
	}

	result.EvaluationID = eval.ID
	return result, nil
}
