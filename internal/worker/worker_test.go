package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/brandeval/brandeval/internal/engine"
	"github.com/brandeval/brandeval/internal/model"
)

// fakeQueue hands out each artifact once and records evaluations.
type fakeQueue struct {
	mu        sync.Mutex
	pending   []model.Artifact
	evaluated []string
	evalErr   error
	done      chan struct{}
}

func newFakeQueue(artifacts ...model.Artifact) *fakeQueue {
	return &fakeQueue{pending: artifacts, done: make(chan struct{})}
}

func (q *fakeQueue) NextUnscoredArtifact(_ context.Context) (*model.Artifact, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil, nil
	}
	a := q.pending[0]
	return &a, nil
}

func (q *fakeQueue) Evaluate(_ context.Context, artifactID string) (*engine.Result, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.evalErr != nil {
		return nil, q.evalErr
	}
	q.pending = q.pending[1:]
	q.evaluated = append(q.evaluated, artifactID)
	if len(q.pending) == 0 {
		close(q.done)
	}
	return &engine.Result{EvaluationID: "eval-" + artifactID, ArtifactID: artifactID, CompositeScore: 70}, nil
}

func TestSweeper_EvaluatesPendingArtifacts(t *testing.T) {
	q := newFakeQueue(
		model.NewArtifact("art-1", "p1", "a.png", "", "", "", ""),
		model.NewArtifact("art-2", "p2", "b.png", "", "", "", ""),
	)
	s := New(q, q, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Start(ctx)

	select {
	case <-q.done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the sweeper to drain the queue")
	}
	cancel()

	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.evaluated) != 2 || q.evaluated[0] != "art-1" || q.evaluated[1] != "art-2" {
		t.Errorf("evaluated = %v, want [art-1 art-2] in order", q.evaluated)
	}
}

func TestSweeper_StopsOnCancel(t *testing.T) {
	q := newFakeQueue()
	s := New(q, q, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(stopped)
	}()

	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}

func TestSweeper_BacksOffOnEvaluationFailure(t *testing.T) {
	q := newFakeQueue(model.NewArtifact("art-1", "p1", "a.png", "", "", "", ""))
	q.evalErr = errors.New("pipeline down")
	s := New(q, q, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Start(ctx)

	// The failing artifact stays pending and nothing is marked evaluated.
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.evaluated) != 0 {
		t.Errorf("evaluated = %v, want none", q.evaluated)
	}
	if len(q.pending) != 1 {
		t.Errorf("pending = %d, want 1", len(q.pending))
	}
}
