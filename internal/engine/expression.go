package engine

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/brandeval/brandeval/internal/model"
)

// creativityFullScoreWords is the prompt length at which the heuristic
// creativity score saturates.
const creativityFullScoreWords = 15

// HeuristicExpressionAgent computes creativity from prompt length and mood
// from a bounded pseudo-random value in [60, 100].
//
// The mood value is an intentionally non-deterministic placeholder signal
// until a real assessor replaces it. It is not reproducible; tests assert
// range membership, never exact equality.
type HeuristicExpressionAgent struct{}

// Score returns the creativity and mood sub-scores for a prompt.
func (a *HeuristicExpressionAgent) Score(_ context.Context, prompt string) (creativity, mood model.AgentScore) {
	words := len(strings.Fields(prompt))
	c := model.ClampScore(float64(words) / creativityFullScoreWords * 100)
	m := model.ClampScore(60 + rand.Float64()*40)

	return model.AgentScore{Name: model.ScoreCreativity, Value: c},
		model.AgentScore{Name: model.ScoreMood, Value: m}
}

// ModelExpressionAgent asks an external assessor for both expression scores
// in a single call. Each value is recovered independently through the
// extraction chain; a reply the chain cannot interpret at all falls back to
// the per-score defaults.
type ModelExpressionAgent struct {
	model   ModelClient
	timeout time.Duration
}

// NewModelExpressionAgent creates a model-backed expression agent. Every
// call is bounded by the given timeout.
func NewModelExpressionAgent(mc ModelClient, timeout time.Duration) *ModelExpressionAgent {
	return &ModelExpressionAgent{model: mc, timeout: timeout}
}

// Score issues one structured scoring request and interprets the reply for
// both values.
func (a *ModelExpressionAgent) Score(ctx context.Context, prompt string) (creativity, mood model.AgentScore) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.model.Complete(ctx, buildExpressionPrompt(prompt))
	if err != nil {
		slog.Warn("expression agent: model call failed, using defaults", "error", err)
		return model.AgentScore{Name: model.ScoreCreativity, Value: defaultCreativityScore},
			model.AgentScore{Name: model.ScoreMood, Value: defaultMoodScore}
	}

	c := ExtractScore(raw, creativityKeys, defaultCreativityScore)
	m := ExtractScore(raw, moodKeys, defaultMoodScore)
	return model.AgentScore{Name: model.ScoreCreativity, Value: c},
		model.AgentScore{Name: model.ScoreMood, Value: m}
}
