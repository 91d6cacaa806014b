package engine

import (
	"context"

	"github.com/brandeval/brandeval/internal/model"
)

// ModelClient abstracts external model calls. Implementations can wrap
// OpenAI, Anthropic, local models, etc.
type ModelClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// DimensionReader abstracts image metadata access.
type DimensionReader interface {
	Dimensions(path string) (width, height int, err error)
}

// SizeScorer produces the "size" sub-score for an image.
type SizeScorer interface {
	Score(ctx context.Context, imagePath string) model.AgentScore
}

// SubjectScorer produces the "subject" adherence sub-score for a prompt/image pair.
type SubjectScorer interface {
	Score(ctx context.Context, prompt, imagePath string) model.AgentScore
}

// ExpressionScorer produces the "creativity" and "mood" sub-scores for a prompt.
type ExpressionScorer interface {
	Score(ctx context.Context, prompt string) (creativity, mood model.AgentScore)
}

// Fallback defaults applied when a model-backed scorer cannot recover a value.
const (
	defaultSubjectScore    = 50
	defaultCreativityScore = 60
	defaultMoodScore       = 60
)
