package engine

import (
	"context"
	"log/slog"

	"github.com/brandeval/brandeval/internal/model"
)

// fullScoreEdge is the minimum width/height at which an image scores 100.
const fullScoreEdge = 300

// SizeAgent scores how close an image is to the minimum acceptable
// dimensions. It is fully local: any I/O or decode failure resolves to a
// zero score and never aborts the pipeline.
type SizeAgent struct {
	images DimensionReader
}

// NewSizeAgent creates a size agent backed by the given metadata reader.
func NewSizeAgent(images DimensionReader) *SizeAgent {
	return &SizeAgent{images: images}
}

// Score returns 100 when both edges reach fullScoreEdge, otherwise the pixel
// area relative to the minimum, clamped to [0, 100].
func (a *SizeAgent) Score(_ context.Context, imagePath string) model.AgentScore {
	width, height, err := a.images.Dimensions(imagePath)
	if err != nil {
		slog.Warn("size agent: unreadable image, scoring 0", "image_path", imagePath, "error", err)
		return model.AgentScore{Name: model.ScoreSize, Value: 0}
	}

	if width >= fullScoreEdge && height >= fullScoreEdge {
		return model.AgentScore{Name: model.ScoreSize, Value: 100}
	}

	ratio := float64(width*height) / (fullScoreEdge * fullScoreEdge)
	return model.AgentScore{Name: model.ScoreSize, Value: model.ClampScore(ratio * 100)}
}
