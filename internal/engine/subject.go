package engine

import (
	"context"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/brandeval/brandeval/internal/model"
)

// LexicalSubjectAgent scores subject adherence by matching prompt tokens
// against the image file name. This is a name-based placeholder for true
// content matching; the model-backed agent is the upgrade path.
type LexicalSubjectAgent struct{}

// Score counts how many whitespace-separated prompt tokens appear as a
// substring of the lowercased image file name. Scoring is doubled so that
// half the tokens matching already earns full marks, then clamped to 100.
// An empty prompt scores 0.
func (a *LexicalSubjectAgent) Score(_ context.Context, prompt, imagePath string) model.AgentScore {
	tokens := strings.Fields(strings.ToLower(prompt))
	if len(tokens) == 0 {
		return model.AgentScore{Name: model.ScoreSubject, Value: 0}
	}

	imageName := strings.ToLower(path.Base(imagePath))
	matches := 0
	for _, tok := range tokens {
		if strings.Contains(imageName, tok) {
			matches++
		}
	}

	adherence := float64(matches) / float64(len(tokens)) * 200
	return model.AgentScore{Name: model.ScoreSubject, Value: model.ClampScore(adherence)}
}

// ModelSubjectAgent asks an external assessor for the subject adherence score
// and recovers a number from whatever comes back. Adapter failures, timeouts
// and unparseable replies all resolve to the neutral default.
type ModelSubjectAgent struct {
	model   ModelClient
	timeout time.Duration
}

// NewModelSubjectAgent creates a model-backed subject agent. Every call is
// bounded by the given timeout.
func NewModelSubjectAgent(mc ModelClient, timeout time.Duration) *ModelSubjectAgent {
	return &ModelSubjectAgent{model: mc, timeout: timeout}
}

// Score issues one structured scoring request and interprets the reply.
func (a *ModelSubjectAgent) Score(ctx context.Context, prompt, imagePath string) model.AgentScore {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.model.Complete(ctx, buildSubjectPrompt(prompt, path.Base(imagePath)))
	if err != nil {
		slog.Warn("subject agent: model call failed, using default", "error", err)
		return model.AgentScore{Name: model.ScoreSubject, Value: defaultSubjectScore}
	}

	value := ExtractScore(raw, subjectKeys, defaultSubjectScore)
	return model.AgentScore{Name: model.ScoreSubject, Value: value}
}
