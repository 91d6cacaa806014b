package engine

import (
	"context"
	"strings"
)

// StubModelClient returns canned scoring replies (for development/testing).
// It keys off the schema markers in the scoring prompts, so the model-backed
// agents behave deterministically without a configured provider.
type StubModelClient struct{}

func (m *StubModelClient) Complete(_ context.Context, prompt string) (string, error) {
	if strings.Contains(prompt, `"subjectScore"`) {
		return `{"subjectScore": 82}`, nil
	}
	if strings.Contains(prompt, `"creativityScore"`) {
		return `{"creativityScore": 74, "moodScore": 68}`, nil
	}
	return "{}", nil
}
