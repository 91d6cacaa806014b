package model

import (
	"math"
	"time"
)

// Agent score names. Each scoring agent produces exactly one named value
// (the expression agent produces two).
const (
	ScoreSize       = "size"
	ScoreSubject    = "subject"
	ScoreCreativity = "creativity"
	ScoreMood       = "mood"
)

// AgentScore is a single named score in [0, 100] produced by one agent.
type AgentScore struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ScoreSet holds the four sub-scores of one evaluation run.
type ScoreSet struct {
	Size       int `json:"size_score"`
	Subject    int `json:"subject_score"`
	Creativity int `json:"creativity_score"`
	Mood       int `json:"mood_score"`
}

// Evaluation is one immutable evaluation record. Recomputing the composite
// from the four stored sub-scores always reproduces CompositeScore.
type Evaluation struct {
	ID              string `json:"id"`
	ArtifactID      string `json:"artifact_id"`
	SizeScore       int    `json:"size_score"`
	SubjectScore    int    `json:"subject_score"`
	CreativityScore int    `json:"creativity_score"`
	MoodScore       int    `json:"mood_score"`
	CompositeScore  int    `json:"composite_score"`
	CreatedAt       string `json:"created_at"`
}

// NewEvaluation creates an evaluation record for the given artifact.
func NewEvaluation(id, artifactID string, scores ScoreSet, composite int) Evaluation {
	return Evaluation{
		ID:              id,
		ArtifactID:      artifactID,
		SizeScore:       scores.Size,
		SubjectScore:    scores.Subject,
		CreativityScore: scores.Creativity,
		MoodScore:       scores.Mood,
		CompositeScore:  composite,
		CreatedAt:       time.Now().UTC().Format(time.RFC3339),
	}
}

// ClampScore rounds a raw numeric result half-up and clamps it to [0, 100].
// NaN and negative inputs collapse to 0 so corrupt metadata or a garbage
// model reply can never push a score outside the contract.
func ClampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v >= 100 {
		return 100
	}
	return int(math.Floor(v + 0.5))
}
