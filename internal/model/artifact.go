package model

import "time"

// Channel constants for where a generated image was destined.
const (
	ChannelSocial  = "social"
	ChannelWeb     = "web"
	ChannelPrint   = "print"
	ChannelUnknown = "unknown"
)

// Artifact is one generated image together with the prompt that produced it.
// CachedScore mirrors the composite of the most recent Evaluation; it is a
// denormalized convenience value, never the source of truth.
type Artifact struct {
	ID          string   `json:"id"`
	Prompt      string   `json:"prompt"`
	ImagePath   string   `json:"image_path"`
	ModelName   string   `json:"model_name"`
	Channel     string   `json:"channel"`
	UserID      string   `json:"user_id"`
	BrandID     string   `json:"brand_id"`
	CachedScore *float64 `json:"cached_score,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

// ArtifactWithEvaluations is an Artifact together with its evaluation history,
// newest record first.
type ArtifactWithEvaluations struct {
	Artifact
	Evaluations []Evaluation `json:"evaluations"`
}

// ArtifactFilter holds query parameters for listing artifacts.
type ArtifactFilter struct {
	UserID  string
	BrandID string
	Channel string
}

// NewArtifact creates a new Artifact with no cached score.
func NewArtifact(id, prompt, imagePath, modelName, channel, userID, brandID string) Artifact {
	now := time.Now().UTC().Format(time.RFC3339)
	if channel == "" {
		channel = ChannelUnknown
	}
	return Artifact{
		ID:        id,
		Prompt:    prompt,
		ImagePath: imagePath,
		ModelName: modelName,
		Channel:   channel,
		UserID:    userID,
		BrandID:   brandID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
