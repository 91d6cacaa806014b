package store

import (
	"context"

	"github.com/brandeval/brandeval/internal/model"
)

// ArtifactReader provides read access to artifacts.
type ArtifactReader interface {
	GetArtifact(ctx context.Context, id string) (*model.Artifact, error)
	GetArtifactWithEvaluations(ctx context.Context, id string) (*model.ArtifactWithEvaluations, error)
	ListArtifacts(ctx context.Context, f model.ArtifactFilter) ([]model.Artifact, error)
	NextUnscoredArtifact(ctx context.Context) (*model.Artifact, error)
}

// ArtifactWriter provides write access to artifacts.
type ArtifactWriter interface {
	CreateArtifact(ctx context.Context, a model.Artifact) error
	UpdateCachedScore(ctx context.Context, id string, score float64) error
}

// EvaluationStore provides access to the append-only evaluation history.
type EvaluationStore interface {
	AppendEvaluation(ctx context.Context, e model.Evaluation) error
	ListEvaluations(ctx context.Context, artifactID string) ([]model.Evaluation, error)
	CountEvaluations(ctx context.Context, artifactID string) (int, error)
}

// ReferenceStore provides access to the user/brand reference tables.
type ReferenceStore interface {
	UpsertUser(ctx context.Context, u model.User) error
	UpsertBrand(ctx context.Context, b model.Brand) error
}

// AdminStore provides access to admin accounts for authentication.
type AdminStore interface {
	CreateAdmin(ctx context.Context, a model.Admin) error
	GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error)
}

// Repository combines everything the API layer needs.
type Repository interface {
	ArtifactReader
	ArtifactWriter
	EvaluationStore
	AdminStore
}
