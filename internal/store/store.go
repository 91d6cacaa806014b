package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brandeval/brandeval/internal/model"
)

// Verify at compile time that Store implements all interfaces.
var (
	_ ArtifactReader  = (*Store)(nil)
	_ ArtifactWriter  = (*Store)(nil)
	_ EvaluationStore = (*Store)(nil)
	_ ReferenceStore  = (*Store)(nil)
	_ AdminStore      = (*Store)(nil)
)

// Store provides data access to the SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and initialises the schema.
func New(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// currentSchemaVersion is bumped whenever the schema changes.
// Add a new migration function in the migrations slice below.
const currentSchemaVersion = 2

func (s *Store) migrate() error {
	// Ensure the schema_version table exists.
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}

	var version int
	err := s.db.QueryRow(`SELECT version FROM schema_version LIMIT 1`).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		// Fresh database: initialize to version 0.
		if _, err := s.db.Exec(`INSERT INTO schema_version (version) VALUES (0)`); err != nil {
			return fmt.Errorf("init schema version: %w", err)
		}
		version = 0
	} else if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	// migrations is an ordered list of migration functions.
	// Index 0 = migration from v0 to v1, etc.
	migrations := []func() error{
		s.migrateV1, // v0 → v1: initial schema
		s.migrateV2, // v1 → v2: add admins table
	}

	for i := version; i < len(migrations); i++ {
		if err := migrations[i](); err != nil {
			return fmt.Errorf("migration v%d→v%d: %w", i, i+1, err)
		}
		if _, err := s.db.Exec(`UPDATE schema_version SET version = ?`, i+1); err != nil {
			return fmt.Errorf("update schema version to %d: %w", i+1, err)
		}
	}

	return nil
}

// migrateV1 creates the initial schema (v0 → v1).
func (s *Store) migrateV1() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS brands (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT,
		style       TEXT,
		vision      TEXT,
		voice       TEXT,
		colors      TEXT
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		id           TEXT PRIMARY KEY,
		prompt       TEXT NOT NULL,
		image_path   TEXT NOT NULL,
		model_name   TEXT,
		channel      TEXT NOT NULL,
		user_id      TEXT,
		brand_id     TEXT,
		cached_score REAL,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_artifacts_created ON artifacts(created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_artifacts_unscored ON artifacts(cached_score) WHERE cached_score IS NULL;

	CREATE TABLE IF NOT EXISTS evaluations (
		id               TEXT PRIMARY KEY,
		artifact_id      TEXT NOT NULL REFERENCES artifacts(id),
		size_score       INTEGER NOT NULL,
		subject_score    INTEGER NOT NULL,
		creativity_score INTEGER NOT NULL,
		mood_score       INTEGER NOT NULL,
		composite_score  INTEGER NOT NULL,
		created_at       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_evaluations_artifact ON evaluations(artifact_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// migrateV2 adds the admins table for API authentication (v1 → v2).
func (s *Store) migrateV2() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS admins (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`)
	return err
}

// ---------------------------------------------------------------------------
// Artifacts
// ---------------------------------------------------------------------------

const artifactColumns = `id, prompt, image_path, model_name, channel, user_id, brand_id, cached_score, created_at, updated_at`

// CreateArtifact inserts a new artifact.
func (s *Store) CreateArtifact(ctx context.Context, a model.Artifact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (`+artifactColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Prompt, a.ImagePath, a.ModelName, a.Channel, a.UserID, a.BrandID,
		a.CachedScore, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// GetArtifact returns a single artifact by id.
func (s *Store) GetArtifact(ctx context.Context, id string) (*model.Artifact, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+artifactColumns+` FROM artifacts WHERE id = ?`, id)
	return scanArtifact(row)
}

// GetArtifactWithEvaluations returns an artifact together with its evaluation
// history, newest first.
func (s *Store) GetArtifactWithEvaluations(ctx context.Context, id string) (*model.ArtifactWithEvaluations, error) {
	a, err := s.GetArtifact(ctx, id)
	if err != nil {
		return nil, err
	}

	evals, err := s.ListEvaluations(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.ArtifactWithEvaluations{Artifact: *a, Evaluations: evals}, nil
}

// ListArtifacts returns artifacts matching the given filter, newest first.
func (s *Store) ListArtifacts(ctx context.Context, f model.ArtifactFilter) ([]model.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts`
	var conditions []string
	var args []interface{}

	if f.UserID != "" {
		conditions = append(conditions, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.BrandID != "" {
		conditions = append(conditions, "brand_id = ?")
		args = append(args, f.BrandID)
	}
	if f.Channel != "" {
		conditions = append(conditions, "channel = ?")
		args = append(args, f.Channel)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artifacts []model.Artifact
	for rows.Next() {
		var a model.Artifact
		if err := rows.Scan(&a.ID, &a.Prompt, &a.ImagePath, &a.ModelName, &a.Channel,
			&a.UserID, &a.BrandID, &a.CachedScore, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		artifacts = append(artifacts, a)
	}
	return artifacts, rows.Err()
}

// UpdateCachedScore overwrites the artifact's denormalized latest-composite field.
func (s *Store) UpdateCachedScore(ctx context.Context, id string, score float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx,
		`UPDATE artifacts SET cached_score = ?, updated_at = ? WHERE id = ?`, score, now, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("artifact %s: %w", id, model.ErrNotFound)
	}
	return nil
}

// NextUnscoredArtifact returns the oldest artifact that has never been scored,
// or nil if every artifact has a cached score.
func (s *Store) NextUnscoredArtifact(ctx context.Context) (*model.Artifact, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+artifactColumns+` FROM artifacts WHERE cached_score IS NULL ORDER BY created_at ASC LIMIT 1`)
	a, err := scanArtifact(row)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	return a, err
}

func scanArtifact(row *sql.Row) (*model.Artifact, error) {
	var a model.Artifact
	err := row.Scan(&a.ID, &a.Prompt, &a.ImagePath, &a.ModelName, &a.Channel,
		&a.UserID, &a.BrandID, &a.CachedScore, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ---------------------------------------------------------------------------
// Evaluations
// ---------------------------------------------------------------------------

// AppendEvaluation inserts one immutable evaluation record. Records are never
// updated or deleted.
func (s *Store) AppendEvaluation(ctx context.Context, e model.Evaluation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, artifact_id, size_score, subject_score, creativity_score, mood_score, composite_score, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.ArtifactID, e.SizeScore, e.SubjectScore, e.CreativityScore, e.MoodScore,
		e.CompositeScore, e.CreatedAt,
	)
	return err
}

// ListEvaluations returns all evaluation records for an artifact, newest first.
func (s *Store) ListEvaluations(ctx context.Context, artifactID string) ([]model.Evaluation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, artifact_id, size_score, subject_score, creativity_score, mood_score, composite_score, created_at
		FROM evaluations WHERE artifact_id = ? ORDER BY created_at DESC, id DESC`, artifactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []model.Evaluation
	for rows.Next() {
		var e model.Evaluation
		if err := rows.Scan(&e.ID, &e.ArtifactID, &e.SizeScore, &e.SubjectScore,
			&e.CreativityScore, &e.MoodScore, &e.CompositeScore, &e.CreatedAt); err != nil {
			return nil, err
		}
		evals = append(evals, e)
	}
	return evals, rows.Err()
}

// CountEvaluations returns the number of evaluation records for an artifact.
func (s *Store) CountEvaluations(ctx context.Context, artifactID string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM evaluations WHERE artifact_id = ?`, artifactID).Scan(&n)
	return n, err
}

// ---------------------------------------------------------------------------
// Users & brands (bulk import)
// ---------------------------------------------------------------------------

// UpsertUser inserts a user, keeping the existing row on conflict.
func (s *Store) UpsertUser(ctx context.Context, u model.User) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, role) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		u.ID, u.Name, u.Role,
	)
	return err
}

// UpsertBrand inserts a brand, keeping the existing row on conflict.
func (s *Store) UpsertBrand(ctx context.Context, b model.Brand) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO brands (id, name, description, style, vision, voice, colors)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING`,
		b.ID, b.Name, b.Description, b.Style, b.Vision, b.Voice, b.Colors,
	)
	return err
}

// ---------------------------------------------------------------------------
// Admins
// ---------------------------------------------------------------------------

// CreateAdmin inserts a new admin account.
func (s *Store) CreateAdmin(ctx context.Context, a model.Admin) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO admins (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, a.CreatedAt,
	)
	return err
}

// GetAdminByEmail returns the admin account with the given email.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*model.Admin, error) {
	var a model.Admin
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at FROM admins WHERE email = ?`, email).
		Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
