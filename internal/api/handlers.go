package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brandeval/brandeval/internal/engine"
	"github.com/brandeval/brandeval/internal/model"
)

// ---------------------------------------------------------------------------
// POST /api/protected/evaluate
// ---------------------------------------------------------------------------

type evaluateRequest struct {
	ArtifactID string `json:"artifact_id"`
}

// evaluateFailure is the error envelope for a persistence failure. The
// computed scores are included for diagnostics and retry convenience but
// were not durably saved.
type evaluateFailure struct {
	Error  string         `json:"error"`
	Code   string         `json:"code"`
	Scores *engine.Result `json:"scores,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ArtifactID == "" {
		writeError(w, http.StatusBadRequest, "artifact_id is required")
		return
	}

	result, err := s.evaluator.Evaluate(r.Context(), req.ArtifactID)

	var pe *engine.PersistError
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, result)
	case errors.Is(err, model.ErrNotFound):
		writeJSON(w, http.StatusNotFound, evaluateFailure{
			Error: "artifact not found",
			Code:  "not_found",
		})
	case errors.As(err, &pe):
		writeJSON(w, http.StatusInternalServerError, evaluateFailure{
			Error:  "evaluation computed but not persisted",
			Code:   "persistence_failure",
			Scores: result,
		})
	default:
		writeJSON(w, http.StatusInternalServerError, evaluateFailure{
			Error: "evaluation failed",
			Code:  "internal",
		})
	}
}

// ---------------------------------------------------------------------------
// GET /api/protected/artifacts
// ---------------------------------------------------------------------------

func (s *Server) handleListArtifacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.ArtifactFilter{
		UserID:  q.Get("user_id"),
		BrandID: q.Get("brand_id"),
		Channel: q.Get("channel"),
	}

	artifacts, err := s.store.ListArtifacts(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list artifacts")
		return
	}
	if artifacts == nil {
		artifacts = []model.Artifact{}
	}
	writeJSON(w, http.StatusOK, artifacts)
}

// ---------------------------------------------------------------------------
// GET /api/protected/artifacts/{id}
// ---------------------------------------------------------------------------

func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	artifact, err := s.store.GetArtifactWithEvaluations(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		writeError(w, http.StatusNotFound, "artifact not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get artifact")
		return
	}
	if artifact.Evaluations == nil {
		artifact.Evaluations = []model.Evaluation{}
	}

	writeJSON(w, http.StatusOK, artifact)
}
