package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/ctxkeys"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/prompt"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

type PromptHandler struct {
	generator *prompt.Generator
	store     *service.ProjectService
}

func NewPromptHandler(generator *prompt.Generator, store *service.ProjectService) *PromptHandler {
	return &PromptHandler{generator: generator, store: store}
}

// Get renders the personalized deck prompt of the requested kind. The
// dossier detail is ensured first so all template fields are available.
func (h *PromptHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	projectID := r.PathValue("id")

	kind, err := prompt.ParseKind(r.PathValue("kind"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown prompt kind")
		return
	}

	if err := h.store.EnsureDetail(r.Context(), session.UserID, projectID); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "dossier not found")
			return
		}
	}

	project, err := h.store.Project(projectID)
	if err != nil {
		respondError(w, http.StatusNotFound, "dossier not found")
		return
	}

	text, err := h.generator.Build(kind, project)
	if err != nil {
		slog.Error("prompt generation failed", "error", err, "project_id", projectID)
		respondError(w, http.StatusInternalServerError, "prompt generation failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"kind":   string(kind),
		"prompt": text,
	})
}
