package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/ctxkeys"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

type ProjectHandler struct {
	store     *service.ProjectService
	documents *service.DocumentService
}

func NewProjectHandler(store *service.ProjectService, documents *service.DocumentService) *ProjectHandler {
	return &ProjectHandler{store: store, documents: documents}
}

// List refreshes the dossier list and returns the current snapshot.
// The refresh is stale-tolerant: when the remote store is slow or down
// the previous (possibly cache-painted) state is served.
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	if err := h.store.LoadList(r.Context(), session.UserID); err != nil {
		slog.Error("list load failed", "error", err, "user_id", session.UserID)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"projects": h.store.Projects(r.URL.Query().Get("q")),
		"version":  h.store.Version(),
	})
}

// createRequest tolerates the loose shapes sent by workflow
// integrations: info fields may arrive as arrays or numbers and are
// normalized to strings.
type createRequest struct {
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Location  string          `json:"location"`
	Info      json.RawMessage `json:"info"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	project, err := h.store.Create(r.Context(), session.UserID, service.CreateProjectInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Location:  req.Location,
		Info:      model.DecodeInfo(req.Info),
	})
	if err != nil {
		var vErrs validation.Errors
		switch {
		case errors.As(err, &vErrs):
			respondError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrCreateInFlight):
			respondError(w, http.StatusConflict, "a dossier creation is already in progress")
		case errors.Is(err, service.ErrCreateUnconfirmed):
			respondJSON(w, http.StatusAccepted, map[string]string{
				"status": "unconfirmed, list reloaded",
			})
		default:
			slog.Error("dossier creation failed", "error", err, "user_id", session.UserID)
			respondError(w, http.StatusBadGateway, "could not create the dossier")
		}
		return
	}

	respondJSON(w, http.StatusCreated, project)
}

// Get ensures the heavy fields are loaded, then returns the dossier.
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	projectID := r.PathValue("id")

	if err := h.store.EnsureDetail(r.Context(), session.UserID, projectID); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "dossier not found")
			return
		}
		slog.Error("detail load failed", "error", err, "project_id", projectID)
	}

	project, err := h.store.Project(projectID)
	if err != nil {
		respondError(w, http.StatusNotFound, "dossier not found")
		return
	}

	// Opening a dossier makes it the active one.
	h.store.Select(projectID)

	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	projectID := r.PathValue("id")

	var project model.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	project.ID = projectID

	if _, err := h.store.Project(projectID); err != nil {
		respondError(w, http.StatusNotFound, "dossier not found")
		return
	}

	updated, err := h.store.Update(r.Context(), session.UserID, &project)
	if err != nil {
		slog.Error("dossier update failed", "error", err, "project_id", projectID)
		respondError(w, http.StatusBadGateway, "could not save the dossier")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	projectID := r.PathValue("id")

	removed, err := h.store.Remove(r.Context(), session.UserID, projectID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "dossier not found")
			return
		}
		slog.Error("dossier delete failed", "error", err, "project_id", projectID)
		respondError(w, http.StatusBadGateway, "could not delete the dossier")
		return
	}

	// Blob cleanup is best-effort; the record is already gone.
	h.documents.Cleanup(r.Context(), session.UserID, removed)

	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ProjectHandler) Select(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")
	if _, err := h.store.Project(projectID); err != nil {
		respondError(w, http.StatusNotFound, "dossier not found")
		return
	}
	h.store.Select(projectID)
	respondJSON(w, http.StatusNoContent, nil)
}
