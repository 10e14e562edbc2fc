package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/ctxkeys"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

// maxUploadBytes caps one attachment batch.
const maxUploadBytes = 32 << 20

type DocumentHandler struct {
	documents *service.DocumentService
	store     *service.ProjectService
}

func NewDocumentHandler(documents *service.DocumentService, store *service.ProjectService) *DocumentHandler {
	return &DocumentHandler{documents: documents, store: store}
}

// Upload accepts a multipart batch under the "files" field, stores the
// blobs, and returns the updated dossier.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	projectID := r.PathValue("id")

	if err := h.store.EnsureDetail(r.Context(), session.UserID, projectID); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "dossier not found")
			return
		}
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		respondError(w, http.StatusBadRequest, "no files provided")
		return
	}

	files := make([]service.UploadInput, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			slog.Warn("could not open uploaded file", "name", fh.Filename, "error", err)
			continue
		}
		defer f.Close()
		files = append(files, service.UploadInput{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Data:        f,
		})
	}

	project, err := h.documents.Upload(r.Context(), session.UserID, projectID, files)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			respondError(w, http.StatusNotFound, "dossier not found")
			return
		}
		slog.Error("attachment upload failed", "error", err, "project_id", projectID)
		respondError(w, http.StatusBadGateway, "could not store the attachments")
		return
	}

	respondJSON(w, http.StatusOK, project)
}

func (h *DocumentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	projectID := r.PathValue("id")
	documentID := r.PathValue("docID")

	project, err := h.documents.Remove(r.Context(), session.UserID, projectID, documentID)
	if err != nil {
		if errors.Is(err, service.ErrProjectNotFound) || errors.Is(err, service.ErrDocumentNotFound) {
			respondError(w, http.StatusNotFound, "attachment not found")
			return
		}
		slog.Error("attachment removal failed", "error", err,
			"project_id", projectID, "document_id", documentID)
		respondError(w, http.StatusBadGateway, "could not remove the attachment")
		return
	}

	respondJSON(w, http.StatusOK, project)
}
