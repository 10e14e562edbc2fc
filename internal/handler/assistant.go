package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/ctxkeys"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/gemini"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

type AssistantHandler struct {
	assistant *service.AssistantService
}

func NewAssistantHandler(assistant *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant}
}

// Summarize generates the prestige synthesis note for a dossier.
func (h *AssistantHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	session := ctxkeys.Session(r.Context())
	projectID := r.PathValue("id")

	summary, err := h.assistant.Summarize(r.Context(), session.UserID, projectID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(w, http.StatusNotFound, "dossier not found")
		case errors.Is(err, gemini.ErrServiceUnavailable):
			respondError(w, http.StatusBadGateway, "Impossible de générer l'analyse Prestige.")
		default:
			slog.Error("summary generation failed", "error", err, "project_id", projectID)
			respondError(w, http.StatusInternalServerError, "summary generation failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

type chatRequest struct {
	History []gemini.Message `json:"history"`
	Message string           `json:"message"`
}

// Chat relays one user message to the dossier assistant.
func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("id")

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, err := h.assistant.Chat(r.Context(), projectID, req.History, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			respondError(w, http.StatusNotFound, "dossier not found")
		case errors.Is(err, gemini.ErrServiceUnavailable):
			respondError(w, http.StatusBadGateway, "Le service est indisponible.")
		default:
			slog.Error("chat failed", "error", err, "project_id", projectID)
			respondError(w, http.StatusInternalServerError, "chat failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
