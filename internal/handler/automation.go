package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/automation"
)

type AutomationHandler struct {
	notifier *automation.Notifier
}

func NewAutomationHandler(notifier *automation.Notifier) *AutomationHandler {
	return &AutomationHandler{notifier: notifier}
}

// Send forwards a free-text instruction to the workflow endpoints.
func (h *AutomationHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	if err := h.notifier.Send(r.Context(), req.Text); err != nil {
		slog.Error("automation send failed", "error", err)
		respondError(w, http.StatusBadGateway, "no automation endpoint reached")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "delivered"})
}
