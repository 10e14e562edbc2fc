package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

type AuthHandler struct {
	sessions *service.SessionService
}

func NewAuthHandler(sessions *service.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

// sessionView is the session shape exposed over HTTP. Tokens stay
// server-side.
type sessionView struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func viewOf(s *model.Session) sessionView {
	return sessionView{UserID: s.UserID, Email: s.Email, ExpiresAt: s.ExpiresAt}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.sessions.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, remote.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		slog.Error("sign-in failed", "error", err)
		respondError(w, http.StatusBadGateway, "authentication service unavailable")
		return
	}

	respondJSON(w, http.StatusOK, viewOf(session))
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.SignOut(r.Context()); err != nil {
		slog.Error("sign-out failed", "error", err)
		respondError(w, http.StatusInternalServerError, "sign-out failed")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, err := h.sessions.Session()
	if err != nil {
		respondError(w, http.StatusUnauthorized, "not signed in")
		return
	}
	respondJSON(w, http.StatusOK, viewOf(session))
}
