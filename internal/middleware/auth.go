package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/ctxkeys"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

// RequireSession gates a handler on the workspace's signed-in session
// and puts it on the request context. Expired sessions are rejected the
// same as missing ones; the refresh loop either fixes them or emits a
// sign-out shortly.
func RequireSession(sessions *service.SessionService) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, err := sessions.Session()
			if err != nil || session.Expired() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "not signed in"})
				return
			}
			next(w, r.WithContext(ctxkeys.WithSession(r.Context(), session)))
		}
	}
}
