package model

import "time"

// Session is the locally persisted auth artifact. It mirrors what the auth
// provider issued last, so startup can do a fast local session check without
// a network round trip.
type Session struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	AccessToken  string    `db:"access_token"`
	RefreshToken string    `db:"refresh_token"`
	ExpiresAt    time.Time `db:"expires_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Expired reports whether the access token is past its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
