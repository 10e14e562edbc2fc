package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
)

var (
	ErrSessionNotFound = errors.New("session not found")
)

// SessionRepository persists the last session issued by the auth provider.
// At most one session is kept; signing in replaces whatever was there.
type SessionRepository interface {
	Current() (*model.Session, error)
	Put(session *model.Session) error
	DeleteAll() error
}

type sessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Current() (*model.Session, error) {
	session := &model.Session{}
	query := `SELECT * FROM auth_session ORDER BY updated_at DESC LIMIT 1`

	err := r.db.Get(session, query)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (r *sessionRepository) Put(session *model.Session) error {
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now()
	}

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Single-session store: replace rather than accumulate.
	_, err = tx.Exec(`DELETE FROM auth_session`)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO auth_session (user_id, email, access_token, refresh_token, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, session.UserID, session.Email, session.AccessToken, session.RefreshToken, session.ExpiresAt, session.UpdatedAt)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *sessionRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM auth_session`)
	return err
}
