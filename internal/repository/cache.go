package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
)

var (
	ErrCacheEntryNotFound = errors.New("cache entry not found")
)

// CacheRepository persists one dossier-list snapshot per user.
type CacheRepository interface {
	ByUserID(userID string) (*model.CacheEntry, error)
	Put(userID string, payload []byte) error
	Delete(userID string) error
	DeleteAll() error
}

type cacheRepository struct {
	db *sqlx.DB
}

func NewCacheRepository(db *sqlx.DB) CacheRepository {
	return &cacheRepository{db: db}
}

func (r *cacheRepository) ByUserID(userID string) (*model.CacheEntry, error) {
	entry := &model.CacheEntry{}
	query := `SELECT * FROM project_cache WHERE user_id = $1`

	err := r.db.Get(entry, query, userID)
	if err == sql.ErrNoRows {
		return nil, ErrCacheEntryNotFound
	}
	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (r *cacheRepository) Put(userID string, payload []byte) error {
	query := `INSERT INTO project_cache (user_id, payload, updated_at)
	          VALUES ($1, $2, $3)
	          ON CONFLICT (user_id) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`

	_, err := r.db.Exec(query, userID, payload, time.Now())
	return err
}

func (r *cacheRepository) Delete(userID string) error {
	_, err := r.db.Exec(`DELETE FROM project_cache WHERE user_id = $1`, userID)
	return err
}

func (r *cacheRepository) DeleteAll() error {
	_, err := r.db.Exec(`DELETE FROM project_cache`)
	return err
}
