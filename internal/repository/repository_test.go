package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/db"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.db")
	database, err := db.Init("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(database) })

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))
	return database
}

func TestCacheRepositoryPutIsUpsert(t *testing.T) {
	repo := NewCacheRepository(testDB(t))

	_, err := repo.ByUserID("u1")
	require.ErrorIs(t, err, ErrCacheEntryNotFound)

	require.NoError(t, repo.Put("u1", []byte(`[{"id":"p1"}]`)))
	require.NoError(t, repo.Put("u1", []byte(`[{"id":"p1"},{"id":"p2"}]`)))

	entry, err := repo.ByUserID("u1")
	require.NoError(t, err)
	require.Equal(t, "u1", entry.UserID)
	require.JSONEq(t, `[{"id":"p1"},{"id":"p2"}]`, string(entry.Payload))
}

func TestCacheRepositoryIsolatesUsers(t *testing.T) {
	repo := NewCacheRepository(testDB(t))

	require.NoError(t, repo.Put("u1", []byte(`["a"]`)))
	require.NoError(t, repo.Put("u2", []byte(`["b"]`)))

	require.NoError(t, repo.Delete("u1"))

	_, err := repo.ByUserID("u1")
	require.ErrorIs(t, err, ErrCacheEntryNotFound)

	entry, err := repo.ByUserID("u2")
	require.NoError(t, err)
	require.Equal(t, `["b"]`, string(entry.Payload))

	require.NoError(t, repo.DeleteAll())
	_, err = repo.ByUserID("u2")
	require.ErrorIs(t, err, ErrCacheEntryNotFound)
}

func TestSessionRepositoryKeepsSingleSession(t *testing.T) {
	database := testDB(t)
	repo := NewSessionRepository(database)

	_, err := repo.Current()
	require.ErrorIs(t, err, ErrSessionNotFound)

	first := &model.Session{
		UserID:       "u1",
		Email:        "claire@exemple.fr",
		AccessToken:  "tok-1",
		RefreshToken: "ref-1",
		ExpiresAt:    time.Now().Add(time.Hour).UTC(),
		UpdatedAt:    time.Now().Add(-time.Minute).UTC(),
	}
	require.NoError(t, repo.Put(first))

	second := &model.Session{
		UserID:       "u1",
		Email:        "claire@exemple.fr",
		AccessToken:  "tok-2",
		RefreshToken: "ref-2",
		ExpiresAt:    time.Now().Add(2 * time.Hour).UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Put(second))

	current, err := repo.Current()
	require.NoError(t, err)
	require.Equal(t, "tok-2", current.AccessToken)

	var count int
	require.NoError(t, database.Get(&count, `SELECT COUNT(*) FROM auth_session`))
	require.Equal(t, 1, count, "put must replace, not accumulate")

	require.NoError(t, repo.DeleteAll())
	_, err = repo.Current()
	require.ErrorIs(t, err, ErrSessionNotFound)
}
