package model

import "time"

// CacheEntry is the per-user persisted snapshot of the dossier list, used to
// paint the UI before the remote round trip completes. The payload is the
// JSON array of projects as last merged in memory, so it never carries less
// detail than what was already fetched.
type CacheEntry struct {
	UserID    string    `db:"user_id"`
	Payload   []byte    `db:"payload"`
	UpdatedAt time.Time `db:"updated_at"`
}
