package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/repository"
)

// SessionService glues the auth provider to the dossier store: it
// watches auth state changes, kicks off the initial list load exactly
// once per signed-in user, and owns the sign-out teardown.
type SessionService struct {
	auth           remote.AuthProvider
	cache          repository.CacheRepository
	store          *ProjectService
	signOutTimeout time.Duration

	mu        sync.Mutex
	loadedFor map[string]bool

	done     chan struct{}
	stopOnce sync.Once
}

func NewSessionService(auth remote.AuthProvider, cache repository.CacheRepository, store *ProjectService, signOutTimeout time.Duration) *SessionService {
	return &SessionService{
		auth:           auth,
		cache:          cache,
		store:          store,
		signOutTimeout: signOutTimeout,
		loadedFor:      make(map[string]bool),
		done:           make(chan struct{}),
	}
}

// Start begins the auth watcher, then runs the provider's fast local
// session check. Order matters: the check may emit an initial_session
// event and the watcher must be listening for it.
func (s *SessionService) Start() {
	go s.watch()
	s.auth.Start()
}

func (s *SessionService) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	s.auth.Stop()
}

func (s *SessionService) watch() {
	for {
		select {
		case <-s.done:
			return
		case event := <-s.auth.Events():
			s.handle(event)
		}
	}
}

func (s *SessionService) handle(event remote.AuthEvent) {
	switch event.Kind {
	case remote.EventInitialSession, remote.EventSignedIn:
		if event.Session == nil {
			return
		}
		userID := event.Session.UserID

		s.mu.Lock()
		already := s.loadedFor[userID]
		s.loadedFor[userID] = true
		s.mu.Unlock()

		if already {
			return
		}
		slog.Info("session established, loading dossiers", "kind", event.Kind, "user_id", userID)
		go func() {
			if err := s.store.LoadList(context.Background(), userID); err != nil {
				slog.Error("initial dossier load failed", "user_id", userID, "error", err)
			}
		}()

	case remote.EventTokenRefreshed:
		// Nothing to reload; the project client picks up the new token
		// on its next request.

	case remote.EventSignedOut:
		s.mu.Lock()
		s.loadedFor = make(map[string]bool)
		s.mu.Unlock()
		s.store.Reset()
	}
}

// Session returns the current session, or ErrNotSignedIn.
func (s *SessionService) Session() (*model.Session, error) {
	session := s.auth.Session()
	if session == nil {
		return nil, remote.ErrNotSignedIn
	}
	return session, nil
}

// SignIn authenticates with the provider. The dossier load is triggered
// by the resulting signed_in event, not here.
func (s *SessionService) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	return s.auth.SignIn(ctx, email, password)
}

// SignOut tears the session down. The provider call runs under its own
// short deadline; whatever it answers, local state is dropped. A failed
// or timed-out provider call escalates to a full local purge so no
// cached dossier data outlives an unconfirmed sign-out.
func (s *SessionService) SignOut(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.signOutTimeout)
	defer cancel()

	err := s.auth.SignOut(ctx)
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		slog.Warn("provider sign-out timed out, purging local artifacts")
	} else {
		slog.Warn("provider sign-out failed, purging local artifacts", "error", err)
	}

	if purgeErr := s.cache.DeleteAll(); purgeErr != nil {
		slog.Error("cache purge failed", "error", purgeErr)
	}
	s.store.Reset()

	// The user is signed out locally either way.
	return nil
}
