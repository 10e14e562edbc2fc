package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
)

type fakeAuth struct {
	events     chan remote.AuthEvent
	session    *model.Session
	signOutErr error
	started    bool
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{events: make(chan remote.AuthEvent, 16)}
}

func (f *fakeAuth) AccessToken() string {
	if f.session == nil {
		return ""
	}
	return f.session.AccessToken
}

func (f *fakeAuth) Start() { f.started = true }
func (f *fakeAuth) Stop()  {}

func (f *fakeAuth) Session() *model.Session { return f.session }

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	f.session = &model.Session{UserID: "u1", Email: email, ExpiresAt: time.Now().Add(time.Hour)}
	f.events <- remote.AuthEvent{Kind: remote.EventSignedIn, Session: f.session}
	return f.session, nil
}

func (f *fakeAuth) SignOut(ctx context.Context) error {
	f.session = nil
	f.events <- remote.AuthEvent{Kind: remote.EventSignedOut}
	return f.signOutErr
}

func (f *fakeAuth) Events() <-chan remote.AuthEvent { return f.events }

func TestSessionEventTriggersSingleListLoad(t *testing.T) {
	api := &fakeAPI{summaries: summariesOf("p1")}
	store := newStore(api, nil)
	auth := newFakeAuth()
	sessions := NewSessionService(auth, newMemCache(), store, time.Second)

	sessions.Start()
	defer sessions.Stop()
	require.True(t, auth.started)

	session := &model.Session{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	auth.events <- remote.AuthEvent{Kind: remote.EventInitialSession, Session: session}
	auth.events <- remote.AuthEvent{Kind: remote.EventSignedIn, Session: session}

	require.Eventually(t, func() bool {
		return len(store.Projects("")) == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Give a duplicated load a chance to happen, then check it did not.
	time.Sleep(100 * time.Millisecond)
	api.mu.Lock()
	defer api.mu.Unlock()
	require.Equal(t, 1, api.listCalls, "the initial load must run once per user")
}

func TestSignedOutEventResetsStore(t *testing.T) {
	api := &fakeAPI{summaries: summariesOf("p1")}
	store := newStore(api, nil)
	auth := newFakeAuth()
	sessions := NewSessionService(auth, newMemCache(), store, time.Second)

	sessions.Start()
	defer sessions.Stop()

	require.NoError(t, store.LoadList(context.Background(), "u1"))
	require.Len(t, store.Projects(""), 1)

	auth.events <- remote.AuthEvent{Kind: remote.EventSignedOut}

	require.Eventually(t, func() bool {
		return len(store.Projects("")) == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSignOutKeepsCacheOnCleanExit(t *testing.T) {
	cache := newMemCache()
	require.NoError(t, cache.Put("u1", []byte(`[{"id":"p1"}]`)))

	store := newStore(&fakeAPI{}, cache)
	auth := newFakeAuth()
	auth.session = &model.Session{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}
	sessions := NewSessionService(auth, cache, store, time.Second)

	require.NoError(t, sessions.SignOut(context.Background()))

	_, err := cache.ByUserID("u1")
	require.NoError(t, err, "a confirmed sign-out keeps the cache for the next session")
}

func TestSignOutPurgesOnProviderFailure(t *testing.T) {
	cache := newMemCache()
	require.NoError(t, cache.Put("u1", []byte(`[{"id":"p1"}]`)))

	api := &fakeAPI{summaries: summariesOf("p1")}
	store := newStore(api, cache)
	require.NoError(t, store.LoadList(context.Background(), "u1"))

	auth := newFakeAuth()
	auth.signOutErr = errors.New("gateway timeout")
	sessions := NewSessionService(auth, cache, store, time.Second)

	require.NoError(t, sessions.SignOut(context.Background()), "local sign-out must succeed regardless")

	_, err := cache.ByUserID("u1")
	require.Error(t, err, "an unconfirmed sign-out must purge cached dossiers")
	require.Empty(t, store.Projects(""))
}

func TestSessionAccessor(t *testing.T) {
	auth := newFakeAuth()
	sessions := NewSessionService(auth, newMemCache(), newStore(&fakeAPI{}, nil), time.Second)

	_, err := sessions.Session()
	require.ErrorIs(t, err, remote.ErrNotSignedIn)

	_, err = sessions.SignIn(context.Background(), "claire@exemple.fr", "secret")
	require.NoError(t, err)

	session, err := sessions.Session()
	require.NoError(t, err)
	require.Equal(t, "u1", session.UserID)
}
