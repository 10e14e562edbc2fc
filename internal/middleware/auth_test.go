package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/ctxkeys"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/remote"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/repository"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/service"
)

type fixedAuth struct {
	session *model.Session
}

func (f *fixedAuth) AccessToken() string {
	if f.session == nil {
		return ""
	}
	return f.session.AccessToken
}
func (f *fixedAuth) Start()                  {}
func (f *fixedAuth) Stop()                   {}
func (f *fixedAuth) Session() *model.Session { return f.session }
func (f *fixedAuth) SignIn(context.Context, string, string) (*model.Session, error) {
	return f.session, nil
}
func (f *fixedAuth) SignOut(context.Context) error   { return nil }
func (f *fixedAuth) Events() <-chan remote.AuthEvent { return nil }

type noopCache struct{}

func (noopCache) ByUserID(string) (*model.CacheEntry, error) {
	return nil, repository.ErrCacheEntryNotFound
}
func (noopCache) Put(string, []byte) error { return nil }
func (noopCache) Delete(string) error      { return nil }
func (noopCache) DeleteAll() error         { return nil }

func sessionService(auth *fixedAuth) *service.SessionService {
	store := service.NewProjectService(nil, noopCache{}, time.Second, time.Second, time.Second)
	return service.NewSessionService(auth, noopCache{}, store, time.Second)
}

func TestRequireSessionRejectsWhenSignedOut(t *testing.T) {
	gate := RequireSession(sessionService(&fixedAuth{}))

	called := false
	h := gate(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if called {
		t.Error("handler must not run without a session")
	}
}

func TestRequireSessionRejectsExpired(t *testing.T) {
	auth := &fixedAuth{session: &model.Session{UserID: "u1", ExpiresAt: time.Now().Add(-time.Minute)}}
	gate := RequireSession(sessionService(auth))

	rec := httptest.NewRecorder()
	gate(func(w http.ResponseWriter, r *http.Request) {})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireSessionAttachesSession(t *testing.T) {
	auth := &fixedAuth{session: &model.Session{UserID: "u1", ExpiresAt: time.Now().Add(time.Hour)}}
	gate := RequireSession(sessionService(auth))

	var got *model.Session
	h := gate(func(w http.ResponseWriter, r *http.Request) {
		got = ctxkeys.Session(r.Context())
	})

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got == nil || got.UserID != "u1" {
		t.Fatalf("session not attached to context: %+v", got)
	}
}
