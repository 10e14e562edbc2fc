package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/PDMZ-Ops/yes-conciergerie/internal/model"
	"github.com/PDMZ-Ops/yes-conciergerie/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotSignedIn        = errors.New("not signed in")
)

// AuthEventKind mirrors the provider's auth-state-change notification kinds.
type AuthEventKind string

const (
	EventInitialSession AuthEventKind = "initial_session"
	EventSignedIn       AuthEventKind = "signed_in"
	EventTokenRefreshed AuthEventKind = "token_refreshed"
	EventSignedOut      AuthEventKind = "signed_out"
)

// AuthEvent is one auth-state-change notification. Session is nil for
// signed_out events.
type AuthEvent struct {
	Kind    AuthEventKind
	Session *model.Session
}

// AuthProvider is the auth collaborator: session lookup, password sign-in,
// sign-out, and asynchronous state-change notifications.
type AuthProvider interface {
	TokenSource

	// Start performs the fast local session check (no network) and begins
	// the token refresh schedule. It emits an initial_session event when a
	// persisted session exists.
	Start()
	Stop()

	Session() *model.Session
	SignIn(ctx context.Context, email, password string) (*model.Session, error)

	// SignOut calls the provider's sign-out endpoint with the caller's
	// deadline, then unconditionally drops the local session and emits
	// signed_out. The network error, if any, is returned so the caller can
	// escalate to a full artifact purge.
	SignOut(ctx context.Context) error

	Events() <-chan AuthEvent
}

// refreshLead is how long before token expiry a refresh is attempted.
const refreshLead = time.Minute

type gotrueProvider struct {
	client   *Client
	sessions repository.SessionRepository

	mu      sync.Mutex
	current *model.Session
	timer   *time.Timer

	events chan AuthEvent
}

// NewAuthProvider returns a GoTrue-style provider persisting its session
// through the given repository.
func NewAuthProvider(client *Client, sessions repository.SessionRepository) AuthProvider {
	p := &gotrueProvider{
		client:   client,
		sessions: sessions,
		events:   make(chan AuthEvent, 16),
	}
	// The project client signs its requests with our current token.
	client.tokens = p
	return p
}

func (p *gotrueProvider) Start() {
	session, err := p.sessions.Current()
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			slog.Warn("auth local session check failed", "error", err)
		}
		return
	}

	p.mu.Lock()
	p.current = session
	p.mu.Unlock()

	p.emit(AuthEvent{Kind: EventInitialSession, Session: session})
	p.scheduleRefresh(session)
}

func (p *gotrueProvider) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *gotrueProvider) Session() *model.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *gotrueProvider) AccessToken() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return ""
	}
	return p.current.AccessToken
}

func (p *gotrueProvider) Events() <-chan AuthEvent {
	return p.events
}

// tokenResponse mirrors the JSON of the provider's token endpoint.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

func (p *gotrueProvider) SignIn(ctx context.Context, email, password string) (*model.Session, error) {
	body := map[string]string{"email": email, "password": password}

	req, err := p.client.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", body)
	if err != nil {
		return nil, err
	}

	var tok tokenResponse
	if err := p.client.doJSON(req, &tok); err != nil {
		if errors.Is(err, ErrRemoteRejected) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		return nil, err
	}

	session := p.sessionFromToken(tok)
	if session.UserID == "" {
		return nil, fmt.Errorf("provider returned a session without a user id")
	}

	if err := p.sessions.Put(session); err != nil {
		slog.Warn("auth failed to persist session", "error", err)
	}

	p.mu.Lock()
	p.current = session
	p.mu.Unlock()

	p.emit(AuthEvent{Kind: EventSignedIn, Session: session})
	p.scheduleRefresh(session)
	return session, nil
}

func (p *gotrueProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	current := p.current
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.mu.Unlock()

	var netErr error
	if current != nil {
		req, err := p.client.newRequest(ctx, http.MethodPost, "/auth/v1/logout", nil)
		if err == nil {
			netErr = p.client.doJSON(req, nil)
		} else {
			netErr = err
		}
	}

	// Local state is dropped no matter what the provider said; the caller
	// must never be left in an ambiguous signed-in state.
	if err := p.sessions.DeleteAll(); err != nil {
		slog.Warn("auth failed to delete persisted session", "error", err)
	}

	p.mu.Lock()
	p.current = nil
	p.mu.Unlock()

	p.emit(AuthEvent{Kind: EventSignedOut, Session: nil})
	return netErr
}

func (p *gotrueProvider) sessionFromToken(tok tokenResponse) *model.Session {
	userID := tok.User.ID
	email := tok.User.Email
	if userID == "" {
		// Fall back to the sub claim. The token was just issued by the
		// provider over TLS, so it is decoded without verification here.
		claims := jwt.MapClaims{}
		_, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims)
		if err == nil {
			if sub, ok := claims["sub"].(string); ok {
				userID = sub
			}
			if em, ok := claims["email"].(string); ok && email == "" {
				email = em
			}
		}
	}

	return &model.Session{
		UserID:       userID,
		Email:        email,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
		UpdatedAt:    time.Now(),
	}
}

func (p *gotrueProvider) scheduleRefresh(session *model.Session) {
	if session == nil || session.RefreshToken == "" {
		return
	}

	wait := time.Until(session.ExpiresAt) - refreshLead
	if wait < time.Second {
		wait = time.Second
	}

	p.mu.Lock()
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(wait, p.refresh)
	p.mu.Unlock()
}

func (p *gotrueProvider) refresh() {
	p.mu.Lock()
	current := p.current
	p.mu.Unlock()
	if current == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	body := map[string]string{"refresh_token": current.RefreshToken}
	req, err := p.client.newRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", body)
	if err != nil {
		slog.Warn("auth refresh request failed", "error", err)
		return
	}

	var tok tokenResponse
	if err := p.client.doJSON(req, &tok); err != nil {
		if errors.Is(err, ErrRemoteRejected) {
			// Refresh token revoked or expired: the session is gone.
			slog.Info("auth refresh rejected, signing out locally", "error", err)
			if delErr := p.sessions.DeleteAll(); delErr != nil {
				slog.Warn("auth failed to delete persisted session", "error", delErr)
			}
			p.mu.Lock()
			p.current = nil
			p.mu.Unlock()
			p.emit(AuthEvent{Kind: EventSignedOut, Session: nil})
			return
		}
		// Transient network trouble: keep the session, a later operation
		// will surface the failure. No automatic retry.
		slog.Warn("auth refresh failed", "error", err)
		return
	}

	session := p.sessionFromToken(tok)
	if session.UserID == "" {
		session.UserID = current.UserID
		session.Email = current.Email
	}

	if err := p.sessions.Put(session); err != nil {
		slog.Warn("auth failed to persist refreshed session", "error", err)
	}

	p.mu.Lock()
	p.current = session
	p.mu.Unlock()

	p.emit(AuthEvent{Kind: EventTokenRefreshed, Session: session})
	p.scheduleRefresh(session)
}

// emit never blocks the provider; events are dropped if the watcher stalls.
func (p *gotrueProvider) emit(event AuthEvent) {
	select {
	case p.events <- event:
	default:
		slog.Warn("auth event dropped, channel full", "kind", event.Kind)
	}
}
