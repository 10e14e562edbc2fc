// Package remote holds the clients for the hosted collaborators: the
// relational data store (PostgREST-style CRUD on the projects collection)
// and its companion auth provider (GoTrue-style token endpoints). Both are
// opaque request/response services; everything stateful lives in the
// services that call them.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	// ErrRemoteRejected covers explicit non-2xx answers from the store. The
	// caller surfaces these as-is and performs no state mutation.
	ErrRemoteRejected = errors.New("remote store rejected the request")
)

// Client is the shared HTTP plumbing for the Supabase-style backend.
type Client struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
	tokens     TokenSource
}

// TokenSource supplies the current access token for authenticated calls.
// The auth provider implements it; requests made while signed out carry
// only the anon key.
type TokenSource interface {
	AccessToken() string
}

// NewClient creates a Client for the given project URL and anon key.
// Per-call deadlines come from the caller's context, never from the
// transport, so a fired timeout cancels the request instead of orphaning it.
func NewClient(baseURL, anonKey string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		httpClient: &http.Client{
			Timeout: 0,
		},
		tokens: tokens,
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("apikey", c.anonKey)
	token := c.anonKey
	if c.tokens != nil {
		if t := c.tokens.AccessToken(); t != "" {
			token = t
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return req, nil
}

// doJSON executes the request and decodes a JSON response into out (which
// may be nil for fire-and-forget writes). Non-2xx statuses are returned as
// ErrRemoteRejected with the provider's message attached.
func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		return fmt.Errorf("%w: %s (status %d)", ErrRemoteRejected, msg, resp.StatusCode)
	}

	if out == nil {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var payload struct {
		Message          string `json:"message"`
		Msg              string `json:"msg"`
		ErrorDescription string `json:"error_description"`
	}
	b, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(b) == 0 {
		return "no error detail"
	}
	if json.Unmarshal(b, &payload) == nil {
		for _, m := range []string{payload.Message, payload.Msg, payload.ErrorDescription} {
			if m != "" {
				return m
			}
		}
	}
	return strings.TrimSpace(string(b))
}
