// Package automation forwards free-text instructions to the n8n
// workflow endpoints.
package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrNoEndpointReached means no webhook endpoint produced an HTTP
// response before the deadline.
var ErrNoEndpointReached = errors.New("no automation endpoint reached")

// Notifier fans an instruction out to every configured webhook URL.
//
// Delivery contract: any HTTP response, including 404 or 500, counts as
// delivered, because the workflow engine acknowledges receipt before it
// runs anything. Only network-level failures on every endpoint, or the
// deadline firing first, count as failure.
type Notifier struct {
	urls       []string
	timeout    time.Duration
	httpClient *http.Client
}

func NewNotifier(urls []string, timeout time.Duration) *Notifier {
	return &Notifier{
		urls:       urls,
		timeout:    timeout,
		httpClient: &http.Client{Timeout: 0},
	}
}

type payload struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// Send posts the instruction to all endpoints and returns once the first
// one responds. It does not wait for the slower endpoints; their
// outcomes are logged by the posting goroutines.
func (n *Notifier) Send(ctx context.Context, text string) error {
	if len(n.urls) == 0 {
		return fmt.Errorf("%w: no endpoints configured", ErrNoEndpointReached)
	}

	body, err := json.Marshal(payload{
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("encoding payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	results := make(chan error, len(n.urls))
	for _, u := range n.urls {
		go func(u string) {
			results <- n.post(ctx, u, body)
		}(u)
	}

	var lastErr error
	for range n.urls {
		select {
		case err := <-results:
			if err == nil {
				return nil
			}
			lastErr = err
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrNoEndpointReached, ctx.Err())
		}
	}
	return fmt.Errorf("%w: %v", ErrNoEndpointReached, lastErr)
}

func (n *Notifier) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		slog.Warn("automation endpoint unreachable", "url", url, "error", err)
		return err
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		slog.Info("automation endpoint answered with an error status, counting as delivered",
			"url", url, "status", resp.StatusCode)
	}
	return nil
}
