// Package gemini is a minimal REST client for the Generative Language
// API. Only the generateContent surface is used: one-shot text
// generation for synthesis notes and multi-turn chat for the dossier
// assistant.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrServiceUnavailable covers transport failures and non-2xx answers
// from the model API. Callers surface it as a generic outage; request
// details stay in the logs.
var ErrServiceUnavailable = errors.New("generation service unavailable")

// Message is one prior turn of a chat. Role is "user" or "model".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a client for the given API base, key, and model id.
// Deadlines come from the caller's context.
func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 0},
	}
}

// Wire types of the generateContent endpoint.
type generateRequest struct {
	Contents          []content `json:"contents"`
	SystemInstruction *content  `json:"systemInstruction,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText runs a one-shot prompt and returns the model's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
	}
	return c.generate(ctx, req)
}

// Chat sends one user message with an optional system instruction and
// prior turns, and returns the model's reply.
func (c *Client) Chat(ctx context.Context, system string, history []Message, message string) (string, error) {
	req := generateRequest{}
	if system != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	for _, m := range history {
		role := m.Role
		if role != "model" {
			role = "user"
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: m.Text}}})
	}
	req.Contents = append(req.Contents, content{Role: "user", Parts: []part{{Text: message}}})
	return c.generate(ctx, req)
}

func (c *Client) generate(ctx context.Context, payload generateRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, url.PathEscape(c.model), url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", fmt.Errorf("%w: status %d: %s", ErrServiceUnavailable, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrServiceUnavailable, err)
	}

	var b strings.Builder
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
		break
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: empty response", ErrServiceUnavailable)
	}
	return b.String(), nil
}
