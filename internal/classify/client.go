// Package classify calls a remote zero-shot classification service to
// label chat messages. Failures never surface past this boundary: any
// transport or payload problem degrades to the "outro" label, which the
// pipeline reads as "not an expense".
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"despesabot/internal/core"
)

const (
	// DefaultURL points at the hosted bart-large-mnli inference endpoint.
	DefaultURL = "https://api-inference.huggingface.co/models/facebook/bart-large-mnli"

	defaultTimeout = 15 * time.Second
)

type Config struct {
	URL     string
	Token   string
	Timeout time.Duration
}

type Client struct {
	httpClient *http.Client
	url        string
	token      string
}

func NewClient(cfg Config) *Client {
	url := cfg.URL
	if url == "" {
		url = DefaultURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        url,
		token:      cfg.Token,
	}
}

type classifyRequest struct {
	Inputs     string     `json:"inputs"`
	Parameters parameters `json:"parameters"`
}

type parameters struct {
	CandidateLabels []string `json:"candidate_labels"`
}

// classifyResponse carries the labels ranked by confidence descending;
// only the top one is read.
type classifyResponse struct {
	Labels []string `json:"labels"`
}

// Classify asks the remote service which candidate label fits the text
// best. It always succeeds from the caller's view; when the service is
// unreachable or answers garbage the result is core.LabelOther, logged
// with the reason so "service said outro" and "service failed" remain
// distinguishable in the logs.
func (c *Client) Classify(ctx context.Context, text string) core.IntentLabel {
	label, err := c.classify(ctx, text)
	if err != nil {
		slog.WarnContext(ctx, "Classifier fallback to outro", "error", err)
		return core.LabelOther
	}
	slog.DebugContext(ctx, "Classifier verdict", "label", string(label))
	return label
}

func (c *Client) classify(ctx context.Context, text string) (core.IntentLabel, error) {
	body, err := json.Marshal(classifyRequest{
		Inputs:     text,
		Parameters: parameters{CandidateLabels: core.CandidateLabels()},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("call classifier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little of the body for the log line, then discard.
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("classifier status %d: %s", resp.StatusCode, snippet)
	}

	var parsed classifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Labels) == 0 {
		return "", fmt.Errorf("empty label list")
	}

	label, ok := core.ParseIntentLabel(parsed.Labels[0])
	if !ok {
		return "", fmt.Errorf("unexpected label %q", parsed.Labels[0])
	}
	return label, nil
}
