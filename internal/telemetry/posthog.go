package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultPostHogHost is the PostHog cloud ingestion host.
const DefaultPostHogHost = "https://app.posthog.com"

// PostHog delivers events to the PostHog capture endpoint.
type PostHog struct {
	apiKey   string
	endpoint string
	http     *http.Client
}

// NewPostHog returns a sink posting to host with apiKey. An empty host
// selects DefaultPostHogHost.
func NewPostHog(apiKey, host string, client *http.Client) *PostHog {
	if host == "" {
		host = DefaultPostHogHost
	}
	if client == nil {
		client = &http.Client{Timeout: defaultCaptureTimeout}
	}
	return &PostHog{
		apiKey:   apiKey,
		endpoint: strings.TrimSuffix(host, "/") + "/capture/",
		http:     client,
	}
}

type captureRequest struct {
	APIKey     string         `json:"api_key"`
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Properties map[string]any `json:"properties"`
	Timestamp  string         `json:"timestamp,omitempty"`
}

// Capture implements Sink.
func (p *PostHog) Capture(ctx context.Context, ev Event) error {
	req := captureRequest{
		APIKey:     p.apiKey,
		Event:      ev.Name,
		DistinctID: ev.DistinctID,
		Properties: ev.Properties,
	}
	if !ev.Timestamp.IsZero() {
		req.Timestamp = ev.Timestamp.UTC().Format(time.RFC3339Nano)
	}

	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(data))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("posthog returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
