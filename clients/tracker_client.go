// Package clients holds HTTP clients for external surfaces the engine
// mirrors into. The tracking surface keeps a human-readable record of the
// draft (historically a shared spreadsheet); it is never consulted for
// correctness.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/draftline/draftline/internal/models"
)

type TrackerClient struct {
	baseURL string
	client  *http.Client
	apiKey  string
}

func NewTrackerClient(baseURL, apiKey string) *TrackerClient {
	return &TrackerClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *TrackerClient) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// RecordPick mirrors one committed pick to the tracking surface.
func (c *TrackerClient) RecordPick(ctx context.Context, pick models.Pick) error {
	endpoint := fmt.Sprintf("/seasons/%d/picks/%d", pick.Season, pick.Overall)
	return c.send(ctx, http.MethodPut, endpoint, pick)
}

// ReplacePicks rewrites the whole season on the tracking surface. Used by the
// resync repair path; safe to repeat.
func (c *TrackerClient) ReplacePicks(ctx context.Context, season int, picks []models.Pick) error {
	endpoint := fmt.Sprintf("/seasons/%d/picks", season)
	return c.send(ctx, http.MethodPut, endpoint, picks)
}

func (c *TrackerClient) send(ctx context.Context, method, endpoint string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal tracker payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		responseBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("tracker returned status code: %d, response: %s", resp.StatusCode, string(responseBody))
	}
	return nil
}
