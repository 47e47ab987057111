package srf

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// SongList fetches the current song list with a single GET request.
//
// It sends no credentials and no query parameters, and it does not retry.
// Cancellation and timeouts come only from ctx and the configured HTTP client.
func (c *Client) SongList(ctx context.Context) (*SongList, error) {
	c.logDebugf("srf: GET %s", c.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		c.logDebugf("srf: status %d", resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var list SongList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, &DecodeError{Err: err}
	}

	c.logDebugf("srf: received %d songs", len(list.Songs))
	return &list, nil
}
