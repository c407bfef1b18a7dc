package platforms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"cptracker/internal/models"
)

// Fetcher pulls a user's activity from one external platform and normalizes
// it into the common PlatformData shape. Implementations return an error on
// any upstream failure; the refresh orchestrator logs it and moves on to the
// next platform.
type Fetcher interface {
	Fetch(ctx context.Context, handle string) (models.PlatformData, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// doGet performs a GET and returns the body, treating any non-2xx status as
// an error.
func doGet(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// DefaultFetchers wires one adapter per platform against the real upstreams.
func DefaultFetchers() map[models.Platform]Fetcher {
	return map[models.Platform]Fetcher{
		models.PlatformCodeforces:    NewCodeforcesClient(),
		models.PlatformLeetCode:      NewLeetCodeClient(),
		models.PlatformCodeChef:      NewCodeChefClient(),
		models.PlatformGeeksforGeeks: NewGeeksforGeeksClient(),
	}
}
