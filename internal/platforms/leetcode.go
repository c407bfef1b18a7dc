package platforms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"cptracker/internal/models"
)

const leetcodeGraphQLURL = "https://leetcode.com/graphql"

const leetcodeProfileQuery = `
query userProfile($username: String!) {
  matchedUser(username: $username) {
    submitStats {
      acSubmissionNum {
        difficulty
        count
      }
    }
  }
}`

type LeetCodeClient struct {
	url    string
	client *http.Client
	now    func() time.Time
}

func NewLeetCodeClient() *LeetCodeClient {
	return &LeetCodeClient{
		url:    leetcodeGraphQLURL,
		client: newHTTPClient(),
		now:    time.Now,
	}
}

type leetcodeResponse struct {
	Data struct {
		MatchedUser *struct {
			SubmitStats struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStats"`
		} `json:"matchedUser"`
	} `json:"data"`
}

// Fetch queries the accepted-count-by-difficulty aggregate. LeetCode exposes
// no per-problem submission list, so one placeholder Accepted submission is
// synthesized per difficulty bucket, with a stable problem id so buckets
// dedup independently across refreshes.
func (c *LeetCodeClient) Fetch(ctx context.Context, handle string) (models.PlatformData, error) {
	var data models.PlatformData

	payload := map[string]interface{}{
		"query":     leetcodeProfileQuery,
		"variables": map[string]string{"username": handle},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return data, fmt.Errorf("failed to encode leetcode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return data, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return data, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return data, fmt.Errorf("unexpected status %d from leetcode", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return data, fmt.Errorf("failed to read response body: %w", err)
	}

	var decoded leetcodeResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return data, fmt.Errorf("failed to decode leetcode response: %w", err)
	}

	if decoded.Data.MatchedUser == nil {
		return data, fmt.Errorf("leetcode user %q not found", handle)
	}

	fetchedAt := c.now()
	for _, stat := range decoded.Data.MatchedUser.SubmitStats.AcSubmissionNum {
		if stat.Count == 0 {
			continue
		}

		data.Submissions = append(data.Submissions, models.Submission{
			Platform:    models.PlatformLeetCode,
			ProblemID:   "aggregate-" + strings.ToLower(stat.Difficulty),
			ProblemName: fmt.Sprintf("LeetCode Problem (%s)", stat.Difficulty),
			Difficulty:  stat.Difficulty,
			Status:      models.StatusAccepted,
			SubmittedAt: fetchedAt,
		})
		data.TotalSolved += stat.Count
	}

	return data, nil
}
