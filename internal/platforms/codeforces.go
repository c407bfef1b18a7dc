package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"cptracker/internal/models"
)

const codeforcesBaseURL = "https://codeforces.com/api"

// submissionFetchLimit caps user.status at the 100 most recent submissions.
const submissionFetchLimit = 100

type CodeforcesClient struct {
	baseURL string
	client  *http.Client
}

func NewCodeforcesClient() *CodeforcesClient {
	return &CodeforcesClient{
		baseURL: codeforcesBaseURL,
		client:  newHTTPClient(),
	}
}

type cfEnvelope struct {
	Status  string          `json:"status"`
	Comment string          `json:"comment"`
	Result  json.RawMessage `json:"result"`
}

type cfSubmission struct {
	Verdict             string `json:"verdict"`
	ProgrammingLanguage string `json:"programmingLanguage"`
	CreationTimeSeconds int64  `json:"creationTimeSeconds"`
	Problem             struct {
		ContestID int    `json:"contestId"`
		Index     string `json:"index"`
		Name      string `json:"name"`
		Rating    int    `json:"rating"`
	} `json:"problem"`
}

type cfRatingChange struct {
	ContestID               int    `json:"contestId"`
	ContestName             string `json:"contestName"`
	NewRating               int    `json:"newRating"`
	RatingUpdateTimeSeconds int64  `json:"ratingUpdateTimeSeconds"`
}

func (c *CodeforcesClient) call(ctx context.Context, path string, result interface{}) error {
	body, err := doGet(ctx, c.client, c.baseURL+path)
	if err != nil {
		return err
	}

	var envelope cfEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("failed to decode codeforces response: %w", err)
	}

	if envelope.Status != "OK" {
		if envelope.Comment != "" {
			return fmt.Errorf("codeforces api error: %s", envelope.Comment)
		}
		return fmt.Errorf("codeforces api returned status %q", envelope.Status)
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("failed to decode codeforces result: %w", err)
		}
	}
	return nil
}

// Fetch issues the three sequential Codeforces calls: user.info as an
// existence check, user.status for recent submissions and user.rating for
// the contest history.
func (c *CodeforcesClient) Fetch(ctx context.Context, handle string) (models.PlatformData, error) {
	var data models.PlatformData

	if err := c.call(ctx, "/user.info?handles="+handle, nil); err != nil {
		return data, err
	}

	var rawSubmissions []cfSubmission
	path := fmt.Sprintf("/user.status?handle=%s&from=1&count=%d", handle, submissionFetchLimit)
	if err := c.call(ctx, path, &rawSubmissions); err != nil {
		return data, err
	}

	for _, item := range rawSubmissions {
		status := item.Verdict
		if status == "OK" {
			status = models.StatusAccepted
		} else if status == "" {
			status = "Unknown"
		}

		name := item.Problem.Name
		if name == "" {
			name = "Unknown Problem"
		}

		language := item.ProgrammingLanguage
		if language == "" {
			language = "Unknown"
		}

		data.Submissions = append(data.Submissions, models.Submission{
			Platform:    models.PlatformCodeforces,
			ProblemID:   fmt.Sprintf("%d%s", item.Problem.ContestID, item.Problem.Index),
			ProblemName: name,
			Difficulty:  strconv.Itoa(item.Problem.Rating),
			Status:      status,
			Language:    language,
			SubmittedAt: time.Unix(item.CreationTimeSeconds, 0),
		})
	}

	var rawRatings []cfRatingChange
	if err := c.call(ctx, "/user.rating?handle="+handle, &rawRatings); err != nil {
		return data, err
	}

	for _, item := range rawRatings {
		name := item.ContestName
		if name == "" {
			name = "Unknown Contest"
		}

		data.Ratings = append(data.Ratings, models.Rating{
			Platform:    models.PlatformCodeforces,
			Rating:      item.NewRating,
			ContestID:   strconv.Itoa(item.ContestID),
			ContestName: name,
			RatedAt:     time.Unix(item.RatingUpdateTimeSeconds, 0),
		})
	}

	return data, nil
}
