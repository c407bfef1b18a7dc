package platforms

import (
	"context"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"cptracker/internal/models"
)

const codechefBaseURL = "https://www.codechef.com"

// codechefRatingPattern matches the rating value embedded in the profile
// page's inline JSON.
var codechefRatingPattern = regexp.MustCompile(`"rating":(\d+)`)

type CodeChefClient struct {
	baseURL string
	client  *http.Client
	now     func() time.Time
}

func NewCodeChefClient() *CodeChefClient {
	return &CodeChefClient{
		baseURL: codechefBaseURL,
		client:  newHTTPClient(),
		now:     time.Now,
	}
}

// Fetch scrapes the profile page for the current rating. CodeChef exposes no
// accessible submission list, so only a single rating entry is produced. A
// pattern miss means "no rating yet" and yields empty data, not an error.
func (c *CodeChefClient) Fetch(ctx context.Context, handle string) (models.PlatformData, error) {
	var data models.PlatformData

	body, err := doGet(ctx, c.client, c.baseURL+"/users/"+handle)
	if err != nil {
		return data, err
	}

	match := codechefRatingPattern.FindSubmatch(body)
	if match == nil {
		return data, nil
	}

	rating, err := strconv.Atoi(string(match[1]))
	if err != nil || rating == 0 {
		return data, nil
	}

	data.Ratings = append(data.Ratings, models.Rating{
		Platform:    models.PlatformCodeChef,
		Rating:      rating,
		ContestID:   "codechef-rating",
		ContestName: "CodeChef Rating",
		RatedAt:     c.now(),
	})

	return data, nil
}
