package platforms

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"cptracker/internal/models"
)

const geeksforgeeksBaseURL = "https://geeksforgeeks.org"

var gfgSolvedPattern = regexp.MustCompile(`"total_problems_solved":(\d+)`)

type GeeksforGeeksClient struct {
	baseURL string
	client  *http.Client
}

func NewGeeksforGeeksClient() *GeeksforGeeksClient {
	return &GeeksforGeeksClient{
		baseURL: geeksforgeeksBaseURL,
		client:  newHTTPClient(),
	}
}

// Fetch scrapes the practice page for the total solved count. GeeksforGeeks
// exposes no per-problem records, so only the aggregate is filled. A pattern
// miss defaults to zero.
func (c *GeeksforGeeksClient) Fetch(ctx context.Context, handle string) (models.PlatformData, error) {
	var data models.PlatformData

	body, err := doGet(ctx, c.client, c.baseURL+"/user/"+handle+"/practice")
	if err != nil {
		return data, err
	}

	match := gfgSolvedPattern.FindSubmatch(body)
	if match == nil {
		return data, nil
	}

	total, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return data, nil
	}

	data.TotalSolved = total
	return data, nil
}
