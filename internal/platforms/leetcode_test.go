package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cptracker/internal/models"
)

func TestLeetCodeFetchSynthesizesSubmissions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		fmt.Fprint(w, `{"data":{"matchedUser":{"submitStats":{"acSubmissionNum":[
			{"difficulty":"All","count":57},
			{"difficulty":"Easy","count":30},
			{"difficulty":"Medium","count":22},
			{"difficulty":"Hard","count":5}
		]}}}}`)
	}))
	defer srv.Close()

	fetchedAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	client := &LeetCodeClient{url: srv.URL, client: srv.Client(), now: func() time.Time { return fetchedAt }}

	data, err := client.Fetch(context.Background(), "someone")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(data.Submissions) != 4 {
		t.Fatalf("expected one placeholder per non-empty bucket, got %d", len(data.Submissions))
	}

	easy := data.Submissions[1]
	if easy.ProblemID != "aggregate-easy" {
		t.Errorf("placeholder problem id should be stable per bucket, got %q", easy.ProblemID)
	}
	if easy.Status != models.StatusAccepted {
		t.Errorf("placeholders must be Accepted, got %q", easy.Status)
	}
	if easy.ProblemName != "LeetCode Problem (Easy)" {
		t.Errorf("unexpected problem name %q", easy.ProblemName)
	}
	if !easy.SubmittedAt.Equal(fetchedAt) {
		t.Errorf("placeholder should carry the fetch timestamp, got %v", easy.SubmittedAt)
	}

	if len(data.Ratings) != 0 {
		t.Errorf("leetcode adapter must not produce ratings, got %d", len(data.Ratings))
	}
}

func TestLeetCodeFetchSkipsEmptyBuckets(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"matchedUser":{"submitStats":{"acSubmissionNum":[
			{"difficulty":"Easy","count":3},
			{"difficulty":"Hard","count":0}
		]}}}}`)
	}))
	defer srv.Close()

	client := &LeetCodeClient{url: srv.URL, client: srv.Client(), now: time.Now}
	data, err := client.Fetch(context.Background(), "someone")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if len(data.Submissions) != 1 {
		t.Fatalf("zero-count buckets should be skipped, got %d submissions", len(data.Submissions))
	}
}

func TestLeetCodeFetchUnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"matchedUser":null}}`)
	}))
	defer srv.Close()

	client := &LeetCodeClient{url: srv.URL, client: srv.Client(), now: time.Now}
	if _, err := client.Fetch(context.Background(), "ghost"); err == nil {
		t.Fatal("expected error for unknown user")
	}
}
