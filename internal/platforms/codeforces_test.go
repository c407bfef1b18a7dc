package platforms

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cptracker/internal/models"
)

func newCodeforcesTestServer(t *testing.T, status, submissions, ratings string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/user.info", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":%q,"comment":"handles: User not found","result":[{}]}`, status)
	})
	mux.HandleFunc("/user.status", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":"OK","result":%s}`, submissions)
	})
	mux.HandleFunc("/user.rating", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"status":"OK","result":%s}`, ratings)
	})
	return httptest.NewServer(mux)
}

func TestCodeforcesFetch(t *testing.T) {
	submissions := `[
		{"verdict":"OK","programmingLanguage":"GNU C++17","creationTimeSeconds":1700000000,
		 "problem":{"contestId":1900,"index":"A","name":"Cobbled Road","rating":800}},
		{"verdict":"WRONG_ANSWER","programmingLanguage":"Python 3","creationTimeSeconds":1700000100,
		 "problem":{"contestId":1900,"index":"B","name":"Hard One"}}
	]`
	ratings := `[
		{"contestId":1900,"contestName":"Round 900","newRating":1534,"ratingUpdateTimeSeconds":1700001000}
	]`

	srv := newCodeforcesTestServer(t, "OK", submissions, ratings)
	defer srv.Close()

	client := &CodeforcesClient{baseURL: srv.URL, client: srv.Client()}
	data, err := client.Fetch(context.Background(), "tourist")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}

	if len(data.Submissions) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(data.Submissions))
	}

	accepted := data.Submissions[0]
	if accepted.Status != models.StatusAccepted {
		t.Errorf(`verdict "OK" should map to %q, got %q`, models.StatusAccepted, accepted.Status)
	}
	if accepted.ProblemID != "1900A" {
		t.Errorf("problem id should concatenate contest id and index, got %q", accepted.ProblemID)
	}
	if accepted.Difficulty != "800" {
		t.Errorf("expected stringified rating difficulty, got %q", accepted.Difficulty)
	}
	if accepted.Language != "GNU C++17" {
		t.Errorf("unexpected language %q", accepted.Language)
	}

	rejected := data.Submissions[1]
	if rejected.Status != "WRONG_ANSWER" {
		t.Errorf("non-OK verdicts should pass through, got %q", rejected.Status)
	}
	if rejected.Difficulty != "0" {
		t.Errorf(`missing problem rating should default to "0", got %q`, rejected.Difficulty)
	}

	if len(data.Ratings) != 1 {
		t.Fatalf("expected 1 rating, got %d", len(data.Ratings))
	}
	rating := data.Ratings[0]
	if rating.ContestID != "1900" || rating.Rating != 1534 || rating.ContestName != "Round 900" {
		t.Errorf("unexpected rating record %+v", rating)
	}
}

func TestCodeforcesFetchUnknownHandle(t *testing.T) {
	srv := newCodeforcesTestServer(t, "FAILED", "[]", "[]")
	defer srv.Close()

	client := &CodeforcesClient{baseURL: srv.URL, client: srv.Client()}
	if _, err := client.Fetch(context.Background(), "nobody"); err == nil {
		t.Fatal("expected error for non-OK api status")
	}
}

func TestCodeforcesFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := &CodeforcesClient{baseURL: srv.URL, client: srv.Client()}
	if _, err := client.Fetch(context.Background(), "tourist"); err == nil {
		t.Fatal("expected error for non-2xx response")
	}
}
