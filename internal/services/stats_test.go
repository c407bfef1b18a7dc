package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cptracker/internal/models"
)

func seedAccepted(repo *fakeSubmissionRepo, userID int, platform models.Platform, count int, base time.Time) {
	for i := 0; i < count; i++ {
		repo.records = append(repo.records, models.Submission{
			UserID:      userID,
			Platform:    platform,
			ProblemID:   fmt.Sprintf("%s-%d", platform, i),
			ProblemName: fmt.Sprintf("Problem %d", i),
			Status:      models.StatusAccepted,
			SubmittedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
}

func TestUserStatsAggregation(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	ratingRepo := &fakeRatingRepo{}
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	seedAccepted(subRepo, 1, models.PlatformCodeforces, 3, base)
	seedAccepted(subRepo, 1, models.PlatformLeetCode, 2, base)
	// Non-accepted records never count toward solved totals.
	subRepo.records = append(subRepo.records, models.Submission{
		UserID: 1, Platform: models.PlatformCodeforces, ProblemID: "wa-1", Status: "WRONG_ANSWER", SubmittedAt: base,
	})
	// Another user's records are invisible.
	seedAccepted(subRepo, 2, models.PlatformCodeforces, 5, base)

	ratingRepo.records = []models.Rating{
		{UserID: 1, Platform: models.PlatformCodeforces, Rating: 1400, ContestID: "1", ContestName: "Round 1", RatedAt: base},
		{UserID: 1, Platform: models.PlatformCodeforces, Rating: 1534, ContestID: "2", ContestName: "Round 2", RatedAt: base.Add(24 * time.Hour)},
		{UserID: 1, Platform: models.PlatformCodeChef, Rating: 1742, ContestID: "codechef-rating", ContestName: "CodeChef Rating", RatedAt: base.Add(time.Hour)},
	}

	lastRefresh := base.Add(48 * time.Hour)
	user := &models.User{ID: 1, LastRefresh: &lastRefresh}

	svc := NewStatsService(subRepo, ratingRepo)
	stats, err := svc.UserStats(context.Background(), user)
	if err != nil {
		t.Fatalf("UserStats returned error: %v", err)
	}

	if got := stats["total_solved"]; got != 5 {
		t.Errorf("total_solved should sum accepted across platforms, got %v", got)
	}
	if got := stats["codeforces_solved"]; got != 3 {
		t.Errorf("expected codeforces_solved 3, got %v", got)
	}
	if got := stats["leetcode_solved"]; got != 2 {
		t.Errorf("expected leetcode_solved 2, got %v", got)
	}
	if got := stats["codeforces_rating"]; got != 1534 {
		t.Errorf("current rating should be the most recent, got %v", got)
	}
	if got := stats["geeksforgeeks_rating"]; got != 0 {
		t.Errorf("platforms without ratings default to 0, got %v", got)
	}
	if got := stats["last_refresh"]; got != lastRefresh.Format(time.RFC3339) {
		t.Errorf("unexpected last_refresh %v", got)
	}

	history, ok := stats["rating_history"].([]models.RatingPoint)
	if !ok {
		t.Fatalf("rating_history has unexpected type %T", stats["rating_history"])
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 history points, got %d", len(history))
	}
	// Ascending by time across platforms.
	if history[0].Contest != "Round 1" || history[1].Contest != "CodeChef Rating" || history[2].Contest != "Round 2" {
		t.Errorf("history not sorted by time: %+v", history)
	}
	if history[0].Time != "2025-05-01" {
		t.Errorf("history time should be a date string, got %q", history[0].Time)
	}
}

func TestUserStatsWithoutRefresh(t *testing.T) {
	svc := NewStatsService(&fakeSubmissionRepo{}, &fakeRatingRepo{})
	stats, err := svc.UserStats(context.Background(), &models.User{ID: 1})
	if err != nil {
		t.Fatalf("UserStats returned error: %v", err)
	}
	if stats["last_refresh"] != nil {
		t.Errorf("never-refreshed user should report null last_refresh, got %v", stats["last_refresh"])
	}
	if stats["total_solved"] != 0 {
		t.Errorf("expected zero total_solved, got %v", stats["total_solved"])
	}
}

func TestRecentSubmissionsNewestFirstCappedAtTen(t *testing.T) {
	subRepo := &fakeSubmissionRepo{}
	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	seedAccepted(subRepo, 1, models.PlatformCodeforces, 12, base)

	svc := NewStatsService(subRepo, &fakeRatingRepo{})
	recent, err := svc.RecentSubmissions(context.Background(), 1)
	if err != nil {
		t.Fatalf("RecentSubmissions returned error: %v", err)
	}

	if len(recent) != 10 {
		t.Fatalf("expected the 10 newest submissions, got %d", len(recent))
	}
	if recent[0].Time != "2025-05-01 10:11:00" {
		t.Errorf("newest submission should come first with normalized timestamp, got %q", recent[0].Time)
	}
	if recent[9].Time != "2025-05-01 10:02:00" {
		t.Errorf("unexpected oldest entry in window: %q", recent[9].Time)
	}
}
