package services

import (
	"context"
	"fmt"
	"time"

	"cptracker/internal/models"
	"cptracker/internal/repositories"
)

const recentSubmissionsLimit = 10

// StatsService reads persisted records back into dashboard-ready summaries.
// It never touches the upstream platforms.
type StatsService struct {
	subRepo    repositories.SubmissionRepository
	ratingRepo repositories.RatingRepository
}

func NewStatsService(subRepo repositories.SubmissionRepository, ratingRepo repositories.RatingRepository) *StatsService {
	return &StatsService{subRepo: subRepo, ratingRepo: ratingRepo}
}

// UserStats builds the dashboard summary: accepted counts and current rating
// per platform plus the cross-platform rating history, oldest first.
func (s *StatsService) UserStats(ctx context.Context, user *models.User) (map[string]interface{}, error) {
	stats := map[string]interface{}{
		"total_solved": 0,
	}

	if user.LastRefresh != nil {
		stats["last_refresh"] = user.LastRefresh.Format(time.RFC3339)
	} else {
		stats["last_refresh"] = nil
	}

	totalSolved := 0
	for _, platform := range models.AllPlatforms {
		solved, err := s.subRepo.CountAccepted(ctx, user.ID, platform)
		if err != nil {
			return nil, err
		}
		stats[fmt.Sprintf("%s_solved", platform)] = solved
		totalSolved += solved

		rating, err := s.ratingRepo.LatestRating(ctx, user.ID, platform)
		if err != nil {
			return nil, err
		}
		stats[fmt.Sprintf("%s_rating", platform)] = rating
	}
	stats["total_solved"] = totalSolved

	history, err := s.ratingRepo.HistoryByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	points := make([]models.RatingPoint, 0, len(history))
	for _, rating := range history {
		points = append(points, models.RatingPoint{
			Time:     rating.RatedAt.Format("2006-01-02"),
			Rating:   rating.Rating,
			Contest:  rating.ContestName,
			Platform: rating.Platform,
		})
	}
	stats["rating_history"] = points

	return stats, nil
}

// RecentSubmissions returns the newest persisted submissions, capped at 10.
func (s *StatsService) RecentSubmissions(ctx context.Context, userID int) ([]models.RecentSubmission, error) {
	submissions, err := s.subRepo.RecentByUser(ctx, userID, recentSubmissionsLimit)
	if err != nil {
		return nil, err
	}

	recent := make([]models.RecentSubmission, 0, len(submissions))
	for _, sub := range submissions {
		recent = append(recent, models.RecentSubmission{
			Platform:    sub.Platform,
			ProblemName: sub.ProblemName,
			ProblemID:   sub.ProblemID,
			Difficulty:  sub.Difficulty,
			Status:      sub.Status,
			Language:    sub.Language,
			Time:        sub.SubmittedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return recent, nil
}
