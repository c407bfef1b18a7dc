package services

import (
	"context"
	"time"

	"cptracker/internal/logger"
	"cptracker/internal/models"
	"cptracker/internal/platforms"
	"cptracker/internal/repositories"

	"go.uber.org/zap"
)

// RefreshService walks the user's linked platforms, pulls fresh data through
// the fetch cache and persists records that pass the dedup checks. A failing
// platform is logged and skipped; only failures outside the per-platform
// loop abort the refresh.
type RefreshService struct {
	userRepo   repositories.UserRepository
	subRepo    repositories.SubmissionRepository
	ratingRepo repositories.RatingRepository
	cache      *platforms.FetchCache
	fetchers   map[models.Platform]platforms.Fetcher
	now        func() time.Time
}

func NewRefreshService(
	userRepo repositories.UserRepository,
	subRepo repositories.SubmissionRepository,
	ratingRepo repositories.RatingRepository,
	cache *platforms.FetchCache,
	fetchers map[models.Platform]platforms.Fetcher,
) *RefreshService {
	return &RefreshService{
		userRepo:   userRepo,
		subRepo:    subRepo,
		ratingRepo: ratingRepo,
		cache:      cache,
		fetchers:   fetchers,
		now:        time.Now,
	}
}

// Refresh returns the platforms that were attempted successfully and the new
// last_refresh timestamp. "Refreshed" means the fetch and persist loop for
// the platform completed, even when zero new records were written.
func (s *RefreshService) Refresh(ctx context.Context, user *models.User) ([]string, time.Time, error) {
	platformsRefreshed := []string{}

	for _, platform := range models.AllPlatforms {
		handle := user.HandleFor(platform)
		if handle == "" {
			continue
		}

		fetcher, ok := s.fetchers[platform]
		if !ok {
			logger.Log.Warn("No fetcher registered for platform",
				zap.String("platform", string(platform)))
			continue
		}

		data, err := s.cache.GetOrFetch(ctx, platform, handle, func(ctx context.Context) (models.PlatformData, error) {
			return fetcher.Fetch(ctx, handle)
		})
		if err != nil {
			logger.Log.Error("Failed to fetch platform data",
				zap.String("platform", string(platform)),
				zap.String("handle", handle),
				zap.Error(err))
			continue
		}

		if err := s.persist(ctx, user.ID, platform, data); err != nil {
			logger.Log.Error("Failed to persist platform data",
				zap.String("platform", string(platform)),
				zap.Int("user_id", user.ID),
				zap.Error(err))
			continue
		}

		if data.TotalSolved > 0 {
			logger.Log.Info("Platform reported aggregate solved count",
				zap.String("platform", string(platform)),
				zap.Int("total_solved", data.TotalSolved))
		}

		platformsRefreshed = append(platformsRefreshed, string(platform))
	}

	refreshedAt := s.now()
	if err := s.userRepo.UpdateLastRefresh(ctx, user.ID, refreshedAt); err != nil {
		return nil, time.Time{}, err
	}

	return platformsRefreshed, refreshedAt, nil
}

// persist writes the accepted submissions and ratings that are not already
// stored. Non-accepted submissions are fetched but never persisted.
func (s *RefreshService) persist(ctx context.Context, userID int, platform models.Platform, data models.PlatformData) error {
	for _, submission := range data.Submissions {
		if submission.Status != models.StatusAccepted {
			continue
		}

		exists, err := s.subRepo.Exists(ctx, userID, platform, submission.ProblemID, models.StatusAccepted)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		record := submission
		record.UserID = userID
		record.Platform = platform
		if err := s.subRepo.Create(ctx, &record); err != nil {
			return err
		}
	}

	for _, rating := range data.Ratings {
		exists, err := s.ratingRepo.Exists(ctx, userID, platform, rating.ContestID)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		record := rating
		record.UserID = userID
		record.Platform = platform
		if err := s.ratingRepo.Create(ctx, &record); err != nil {
			return err
		}
	}

	return nil
}
