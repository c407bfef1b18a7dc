package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"cptracker/internal/models"

	"github.com/jmoiron/sqlx"
)

type RatingRepository interface {
	Exists(ctx context.Context, userID int, platform models.Platform, contestID string) (bool, error)
	Create(ctx context.Context, rating *models.Rating) error
	LatestRating(ctx context.Context, userID int, platform models.Platform) (int, error)
	HistoryByUser(ctx context.Context, userID int) ([]models.Rating, error)
}

type ratingRepository struct {
	db *sqlx.DB
}

func NewRatingRepository(db *sqlx.DB) RatingRepository {
	return &ratingRepository{db: db}
}

// Exists checks the dedup tuple (user, platform, contest_id).
func (r *ratingRepository) Exists(ctx context.Context, userID int, platform models.Platform, contestID string) (bool, error) {
	query := `SELECT COUNT(*) FROM ratings
	          WHERE user_id = ? AND platform = ? AND contest_id = ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, platform, contestID); err != nil {
		return false, fmt.Errorf("failed to check rating existence: %w", err)
	}
	return count > 0, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.Rating) error {
	query := `INSERT INTO ratings (user_id, platform, rating, contest_id, contest_name, rated_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		rating.UserID,
		rating.Platform,
		rating.Rating,
		rating.ContestID,
		rating.ContestName,
		rating.RatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create rating: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	rating.ID = int(id)
	return nil
}

// LatestRating returns the most recent rating for the platform, 0 when the
// user has none.
func (r *ratingRepository) LatestRating(ctx context.Context, userID int, platform models.Platform) (int, error) {
	query := `SELECT rating FROM ratings
	          WHERE user_id = ? AND platform = ?
	          ORDER BY rated_at DESC
	          LIMIT 1`

	var rating int
	if err := r.db.GetContext(ctx, &rating, query, userID, platform); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get latest rating: %w", err)
	}
	return rating, nil
}

func (r *ratingRepository) HistoryByUser(ctx context.Context, userID int) ([]models.Rating, error) {
	query := `SELECT id, user_id, platform, rating, contest_id, contest_name, rated_at
	          FROM ratings
	          WHERE user_id = ?
	          ORDER BY rated_at ASC`

	var ratings []models.Rating
	if err := r.db.SelectContext(ctx, &ratings, query, userID); err != nil {
		return nil, fmt.Errorf("failed to get rating history: %w", err)
	}
	return ratings, nil
}
