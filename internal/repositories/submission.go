package repositories

import (
	"context"
	"fmt"

	"cptracker/internal/models"

	"github.com/jmoiron/sqlx"
)

type SubmissionRepository interface {
	Exists(ctx context.Context, userID int, platform models.Platform, problemID, status string) (bool, error)
	Create(ctx context.Context, submission *models.Submission) error
	CountAccepted(ctx context.Context, userID int, platform models.Platform) (int, error)
	RecentByUser(ctx context.Context, userID int, limit int) ([]models.Submission, error)
}

type submissionRepository struct {
	db *sqlx.DB
}

func NewSubmissionRepository(db *sqlx.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

// Exists checks the dedup tuple (user, platform, problem_id, status).
func (r *submissionRepository) Exists(ctx context.Context, userID int, platform models.Platform, problemID, status string) (bool, error) {
	query := `SELECT COUNT(*) FROM submissions
	          WHERE user_id = ? AND platform = ? AND problem_id = ? AND status = ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, platform, problemID, status); err != nil {
		return false, fmt.Errorf("failed to check submission existence: %w", err)
	}
	return count > 0, nil
}

func (r *submissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	query := `INSERT INTO submissions (user_id, platform, problem_id, problem_name, difficulty, status, language, submitted_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		submission.UserID,
		submission.Platform,
		submission.ProblemID,
		submission.ProblemName,
		submission.Difficulty,
		submission.Status,
		submission.Language,
		submission.SubmittedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create submission: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}

	submission.ID = int(id)
	return nil
}

func (r *submissionRepository) CountAccepted(ctx context.Context, userID int, platform models.Platform) (int, error) {
	query := `SELECT COUNT(*) FROM submissions
	          WHERE user_id = ? AND platform = ? AND status = ?`

	var count int
	if err := r.db.GetContext(ctx, &count, query, userID, platform, models.StatusAccepted); err != nil {
		return 0, fmt.Errorf("failed to count accepted submissions: %w", err)
	}
	return count, nil
}

func (r *submissionRepository) RecentByUser(ctx context.Context, userID int, limit int) ([]models.Submission, error) {
	query := `SELECT id, user_id, platform, problem_id, problem_name, difficulty, status, language, submitted_at
	          FROM submissions
	          WHERE user_id = ?
	          ORDER BY submitted_at DESC
	          LIMIT ?`

	var submissions []models.Submission
	if err := r.db.SelectContext(ctx, &submissions, query, userID, limit); err != nil {
		return nil, fmt.Errorf("failed to get recent submissions: %w", err)
	}
	return submissions, nil
}
