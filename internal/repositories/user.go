package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cptracker/internal/models"
	"cptracker/internal/utils"

	"github.com/jmoiron/sqlx"
)

// TokenCache is the slice of the cache layer the user repository needs for
// refresh-token storage. services.Cache satisfies it.
type TokenCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID int) (*models.User, error)
	GetProfile(ctx context.Context, userID int) (*models.UserProfile, error)
	UpdateHandles(ctx context.Context, userID int, req *models.UpdateHandlesRequest) error
	UpdateLastRefresh(ctx context.Context, userID int, refreshedAt time.Time) error
	StoreRefreshToken(ctx context.Context, userID int, token string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, token string) (int, error)
	RevokeToken(ctx context.Context, token string) error
}

type userRepository struct {
	db    *sqlx.DB
	cache TokenCache
}

func NewUserRepository(db *sqlx.DB, cache TokenCache) UserRepository {
	return &userRepository{db: db, cache: cache}
}

func (r *userRepository) CreateUser(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	query := `INSERT INTO users (username, email, password_hash,
	              codeforces_handle, leetcode_username, codechef_username, geeksforgeeks_username)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query, req.Username, req.Email, hashedPassword,
		req.CodeforcesHandle, req.LeetcodeUsername, req.CodechefUsername, req.GeeksforgeeksHandle)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	user := &models.User{
		ID:                  int(id),
		Username:            req.Username,
		Email:               req.Email,
		CodeforcesHandle:    req.CodeforcesHandle,
		LeetcodeUsername:    req.LeetcodeUsername,
		CodechefUsername:    req.CodechefUsername,
		GeeksforgeeksHandle: req.GeeksforgeeksHandle,
	}
	return user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash,
	              codeforces_handle, leetcode_username, codechef_username, geeksforgeeks_username,
	              created_at, last_refresh
	          FROM users WHERE email = ?`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, userID int) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash,
	              codeforces_handle, leetcode_username, codechef_username, geeksforgeeks_username,
	              created_at, last_refresh
	          FROM users WHERE id = ?`
	err := r.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %d", userID)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetProfile(ctx context.Context, userID int) (*models.UserProfile, error) {
	var profile models.UserProfile
	query := `SELECT username, email,
	              codeforces_handle, leetcode_username, codechef_username, geeksforgeeks_username,
	              created_at, last_refresh
	          FROM users WHERE id = ?`
	err := r.db.GetContext(ctx, &profile, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found: %d", userID)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// UpdateHandles stores the handle strings verbatim; an empty string unlinks
// the platform.
func (r *userRepository) UpdateHandles(ctx context.Context, userID int, req *models.UpdateHandlesRequest) error {
	query := `UPDATE users
	          SET codeforces_handle = ?, leetcode_username = ?, codechef_username = ?, geeksforgeeks_username = ?
	          WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		req.CodeforcesHandle, req.LeetcodeUsername, req.CodechefUsername, req.GeeksforgeeksHandle, userID)
	if err != nil {
		return fmt.Errorf("failed to update handles: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateLastRefresh(ctx context.Context, userID int, refreshedAt time.Time) error {
	query := `UPDATE users SET last_refresh = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, refreshedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to update last refresh: %w", err)
	}
	return nil
}

func (r *userRepository) StoreRefreshToken(ctx context.Context, userID int, token string, expiresAt time.Time) error {
	key := fmt.Sprintf("refresh_token:%s", token)
	ttl := time.Until(expiresAt)

	if ttl <= 0 {
		return fmt.Errorf("token expiration is in the past")
	}

	err := r.cache.Set(ctx, key, userID, ttl)
	if err != nil {
		return fmt.Errorf("failed to store refresh token in cache: %w", err)
	}
	return nil
}

func (r *userRepository) GetRefreshToken(ctx context.Context, token string) (int, error) {
	key := fmt.Sprintf("refresh_token:%s", token)
	var userID int

	err := r.cache.Get(ctx, key, &userID)
	if err != nil {
		return 0, fmt.Errorf("refresh token not found in cache: %w", err)
	}
	return userID, nil
}

func (r *userRepository) RevokeToken(ctx context.Context, token string) error {
	key := fmt.Sprintf("refresh_token:%s", token)
	err := r.cache.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to revoke token from cache: %w", err)
	}
	return nil
}
