package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

type User struct {
	ID                  int        `db:"id"`
	Username            string     `db:"username"`
	Email               string     `db:"email"`
	PasswordHash        string     `db:"password_hash"`
	CodeforcesHandle    string     `db:"codeforces_handle"`
	LeetcodeUsername    string     `db:"leetcode_username"`
	CodechefUsername    string     `db:"codechef_username"`
	GeeksforgeeksHandle string     `db:"geeksforgeeks_username"`
	CreatedAt           time.Time  `db:"created_at"`
	LastRefresh         *time.Time `db:"last_refresh"`
}

// HandleFor maps a platform to the user's handle on it. An empty handle
// means the platform is not linked.
func (u *User) HandleFor(platform Platform) string {
	switch platform {
	case PlatformCodeforces:
		return u.CodeforcesHandle
	case PlatformLeetCode:
		return u.LeetcodeUsername
	case PlatformCodeChef:
		return u.CodechefUsername
	case PlatformGeeksforGeeks:
		return u.GeeksforgeeksHandle
	default:
		return ""
	}
}

func (u *User) ActivePlatforms() []Platform {
	var active []Platform
	for _, p := range AllPlatforms {
		if u.HandleFor(p) != "" {
			active = append(active, p)
		}
	}
	return active
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`

	CodeforcesHandle    string `json:"codeforces_handle"`
	LeetcodeUsername    string `json:"leetcode_username"`
	CodechefUsername    string `json:"codechef_username"`
	GeeksforgeeksHandle string `json:"geeksforgeeks_username"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return errors.New("username cannot be empty")
	}
	if len(r.Username) < 3 || len(r.Username) > 50 {
		return errors.New("username must be between 3 and 50 characters")
	}

	emailRegex := regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`)
	if !emailRegex.MatchString(r.Email) {
		return errors.New("invalid email format")
	}

	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateHandlesRequest carries the per-platform handle strings from the
// profile form. Values are persisted verbatim; empty string unlinks.
type UpdateHandlesRequest struct {
	CodeforcesHandle    string `json:"codeforces_handle"`
	LeetcodeUsername    string `json:"leetcode_username"`
	CodechefUsername    string `json:"codechef_username"`
	GeeksforgeeksHandle string `json:"geeksforgeeks_username"`
}

type UserProfile struct {
	Username            string     `db:"username" json:"username"`
	Email               string     `db:"email" json:"email"`
	CodeforcesHandle    string     `db:"codeforces_handle" json:"codeforces_handle"`
	LeetcodeUsername    string     `db:"leetcode_username" json:"leetcode_username"`
	CodechefUsername    string     `db:"codechef_username" json:"codechef_username"`
	GeeksforgeeksHandle string     `db:"geeksforgeeks_username" json:"geeksforgeeks_username"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	LastRefresh         *time.Time `db:"last_refresh" json:"last_refresh"`
}
