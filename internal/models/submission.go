package models

import "time"

// StatusAccepted is the only verdict that counts toward solved totals.
// Other verdicts are fetched but never persisted.
const StatusAccepted = "Accepted"

type Submission struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Platform    Platform  `db:"platform" json:"platform"`
	ProblemID   string    `db:"problem_id" json:"problem_id"`
	ProblemName string    `db:"problem_name" json:"problem_name"`
	Difficulty  string    `db:"difficulty" json:"difficulty"`
	Status      string    `db:"status" json:"status"`
	Language    string    `db:"language" json:"language"`
	SubmittedAt time.Time `db:"submitted_at" json:"submitted_at"`
}

// RecentSubmission is the dashboard view of a persisted submission with the
// timestamp pre-formatted for display.
type RecentSubmission struct {
	Platform    Platform `json:"platform"`
	ProblemName string   `json:"problem_name"`
	ProblemID   string   `json:"problem_id"`
	Difficulty  string   `json:"difficulty"`
	Status      string   `json:"status"`
	Language    string   `json:"language"`
	Time        string   `json:"time"`
}
