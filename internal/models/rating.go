package models

import "time"

type Rating struct {
	ID          int       `db:"id" json:"id"`
	UserID      int       `db:"user_id" json:"user_id"`
	Platform    Platform  `db:"platform" json:"platform"`
	Rating      int       `db:"rating" json:"rating"`
	ContestID   string    `db:"contest_id" json:"contest_id"`
	ContestName string    `db:"contest_name" json:"contest_name"`
	RatedAt     time.Time `db:"rated_at" json:"rated_at"`
}

// RatingPoint is one entry of the cross-platform rating history series used
// for charting.
type RatingPoint struct {
	Time     string   `json:"time"`
	Rating   int      `json:"rating"`
	Contest  string   `json:"contest"`
	Platform Platform `json:"platform"`
}
