package models

import "time"

// Rating is a score left by the requester of an accepted swap about its
// provider (PostgreSQL). The composite unique index enforces at most one
// rating per (swap request, rater) pair.
type Rating struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	SwapRequestID uint      `json:"swap_request_id" gorm:"uniqueIndex:idx_swap_rater"`
	RaterID       uint      `json:"rater_id" gorm:"uniqueIndex:idx_swap_rater"`
	RatedID       uint      `json:"rated_id" gorm:"index"`
	Score         int       `json:"score" gorm:"check:score >= 1 AND score <= 5"`
	Feedback      string    `json:"feedback,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateRatingRequest defines the request body for submitting a rating
type CreateRatingRequest struct {
	SwapRequestID uint   `json:"swap_request_id" validate:"required"`
	RatedID       uint   `json:"rated_id" validate:"required"`
	Score         int    `json:"score" validate:"required,min=1,max=5"`
	Feedback      string `json:"feedback,omitempty"`
}

// ReputationSummary is derived per read from all ratings received by a user;
// it is never stored.
type ReputationSummary struct {
	Count        int64   `json:"count"`
	AverageScore float64 `json:"average_score"`
}
