package models

import "time"

// Swap request lifecycle statuses. A pending request is deleted outright by
// its requester rather than moved to a cancelled status.
const (
	SwapStatusPending  = "pending"
	SwapStatusAccepted = "accepted"
	SwapStatusRejected = "rejected"
)

// SwapRequest represents a proposal from a requester to a provider to
// exchange skill instruction (PostgreSQL)
type SwapRequest struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RequesterID  uint      `json:"requester_id" gorm:"index"`
	ProviderID   uint      `json:"provider_id" gorm:"index"`
	SkillOffered string    `json:"skill_offered"` // free text, not a catalog reference
	SkillWanted  string    `json:"skill_wanted"`
	Message      string    `json:"message,omitempty"`
	Status       string    `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateSwapRequest defines the request body for creating a swap request
type CreateSwapRequest struct {
	ProviderID   uint   `json:"provider_id" validate:"required"`
	SkillOffered string `json:"skill_offered" validate:"required"`
	SkillWanted  string `json:"skill_wanted" validate:"required"`
	Message      string `json:"message,omitempty"`
}

// UpdateSwapStatusRequest defines the request body for accepting/rejecting a swap request
type UpdateSwapStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted rejected"`
}

// UserSwaps groups the requests a user sent and received
type UserSwaps struct {
	Sent     []SwapRequest `json:"sent"`
	Received []SwapRequest `json:"received"`
}
