package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a platform member (PostgreSQL)
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:50"`
	Email        string    `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password     string    `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Name         string    `json:"name"`
	Location     string    `json:"location,omitempty"`
	ProfilePhoto string    `json:"profile_photo,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Availability string    `json:"availability,omitempty"`
	IsPublic     bool      `json:"is_public" gorm:"default:true"`
	IsAdmin      bool      `json:"is_admin" gorm:"default:false"`
	IsBanned     bool      `json:"is_banned" gorm:"default:false"`
	FirebaseUID  string    `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID, empty for local accounts
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// SignupRequest defines the request body for local user registration
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Location string `json:"location,omitempty"`
}

// SigninRequest defines the request body for local user authentication
type SigninRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the request body for profile updates
type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Location     *string `json:"location,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	Availability *string `json:"availability,omitempty"`
	IsPublic     *bool   `json:"is_public,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
