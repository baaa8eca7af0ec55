package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminMessage is a platform-wide broadcast authored by an admin (MongoDB)
type AdminMessage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Message   string             `json:"message" bson:"message"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateAdminMessageRequest defines the request body for publishing a broadcast
type CreateAdminMessageRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Message string `json:"message" validate:"required,min=1"`
}
