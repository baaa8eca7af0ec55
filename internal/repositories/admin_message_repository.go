package repositories

import (
	"context"
	"time"

	"github.com/anonto42/skillswap/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AdminMessageRepository defines the interface for platform broadcast storage
type AdminMessageRepository interface {
	CreateMessage(ctx context.Context, msg *models.AdminMessage) error
	GetMessages(ctx context.Context, limit int64) ([]models.AdminMessage, error)
}

// MongoAdminMessageRepository implements AdminMessageRepository for MongoDB
type MongoAdminMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoAdminMessageRepository creates a new MongoAdminMessageRepository
func NewMongoAdminMessageRepository(db *mongo.Database) *MongoAdminMessageRepository {
	return &MongoAdminMessageRepository{collection: db.Collection("admin_messages")}
}

// CreateMessage stores a new broadcast in MongoDB
func (r *MongoAdminMessageRepository) CreateMessage(ctx context.Context, msg *models.AdminMessage) error {
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, msg)
	return err
}

// GetMessages retrieves broadcasts, newest first
func (r *MongoAdminMessageRepository) GetMessages(ctx context.Context, limit int64) ([]models.AdminMessage, error) {
	findOptions := options.Find().SetLimit(limit).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	messages := []models.AdminMessage{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}
