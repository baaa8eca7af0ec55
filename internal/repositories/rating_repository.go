package repositories

import (
	"github.com/anonto42/skillswap/backend/internal/models"
	"gorm.io/gorm"
)

// RatingRepository defines the interface for rating data operations.
// CreateRating returns gorm.ErrDuplicatedKey when a rating already exists for
// the same (swap request, rater) pair; the unique index is the final arbiter
// under concurrent submissions.
type RatingRepository interface {
	CreateRating(rating *models.Rating) error
	ExistsForSwapAndRater(swapRequestID, raterID uint) (bool, error)
	GetUserRatings(ratedID uint) ([]models.Rating, error)
	GetReputation(userID uint) (*models.ReputationSummary, error)
}

// PostgresRatingRepository implements RatingRepository for PostgreSQL
type PostgresRatingRepository struct {
	db *gorm.DB
}

// NewPostgresRatingRepository creates a new PostgresRatingRepository
func NewPostgresRatingRepository(db *gorm.DB) *PostgresRatingRepository {
	return &PostgresRatingRepository{db: db}
}

// CreateRating persists a new rating
func (r *PostgresRatingRepository) CreateRating(rating *models.Rating) error {
	return r.db.Create(rating).Error
}

// ExistsForSwapAndRater reports whether a rating exists for the pair
func (r *PostgresRatingRepository) ExistsForSwapAndRater(swapRequestID, raterID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Rating{}).
		Where("swap_request_id = ? AND rater_id = ?", swapRequestID, raterID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetUserRatings retrieves ratings received by a user, newest first
func (r *PostgresRatingRepository) GetUserRatings(ratedID uint) ([]models.Rating, error) {
	ratings := []models.Rating{}
	err := r.db.Where("rated_id = ?", ratedID).
		Order("created_at DESC").Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// GetReputation aggregates all ratings received by a user in one query
func (r *PostgresRatingRepository) GetReputation(userID uint) (*models.ReputationSummary, error) {
	var summary models.ReputationSummary
	err := r.db.Model(&models.Rating{}).
		Select("COUNT(*) AS count, COALESCE(AVG(score), 0) AS average_score").
		Where("rated_id = ?", userID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
