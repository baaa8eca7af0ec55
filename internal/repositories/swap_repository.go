package repositories

import (
	"github.com/anonto42/skillswap/backend/internal/models"
	"gorm.io/gorm"
)

// SwapRepository defines the interface for swap request data operations.
// UpdateStatus and Delete apply their authorization and state guard in the
// same statement as the write, so of two racing callers exactly one sees
// updated == true.
type SwapRepository interface {
	CreateSwapRequest(req *models.SwapRequest) error
	GetSwapRequestByID(id uint) (*models.SwapRequest, error)
	GetUserSwaps(userID uint) (*models.UserSwaps, error)
	UpdateStatus(swapID, providerID uint, status string) (bool, error)
	Delete(swapID, requesterID uint) (bool, error)
}

// PostgresSwapRepository implements SwapRepository for PostgreSQL
type PostgresSwapRepository struct {
	db *gorm.DB
}

// NewPostgresSwapRepository creates a new PostgresSwapRepository
func NewPostgresSwapRepository(db *gorm.DB) *PostgresSwapRepository {
	return &PostgresSwapRepository{db: db}
}

// CreateSwapRequest persists a new swap request
func (r *PostgresSwapRepository) CreateSwapRequest(req *models.SwapRequest) error {
	return r.db.Create(req).Error
}

// GetSwapRequestByID retrieves a swap request by ID
func (r *PostgresSwapRepository) GetSwapRequestByID(id uint) (*models.SwapRequest, error) {
	var req models.SwapRequest
	if err := r.db.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// GetUserSwaps retrieves the requests a user sent and received, newest first
func (r *PostgresSwapRepository) GetUserSwaps(userID uint) (*models.UserSwaps, error) {
	swaps := &models.UserSwaps{
		Sent:     []models.SwapRequest{},
		Received: []models.SwapRequest{},
	}
	if err := r.db.Where("requester_id = ?", userID).
		Order("created_at DESC").Find(&swaps.Sent).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("provider_id = ?", userID).
		Order("created_at DESC").Find(&swaps.Received).Error; err != nil {
		return nil, err
	}
	return swaps, nil
}

// UpdateStatus transitions a pending request to the given status. The pending
// guard is part of the UPDATE, so a concurrent transition or delete on the
// same row leaves RowsAffected at zero for the loser.
func (r *PostgresSwapRepository) UpdateStatus(swapID, providerID uint, status string) (bool, error) {
	result := r.db.Model(&models.SwapRequest{}).
		Where("id = ? AND provider_id = ? AND status = ?", swapID, providerID, models.SwapStatusPending).
		Update("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Delete removes a pending request permanently, scoped to its requester
func (r *PostgresSwapRepository) Delete(swapID, requesterID uint) (bool, error) {
	result := r.db.
		Where("id = ? AND requester_id = ? AND status = ?", swapID, requesterID, models.SwapStatusPending).
		Delete(&models.SwapRequest{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
