package repositories

import (
	"github.com/anonto42/skillswap/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string, page, perPage int) ([]models.User, error)
	ListUsers(page, perPage int) ([]models.User, int64, error)
	SetBanned(id uint, banned bool) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username from PostgreSQL
func (r *PostgresUserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SearchUsers searches public, non-banned users by name, location or skill name
func (r *PostgresUserRepository) SearchUsers(query string, page, perPage int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	offset := (page - 1) * perPage
	err := r.db.
		Distinct("users.*").
		Joins("LEFT JOIN skills_offered so ON users.id = so.user_id").
		Joins("LEFT JOIN skills_wanted sw ON users.id = sw.user_id").
		Where("users.is_public = ? AND users.is_banned = ?", true, false).
		Where("users.name ILIKE ? OR users.location ILIKE ? OR so.skill_name ILIKE ? OR sw.skill_name ILIKE ?",
			pattern, pattern, pattern, pattern).
		Offset(offset).Limit(perPage).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// ListUsers retrieves a page of users with the total count (admin view)
func (r *PostgresUserRepository) ListUsers(page, perPage int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage
	err := r.db.Order("created_at DESC").Offset(offset).Limit(perPage).Find(&users).Error
	return users, total, err
}

// SetBanned updates a user's ban flag
func (r *PostgresUserRepository) SetBanned(id uint, banned bool) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("is_banned", banned)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
