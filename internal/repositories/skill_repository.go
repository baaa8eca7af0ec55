package repositories

import (
	"github.com/anonto42/skillswap/backend/internal/models"
	"gorm.io/gorm"
)

// SkillRepository defines the interface for skill catalog operations
type SkillRepository interface {
	AddOffered(skill *models.SkillOffered) error
	AddWanted(skill *models.SkillWanted) error
	GetUserSkills(userID uint) (*models.UserSkills, error)
	DeleteOffered(skillID, userID uint) error
	DeleteWanted(skillID, userID uint) error
}

// PostgresSkillRepository implements SkillRepository for PostgreSQL
type PostgresSkillRepository struct {
	db *gorm.DB
}

// NewPostgresSkillRepository creates a new PostgresSkillRepository
func NewPostgresSkillRepository(db *gorm.DB) *PostgresSkillRepository {
	return &PostgresSkillRepository{db: db}
}

// AddOffered adds a skill the user can teach
func (r *PostgresSkillRepository) AddOffered(skill *models.SkillOffered) error {
	return r.db.Create(skill).Error
}

// AddWanted adds a skill the user wants to learn
func (r *PostgresSkillRepository) AddWanted(skill *models.SkillWanted) error {
	return r.db.Create(skill).Error
}

// GetUserSkills retrieves both skill lists for a user
func (r *PostgresSkillRepository) GetUserSkills(userID uint) (*models.UserSkills, error) {
	skills := &models.UserSkills{
		Offered: []models.SkillOffered{},
		Wanted:  []models.SkillWanted{},
	}
	if err := r.db.Where("user_id = ?", userID).Find(&skills.Offered).Error; err != nil {
		return nil, err
	}
	if err := r.db.Where("user_id = ?", userID).Find(&skills.Wanted).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// DeleteOffered removes an offered skill, scoped to its owner
func (r *PostgresSkillRepository) DeleteOffered(skillID, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", skillID, userID).Delete(&models.SkillOffered{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteWanted removes a wanted skill, scoped to its owner
func (r *PostgresSkillRepository) DeleteWanted(skillID, userID uint) error {
	result := r.db.Where("id = ? AND user_id = ?", skillID, userID).Delete(&models.SkillWanted{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
