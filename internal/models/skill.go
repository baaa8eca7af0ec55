package models

// SkillOffered is a skill a user can teach (PostgreSQL)
type SkillOffered struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"index"`
	SkillName   string `json:"skill_name"`
	Description string `json:"description,omitempty"`
}

func (SkillOffered) TableName() string { return "skills_offered" }

// SkillWanted is a skill a user wants to learn (PostgreSQL)
type SkillWanted struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	UserID      uint   `json:"user_id" gorm:"index"`
	SkillName   string `json:"skill_name"`
	Description string `json:"description,omitempty"`
}

func (SkillWanted) TableName() string { return "skills_wanted" }

// CreateSkillRequest defines the request body for adding a skill
type CreateSkillRequest struct {
	SkillName   string `json:"skill_name" validate:"required,min=1,max=100"`
	Description string `json:"description,omitempty"`
}

// UserSkills groups a user's offered and wanted skills
type UserSkills struct {
	Offered []SkillOffered `json:"offered"`
	Wanted  []SkillWanted  `json:"wanted"`
}
