package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseScores is populated by the score computation step.
type CourseScores struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber    string     `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	OverallScore    *float64   `gorm:"column:overall_score" json:"overall_score"`
	DifficultyScore *float64   `gorm:"column:difficulty_score" json:"difficulty_score"`
	ConditionScore  *float64   `gorm:"column:condition_score" json:"condition_score"`
	ValueScore      *float64   `gorm:"column:value_score" json:"value_score"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CourseScores) TableName() string {
	return "course_scores"
}
