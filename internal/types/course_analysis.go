package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CourseVectorAttributes is populated by the vector/vision analysis step.
type CourseVectorAttributes struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber    string         `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	AttributeVector datatypes.JSON `gorm:"type:jsonb;column:attribute_vector" json:"attribute_vector"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       *time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (CourseVectorAttributes) TableName() string {
	return "course_vector_attributes"
}

// CourseComprehensiveAnalysis is populated by the final analysis step.
type CourseComprehensiveAnalysis struct {
	ID                    uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber          string         `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	ComprehensiveAnalysis datatypes.JSON `gorm:"type:jsonb;column:comprehensive_analysis" json:"comprehensive_analysis"`
	CreatedAt             time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt             *time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (CourseComprehensiveAnalysis) TableName() string {
	return "course_comprehensive_analysis"
}
