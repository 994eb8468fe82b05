package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseReviews is populated by the review aggregation step.
type CourseReviews struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber   string     `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	ReviewSummary  *string    `gorm:"type:text;column:review_summary" json:"review_summary"`
	ReviewCount    *int       `gorm:"column:review_count" json:"review_count"`
	AvgReviewScore *float64   `gorm:"column:avg_review_score" json:"avg_review_score"`
	CreatedAt      time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CourseReviews) TableName() string {
	return "course_reviews"
}
