package types

import (
	"time"

	"github.com/google/uuid"
)

// ReviewURLs is populated by the review-URL lookup step.
type ReviewURLs struct {
	ID           uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber string     `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	GolfNowURL   *string    `gorm:"column:golf_now_url" json:"golf_now_url"`
	GolfPassURL  *string    `gorm:"column:golf_pass_url" json:"golf_pass_url"`
	CreatedAt    time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ReviewURLs) TableName() string {
	return "review_urls"
}
