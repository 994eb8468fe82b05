package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseScrapingData is populated by the website scraper step.
type CourseScrapingData struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber    string     `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	Description     *string    `gorm:"type:text;column:description" json:"description"`
	Architect       *string    `gorm:"column:architect" json:"architect"`
	YearBuilt       *int       `gorm:"column:year_built" json:"year_built"`
	HasDrivingRange *bool      `gorm:"column:has_driving_range" json:"has_driving_range"`
	HasPuttingGreen *bool      `gorm:"column:has_putting_green" json:"has_putting_green"`
	HasProShop      *bool      `gorm:"column:has_pro_shop" json:"has_pro_shop"`
	HasRestaurant   *bool      `gorm:"column:has_restaurant" json:"has_restaurant"`
	HasLessons      *bool      `gorm:"column:has_lessons" json:"has_lessons"`
	ScrapedURL      *string    `gorm:"column:scraped_url" json:"scraped_url"`
	CreatedAt       time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CourseScrapingData) TableName() string {
	return "course_scraping_data"
}
