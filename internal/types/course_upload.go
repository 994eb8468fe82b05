package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseUpload is the seed source table populated by the bulk importer.
// Promoted fields are stamped with the usgolf_data provenance label.
type CourseUpload struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber  string     `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	CourseName    *string    `gorm:"column:course_name" json:"course_name"`
	StreetAddress *string    `gorm:"column:street_address" json:"street_address"`
	City          *string    `gorm:"column:city" json:"city"`
	StateOrRegion *string    `gorm:"column:state_or_region" json:"state_or_region"`
	ZipCode       *string    `gorm:"column:zip_code" json:"zip_code"`
	PhoneNumber   *string    `gorm:"column:phone_number" json:"phone_number"`
	WebsiteURL    *string    `gorm:"column:website_url" json:"website_url"`
	Email         *string    `gorm:"column:email" json:"email"`
	Latitude      *float64   `gorm:"column:latitude" json:"latitude"`
	Longitude     *float64   `gorm:"column:longitude" json:"longitude"`
	YearBuilt     *int       `gorm:"column:year_built" json:"year_built"`
	Architect     *string    `gorm:"column:architect" json:"architect"`
	CourseType    *string    `gorm:"column:course_type" json:"course_type"`
	Holes         *int       `gorm:"column:holes" json:"holes"`
	TotalPar      *int       `gorm:"column:total_par" json:"total_par"`
	TotalYardage  *int       `gorm:"column:total_yardage" json:"total_yardage"`
	CreatedAt     time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     *time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (CourseUpload) TableName() string {
	return "initial_course_upload"
}
