package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GooglePlacesData holds the output of the Places lookup enrichment step.
type GooglePlacesData struct {
	ID                       uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber             string         `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`
	PlaceID                  *string        `gorm:"column:place_id" json:"place_id"`
	DisplayName              *string        `gorm:"column:display_name" json:"display_name"`
	FormattedAddress         *string        `gorm:"column:formatted_address" json:"formatted_address"`
	InternationalPhoneNumber *string        `gorm:"column:international_phone_number" json:"international_phone_number"`
	Website                  *string        `gorm:"column:website" json:"website"`
	Latitude                 *float64       `gorm:"column:latitude" json:"latitude"`
	Longitude                *float64       `gorm:"column:longitude" json:"longitude"`
	Rating                   *float64       `gorm:"column:rating" json:"rating"`
	UserRatingCount          *int           `gorm:"column:user_rating_count" json:"user_rating_count"`
	ImageURLs                datatypes.JSON `gorm:"type:jsonb;column:image_urls" json:"image_urls"`
	CreatedAt                time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                *time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (GooglePlacesData) TableName() string {
	return "google_places_data"
}
