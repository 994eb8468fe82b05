package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PrimaryData is the canonical per-course record the console displays as
// ground truth. Every promotable field carries a _source column (the source
// table label that last wrote it, or "manual") and a _updated_at column;
// the three always change together.
type PrimaryData struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber string    `gorm:"uniqueIndex;not null;column:course_number" json:"course_number"`

	CourseName          *string    `gorm:"column:course_name" json:"course_name"`
	CourseNameSource    *string    `gorm:"column:course_name_source" json:"course_name_source"`
	CourseNameUpdatedAt *time.Time `gorm:"column:course_name_updated_at" json:"course_name_updated_at"`

	Address          *string    `gorm:"column:address" json:"address"`
	AddressSource    *string    `gorm:"column:address_source" json:"address_source"`
	AddressUpdatedAt *time.Time `gorm:"column:address_updated_at" json:"address_updated_at"`

	City          *string    `gorm:"column:city" json:"city"`
	CitySource    *string    `gorm:"column:city_source" json:"city_source"`
	CityUpdatedAt *time.Time `gorm:"column:city_updated_at" json:"city_updated_at"`

	State          *string    `gorm:"column:state" json:"state"`
	StateSource    *string    `gorm:"column:state_source" json:"state_source"`
	StateUpdatedAt *time.Time `gorm:"column:state_updated_at" json:"state_updated_at"`

	ZipCode          *string    `gorm:"column:zip_code" json:"zip_code"`
	ZipCodeSource    *string    `gorm:"column:zip_code_source" json:"zip_code_source"`
	ZipCodeUpdatedAt *time.Time `gorm:"column:zip_code_updated_at" json:"zip_code_updated_at"`

	Phone          *string    `gorm:"column:phone" json:"phone"`
	PhoneSource    *string    `gorm:"column:phone_source" json:"phone_source"`
	PhoneUpdatedAt *time.Time `gorm:"column:phone_updated_at" json:"phone_updated_at"`

	Website          *string    `gorm:"column:website" json:"website"`
	WebsiteSource    *string    `gorm:"column:website_source" json:"website_source"`
	WebsiteUpdatedAt *time.Time `gorm:"column:website_updated_at" json:"website_updated_at"`

	Email          *string    `gorm:"column:email" json:"email"`
	EmailSource    *string    `gorm:"column:email_source" json:"email_source"`
	EmailUpdatedAt *time.Time `gorm:"column:email_updated_at" json:"email_updated_at"`

	Architect          *string    `gorm:"column:architect" json:"architect"`
	ArchitectSource    *string    `gorm:"column:architect_source" json:"architect_source"`
	ArchitectUpdatedAt *time.Time `gorm:"column:architect_updated_at" json:"architect_updated_at"`

	CourseType          *string    `gorm:"column:course_type" json:"course_type"`
	CourseTypeSource    *string    `gorm:"column:course_type_source" json:"course_type_source"`
	CourseTypeUpdatedAt *time.Time `gorm:"column:course_type_updated_at" json:"course_type_updated_at"`

	Description          *string    `gorm:"type:text;column:description" json:"description"`
	DescriptionSource    *string    `gorm:"column:description_source" json:"description_source"`
	DescriptionUpdatedAt *time.Time `gorm:"column:description_updated_at" json:"description_updated_at"`

	ReviewSummary          *string    `gorm:"type:text;column:review_summary" json:"review_summary"`
	ReviewSummarySource    *string    `gorm:"column:review_summary_source" json:"review_summary_source"`
	ReviewSummaryUpdatedAt *time.Time `gorm:"column:review_summary_updated_at" json:"review_summary_updated_at"`

	Latitude          *float64   `gorm:"column:latitude" json:"latitude"`
	LatitudeSource    *string    `gorm:"column:latitude_source" json:"latitude_source"`
	LatitudeUpdatedAt *time.Time `gorm:"column:latitude_updated_at" json:"latitude_updated_at"`

	Longitude          *float64   `gorm:"column:longitude" json:"longitude"`
	LongitudeSource    *string    `gorm:"column:longitude_source" json:"longitude_source"`
	LongitudeUpdatedAt *time.Time `gorm:"column:longitude_updated_at" json:"longitude_updated_at"`

	YearBuilt          *int       `gorm:"column:year_built" json:"year_built"`
	YearBuiltSource    *string    `gorm:"column:year_built_source" json:"year_built_source"`
	YearBuiltUpdatedAt *time.Time `gorm:"column:year_built_updated_at" json:"year_built_updated_at"`

	Holes          *int       `gorm:"column:holes" json:"holes"`
	HolesSource    *string    `gorm:"column:holes_source" json:"holes_source"`
	HolesUpdatedAt *time.Time `gorm:"column:holes_updated_at" json:"holes_updated_at"`

	TotalPar          *int       `gorm:"column:total_par" json:"total_par"`
	TotalParSource    *string    `gorm:"column:total_par_source" json:"total_par_source"`
	TotalParUpdatedAt *time.Time `gorm:"column:total_par_updated_at" json:"total_par_updated_at"`

	TotalYardage          *int       `gorm:"column:total_yardage" json:"total_yardage"`
	TotalYardageSource    *string    `gorm:"column:total_yardage_source" json:"total_yardage_source"`
	TotalYardageUpdatedAt *time.Time `gorm:"column:total_yardage_updated_at" json:"total_yardage_updated_at"`

	GoogleRating          *float64   `gorm:"column:google_rating" json:"google_rating"`
	GoogleRatingSource    *string    `gorm:"column:google_rating_source" json:"google_rating_source"`
	GoogleRatingUpdatedAt *time.Time `gorm:"column:google_rating_updated_at" json:"google_rating_updated_at"`

	GoogleReviewCount          *int       `gorm:"column:google_review_count" json:"google_review_count"`
	GoogleReviewCountSource    *string    `gorm:"column:google_review_count_source" json:"google_review_count_source"`
	GoogleReviewCountUpdatedAt *time.Time `gorm:"column:google_review_count_updated_at" json:"google_review_count_updated_at"`

	ReviewCount          *int       `gorm:"column:review_count" json:"review_count"`
	ReviewCountSource    *string    `gorm:"column:review_count_source" json:"review_count_source"`
	ReviewCountUpdatedAt *time.Time `gorm:"column:review_count_updated_at" json:"review_count_updated_at"`

	AvgReviewScore          *float64   `gorm:"column:avg_review_score" json:"avg_review_score"`
	AvgReviewScoreSource    *string    `gorm:"column:avg_review_score_source" json:"avg_review_score_source"`
	AvgReviewScoreUpdatedAt *time.Time `gorm:"column:avg_review_score_updated_at" json:"avg_review_score_updated_at"`

	OverallScore          *float64   `gorm:"column:overall_score" json:"overall_score"`
	OverallScoreSource    *string    `gorm:"column:overall_score_source" json:"overall_score_source"`
	OverallScoreUpdatedAt *time.Time `gorm:"column:overall_score_updated_at" json:"overall_score_updated_at"`

	DifficultyScore          *float64   `gorm:"column:difficulty_score" json:"difficulty_score"`
	DifficultyScoreSource    *string    `gorm:"column:difficulty_score_source" json:"difficulty_score_source"`
	DifficultyScoreUpdatedAt *time.Time `gorm:"column:difficulty_score_updated_at" json:"difficulty_score_updated_at"`

	ConditionScore          *float64   `gorm:"column:condition_score" json:"condition_score"`
	ConditionScoreSource    *string    `gorm:"column:condition_score_source" json:"condition_score_source"`
	ConditionScoreUpdatedAt *time.Time `gorm:"column:condition_score_updated_at" json:"condition_score_updated_at"`

	ValueScore          *float64   `gorm:"column:value_score" json:"value_score"`
	ValueScoreSource    *string    `gorm:"column:value_score_source" json:"value_score_source"`
	ValueScoreUpdatedAt *time.Time `gorm:"column:value_score_updated_at" json:"value_score_updated_at"`

	HasDrivingRange          *bool      `gorm:"column:has_driving_range" json:"has_driving_range"`
	HasDrivingRangeSource    *string    `gorm:"column:has_driving_range_source" json:"has_driving_range_source"`
	HasDrivingRangeUpdatedAt *time.Time `gorm:"column:has_driving_range_updated_at" json:"has_driving_range_updated_at"`

	HasPuttingGreen          *bool      `gorm:"column:has_putting_green" json:"has_putting_green"`
	HasPuttingGreenSource    *string    `gorm:"column:has_putting_green_source" json:"has_putting_green_source"`
	HasPuttingGreenUpdatedAt *time.Time `gorm:"column:has_putting_green_updated_at" json:"has_putting_green_updated_at"`

	HasProShop          *bool      `gorm:"column:has_pro_shop" json:"has_pro_shop"`
	HasProShopSource    *string    `gorm:"column:has_pro_shop_source" json:"has_pro_shop_source"`
	HasProShopUpdatedAt *time.Time `gorm:"column:has_pro_shop_updated_at" json:"has_pro_shop_updated_at"`

	HasRestaurant          *bool      `gorm:"column:has_restaurant" json:"has_restaurant"`
	HasRestaurantSource    *string    `gorm:"column:has_restaurant_source" json:"has_restaurant_source"`
	HasRestaurantUpdatedAt *time.Time `gorm:"column:has_restaurant_updated_at" json:"has_restaurant_updated_at"`

	HasLessons          *bool      `gorm:"column:has_lessons" json:"has_lessons"`
	HasLessonsSource    *string    `gorm:"column:has_lessons_source" json:"has_lessons_source"`
	HasLessonsUpdatedAt *time.Time `gorm:"column:has_lessons_updated_at" json:"has_lessons_updated_at"`

	AttributeVector          datatypes.JSON `gorm:"type:jsonb;column:attribute_vector" json:"attribute_vector"`
	AttributeVectorSource    *string        `gorm:"column:attribute_vector_source" json:"attribute_vector_source"`
	AttributeVectorUpdatedAt *time.Time     `gorm:"column:attribute_vector_updated_at" json:"attribute_vector_updated_at"`

	ComprehensiveAnalysis          datatypes.JSON `gorm:"type:jsonb;column:comprehensive_analysis" json:"comprehensive_analysis"`
	ComprehensiveAnalysisSource    *string        `gorm:"column:comprehensive_analysis_source" json:"comprehensive_analysis_source"`
	ComprehensiveAnalysisUpdatedAt *time.Time     `gorm:"column:comprehensive_analysis_updated_at" json:"comprehensive_analysis_updated_at"`

	ImageURLs          datatypes.JSON `gorm:"type:jsonb;column:image_urls" json:"image_urls"`
	ImageURLsSource    *string        `gorm:"column:image_urls_source" json:"image_urls_source"`
	ImageURLsUpdatedAt *time.Time     `gorm:"column:image_urls_updated_at" json:"image_urls_updated_at"`

	GolfNowURL          *string    `gorm:"column:golfnow_url" json:"golfnow_url"`
	GolfNowURLSource    *string    `gorm:"column:golfnow_url_source" json:"golfnow_url_source"`
	GolfNowURLUpdatedAt *time.Time `gorm:"column:golfnow_url_updated_at" json:"golfnow_url_updated_at"`

	GolfPassURL          *string    `gorm:"column:golfpass_url" json:"golfpass_url"`
	GolfPassURLSource    *string    `gorm:"column:golfpass_url_source" json:"golfpass_url_source"`
	GolfPassURLUpdatedAt *time.Time `gorm:"column:golfpass_url_updated_at" json:"golfpass_url_updated_at"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (PrimaryData) TableName() string {
	return "primary_data"
}
