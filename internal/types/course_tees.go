package types

import (
	"time"

	"github.com/google/uuid"
)

// CourseTee is one tee/hole yardage row. A course carries one row per
// (tee_name, hole_number) pair, edited through the row editor as a set.
type CourseTee struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber string    `gorm:"index;not null;column:course_number;uniqueIndex:uq_tee_hole,priority:1" json:"course_number"`
	TeeName      string    `gorm:"not null;column:tee_name;uniqueIndex:uq_tee_hole,priority:2" json:"tee_name"`
	TeeColor     *string   `gorm:"column:tee_color" json:"tee_color"`
	HoleNumber   int       `gorm:"not null;column:hole_number;uniqueIndex:uq_tee_hole,priority:3" json:"hole_number"`
	Yardage      *int      `gorm:"column:yardage" json:"yardage"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CourseTee) TableName() string {
	return "course_tees"
}

// CoursePar is one par/handicap row per hole.
type CoursePar struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CourseNumber string    `gorm:"index;not null;column:course_number;uniqueIndex:uq_par_hole,priority:1" json:"course_number"`
	HoleNumber   int       `gorm:"not null;column:hole_number;uniqueIndex:uq_par_hole,priority:2" json:"hole_number"`
	Par          *int      `gorm:"column:par" json:"par"`
	Handicap     *int      `gorm:"column:handicap" json:"handicap"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CoursePar) TableName() string {
	return "course_pars"
}
