package testutil

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

func PtrString(s string) *string  { return &s }
func PtrFloat(f float64) *float64 { return &f }
func PtrInt(i int) *int           { return &i }
func PtrBool(b bool) *bool        { return &b }

// SeedUpload inserts an initial_course_upload row with a usable set of
// seed fields.
func SeedUpload(tb testing.TB, ctx context.Context, tx *gorm.DB, courseNumber, name string) *types.CourseUpload {
	tb.Helper()
	row := &types.CourseUpload{
		CourseNumber:  courseNumber,
		CourseName:    PtrString(name),
		City:          PtrString("Plymouth"),
		StateOrRegion: PtrString("MA"),
		ZipCode:       PtrString("02360"),
		PhoneNumber:   PtrString("(508) 555-0134"),
		Latitude:      PtrFloat(41.9584),
		Longitude:     PtrFloat(-70.6673),
		Holes:         PtrInt(18),
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed initial_course_upload: %v", err)
	}
	return row
}

// SeedPlaces inserts a google_places_data row.
func SeedPlaces(tb testing.TB, ctx context.Context, tx *gorm.DB, courseNumber, displayName string) *types.GooglePlacesData {
	tb.Helper()
	row := &types.GooglePlacesData{
		CourseNumber: courseNumber,
		DisplayName:  PtrString(displayName),
		Rating:       PtrFloat(4.5),
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed google_places_data: %v", err)
	}
	return row
}
