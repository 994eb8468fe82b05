package repos

import (
	"context"
	"testing"
	"time"

	"github.com/fairwaylabs/coursedesk-backend/internal/repos/testutil"
)

func TestPrimaryDataRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)

	ctx := context.Background()
	repo := NewPrimaryDataRepo(gdb, testutil.Logger(t))

	if row, err := repo.GetByCourseNumber(ctx, tx, "MA-9999-1"); err != nil || row != nil {
		t.Fatalf("GetByCourseNumber(absent): row=%v err=%v", row, err)
	}

	now := time.Now().UTC()
	if err := repo.Create(ctx, tx, map[string]any{
		"course_number":          "MA-9999-1",
		"course_name":            "Pine Hills",
		"course_name_source":     "usgolf_data",
		"course_name_updated_at": now,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	row, err := repo.GetByCourseNumber(ctx, tx, "MA-9999-1")
	if err != nil || row == nil {
		t.Fatalf("GetByCourseNumber: row=%v err=%v", row, err)
	}
	if row.CourseName == nil || *row.CourseName != "Pine Hills" {
		t.Fatalf("CourseName=%v", row.CourseName)
	}
	if row.CourseNameSource == nil || *row.CourseNameSource != "usgolf_data" {
		t.Fatalf("CourseNameSource=%v", row.CourseNameSource)
	}

	if err := repo.UpdateFields(ctx, tx, "MA-9999-1", map[string]any{
		"course_name":            "Pine Hills Golf Club",
		"course_name_source":     "google_places_data",
		"course_name_updated_at": time.Now().UTC(),
	}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}

	raw, err := repo.GetRow(ctx, tx, "MA-9999-1")
	if err != nil || raw == nil {
		t.Fatalf("GetRow: raw=%v err=%v", raw, err)
	}
	if raw["course_name"] != "Pine Hills Golf Club" {
		t.Fatalf("raw course_name=%v", raw["course_name"])
	}
	if raw["course_name_source"] != "google_places_data" {
		t.Fatalf("raw course_name_source=%v", raw["course_name_source"])
	}

	if err := repo.UpdateFields(ctx, tx, "NO-SUCH-1", map[string]any{"city": "X"}); err == nil {
		t.Fatal("UpdateFields on absent course should fail")
	}

	rows, total, err := repo.Search(ctx, tx, "pine", 10, 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if total < 1 || len(rows) < 1 {
		t.Fatalf("Search: total=%d len=%d", total, len(rows))
	}
}
