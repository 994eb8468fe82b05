package repos

import (
	"context"
	"testing"

	"github.com/fairwaylabs/coursedesk-backend/internal/repos/testutil"
)

func TestSourceRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)

	ctx := context.Background()
	repo := NewSourceRepo(gdb, testutil.Logger(t), []string{
		"initial_course_upload",
		"google_places_data",
	})

	testutil.SeedUpload(t, ctx, tx, "MA-7777-1", "Pine Hills")
	testutil.SeedUpload(t, ctx, tx, "MA-7777-2", "Cedar Brook")

	row, err := repo.GetRow(ctx, tx, "initial_course_upload", "MA-7777-1")
	if err != nil {
		t.Fatalf("GetRow: %v", err)
	}
	if row == nil {
		t.Fatal("GetRow returned nil for an existing row")
	}
	if row["course_name"] != "Pine Hills" {
		t.Fatalf("course_name=%v", row["course_name"])
	}

	// missing row is not an error
	row, err = repo.GetRow(ctx, tx, "google_places_data", "MA-7777-1")
	if err != nil || row != nil {
		t.Fatalf("GetRow(absent): row=%v err=%v", row, err)
	}

	// unknown table is an error, not a query
	if _, err := repo.GetRow(ctx, tx, "users; drop table users", "MA-7777-1"); err == nil {
		t.Fatal("GetRow should reject tables outside the allow-list")
	}

	numbers, err := repo.ListCourseNumbers(ctx, tx, "initial_course_upload")
	if err != nil {
		t.Fatalf("ListCourseNumbers: %v", err)
	}
	found := 0
	for _, n := range numbers {
		if n == "MA-7777-1" || n == "MA-7777-2" {
			found++
		}
	}
	if found != 2 {
		t.Fatalf("ListCourseNumbers missing seeded rows: %v", numbers)
	}
}
