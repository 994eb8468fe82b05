package repos

import (
	"context"
	"testing"

	"github.com/fairwaylabs/coursedesk-backend/internal/repos/testutil"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

func TestCourseTeeRepoReplaceForCourse(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)

	ctx := context.Background()
	repo := NewCourseTeeRepo(gdb, testutil.Logger(t))

	first := []*types.CourseTee{
		{TeeName: "Blue", HoleNumber: 1, Yardage: testutil.PtrInt(412)},
		{TeeName: "Blue", HoleNumber: 2, Yardage: testutil.PtrInt(178)},
		{TeeName: "White", HoleNumber: 1, Yardage: testutil.PtrInt(395)},
	}
	if err := repo.ReplaceForCourse(ctx, tx, "MA-6666-1", first); err != nil {
		t.Fatalf("ReplaceForCourse: %v", err)
	}

	rows, err := repo.GetByCourseNumber(ctx, tx, "MA-6666-1")
	if err != nil {
		t.Fatalf("GetByCourseNumber: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows)=%d", len(rows))
	}
	if rows[0].TeeName != "Blue" || rows[0].HoleNumber != 1 {
		t.Fatalf("order: %+v", rows[0])
	}

	// replacement swaps the whole set
	second := []*types.CourseTee{
		{TeeName: "Blue", HoleNumber: 1, Yardage: testutil.PtrInt(420)},
	}
	if err := repo.ReplaceForCourse(ctx, tx, "MA-6666-1", second); err != nil {
		t.Fatalf("ReplaceForCourse(second): %v", err)
	}
	rows, err = repo.GetByCourseNumber(ctx, tx, "MA-6666-1")
	if err != nil || len(rows) != 1 {
		t.Fatalf("after replace: rows=%d err=%v", len(rows), err)
	}
	if rows[0].Yardage == nil || *rows[0].Yardage != 420 {
		t.Fatalf("yardage=%v", rows[0].Yardage)
	}
}
