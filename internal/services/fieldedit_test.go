package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	pkgerrors "github.com/fairwaylabs/coursedesk-backend/internal/pkg/errors"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
	"github.com/fairwaylabs/coursedesk-backend/internal/types"
)

type fakeEditPrimaryRepo struct {
	repos.PrimaryDataRepo
	row     map[string]any
	updates []map[string]any
}

func (f *fakeEditPrimaryRepo) GetRow(ctx context.Context, tx *gorm.DB, courseNumber string) (map[string]any, error) {
	return f.row, nil
}

func (f *fakeEditPrimaryRepo) GetByCourseNumber(ctx context.Context, tx *gorm.DB, courseNumber string) (*types.PrimaryData, error) {
	return &types.PrimaryData{CourseNumber: courseNumber}, nil
}

func (f *fakeEditPrimaryRepo) UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error {
	f.updates = append(f.updates, fields)
	if f.row != nil {
		for k, v := range fields {
			f.row[k] = v
		}
	}
	return nil
}

func newTestFieldEdit(t *testing.T, primary *fakeEditPrimaryRepo) FieldEditService {
	t.Helper()
	reg, err := fieldmap.Load()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return NewFieldEditService(nil, log, reg, primary, nil, nil)
}

func TestSetFieldManuallyStampsManualSource(t *testing.T) {
	ctx := context.Background()
	primary := &fakeEditPrimaryRepo{row: map[string]any{"course_number": "US-1001"}}
	svc := newTestFieldEdit(t, primary)

	if _, err := svc.SetFieldManually(ctx, "US-1001", "course_name", "Corrected Name"); err != nil {
		t.Fatalf("SetFieldManually: %v", err)
	}
	if len(primary.updates) != 1 {
		t.Fatalf("updates = %d, want 1", len(primary.updates))
	}
	up := primary.updates[0]
	if up["course_name"] != "Corrected Name" {
		t.Errorf("course_name = %v", up["course_name"])
	}
	if up["course_name_source"] != fieldmap.SourceManual {
		t.Errorf("course_name_source = %v", up["course_name_source"])
	}
	if up["course_name_updated_at"] == nil {
		t.Errorf("missing course_name_updated_at")
	}
}

func TestSetFieldManuallyRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	primary := &fakeEditPrimaryRepo{row: map[string]any{"course_number": "US-1001"}}
	svc := newTestFieldEdit(t, primary)

	cases := []struct {
		name  string
		field string
		value any
		want  error
	}{
		{"unknown field", "nonexistent_column", "x", pkgerrors.ErrInvalidArgument},
		{"latitude out of range", "latitude", 123.0, pkgerrors.ErrValidation},
		{"rating out of range", "google_rating", 9.5, pkgerrors.ErrValidation},
		{"bad url", "website", "not a url", pkgerrors.ErrValidation},
		{"non-numeric number", "holes", "eighteen", pkgerrors.ErrValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetFieldManually(ctx, "US-1001", tc.field, tc.value)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
	if len(primary.updates) != 0 {
		t.Fatalf("record touched on rejected edit: %v", primary.updates)
	}
}

func TestClearManualOverride(t *testing.T) {
	ctx := context.Background()
	primary := &fakeEditPrimaryRepo{row: map[string]any{
		"course_number":      "US-1001",
		"course_name":        "Operator Name",
		"course_name_source": fieldmap.SourceManual,
	}}
	svc := newTestFieldEdit(t, primary)

	if _, err := svc.ClearManualOverride(ctx, "US-1001", "course_name"); err != nil {
		t.Fatalf("ClearManualOverride: %v", err)
	}
	up := primary.updates[0]
	if v, ok := up["course_name_source"]; !ok || v != nil {
		t.Errorf("course_name_source = %v, want explicit nil", v)
	}
	if _, ok := up["course_name"]; ok {
		t.Errorf("value must survive a cleared override")
	}
}

func TestClearManualOverrideRequiresManualSource(t *testing.T) {
	ctx := context.Background()
	primary := &fakeEditPrimaryRepo{row: map[string]any{
		"course_number":      "US-1001",
		"course_name":        "Pine Valley",
		"course_name_source": "google_places_data",
	}}
	svc := newTestFieldEdit(t, primary)

	if _, err := svc.ClearManualOverride(ctx, "US-1001", "course_name"); !errors.Is(err, pkgerrors.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}
