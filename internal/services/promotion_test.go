package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/fairwaylabs/coursedesk-backend/internal/fieldmap"
	"github.com/fairwaylabs/coursedesk-backend/internal/logger"
	"github.com/fairwaylabs/coursedesk-backend/internal/repos"
)

type fakeSourceRepo struct {
	rows    map[string]map[string]map[string]any // table -> course -> row
	numbers []string
	failOn  map[string]error
}

func (f *fakeSourceRepo) GetRow(ctx context.Context, tx *gorm.DB, table, courseNumber string) (map[string]any, error) {
	if err, ok := f.failOn[table]; ok {
		return nil, err
	}
	byCourse, ok := f.rows[table]
	if !ok {
		return nil, nil
	}
	return byCourse[courseNumber], nil
}

func (f *fakeSourceRepo) ListCourseNumbers(ctx context.Context, tx *gorm.DB, table string) ([]string, error) {
	return f.numbers, nil
}

type fakePrimaryRepo struct {
	row       map[string]any
	created   []map[string]any
	updates   []map[string]any
	createErr error
	updateErr error
}

func (f *fakePrimaryRepo) GetRow(ctx context.Context, tx *gorm.DB, courseNumber string) (map[string]any, error) {
	return f.row, nil
}

func (f *fakePrimaryRepo) Create(ctx context.Context, tx *gorm.DB, row map[string]any) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, row)
	f.row = row
	return nil
}

func (f *fakePrimaryRepo) UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, fields)
	for k, v := range fields {
		f.row[k] = v
	}
	return nil
}

func newTestPromotion(t *testing.T, sources *fakeSourceRepo, primary *fakePrimaryRepo) PromotionService {
	t.Helper()
	reg, err := fieldmap.Load()
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	return NewPromotionService(nil, log, reg, sources, &primaryStub{f: primary}, nil)
}

// primaryStub adapts the fake to the full repo interface; the promotion
// engine only uses the raw-row methods.
type primaryStub struct {
	repos.PrimaryDataRepo
	f *fakePrimaryRepo
}

func (s *primaryStub) GetRow(ctx context.Context, tx *gorm.DB, courseNumber string) (map[string]any, error) {
	return s.f.GetRow(ctx, tx, courseNumber)
}

func (s *primaryStub) Create(ctx context.Context, tx *gorm.DB, row map[string]any) error {
	return s.f.Create(ctx, tx, row)
}

func (s *primaryStub) UpdateFields(ctx context.Context, tx *gorm.DB, courseNumber string, fields map[string]any) error {
	return s.f.UpdateFields(ctx, tx, courseNumber, fields)
}

func allUpdates(f *fakePrimaryRepo) map[string]any {
	merged := make(map[string]any)
	for _, u := range f.updates {
		for k, v := range u {
			merged[k] = v
		}
	}
	return merged
}

func TestPromoteCourseSeedsFromUpload(t *testing.T) {
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"initial_course_upload": {
				"US-1001": {
					"course_name":  "Pine Valley",
					"city":         "Clementon",
					"phone_number": "(856) 555-0101",
					"holes":        int64(18),
				},
			},
		},
	}
	primary := &fakePrimaryRepo{}
	svc := newTestPromotion(t, sources, primary)

	res, err := svc.PromoteCourse(context.Background(), "US-1001")
	if err != nil {
		t.Fatalf("PromoteCourse: %v", err)
	}
	if !res.Created {
		t.Fatalf("expected Created=true")
	}
	if len(primary.created) != 1 {
		t.Fatalf("expected one created row, got %d", len(primary.created))
	}
	row := primary.created[0]
	if row["course_name"] != "Pine Valley" {
		t.Errorf("course_name = %v", row["course_name"])
	}
	if row["course_name_source"] != "usgolf_data" {
		t.Errorf("course_name_source = %v", row["course_name_source"])
	}
	if row["phone"] != "(856) 555-0101" {
		t.Errorf("phone = %v (column mapping)", row["phone"])
	}
	if row["holes"] != float64(18) {
		t.Errorf("holes = %v (%T)", row["holes"], row["holes"])
	}
	if row["course_name_updated_at"] == nil {
		t.Errorf("missing course_name_updated_at")
	}
}

func TestPromoteCoursePriorityWins(t *testing.T) {
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"google_places_data": {
				"US-1001": {"display_name": "Pine Valley Golf Club", "rating": 4.8},
			},
			"course_scraping_data": {
				"US-1001": {"description": "Classic parkland layout.", "architect": "Crump"},
			},
		},
	}
	primary := &fakePrimaryRepo{row: map[string]any{
		"course_number": "US-1001",
		"course_name":   "Pine Valley",
	}}
	svc := newTestPromotion(t, sources, primary)

	res, err := svc.PromoteCourse(context.Background(), "US-1001")
	if err != nil {
		t.Fatalf("PromoteCourse: %v", err)
	}
	if res.Created {
		t.Fatalf("expected existing row")
	}
	merged := allUpdates(primary)
	if merged["course_name"] != "Pine Valley Golf Club" {
		t.Errorf("course_name = %v", merged["course_name"])
	}
	if merged["course_name_source"] != "google_places_data" {
		t.Errorf("course_name_source = %v", merged["course_name_source"])
	}
	if merged["description_source"] != "course_scraping_data" {
		t.Errorf("description_source = %v", merged["description_source"])
	}
	if merged["google_rating"] != 4.8 {
		t.Errorf("google_rating = %v", merged["google_rating"])
	}
}

func TestPromoteCourseHigherPrioritySourceClaimsField(t *testing.T) {
	// google_places_data and initial_course_upload both supply
	// course_name; the upload table sits last in the priority walk and
	// must not overwrite the places value even though it is non-null.
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"google_places_data": {
				"US-1001": {"display_name": "Pine Hills Golf Club"},
			},
			"initial_course_upload": {
				"US-1001": {"course_name": "Pine Hills", "city": "Plymouth"},
			},
		},
	}
	primary := &fakePrimaryRepo{row: map[string]any{
		"course_number": "US-1001",
		"course_name":   "Old Import Name",
	}}
	svc := newTestPromotion(t, sources, primary)

	if _, err := svc.PromoteCourse(context.Background(), "US-1001"); err != nil {
		t.Fatalf("PromoteCourse: %v", err)
	}
	if primary.row["course_name"] != "Pine Hills Golf Club" {
		t.Errorf("course_name = %v, want the higher-priority value", primary.row["course_name"])
	}
	if primary.row["course_name_source"] != "google_places_data" {
		t.Errorf("course_name_source = %v", primary.row["course_name_source"])
	}
	for _, u := range primary.updates {
		if u["course_name_source"] == "usgolf_data" {
			t.Errorf("lower-priority table staged course_name: %v", u)
		}
	}
	if primary.row["city"] != "Plymouth" {
		t.Errorf("city = %v (unclaimed fields still promote from the upload)", primary.row["city"])
	}
}

func TestPromoteCourseManualFieldUntouched(t *testing.T) {
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"google_places_data": {
				"US-1001": {"display_name": "Wrong Name", "website": "https://example.com"},
			},
		},
	}
	primary := &fakePrimaryRepo{row: map[string]any{
		"course_number":      "US-1001",
		"course_name":        "Operator Name",
		"course_name_source": fieldmap.SourceManual,
	}}
	svc := newTestPromotion(t, sources, primary)

	if _, err := svc.PromoteCourse(context.Background(), "US-1001"); err != nil {
		t.Fatalf("PromoteCourse: %v", err)
	}
	merged := allUpdates(primary)
	if _, ok := merged["course_name"]; ok {
		t.Errorf("manual course_name was overwritten: %v", merged["course_name"])
	}
	if merged["website"] != "https://example.com" {
		t.Errorf("website = %v (non-manual fields still promote)", merged["website"])
	}
}

func TestPromoteCourseNullNeverOverwrites(t *testing.T) {
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"google_places_data": {
				"US-1001": {"display_name": nil, "formatted_address": ""},
			},
		},
	}
	primary := &fakePrimaryRepo{row: map[string]any{
		"course_number": "US-1001",
		"course_name":   "Pine Valley",
		"address":       "1 Club Rd",
	}}
	svc := newTestPromotion(t, sources, primary)

	res, err := svc.PromoteCourse(context.Background(), "US-1001")
	if err != nil {
		t.Fatalf("PromoteCourse: %v", err)
	}
	if res.FieldsUpdated != 0 {
		t.Fatalf("FieldsUpdated = %d, want 0", res.FieldsUpdated)
	}
	if len(primary.updates) != 0 {
		t.Fatalf("unexpected updates: %v", primary.updates)
	}
}

func TestPromoteCourseIdempotent(t *testing.T) {
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"google_places_data": {
				"US-1001": {"display_name": "Pine Valley Golf Club"},
			},
		},
	}
	primary := &fakePrimaryRepo{row: map[string]any{
		"course_number": "US-1001",
	}}
	svc := newTestPromotion(t, sources, primary)

	first, err := svc.PromoteCourse(context.Background(), "US-1001")
	if err != nil {
		t.Fatalf("first promote: %v", err)
	}
	if first.FieldsUpdated != 1 {
		t.Fatalf("first FieldsUpdated = %d, want 1", first.FieldsUpdated)
	}

	second, err := svc.PromoteCourse(context.Background(), "US-1001")
	if err != nil {
		t.Fatalf("second promote: %v", err)
	}
	if second.FieldsUpdated != 0 {
		t.Fatalf("second FieldsUpdated = %d, want 0 (equal values skipped)", second.FieldsUpdated)
	}
}

func TestPromoteCourseSourceReadFailureNonFatal(t *testing.T) {
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"course_scraping_data": {
				"US-1001": {"description": "Classic layout."},
			},
		},
		failOn: map[string]error{"google_places_data": errors.New("connection refused")},
	}
	primary := &fakePrimaryRepo{row: map[string]any{
		"course_number": "US-1001",
	}}
	svc := newTestPromotion(t, sources, primary)

	res, err := svc.PromoteCourse(context.Background(), "US-1001")
	if err != nil {
		t.Fatalf("PromoteCourse: %v", err)
	}
	if res.FieldsUpdated != 1 {
		t.Fatalf("FieldsUpdated = %d, want 1 from the healthy table", res.FieldsUpdated)
	}
}

func TestPromoteAllCountsFailures(t *testing.T) {
	sources := &fakeSourceRepo{
		rows: map[string]map[string]map[string]any{
			"initial_course_upload": {
				"US-1001": {"course_name": "Pine Valley"},
				"US-1002": {"course_name": "Oak Ridge"},
			},
		},
		numbers: []string{"US-1001", "US-1002"},
	}
	primary := &fakePrimaryRepo{createErr: errors.New("insert failed")}
	svc := newTestPromotion(t, sources, primary)

	batch, err := svc.PromoteAll(context.Background())
	if err != nil {
		t.Fatalf("PromoteAll: %v", err)
	}
	if batch.Failed != 2 || batch.Created != 0 {
		t.Fatalf("batch = %+v, want 2 failures", batch)
	}
}
