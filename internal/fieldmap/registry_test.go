package fieldmap

import "testing"

func TestLoadRegistry(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := r.SeedTable(); got != "initial_course_upload" {
		t.Fatalf("SeedTable=%q", got)
	}
	if got := r.SourceLabel("initial_course_upload"); got != "usgolf_data" {
		t.Fatalf("SourceLabel(initial_course_upload)=%q", got)
	}
	if got := r.SourceLabel("google_places_data"); got != "google_places_data" {
		t.Fatalf("SourceLabel(google_places_data)=%q", got)
	}

	order := r.PriorityOrder()
	if len(order) == 0 {
		t.Fatal("empty priority order")
	}
	if order[0] != "google_places_data" {
		t.Fatalf("highest priority=%q, want google_places_data", order[0])
	}
	if order[len(order)-1] != "initial_course_upload" {
		t.Fatalf("lowest priority=%q, want initial_course_upload", order[len(order)-1])
	}
	// every priority entry must be promotable
	for _, table := range order {
		if len(r.MappingsFor(table)) == 0 {
			t.Fatalf("priority table %q has no mappings", table)
		}
	}
}

func TestMappingsForUnknownTableIsEmpty(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m := r.MappingsFor("course_tees")
	if len(m) != 0 {
		t.Fatalf("expected empty mapping for unlisted table, got %v", m)
	}
}

func TestMappingRenames(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cases := []struct {
		table, srcCol, canCol string
	}{
		{"initial_course_upload", "state_or_region", "state"},
		{"initial_course_upload", "phone_number", "phone"},
		{"initial_course_upload", "website_url", "website"},
		{"google_places_data", "display_name", "course_name"},
		{"google_places_data", "rating", "google_rating"},
		{"google_places_data", "user_rating_count", "google_review_count"},
		{"review_urls", "golf_now_url", "golfnow_url"},
		{"review_urls", "golf_pass_url", "golfpass_url"},
	}
	for _, tc := range cases {
		m := r.MappingsFor(tc.table)
		if got := m[tc.srcCol]; got != tc.canCol {
			t.Errorf("%s.%s maps to %q, want %q", tc.table, tc.srcCol, got, tc.canCol)
		}
	}
}

func TestTypeOf(t *testing.T) {
	r, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cases := []struct {
		field string
		want  FieldType
	}{
		{"course_name", TypeText},
		{"description", TypeTextarea},
		{"latitude", TypeNumber},
		{"has_pro_shop", TypeBoolean},
		{"attribute_vector", TypeJSON},
		{"image_urls", TypeArray},
		{"no_such_field", TypeUnknown},
	}
	for _, tc := range cases {
		if got := r.TypeOf(tc.field); got != tc.want {
			t.Errorf("TypeOf(%q)=%q, want %q", tc.field, got, tc.want)
		}
	}

	if r.IsCanonical("no_such_field") {
		t.Fatal("no_such_field should not be canonical")
	}
	if !r.IsCanonical("google_rating") {
		t.Fatal("google_rating should be canonical")
	}
}
