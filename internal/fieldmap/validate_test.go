package fieldmap

import "testing"

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		field   string
		value   any
		wantErr bool
	}{
		{name: "latitude_ok", field: "latitude", value: 42.3601},
		{name: "latitude_out_of_range", field: "latitude", value: float64(200), wantErr: true},
		{name: "longitude_negative_ok", field: "longitude", value: -71.0589},
		{name: "google_rating_ok", field: "google_rating", value: 4.5},
		{name: "google_rating_too_high", field: "google_rating", value: 5.1, wantErr: true},
		{name: "zip_ok", field: "zip_code", value: "02134"},
		{name: "zip_plus_four", field: "zip_code", value: "02134-1234"},
		{name: "zip_bad", field: "zip_code", value: "0213", wantErr: true},
		{name: "phone_ok", field: "phone", value: "+1 (617) 555-0134"},
		{name: "phone_bad", field: "phone", value: "call us", wantErr: true},
		{name: "email_ok", field: "email", value: "pro@pinehills.example.com"},
		{name: "email_bad", field: "email", value: "not-an-email", wantErr: true},
		{name: "website_ok", field: "website", value: "https://pinehills.example.com"},
		{name: "website_missing_scheme", field: "website", value: "pinehills.example.com", wantErr: true},
		{name: "golfnow_ok", field: "golfnow_url", value: "http://golfnow.example.com/x"},
		{name: "year_ok", field: "year_built", value: float64(1927)},
		{name: "year_too_old", field: "year_built", value: float64(1502), wantErr: true},
		{name: "year_in_future", field: "year_built", value: float64(2500), wantErr: true},
		{name: "holes_ok", field: "holes", value: float64(18)},
		{name: "holes_absurd", field: "holes", value: float64(99), wantErr: true},
		{name: "nil_clears", field: "latitude", value: nil},
		{name: "unconstrained_field", field: "course_name", value: "Pine Hills"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.field, tc.value)
			if tc.wantErr && err == nil {
				t.Fatalf("Validate(%s, %v): expected error", tc.field, tc.value)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("Validate(%s, %v): %v", tc.field, tc.value, err)
			}
		})
	}
}
