package fieldmap

import (
	"fmt"
	"net/url"
	"regexp"
	"time"
)

var (
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9().\-\s]{7,20}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

type numberRange struct {
	min, max float64
}

var numberRanges = map[string]numberRange{
	"latitude":            {-90, 90},
	"longitude":           {-180, 180},
	"google_rating":       {0, 5},
	"avg_review_score":    {0, 5},
	"overall_score":       {0, 100},
	"difficulty_score":    {0, 100},
	"condition_score":     {0, 100},
	"value_score":         {0, 100},
	"holes":               {1, 54},
	"total_par":           {20, 160},
	"total_yardage":       {500, 10000},
	"google_review_count": {0, 10000000},
	"review_count":        {0, 10000000},
}

var urlFields = map[string]bool{
	"website":      true,
	"golfnow_url":  true,
	"golfpass_url": true,
}

// Validate checks an already-converted value against the field's rule.
// A nil value always passes (it clears the field). The error message is
// surfaced verbatim to the operator.
func Validate(field string, value any) error {
	if value == nil {
		return nil
	}

	if r, ok := numberRanges[field]; ok {
		f, isNum := value.(float64)
		if !isNum {
			return fmt.Errorf("%s must be a number", field)
		}
		if f < r.min || f > r.max {
			return fmt.Errorf("%s must be between %g and %g, got %g", field, r.min, r.max, f)
		}
		return nil
	}

	if field == "year_built" {
		f, isNum := value.(float64)
		if !isNum {
			return fmt.Errorf("year_built must be a number")
		}
		maxYear := float64(time.Now().Year() + 1)
		if f < 1700 || f > maxYear {
			return fmt.Errorf("year_built must be between 1700 and %g, got %g", maxYear, f)
		}
		return nil
	}

	s, isStr := value.(string)
	if !isStr {
		return nil
	}

	switch {
	case field == "zip_code":
		if !zipRe.MatchString(s) {
			return fmt.Errorf("zip_code must look like 12345 or 12345-6789")
		}
	case field == "phone":
		if !phoneRe.MatchString(s) {
			return fmt.Errorf("phone number %q has an unexpected shape", s)
		}
	case field == "email":
		if !emailRe.MatchString(s) {
			return fmt.Errorf("email address %q has an unexpected shape", s)
		}
	case urlFields[field]:
		u, err := url.Parse(s)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%s must be an http(s) URL", field)
		}
	}
	return nil
}
