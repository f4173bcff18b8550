package model

import (
	"fmt"
	"html"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// ItemInput is the client-supplied part of an item. Owner identity never
// comes from the client; it is stamped from the verified caller.
type ItemInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Date        string `json:"date"`
	Contact     string `json:"contact"`
	Status      string `json:"status"`
}

// FieldError describes a single invalid field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

// CleanText sanitizes a free-text value: trims whitespace, drops control
// characters, and HTML-escapes markup so stored values are safe to render.
// Applied uniformly to every free-text field at the store boundary.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return html.EscapeString(s)
}

// Field length bounds, in runes of the raw (pre-escape) input.
const (
	titleMin       = 3
	titleMax       = 60
	descriptionMin = 10
	descriptionMax = 500
	locationMin    = 3
	locationMax    = 80
	contactMin     = 3
	contactMax     = 120
	dateMin        = 8
	dateMax        = 10
)

// ValidateItem checks the field contracts for an item payload and returns one
// error per failing field. When update is true the category is ignored (it is
// immutable and not part of the update payload).
func ValidateItem(in ItemInput, update bool) []FieldError {
	var errs []FieldError

	check := func(field, value string, min, max int) {
		n := utf8.RuneCountInString(strings.TrimSpace(value))
		if n < min || n > max {
			errs = append(errs, FieldError{
				Field: field,
				Msg:   fmt.Sprintf("must be %d-%d characters", min, max),
			})
		}
	}

	check("title", in.Title, titleMin, titleMax)
	check("description", in.Description, descriptionMin, descriptionMax)
	check("location", in.Location, locationMin, locationMax)
	check("contact", in.Contact, contactMin, contactMax)

	if !update && !ValidCategory(in.Category) {
		errs = append(errs, FieldError{Field: "category", Msg: "must be Lost or Found"})
	}

	if !ValidStatus(in.Status) {
		errs = append(errs, FieldError{Field: "status", Msg: "must be Active, Claimed or Resolved"})
	}

	if err := validateDate(in.Date); err != nil {
		errs = append(errs, FieldError{Field: "date", Msg: err.Error()})
	}

	return errs
}

// validateDate checks that the date is a plausible calendar date string that
// is not in the future.
func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if len(s) < dateMin || len(s) > dateMax {
		return fmt.Errorf("must be %d-%d characters", dateMin, dateMax)
	}

	// Accepts both zero-padded (2026-09-01) and unpadded (2026-9-1) forms.
	d, err := time.ParseInLocation("2006-1-2", s, time.Local)
	if err != nil {
		return fmt.Errorf("must be a valid date (YYYY-MM-DD)")
	}

	if d.Format("2006-01-02") > time.Now().Format("2006-01-02") {
		return fmt.Errorf("must not be in the future")
	}

	return nil
}
