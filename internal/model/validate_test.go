package model

import (
	"strings"
	"testing"
	"time"
)

func validInput() ItemInput {
	return ItemInput{
		Title:       "Black Wallet",
		Description: "Leather wallet, contains a student card.",
		Category:    CategoryLost,
		Location:    "Library Entrance",
		Date:        time.Now().Format("2006-01-02"),
		Contact:     "student@example.com",
		Status:      StatusActive,
	}
}

func TestValidateItemOK(t *testing.T) {
	if errs := ValidateItem(validInput(), false); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidateItemFieldBounds(t *testing.T) {
	in := validInput()
	in.Title = "ab"
	in.Description = "too short"
	in.Contact = strings.Repeat("x", 121)

	errs := ValidateItem(in, false)
	fields := map[string]bool{}
	for _, e := range errs {
		fields[e.Field] = true
	}

	for _, want := range []string{"title", "description", "contact"} {
		if !fields[want] {
			t.Errorf("expected error for field %q, got %v", want, errs)
		}
	}
	if fields["location"] || fields["date"] {
		t.Errorf("unexpected errors: %v", errs)
	}
}

func TestValidateItemCategory(t *testing.T) {
	in := validInput()
	in.Category = "Misplaced"

	if errs := ValidateItem(in, false); len(errs) != 1 || errs[0].Field != "category" {
		t.Errorf("expected single category error, got %v", errs)
	}

	// Category is ignored on update payloads.
	if errs := ValidateItem(in, true); len(errs) != 0 {
		t.Errorf("expected no errors for update, got %v", errs)
	}
}

func TestValidateItemFutureDate(t *testing.T) {
	in := validInput()
	in.Date = time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	if errs := ValidateItem(in, false); len(errs) != 1 || errs[0].Field != "date" {
		t.Errorf("expected single date error for future date, got %v", errs)
	}
}

func TestValidateItemDateFormats(t *testing.T) {
	in := validInput()

	in.Date = "2024-01-15"
	if errs := ValidateItem(in, false); len(errs) != 0 {
		t.Errorf("expected padded date to pass, got %v", errs)
	}

	in.Date = "2024-1-15"
	if errs := ValidateItem(in, false); len(errs) != 0 {
		t.Errorf("expected unpadded date to pass, got %v", errs)
	}

	in.Date = "not-a-date"
	if errs := ValidateItem(in, false); len(errs) != 1 || errs[0].Field != "date" {
		t.Errorf("expected date error, got %v", errs)
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("  <script>alert('x')</script>  ")
	if strings.Contains(got, "<") || strings.Contains(got, ">") || strings.Contains(got, "'") {
		t.Errorf("expected markup to be escaped, got %q", got)
	}
	if strings.HasPrefix(got, " ") || strings.HasSuffix(got, " ") {
		t.Errorf("expected trimmed output, got %q", got)
	}

	if got := CleanText("a\x00b\nc"); got != "abc" {
		t.Errorf("expected control characters stripped, got %q", got)
	}

	if got := CleanText("plain text 123"); got != "plain text 123" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}
