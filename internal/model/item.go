package model

// Item represents a lost or found report.
//
// The JSON field names match what the browser front end already speaks:
// camelCase, with createdAt/updatedAt as Unix milliseconds.
type Item struct {
	ID            string `json:"id"`
	ReferenceCode string `json:"referenceCode"`
	Category      string `json:"category"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	Contact       string `json:"contact"`
	Date          string `json:"date"`
	Status        string `json:"status"`
	OwnerUID      string `json:"ownerUid"`
	OwnerEmail    string `json:"ownerEmail"`
	PhotoMime     string `json:"photoMime,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
	UpdatedAt     int64  `json:"updatedAt"`
}

// Categories.
const (
	CategoryLost  = "Lost"
	CategoryFound = "Found"
)

// Statuses.
const (
	StatusActive   = "Active"
	StatusClaimed  = "Claimed"
	StatusResolved = "Resolved"
)

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	return c == CategoryLost || c == CategoryFound
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s string) bool {
	return s == StatusActive || s == StatusClaimed || s == StatusResolved
}

// RefPrefix returns the reference-code prefix for a category ("L" or "F").
func RefPrefix(category string) string {
	if category == CategoryLost {
		return "L"
	}
	return "F"
}

// CounterKey returns the counter row key for a category ("lost" or "found").
func CounterKey(category string) string {
	if category == CategoryLost {
		return "lost"
	}
	return "found"
}

// NextStatus returns the next status in the Active -> Claimed -> Resolved ->
// Active cycle. This is a convenience for clients proposing a transition; the
// store accepts any of the three statuses directly.
func NextStatus(current string) string {
	switch current {
	case StatusActive:
		return StatusClaimed
	case StatusClaimed:
		return StatusResolved
	default:
		return StatusActive
	}
}

// StatusEvent records a single status transition of an item.
type StatusEvent struct {
	ID         int64  `json:"id"`
	ItemID     string `json:"itemId"`
	FromStatus string `json:"fromStatus"`
	ToStatus   string `json:"toStatus"`
	ChangedBy  string `json:"changedBy"`
	ChangedAt  int64  `json:"changedAt"`
}
