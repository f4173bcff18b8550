package store

import "errors"

// Sentinel errors returned by store operations. Mutations need to tell a
// missing record apart from an ownership mismatch, so these are distinct
// values callers can errors.Is against.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrEmailTaken = errors.New("email already registered")
)
