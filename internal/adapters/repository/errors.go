package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrAgentNotFound = errors.New("agent budget not found")
	ErrBadFixture    = errors.New("invalid fixture")
)
