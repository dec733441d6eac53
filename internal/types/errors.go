package types

import "errors"

// Domain failures surfaced by the aggregate and the services. Handlers map
// these to HTTP status codes; anything else is a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("cannot publish a course without active lessons")
	ErrDuplicateOrder     = errors.New("order must be unique within the course")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)
