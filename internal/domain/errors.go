package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing start location, vehicle without a plate).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a write violates a uniqueness constraint,
// such as adding a second vehicle with an existing license plate.
// Handlers should map this to HTTP 409 Conflict.
var ErrConflict = errors.New("conflict")
