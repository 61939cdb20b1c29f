package service

import "errors"

// Failure kinds surfaced to the HTTP boundary. Handlers match these with
// errors.Is and translate them to redirects or JSON statuses; anything
// else is treated as an internal failure and logged in full.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("invalid input")
	ErrPastSlot          = errors.New("slot already started")
	ErrDuplicateIdentity = errors.New("reservation already exists for this document")
	ErrCapacityExceeded  = errors.New("no seats remaining")
	ErrAuthFailure       = errors.New("invalid credentials")
)
