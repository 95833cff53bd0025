package repository

import "errors"

var (
	// ErrInvalidID is returned when a path id is not a 24 character hex ObjectID.
	ErrInvalidID = errors.New("invalid id")
	// ErrEmptyUpdate is returned when an update carries no settable fields.
	ErrEmptyUpdate = errors.New("update document must not be empty")
	// ErrInvalidField is returned for field names that are empty, start with $ or contain a dot.
	ErrInvalidField = errors.New("invalid field name")
	// ErrEmailExists is returned by user stores when the email is already registered.
	ErrEmailExists = errors.New("email already exists")
)
