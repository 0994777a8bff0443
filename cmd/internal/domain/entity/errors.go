package entity

import "errors"

var (
	// ErrDuplicateKey is returned by repositories on unique constraint violations.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownReference is returned when a foreign key points at a missing row.
	ErrUnknownReference = errors.New("referenced record does not exist")
)
