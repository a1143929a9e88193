// Package repository provides MongoDB-backed persistence for users and posts.
package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches; an invalid document
	// id hex is reported the same way so callers cannot distinguish a
	// malformed id from a missing record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when the unique email index rejects a write.
	ErrDuplicateEmail = errors.New("email already registered")
)
