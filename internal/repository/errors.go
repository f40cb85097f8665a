// Package repository defines the storage contracts shared by the memory
// and MySQL backends together with the sentinel errors they return.
// Services translate these values into domain errors; handlers never
// see them directly.
package repository

import "errors"

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when inserting or updating a user would
// duplicate another user's email.
var ErrEmailExists = errors.New("email already exists")

// ErrStaleState is returned when a conditional update finds the row no
// longer in the expected state.
var ErrStaleState = errors.New("row state changed")

// ErrReferenced is returned when a delete cannot be performed because
// other rows still reference the target (e.g. a user who owns items).
var ErrReferenced = errors.New("row is still referenced")
