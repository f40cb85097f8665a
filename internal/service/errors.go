// Package service implements the marketplace use cases on top of a
// repository.Store.  Every operation runs in one unit of work and fails
// with one of the sentinel errors below, wrapped with context.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/shareit/internal/repository"
)

var (
	// ErrNotFound: a referenced user, item, booking or request is missing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: the operation is not allowed in the current state
	// (decided booking, unavailable item, no qualifying booking).
	ErrInvalidState = errors.New("invalid state")
	// ErrInvalidArgument: malformed input such as a bad page or state.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConflict: a unique email is taken or the row is still referenced.
	ErrConflict = errors.New("conflict")
	// ErrForbidden: the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
)

func notFound(what string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
}

// fromRepo translates repository sentinels for the entity named by what.
func fromRepo(err error, what string, id int64) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return notFound(what, id)
	case errors.Is(err, repository.ErrEmailExists):
		return fmt.Errorf("%w: email already in use", ErrConflict)
	case errors.Is(err, repository.ErrStaleState):
		return fmt.Errorf("%w: %s %d was changed concurrently", ErrInvalidState, what, id)
	case errors.Is(err, repository.ErrReferenced):
		return fmt.Errorf("%w: %s %d is still referenced", ErrConflict, what, id)
	}
	return err
}

// requireUser fails with ErrNotFound unless the user exists.
func requireUser(ctx context.Context, users repository.Users, id int64) error {
	ok, err := users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("user", id)
	}
	return nil
}
