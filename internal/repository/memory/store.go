// Package memory implements repository.Store on in-process maps.  It is
// used for local development and by the service and handler tests.
// Each method takes the store lock for its own duration; InTx does not
// hold it across the callback, so a unit of work is not isolated from
// concurrent requests.
package memory

import (
	"context"
	"sync"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// Store keeps every table in a map keyed by generated id.
type Store struct {
	mu sync.RWMutex

	users    map[int64]model.User
	items    map[int64]model.Item
	bookings map[int64]model.Booking
	requests map[int64]model.ItemRequest
	comments map[int64]model.Comment

	lastID map[string]int64
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:    make(map[int64]model.User),
		items:    make(map[int64]model.Item),
		bookings: make(map[int64]model.Booking),
		requests: make(map[int64]model.ItemRequest),
		comments: make(map[int64]model.Comment),
		lastID:   make(map[string]int64),
	}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) Users() repository.Users       { return userRepo{s} }
func (s *Store) Items() repository.Items       { return itemRepo{s} }
func (s *Store) Bookings() repository.Bookings { return bookingRepo{s} }
func (s *Store) Requests() repository.Requests { return requestRepo{s} }
func (s *Store) Comments() repository.Comments { return commentRepo{s} }

// InTx runs fn against the store itself.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(s)
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

// nextID must be called with mu held for writing.
func (s *Store) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}
