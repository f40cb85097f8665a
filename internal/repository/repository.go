package repository

import (
	"context"
	"time"

	"github.com/iliyamo/shareit/internal/model"
)

// Users persists marketplace users.
type Users interface {
	// Create inserts u and populates its ID.  Returns ErrEmailExists
	// when the email is taken.
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, id int64) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// Update overwrites name and email of an existing user.
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

// Items persists catalog items.
type Items interface {
	Create(ctx context.Context, it *model.Item) error
	Get(ctx context.Context, id int64) (model.Item, error)
	Update(ctx context.Context, it model.Item) error
	Delete(ctx context.Context, id int64) error
	// ListByOwner returns the owner's items ordered by id.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	// Search matches text case-insensitively against name or
	// description of available items, ordered by id.
	Search(ctx context.Context, text string, page model.Page) ([]model.Item, error)
	// ListByRequests returns the items listed for any of the given
	// request ids, ordered by id.
	ListByRequests(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

// BookingQuery selects bookings either by booker or by item owner.
// Exactly one of BookerID and OwnerID is expected to be set.
type BookingQuery struct {
	BookerID int64
	OwnerID  int64
	State    model.BookingState
	Now      time.Time
	Page     model.Page
}

// Bookings persists bookings.  Bookings returned by Get and List carry
// their Item and Booker relations.
type Bookings interface {
	Create(ctx context.Context, b *model.Booking) error
	Get(ctx context.Context, id int64) (model.Booking, error)
	// UpdateStatus moves booking id from status from to status to.  It
	// returns ErrStaleState when the booking is no longer in from.
	UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) error
	Delete(ctx context.Context, id int64) error
	// List returns the bookings matching q ordered by start descending.
	List(ctx context.Context, q BookingQuery) ([]model.Booking, error)
	// ListByItemAndBooker returns all bookings of item made by booker,
	// newest start first.
	ListByItemAndBooker(ctx context.Context, itemID, bookerID int64) ([]model.Booking, error)
	// LastApproved returns the APPROVED booking of item with the latest
	// end before now, or nil.
	LastApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
	// NextApproved returns the APPROVED booking of item with the
	// earliest end after now, or nil.
	NextApproved(ctx context.Context, itemID int64, now time.Time) (*model.Booking, error)
}

// Requests persists item requests.
type Requests interface {
	Create(ctx context.Context, r *model.ItemRequest) error
	Get(ctx context.Context, id int64) (model.ItemRequest, error)
	// ListByRequester returns the requester's requests, newest first.
	ListByRequester(ctx context.Context, requesterID int64) ([]model.ItemRequest, error)
	// ListOthers returns requests not made by requesterID, newest first.
	ListOthers(ctx context.Context, requesterID int64, page model.Page) ([]model.ItemRequest, error)
}

// Comments persists item comments.
type Comments interface {
	// Create inserts c and populates its ID.  AuthorName is left to the
	// caller.
	Create(ctx context.Context, c *model.Comment) error
	// ListByItem returns the comments on item, newest first, with
	// AuthorName resolved.
	ListByItem(ctx context.Context, itemID int64) ([]model.Comment, error)
}

// Store groups the repositories of one storage backend.
type Store interface {
	Users() Users
	Items() Items
	Bookings() Bookings
	Requests() Requests
	Comments() Comments
	// InTx runs fn as one unit of work.  The Store passed to fn is bound
	// to that unit; if fn returns an error nothing it wrote is kept
	// (for backends that support rollback).
	InTx(ctx context.Context, fn func(Store) error) error
	Close() error
}
