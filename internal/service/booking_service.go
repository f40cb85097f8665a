package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/metrics"
	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/repository"
)

// EventPublisher hands booking events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.BookingEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.BookingEvent) error { return nil }

// BookingService drives the booking lifecycle
// WAITING -> APPROVED | REJECTED.
type BookingService struct {
	store  repository.Store
	events EventPublisher
	log    *zap.Logger
	Now    Clock
}

func NewBookingService(store repository.Store, events EventPublisher, log *zap.Logger) *BookingService {
	if events == nil {
		events = NopPublisher{}
	}
	return &BookingService{store: store, events: events, log: log, Now: utcNow}
}

// Create stores a WAITING booking of item by requester over
// [start, end).  Checks run in order: item and requester exist, item is
// available, requester is not the owner, start precedes end.
func (s *BookingService) Create(ctx context.Context, requesterID, itemID int64, start, end time.Time) (model.Booking, error) {
	var b model.Booking
	err := s.store.InTx(ctx, func(st repository.Store) error {
		it, err := st.Items().Get(ctx, itemID)
		if err != nil {
			return fromRepo(err, "item", itemID)
		}
		if err := requireUser(ctx, st.Users(), requesterID); err != nil {
			return err
		}
		if !it.Available {
			return fmt.Errorf("%w: item %d is not available", ErrInvalidState, itemID)
		}
		if it.OwnerID == requesterID {
			return fmt.Errorf("%w: owner cannot book own item %d", ErrForbidden, itemID)
		}
		if !start.Before(end) {
			return fmt.Errorf("%w: start must be before end", ErrInvalidArgument)
		}
		b = model.Booking{
			Start:    start.UTC(),
			End:      end.UTC(),
			ItemID:   itemID,
			BookerID: requesterID,
			Status:   model.StatusWaiting,
		}
		if err := st.Bookings().Create(ctx, &b); err != nil {
			return fromRepo(err, "item", itemID)
		}
		b, err = st.Bookings().Get(ctx, b.ID)
		return err
	})
	if err != nil {
		return model.Booking{}, err
	}
	metrics.IncBookingCreated()
	s.log.Info("booking created", zap.Int64("booking_id", b.ID), zap.Int64("item_id", itemID), zap.Int64("booker_id", requesterID))
	s.publish(ctx, queue.BookingCreated, b)
	return b, nil
}

// Decide approves or rejects a WAITING booking.  Only the item's owner
// may decide; a booking that is no longer WAITING fails with
// ErrInvalidState before ownership is considered.
func (s *BookingService) Decide(ctx context.Context, bookingID, deciderID int64, approve bool) (model.Booking, error) {
	var b model.Booking
	status := model.Decided(approve)
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), deciderID); err != nil {
			return err
		}
		var err error
		if b, err = st.Bookings().Get(ctx, bookingID); err != nil {
			return fromRepo(err, "booking", bookingID)
		}
		if !model.CanTransition(b.Status, status) {
			return fmt.Errorf("%w: booking %d is %s", ErrInvalidState, bookingID, b.Status)
		}
		if b.Item == nil || b.Item.OwnerID != deciderID {
			return fmt.Errorf("%w: only the item owner may decide booking %d", ErrForbidden, bookingID)
		}
		if err := st.Bookings().UpdateStatus(ctx, bookingID, model.StatusWaiting, status); err != nil {
			return fromRepo(err, "booking", bookingID)
		}
		b.Status = status
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	metrics.IncBookingDecision(string(status))
	s.log.Info("booking decided", zap.Int64("booking_id", bookingID), zap.String("status", string(status)))
	evType := queue.BookingRejected
	if approve {
		evType = queue.BookingApproved
	}
	s.publish(ctx, evType, b)
	return b, nil
}

// Get returns a booking to its booker or to the item's owner.
func (s *BookingService) Get(ctx context.Context, requesterID, bookingID int64) (model.Booking, error) {
	var b model.Booking
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), requesterID); err != nil {
			return err
		}
		var err error
		if b, err = st.Bookings().Get(ctx, bookingID); err != nil {
			return fromRepo(err, "booking", bookingID)
		}
		if b.BookerID != requesterID && (b.Item == nil || b.Item.OwnerID != requesterID) {
			return fmt.Errorf("%w: booking %d is not visible to user %d", ErrForbidden, bookingID, requesterID)
		}
		return nil
	})
	return b, err
}

// ListForBooker returns the requester's bookings matching state, newest
// start first.
func (s *BookingService) ListForBooker(ctx context.Context, requesterID int64, state string, page model.Page) ([]model.Booking, error) {
	return s.list(ctx, requesterID, state, page, func(q *repository.BookingQuery) { q.BookerID = requesterID })
}

// ListForOwner returns the bookings of the owner's items matching
// state, newest start first.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID int64, state string, page model.Page) ([]model.Booking, error) {
	return s.list(ctx, ownerID, state, page, func(q *repository.BookingQuery) { q.OwnerID = ownerID })
}

func (s *BookingService) list(ctx context.Context, userID int64, state string, page model.Page, scope func(*repository.BookingQuery)) ([]model.Booking, error) {
	var out []model.Booking
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), userID); err != nil {
			return err
		}
		parsed, ok := model.ParseBookingState(state)
		if !ok {
			return fmt.Errorf("%w: Unknown state: %s", ErrInvalidArgument, state)
		}
		q := repository.BookingQuery{State: parsed, Now: s.Now(), Page: page}
		scope(&q)
		var err error
		out, err = st.Bookings().List(ctx, q)
		return err
	})
	return out, err
}

func (s *BookingService) Delete(ctx context.Context, bookingID int64) error {
	err := s.store.InTx(ctx, func(st repository.Store) error {
		return fromRepo(st.Bookings().Delete(ctx, bookingID), "booking", bookingID)
	})
	if err != nil {
		return err
	}
	s.log.Info("booking deleted", zap.Int64("booking_id", bookingID))
	return nil
}

// publish sends a booking event after the unit of work committed.  A
// failure is logged and counted; it never fails the request.
func (s *BookingService) publish(ctx context.Context, evType string, b model.Booking) {
	ev := queue.BookingEvent{
		Type:       evType,
		BookingID:  b.ID,
		ItemID:     b.ItemID,
		BookerID:   b.BookerID,
		Status:     string(b.Status),
		StartsAt:   queue.FormatTime(b.Start),
		EndsAt:     queue.FormatTime(b.End),
		OccurredAt: queue.FormatTime(s.Now()),
	}
	if b.Item != nil {
		ev.ItemName = b.Item.Name
		ev.OwnerID = b.Item.OwnerID
	}
	err := s.events.Publish(ctx, ev)
	metrics.IncEventPublished(err == nil)
	if err != nil {
		s.log.Warn("booking event not published", zap.Int64("booking_id", b.ID), zap.String("type", evType), zap.Error(err))
	}
}
