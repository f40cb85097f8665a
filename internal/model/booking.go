package model

import (
	"strings"
	"time"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
	StatusCanceled BookingStatus = "CANCELED"
)

// Booking records a request by a booker to use an item over the
// half-open interval [Start, End).  Item and Booker are populated by
// the repository when the booking is loaded with its relations.
//
// Fields:
//  ID       – primary key identifier.
//  Start    – when the booking begins (UTC).
//  End      – when the booking ends (UTC, strictly after Start).
//  ItemID   – booked item.
//  BookerID – user who asked for the booking.
//  Status   – WAITING until the owner decides.
type Booking struct {
	ID       int64         `json:"id"`     // bookings.id
	Start    time.Time     `json:"start"`  // bookings.start_at
	End      time.Time     `json:"end"`    // bookings.end_at
	ItemID   int64         `json:"-"`      // bookings.item_id
	BookerID int64         `json:"-"`      // bookings.booker_id
	Status   BookingStatus `json:"status"` // bookings.status
	Item     *Item         `json:"item,omitempty"`
	Booker   *User         `json:"booker,omitempty"`
}

// Decided returns the status a WAITING booking moves to after the owner
// approves or rejects it.
func Decided(approve bool) BookingStatus {
	if approve {
		return StatusApproved
	}
	return StatusRejected
}

// CanTransition reports whether a booking may move from one status to
// another.  Only WAITING bookings can be decided.
func CanTransition(from, to BookingStatus) bool {
	return from == StatusWaiting && (to == StatusApproved || to == StatusRejected)
}

// BookingState is the listing filter accepted by the booking queries.
type BookingState string

const (
	StateAll      BookingState = "ALL"
	StateCurrent  BookingState = "CURRENT"
	StatePast     BookingState = "PAST"
	StateFuture   BookingState = "FUTURE"
	StateWaiting  BookingState = "WAITING"
	StateRejected BookingState = "REJECTED"
	StateApproved BookingState = "APPROVED"
)

var bookingStates = map[BookingState]struct{}{
	StateAll: {}, StateCurrent: {}, StatePast: {}, StateFuture: {},
	StateWaiting: {}, StateRejected: {}, StateApproved: {},
}

// ParseBookingState converts a query value into a BookingState.  The
// comparison is case-insensitive and an empty value means ALL.
func ParseBookingState(s string) (BookingState, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return StateAll, true
	}
	st := BookingState(s)
	_, ok := bookingStates[st]
	return st, ok
}

// Status returns the booking status selected by a status-equality state
// and false for the temporal states.
func (s BookingState) Status() (BookingStatus, bool) {
	switch s {
	case StateWaiting, StateRejected, StateApproved:
		return BookingStatus(s), true
	}
	return "", false
}

// Matches reports whether b satisfies the state filter at instant now.
//
//  CURRENT: start <= now < end
//  PAST:    end < now
//  FUTURE:  start > now
func (s BookingState) Matches(b Booking, now time.Time) bool {
	switch s {
	case StateCurrent:
		return !b.Start.After(now) && now.Before(b.End)
	case StatePast:
		return b.End.Before(now)
	case StateFuture:
		return b.Start.After(now)
	case StateWaiting, StateRejected, StateApproved:
		return string(b.Status) == string(s)
	}
	return true
}

// Completed reports whether b lets its booker comment on the item: it
// must have been approved (not WAITING or REJECTED) and already started.
func (b Booking) Completed(now time.Time) bool {
	if b.Status == StatusWaiting || b.Status == StatusRejected {
		return false
	}
	return !b.Start.After(now)
}
