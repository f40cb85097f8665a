// Package queue defines the booking events exchanged over RabbitMQ
// together with the publisher used by the services and the background
// consumer that journals them.
package queue

import "time"

// BookingQueueName is the durable queue booking events are routed to.
const BookingQueueName = "booking.events"

// Booking event types.
const (
	BookingCreated  = "CREATED"
	BookingApproved = "APPROVED"
	BookingRejected = "REJECTED"
)

// BookingEvent is published after a booking is created or decided.  It
// carries enough for a consumer to journal the change without querying
// the primary database.
type BookingEvent struct {
	Type       string `json:"type"`
	BookingID  int64  `json:"booking_id"`
	ItemID     int64  `json:"item_id"`
	ItemName   string `json:"item_name"`
	OwnerID    int64  `json:"owner_id"`
	BookerID   int64  `json:"booker_id"`
	Status     string `json:"status"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
	OccurredAt string `json:"occurred_at"`
}

// FormatTime renders t the way event timestamps are carried.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
