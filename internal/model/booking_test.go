package model

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseBookingState(t *testing.T) {
	tests := []struct {
		in   string
		want BookingState
		ok   bool
	}{
		{"", StateAll, true},
		{"all", StateAll, true},
		{" current ", StateCurrent, true},
		{"PAST", StatePast, true},
		{"Future", StateFuture, true},
		{"waiting", StateWaiting, true},
		{"REJECTED", StateRejected, true},
		{"approved", StateApproved, true},
		{"UNSUPPORTED_STATUS", "", false},
		{"canceled", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseBookingState(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, tt.in)
		}
	}
}

func TestBookingStateMatches(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	past := Booking{Start: now.Add(-3 * time.Hour), End: now.Add(-time.Hour), Status: StatusApproved}
	current := Booking{Start: now.Add(-time.Hour), End: now.Add(time.Hour), Status: StatusWaiting}
	startsNow := Booking{Start: now, End: now.Add(time.Hour), Status: StatusRejected}
	future := Booking{Start: now.Add(time.Hour), End: now.Add(2 * time.Hour), Status: StatusWaiting}

	assert.True(t, StateCurrent.Matches(current, now))
	assert.True(t, StateCurrent.Matches(startsNow, now))
	assert.False(t, StateCurrent.Matches(past, now))
	assert.False(t, StateCurrent.Matches(future, now))

	assert.True(t, StatePast.Matches(past, now))
	assert.False(t, StatePast.Matches(current, now))

	assert.True(t, StateFuture.Matches(future, now))
	assert.False(t, StateFuture.Matches(startsNow, now))

	assert.True(t, StateWaiting.Matches(future, now))
	assert.False(t, StateWaiting.Matches(past, now))
	assert.True(t, StateApproved.Matches(past, now))
	assert.True(t, StateRejected.Matches(startsNow, now))

	for _, b := range []Booking{past, current, startsNow, future} {
		assert.True(t, StateAll.Matches(b, now))
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusWaiting, StatusApproved))
	assert.True(t, CanTransition(StatusWaiting, StatusRejected))
	assert.False(t, CanTransition(StatusApproved, StatusRejected))
	assert.False(t, CanTransition(StatusRejected, StatusApproved))
	assert.False(t, CanTransition(StatusApproved, StatusApproved))
	assert.False(t, CanTransition(StatusWaiting, StatusCanceled))
	assert.Equal(t, StatusApproved, Decided(true))
	assert.Equal(t, StatusRejected, Decided(false))
}

func TestBookingCompleted(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	started := now.Add(-time.Hour)

	assert.True(t, Booking{Start: started, Status: StatusApproved}.Completed(now))
	assert.True(t, Booking{Start: now, Status: StatusApproved}.Completed(now))
	assert.False(t, Booking{Start: now.Add(time.Minute), Status: StatusApproved}.Completed(now))
	assert.False(t, Booking{Start: started, Status: StatusWaiting}.Completed(now))
	assert.False(t, Booking{Start: started, Status: StatusRejected}.Completed(now))
}

func TestPageWindow(t *testing.T) {
	lo, hi := Page{}.Window(5)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 5, hi)

	lo, hi = Page{From: 2, Size: 2}.Window(5)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 4, hi)

	lo, hi = Page{From: 4, Size: 10}.Window(5)
	assert.Equal(t, 4, lo)
	assert.Equal(t, 5, hi)

	lo, hi = Page{From: 9, Size: 1}.Window(5)
	assert.Equal(t, 5, lo)
	assert.Equal(t, 5, hi)

	lo, hi = Page{From: 1, Size: math.MaxInt}.Window(2)
	assert.Equal(t, 1, lo)
	assert.Equal(t, 2, hi)
}
