package memory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

func seedUser(t *testing.T, s *Store, name, email string) model.User {
	t.Helper()
	u := model.User{Name: name, Email: email}
	require.NoError(t, s.Users().Create(context.Background(), &u))
	return u
}

func seedItem(t *testing.T, s *Store, owner int64, name, desc string, available bool) model.Item {
	t.Helper()
	it := model.Item{Name: name, Description: desc, Available: available, OwnerID: owner}
	require.NoError(t, s.Items().Create(context.Background(), &it))
	return it
}

func TestUsersEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	a := seedUser(t, s, "a", "a@example.com")
	b := seedUser(t, s, "b", "b@example.com")

	dup := model.User{Name: "c", Email: "A@Example.com"}
	assert.ErrorIs(t, s.Users().Create(ctx, &dup), repository.ErrEmailExists)

	b.Email = "a@example.com"
	assert.ErrorIs(t, s.Users().Update(ctx, b), repository.ErrEmailExists)

	a.Name = "renamed"
	require.NoError(t, s.Users().Update(ctx, a))
	got, err := s.Users().Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
}

func TestUserDeleteReferenced(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := seedUser(t, s, "owner", "o@example.com")
	free := seedUser(t, s, "free", "f@example.com")
	seedItem(t, s, owner.ID, "drill", "cordless", true)

	assert.ErrorIs(t, s.Users().Delete(ctx, owner.ID), repository.ErrReferenced)
	require.NoError(t, s.Users().Delete(ctx, free.ID))
	assert.ErrorIs(t, s.Users().Delete(ctx, free.ID), repository.ErrNotFound)
}

func TestItemSearch(t *testing.T) {
	ctx := context.Background()
	s := New()
	u := seedUser(t, s, "u", "u@example.com")
	drill := seedItem(t, s, u.ID, "Drill", "Cordless power tool", true)
	seedItem(t, s, u.ID, "Old drill", "broken", false)
	saw := seedItem(t, s, u.ID, "Saw", "cuts wood, not a DRILL", true)
	seedItem(t, s, u.ID, "Ladder", "tall", true)

	got, err := s.Items().Search(ctx, "drIll", model.Page{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, drill.ID, got[0].ID)
	assert.Equal(t, saw.ID, got[1].ID)

	got, err = s.Items().Search(ctx, "drill", model.Page{From: 1, Size: 5})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, saw.ID, got[0].ID)

	got, err = s.Items().Search(ctx, "drill", model.Page{From: 1, Size: math.MaxInt})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, saw.ID, got[0].ID)
}

func TestBookingListFiltersAndOrder(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	owner := seedUser(t, s, "owner", "o@example.com")
	booker := seedUser(t, s, "booker", "b@example.com")
	it := seedItem(t, s, owner.ID, "tent", "2 person", true)

	mk := func(start, end time.Duration, st model.BookingStatus) model.Booking {
		b := model.Booking{Start: now.Add(start), End: now.Add(end), ItemID: it.ID, BookerID: booker.ID, Status: st}
		require.NoError(t, s.Bookings().Create(ctx, &b))
		return b
	}
	past := mk(-48*time.Hour, -24*time.Hour, model.StatusApproved)
	current := mk(-time.Hour, time.Hour, model.StatusWaiting)
	future := mk(24*time.Hour, 48*time.Hour, model.StatusRejected)

	list := func(q repository.BookingQuery) []int64 {
		q.Now = now
		bs, err := s.Bookings().List(ctx, q)
		require.NoError(t, err)
		ids := make([]int64, 0, len(bs))
		for _, b := range bs {
			require.NotNil(t, b.Item)
			require.NotNil(t, b.Booker)
			ids = append(ids, b.ID)
		}
		return ids
	}

	assert.Equal(t, []int64{future.ID, current.ID, past.ID}, list(repository.BookingQuery{BookerID: booker.ID, State: model.StateAll}))
	assert.Equal(t, []int64{future.ID, current.ID, past.ID}, list(repository.BookingQuery{OwnerID: owner.ID, State: model.StateAll}))
	assert.Empty(t, list(repository.BookingQuery{OwnerID: booker.ID, State: model.StateAll}))
	assert.Equal(t, []int64{current.ID}, list(repository.BookingQuery{BookerID: booker.ID, State: model.StateCurrent}))
	assert.Equal(t, []int64{past.ID}, list(repository.BookingQuery{BookerID: booker.ID, State: model.StatePast}))
	assert.Equal(t, []int64{future.ID}, list(repository.BookingQuery{OwnerID: owner.ID, State: model.StateFuture}))
	assert.Equal(t, []int64{future.ID}, list(repository.BookingQuery{OwnerID: owner.ID, State: model.StateRejected}))
	assert.Equal(t, []int64{current.ID}, list(repository.BookingQuery{BookerID: booker.ID, State: model.StateAll, Page: model.Page{From: 1, Size: 1}}))

	last, err := s.Bookings().LastApproved(ctx, it.ID, now)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, past.ID, last.ID)

	next, err := s.Bookings().NextApproved(ctx, it.ID, now)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestBookingUpdateStatusIsConditional(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := seedUser(t, s, "o", "o@example.com")
	booker := seedUser(t, s, "b", "b@example.com")
	it := seedItem(t, s, owner.ID, "Tent", "two person", true)
	b := model.Booking{Start: time.Now(), End: time.Now().Add(time.Hour), ItemID: it.ID, BookerID: booker.ID, Status: model.StatusWaiting}
	require.NoError(t, s.Bookings().Create(ctx, &b))

	require.NoError(t, s.Bookings().UpdateStatus(ctx, b.ID, model.StatusWaiting, model.StatusApproved))
	err := s.Bookings().UpdateStatus(ctx, b.ID, model.StatusWaiting, model.StatusRejected)
	assert.ErrorIs(t, err, repository.ErrStaleState)
	assert.ErrorIs(t, s.Bookings().UpdateStatus(ctx, 404, model.StatusWaiting, model.StatusRejected), repository.ErrNotFound)

	got, err := s.Bookings().Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, got.Status)
}
