package memory

import (
	"context"
	"sort"
	"time"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type bookingRepo struct{ s *Store }

func (r bookingRepo) Create(_ context.Context, b *model.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[b.ItemID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users[b.BookerID]; !ok {
		return repository.ErrNotFound
	}
	b.ID = r.s.nextID("bookings")
	stored := *b
	stored.Item, stored.Booker = nil, nil
	r.s.bookings[b.ID] = stored
	return nil
}

func (r bookingRepo) Get(_ context.Context, id int64) (model.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return model.Booking{}, repository.ErrNotFound
	}
	return r.withRelations(b), nil
}

func (r bookingRepo) UpdateStatus(_ context.Context, id int64, from, to model.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if b.Status != from {
		return repository.ErrStaleState
	}
	b.Status = to
	r.s.bookings[id] = b
	return nil
}

func (r bookingRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.bookings, id)
	return nil
}

func (r bookingRepo) List(_ context.Context, q repository.BookingQuery) ([]model.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Booking, 0)
	for _, b := range r.s.bookings {
		if q.BookerID != 0 && b.BookerID != q.BookerID {
			continue
		}
		if q.OwnerID != 0 && r.s.items[b.ItemID].OwnerID != q.OwnerID {
			continue
		}
		if !q.State.Matches(b, q.Now) {
			continue
		}
		out = append(out, r.withRelations(b))
	}
	sortByStartDesc(out)
	lo, hi := q.Page.Window(len(out))
	return out[lo:hi], nil
}

func (r bookingRepo) ListByItemAndBooker(_ context.Context, itemID, bookerID int64) ([]model.Booking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Booking, 0)
	for _, b := range r.s.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID {
			out = append(out, b)
		}
	}
	sortByStartDesc(out)
	return out, nil
}

func (r bookingRepo) LastApproved(_ context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.pick(itemID, func(b model.Booking) bool { return b.End.Before(now) },
		func(a, b model.Booking) bool { return a.End.After(b.End) }), nil
}

func (r bookingRepo) NextApproved(_ context.Context, itemID int64, now time.Time) (*model.Booking, error) {
	return r.pick(itemID, func(b model.Booking) bool { return b.End.After(now) },
		func(a, b model.Booking) bool { return a.End.Before(b.End) }), nil
}

// pick returns the APPROVED booking of item accepted by keep that sorts
// first under better, or nil when none qualifies.
func (r bookingRepo) pick(itemID int64, keep func(model.Booking) bool, better func(a, b model.Booking) bool) *model.Booking {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var best *model.Booking
	for _, b := range r.s.bookings {
		if b.ItemID != itemID || b.Status != model.StatusApproved || !keep(b) {
			continue
		}
		if best == nil || better(b, *best) || (!better(*best, b) && b.ID < best.ID) {
			cp := b
			best = &cp
		}
	}
	return best
}

// withRelations must be called with the lock held.
func (r bookingRepo) withRelations(b model.Booking) model.Booking {
	if it, ok := r.s.items[b.ItemID]; ok {
		b.Item = &it
	}
	if u, ok := r.s.users[b.BookerID]; ok {
		b.Booker = &u
	}
	return b
}

func sortByStartDesc(bs []model.Booking) {
	sort.Slice(bs, func(i, j int) bool {
		if !bs[i].Start.Equal(bs[j].Start) {
			return bs[i].Start.After(bs[j].Start)
		}
		return bs[i].ID > bs[j].ID
	})
}
