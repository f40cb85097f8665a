package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type userRepo struct{ s *Store }

// emailTaken must be called with the lock held.
func (r userRepo) emailTaken(email string, exceptID int64) bool {
	for id, u := range r.s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

func (r userRepo) Create(_ context.Context, u *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, 0) {
		return repository.ErrEmailExists
	}
	u.ID = r.s.nextID("users")
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) Get(_ context.Context, id int64) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (r userRepo) List(_ context.Context) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r userRepo) Update(_ context.Context, u model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return repository.ErrNotFound
	}
	if r.emailTaken(u.Email, u.ID) {
		return repository.ErrEmailExists
	}
	r.s.users[u.ID] = u
	return nil
}

// Delete mirrors the foreign keys of the MySQL schema: users owning
// items or bookings cannot be removed, their requests and comments go
// with them.
func (r userRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return repository.ErrNotFound
	}
	for _, it := range r.s.items {
		if it.OwnerID == id {
			return repository.ErrReferenced
		}
	}
	for _, b := range r.s.bookings {
		if b.BookerID == id {
			return repository.ErrReferenced
		}
	}
	for rid, rq := range r.s.requests {
		if rq.RequesterID == id {
			delete(r.s.requests, rid)
			for iid, it := range r.s.items {
				if it.RequestID != nil && *it.RequestID == rid {
					it.RequestID = nil
					r.s.items[iid] = it
				}
			}
		}
	}
	for cid, c := range r.s.comments {
		if c.AuthorID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.users, id)
	return nil
}

func (r userRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.users[id]
	return ok, nil
}
