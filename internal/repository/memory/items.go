package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type itemRepo struct{ s *Store }

func (r itemRepo) Create(_ context.Context, it *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	it.ID = r.s.nextID("items")
	r.s.items[it.ID] = *it
	return nil
}

func (r itemRepo) Get(_ context.Context, id int64) (model.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	it, ok := r.s.items[id]
	if !ok {
		return model.Item{}, repository.ErrNotFound
	}
	return it, nil
}

func (r itemRepo) Update(_ context.Context, it model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[it.ID]; !ok {
		return repository.ErrNotFound
	}
	r.s.items[it.ID] = it
	return nil
}

// Delete removes the item together with its bookings and comments.
func (r itemRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[id]; !ok {
		return repository.ErrNotFound
	}
	for bid, b := range r.s.bookings {
		if b.ItemID == id {
			delete(r.s.bookings, bid)
		}
	}
	for cid, c := range r.s.comments {
		if c.ItemID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.items, id)
	return nil
}

func (r itemRepo) ListByOwner(_ context.Context, ownerID int64) ([]model.Item, error) {
	return r.filter(func(it model.Item) bool { return it.OwnerID == ownerID }), nil
}

func (r itemRepo) Search(_ context.Context, text string, page model.Page) ([]model.Item, error) {
	needle := strings.ToLower(text)
	out := r.filter(func(it model.Item) bool {
		if !it.Available {
			return false
		}
		return strings.Contains(strings.ToLower(it.Name), needle) ||
			strings.Contains(strings.ToLower(it.Description), needle)
	})
	lo, hi := page.Window(len(out))
	return out[lo:hi], nil
}

func (r itemRepo) ListByRequests(_ context.Context, requestIDs []int64) ([]model.Item, error) {
	want := make(map[int64]struct{}, len(requestIDs))
	for _, id := range requestIDs {
		want[id] = struct{}{}
	}
	return r.filter(func(it model.Item) bool {
		if it.RequestID == nil {
			return false
		}
		_, ok := want[*it.RequestID]
		return ok
	}), nil
}

// filter returns the matching items ordered by id.
func (r itemRepo) filter(keep func(model.Item) bool) []model.Item {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Item, 0)
	for _, it := range r.s.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
