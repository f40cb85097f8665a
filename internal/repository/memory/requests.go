package memory

import (
	"context"
	"sort"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type requestRepo struct{ s *Store }

func (r requestRepo) Create(_ context.Context, rq *model.ItemRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[rq.RequesterID]; !ok {
		return repository.ErrNotFound
	}
	rq.ID = r.s.nextID("requests")
	r.s.requests[rq.ID] = *rq
	return nil
}

func (r requestRepo) Get(_ context.Context, id int64) (model.ItemRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rq, ok := r.s.requests[id]
	if !ok {
		return model.ItemRequest{}, repository.ErrNotFound
	}
	return rq, nil
}

func (r requestRepo) ListByRequester(_ context.Context, requesterID int64) ([]model.ItemRequest, error) {
	return r.filter(func(rq model.ItemRequest) bool { return rq.RequesterID == requesterID }), nil
}

func (r requestRepo) ListOthers(_ context.Context, requesterID int64, page model.Page) ([]model.ItemRequest, error) {
	out := r.filter(func(rq model.ItemRequest) bool { return rq.RequesterID != requesterID })
	lo, hi := page.Window(len(out))
	return out[lo:hi], nil
}

// filter returns matching requests newest first.
func (r requestRepo) filter(keep func(model.ItemRequest) bool) []model.ItemRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.ItemRequest, 0)
	for _, rq := range r.s.requests {
		if keep(rq) {
			out = append(out, rq)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID > out[j].ID
	})
	return out
}
