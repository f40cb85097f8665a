package memory

import (
	"context"
	"sort"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

type commentRepo struct{ s *Store }

func (r commentRepo) Create(_ context.Context, c *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.items[c.ItemID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := r.s.users[c.AuthorID]; !ok {
		return repository.ErrNotFound
	}
	c.ID = r.s.nextID("comments")
	stored := *c
	stored.AuthorName = ""
	r.s.comments[c.ID] = stored
	return nil
}

func (r commentRepo) ListByItem(_ context.Context, itemID int64) ([]model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]model.Comment, 0)
	for _, c := range r.s.comments {
		if c.ItemID != itemID {
			continue
		}
		c.AuthorName = r.s.users[c.AuthorID].Name
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}
