package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// ItemService manages the item catalog and the comment trail.
type ItemService struct {
	store repository.Store
	log   *zap.Logger
	Now   Clock
}

func NewItemService(store repository.Store, log *zap.Logger) *ItemService {
	return &ItemService{store: store, log: log, Now: utcNow}
}

// Create lists a new item for owner.  A request id, when given, must
// name an existing item request.
func (s *ItemService) Create(ctx context.Context, ownerID int64, in model.NewItem) (model.Item, error) {
	it := model.Item{
		Name:        in.Name,
		Description: in.Description,
		Available:   in.Available,
		OwnerID:     ownerID,
		RequestID:   in.RequestID,
	}
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), ownerID); err != nil {
			return err
		}
		if in.RequestID != nil {
			if _, err := st.Requests().Get(ctx, *in.RequestID); err != nil {
				return fromRepo(err, "request", *in.RequestID)
			}
		}
		return fromRepo(st.Items().Create(ctx, &it), "item", 0)
	})
	if err != nil {
		return model.Item{}, err
	}
	s.log.Info("item created", zap.Int64("item_id", it.ID), zap.Int64("owner_id", ownerID))
	return it, nil
}

// Update applies a partial update on behalf of the item's owner.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID int64, patch model.ItemPatch) (model.Item, error) {
	var it model.Item
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		if it, err = st.Items().Get(ctx, itemID); err != nil {
			return fromRepo(err, "item", itemID)
		}
		if it.OwnerID != ownerID {
			return fmt.Errorf("%w: user %d does not own item %d", ErrForbidden, ownerID, itemID)
		}
		patch.Apply(&it)
		return fromRepo(st.Items().Update(ctx, it), "item", itemID)
	})
	if err != nil {
		return model.Item{}, err
	}
	s.log.Info("item updated", zap.Int64("item_id", itemID))
	return it, nil
}

// Get returns the item with its comments.  The owner additionally sees
// the last and next approved bookings.
func (s *ItemService) Get(ctx context.Context, viewerID, itemID int64) (model.ItemView, error) {
	var view model.ItemView
	err := s.store.InTx(ctx, func(st repository.Store) error {
		it, err := st.Items().Get(ctx, itemID)
		if err != nil {
			return fromRepo(err, "item", itemID)
		}
		view, err = s.view(ctx, st, it, viewerID)
		return err
	})
	return view, err
}

// ListByOwner returns every item of owner, ordered by id, with the
// owner's view of each.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]model.ItemView, error) {
	var out []model.ItemView
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), ownerID); err != nil {
			return err
		}
		items, err := st.Items().ListByOwner(ctx, ownerID)
		if err != nil {
			return err
		}
		out = make([]model.ItemView, 0, len(items))
		for _, it := range items {
			v, err := s.view(ctx, st, it, ownerID)
			if err != nil {
				return err
			}
			out = append(out, v)
		}
		return nil
	})
	return out, err
}

func (s *ItemService) view(ctx context.Context, st repository.Store, it model.Item, viewerID int64) (model.ItemView, error) {
	comments, err := st.Comments().ListByItem(ctx, it.ID)
	if err != nil {
		return model.ItemView{}, err
	}
	v := model.ItemView{Item: it, Comments: comments}
	if it.OwnerID != viewerID {
		return v, nil
	}
	now := s.Now()
	last, err := st.Bookings().LastApproved(ctx, it.ID, now)
	if err != nil {
		return model.ItemView{}, err
	}
	next, err := st.Bookings().NextApproved(ctx, it.ID, now)
	if err != nil {
		return model.ItemView{}, err
	}
	v.LastBooking, v.NextBooking = bookingRef(last), bookingRef(next)
	return v, nil
}

func bookingRef(b *model.Booking) *model.BookingRef {
	if b == nil {
		return nil
	}
	return &model.BookingRef{ID: b.ID, BookerID: b.BookerID}
}

func (s *ItemService) Delete(ctx context.Context, itemID int64) error {
	err := s.store.InTx(ctx, func(st repository.Store) error {
		return fromRepo(st.Items().Delete(ctx, itemID), "item", itemID)
	})
	if err != nil {
		return err
	}
	s.log.Info("item deleted", zap.Int64("item_id", itemID))
	return nil
}

// Search matches text against name and description of available
// items.  A blank text yields an empty result.
func (s *ItemService) Search(ctx context.Context, text string, page model.Page) ([]model.Item, error) {
	if strings.TrimSpace(text) == "" {
		return []model.Item{}, nil
	}
	var out []model.Item
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		out, err = st.Items().Search(ctx, text, page)
		return err
	})
	return out, err
}

// AddComment stores a comment by author on item.  The author must hold
// a booking of the item that was approved and has already started.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (model.Comment, error) {
	var c model.Comment
	err := s.store.InTx(ctx, func(st repository.Store) error {
		author, err := st.Users().Get(ctx, authorID)
		if err != nil {
			return fromRepo(err, "user", authorID)
		}
		if _, err := st.Items().Get(ctx, itemID); err != nil {
			return fromRepo(err, "item", itemID)
		}
		bookings, err := st.Bookings().ListByItemAndBooker(ctx, itemID, authorID)
		if err != nil {
			return err
		}
		now := s.Now()
		if !anyCompleted(bookings, now) {
			return fmt.Errorf("%w: user %d has no completed booking of item %d", ErrInvalidState, authorID, itemID)
		}
		c = model.Comment{Text: text, ItemID: itemID, AuthorID: authorID, Created: now}
		if err := st.Comments().Create(ctx, &c); err != nil {
			return fromRepo(err, "item", itemID)
		}
		c.AuthorName = author.Name
		return nil
	})
	if err != nil {
		return model.Comment{}, err
	}
	s.log.Info("comment added", zap.Int64("item_id", itemID), zap.Int64("author_id", authorID))
	return c, nil
}

func anyCompleted(bookings []model.Booking, now time.Time) bool {
	for _, b := range bookings {
		if b.Completed(now) {
			return true
		}
	}
	return false
}
