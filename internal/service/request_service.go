package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// RequestService manages the item-request board.
type RequestService struct {
	store repository.Store
	log   *zap.Logger
	Now   Clock
}

func NewRequestService(store repository.Store, log *zap.Logger) *RequestService {
	return &RequestService{store: store, log: log, Now: utcNow}
}

func (s *RequestService) Create(ctx context.Context, requesterID int64, description string) (model.ItemRequestView, error) {
	r := model.ItemRequest{Description: description, RequesterID: requesterID, Created: s.Now()}
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), requesterID); err != nil {
			return err
		}
		return fromRepo(st.Requests().Create(ctx, &r), "user", requesterID)
	})
	if err != nil {
		return model.ItemRequestView{}, err
	}
	s.log.Info("item request created", zap.Int64("request_id", r.ID), zap.Int64("requester_id", requesterID))
	return model.ItemRequestView{ItemRequest: r, Items: []model.Item{}}, nil
}

// ListOwn returns the requester's requests, newest first.
func (s *RequestService) ListOwn(ctx context.Context, requesterID int64) ([]model.ItemRequestView, error) {
	var out []model.ItemRequestView
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), requesterID); err != nil {
			return err
		}
		reqs, err := st.Requests().ListByRequester(ctx, requesterID)
		if err != nil {
			return err
		}
		out, err = annotate(ctx, st, reqs)
		return err
	})
	return out, err
}

// ListOthers returns one page of requests made by other users, newest
// first.
func (s *RequestService) ListOthers(ctx context.Context, requesterID int64, page model.Page) ([]model.ItemRequestView, error) {
	var out []model.ItemRequestView
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), requesterID); err != nil {
			return err
		}
		reqs, err := st.Requests().ListOthers(ctx, requesterID, page)
		if err != nil {
			return err
		}
		out, err = annotate(ctx, st, reqs)
		return err
	})
	return out, err
}

func (s *RequestService) Get(ctx context.Context, requesterID, requestID int64) (model.ItemRequestView, error) {
	var view model.ItemRequestView
	err := s.store.InTx(ctx, func(st repository.Store) error {
		if err := requireUser(ctx, st.Users(), requesterID); err != nil {
			return err
		}
		r, err := st.Requests().Get(ctx, requestID)
		if err != nil {
			return fromRepo(err, "request", requestID)
		}
		views, err := annotate(ctx, st, []model.ItemRequest{r})
		if err != nil {
			return err
		}
		view = views[0]
		return nil
	})
	return view, err
}

// annotate attaches the items listed in response to each request.
func annotate(ctx context.Context, st repository.Store, reqs []model.ItemRequest) ([]model.ItemRequestView, error) {
	ids := make([]int64, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	items, err := st.Items().ListByRequests(ctx, ids)
	if err != nil {
		return nil, err
	}
	byRequest := make(map[int64][]model.Item, len(reqs))
	for _, it := range items {
		if it.RequestID != nil {
			byRequest[*it.RequestID] = append(byRequest[*it.RequestID], it)
		}
	}
	out := make([]model.ItemRequestView, 0, len(reqs))
	for _, r := range reqs {
		its := byRequest[r.ID]
		if its == nil {
			its = []model.Item{}
		}
		out = append(out, model.ItemRequestView{ItemRequest: r, Items: its})
	}
	return out, nil
}
