package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/shareit/internal/model"
	"github.com/iliyamo/shareit/internal/repository"
)

// UserService manages the user registry.
type UserService struct {
	store repository.Store
	log   *zap.Logger
}

func NewUserService(store repository.Store, log *zap.Logger) *UserService {
	return &UserService{store: store, log: log}
}

// Create registers a user.  Emails are unique regardless of case.
func (s *UserService) Create(ctx context.Context, name, email string) (model.User, error) {
	u := model.User{Name: name, Email: strings.TrimSpace(email)}
	err := s.store.InTx(ctx, func(st repository.Store) error {
		return fromRepo(st.Users().Create(ctx, &u), "user", 0)
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user created", zap.Int64("user_id", u.ID))
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	var u model.User
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		u, err = st.Users().Get(ctx, id)
		return fromRepo(err, "user", id)
	})
	return u, err
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		out, err = st.Users().List(ctx)
		return err
	})
	return out, err
}

// Update applies a partial update.  Setting the user's own email again
// is allowed; taking another user's email is a conflict.
func (s *UserService) Update(ctx context.Context, id int64, patch model.UserPatch) (model.User, error) {
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		patch.Email = &email
	}
	var u model.User
	err := s.store.InTx(ctx, func(st repository.Store) error {
		var err error
		if u, err = st.Users().Get(ctx, id); err != nil {
			return fromRepo(err, "user", id)
		}
		patch.Apply(&u)
		return fromRepo(st.Users().Update(ctx, u), "user", id)
	})
	if err != nil {
		return model.User{}, err
	}
	s.log.Info("user updated", zap.Int64("user_id", id))
	return u, nil
}

// Delete removes a user.  It fails with ErrConflict while the user
// still owns items or bookings.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.store.InTx(ctx, func(st repository.Store) error {
		return fromRepo(st.Users().Delete(ctx, id), "user", id)
	})
	if err != nil {
		return err
	}
	s.log.Info("user deleted", zap.Int64("user_id", id))
	return nil
}
