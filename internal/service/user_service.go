package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/Jayarmananan1994/notifyme/internal/model"
	"github.com/Jayarmananan1994/notifyme/internal/repository"
	"github.com/Jayarmananan1994/notifyme/pkg/util"
)

// UserStore is implemented by *repository.UserRepository
type UserStore interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
}

// ProfileInput edits a user profile. Nil fields are left unchanged; an empty
// WhatsAppNumber clears the number.
type ProfileInput struct {
	Email          *string `json:"email"`
	WhatsAppNumber *string `json:"whatsappNumber"`
}

type UserService struct {
	store  UserStore
	logger *zap.Logger
}

func NewUserService(store UserStore, logger *zap.Logger) *UserService {
	return &UserService{store: store, logger: logger}
}

func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return u, err
}

// Create registers the profile for an id issued by the auth service. Email is required.
func (s *UserService) Create(ctx context.Context, id string, in ProfileInput) (*model.User, error) {
	if in.Email == nil {
		return nil, ErrInvalidEmail
	}
	u := &model.User{ID: id}
	if err := applyProfile(u, in); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyTaken) {
			if _, findErr := s.store.FindByID(ctx, id); findErr == nil {
				return nil, ErrUserExists
			}
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("User created", zap.String("user_id", id))
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in ProfileInput) (*model.User, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProfile(u, in); err != nil {
		return nil, err
	}

	if err := s.store.Update(ctx, u); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrEmailAlreadyTaken):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.logger.Info("User updated", zap.String("user_id", id))
	return u, nil
}

func applyProfile(u *model.User, in ProfileInput) error {
	if in.Email != nil {
		email := strings.TrimSpace(*in.Email)
		if !util.IsValidEmail(email) {
			return ErrInvalidEmail
		}
		u.Email = email
	}

	if in.WhatsAppNumber != nil {
		number := strings.TrimSpace(*in.WhatsAppNumber)
		if number == "" {
			u.WhatsAppNumber = nil
		} else {
			if !util.IsValidPhoneNumber(number) {
				return ErrInvalidPhone
			}
			u.WhatsAppNumber = &number
		}
	}
	return nil
}
