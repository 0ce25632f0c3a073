package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	errs "reuse/internal/errors"
	"reuse/internal/model"
	"reuse/internal/repository"
)

// ProfileUpdate carries the fields present in a PATCH /me request.
// Nil means absent; explicit nulls are coalesced away by the handler,
// so a null never clears a profile field.
type ProfileUpdate struct {
	Name *string
	City *string
	Age  *int
}

// UserService exposes profile operations.
type UserService interface {
	GetProfile(ctx context.Context, id uint) (*model.User, error)
	UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService builds a UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) GetProfile(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the supplied fields only; everything else keeps
// its prior value.
func (s *userService) UpdateProfile(ctx context.Context, id uint, update ProfileUpdate) (*model.User, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.City != nil {
		fields["city"] = *update.City
	}
	if update.Age != nil {
		fields["age"] = *update.Age
	}

	user, err := s.users.UpdateFields(ctx, id, fields)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
