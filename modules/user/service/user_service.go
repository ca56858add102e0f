package service

import (
	"context"

	"gatherly-api/core/constants"
	"gatherly-api/core/errors"
	"gatherly-api/modules/user/dto"
	"gatherly-api/modules/user/repository"

	"github.com/google/uuid"
)

const searchLimit = 20

// UserService handles user business logic
type UserService struct {
	repo    repository.UserRepositoryInterface
	avatars AvatarResolver
}

// UserServiceInterface defines the service contract
type UserServiceInterface interface {
	GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError)
	SearchUsers(ctx context.Context, search string) ([]dto.UserResponse, *errors.AppError)
}

// NewUserService creates a new user service
func NewUserService(repo repository.UserRepositoryInterface, avatars AvatarResolver) UserServiceInterface {
	return &UserService{
		repo:    repo,
		avatars: avatars,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to get user", err)
	}
	if user == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "User not found", nil)
	}

	avatarURL := ""
	if user.AvatarKey != nil {
		avatarURL = s.avatars.ResolveURL(ctx, *user.AvatarKey)
	}

	return dto.ToUserResponse(user, avatarURL), nil
}

// GetProfile returns the acting user's own record.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, *errors.AppError) {
	return s.GetUser(ctx, userID)
}

// SearchUsers matches name or email; an empty search lists users up to the
// limit so the participant picker has something to show.
func (s *UserService) SearchUsers(ctx context.Context, search string) ([]dto.UserResponse, *errors.AppError) {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultRequestTimeout)
	defer cancel()

	users, err := s.repo.Search(ctx, search, searchLimit)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrGetFailed, "Failed to search users", err)
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		avatarURL := ""
		if users[i].AvatarKey != nil {
			avatarURL = s.avatars.ResolveURL(ctx, *users[i].AvatarKey)
		}
		responses = append(responses, *dto.ToUserResponse(&users[i], avatarURL))
	}

	return responses, nil
}
