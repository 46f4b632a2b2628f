package service

import (
	"context"
	"errors"
	"fmt"

	"ratehub/internal/http-api/apperrors"
	"ratehub/internal/http-api/dto"
	"ratehub/internal/http-api/models"
	"ratehub/internal/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedUserResponse, error)
	Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error)
	GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error)
	// Update applies a partial update. Role changes only take effect when
	// allowRoleChange is set; the /users/me path calls with false.
	Update(ctx context.Context, username string, in dto.UpdateUserRequest, allowRoleChange bool) (*dto.UserResponse, error)
	Delete(ctx context.Context, username string) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func validRole(role string) bool {
	switch role {
	case models.RoleUser, models.RoleModerator, models.RoleAdmin:
		return true
	}
	return false
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) (*dto.PaginatedUserResponse, error) {
	users, total, err := s.userRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, *dto.FromModelToUserResponse(&users[i]))
	}

	return dto.NewPaginatedUserResponse(responses, total, page, pageSize), nil
}

// Create is the admin-side path; accounts made here are active immediately,
// no confirmation handshake involved.
func (s *userService) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := ValidateUsername(in.Username); err != nil {
		return nil, err
	}
	if err := ValidateEmail(in.Email); err != nil {
		return nil, err
	}

	role := models.RoleUser
	if in.Role != nil {
		if !validRole(*in.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *in.Role)
		}
		role = *in.Role
	}

	user := &models.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
		IsActive:  true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: user with this username or email already exists", apperrors.ErrConflict)
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
	}
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserResponse(user), nil
}

func (s *userService) Update(ctx context.Context, username string, in dto.UpdateUserRequest, allowRoleChange bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
	}
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if err := ValidateUsername(*in.Username); err != nil {
			return nil, err
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if err := ValidateEmail(*in.Email); err != nil {
			return nil, err
		}
		user.Email = *in.Email
	}
	if in.FirstName != nil {
		user.FirstName = in.FirstName
	}
	if in.LastName != nil {
		user.LastName = in.LastName
	}
	if in.Bio != nil {
		user.Bio = in.Bio
	}
	if in.Role != nil && allowRoleChange {
		if !validRole(*in.Role) {
			return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, *in.Role)
		}
		user.Role = *in.Role
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, fmt.Errorf("%w: user with this username or email already exists", apperrors.ErrConflict)
		}
		return nil, err
	}

	return dto.FromModelToUserResponse(user), nil
}

// Delete removes the account. Reviews and comments the user wrote survive
// with a nulled author.
func (s *userService) Delete(ctx context.Context, username string) error {
	affected, err := s.userRepo.Delete(ctx, username)
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: user %q", apperrors.ErrNotFound, username)
	}
	return nil
}
