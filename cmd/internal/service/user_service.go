package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"

	"vantay/cmd/internal/domain/entity"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.User, error)
	ExistsByEmail(ctx context.Context, email string, exceptID int64) (bool, error)
	Create(ctx context.Context, user *entity.User) error
	Replace(ctx context.Context, user *entity.User) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// UserRequest serves both signup and full replace.
type UserRequest struct {
	Email string  `json:"email" validate:"required,email,max=320"`
	Name  *string `json:"name" validate:"omitempty,max=200"`
}

type UserResponse struct {
	ID        int64   `json:"id"`
	Email     string  `json:"email"`
	Name      *string `json:"name"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type DefaultUserService struct {
	UserRepo UserRepository
	Validate *validator.Validate
}

func NewUserService(userRepo UserRepository, validate *validator.Validate) *DefaultUserService {
	return &DefaultUserService{UserRepo: userRepo, Validate: validate}
}

func (u *DefaultUserService) GetUsers(ctx context.Context, limit int) ([]*UserResponse, apierror.ErrorResponse) {
	users, err := u.UserRepo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fromStoreError("fetch users", err)
	}

	resp := make([]*UserResponse, len(users))
	for i, user := range users {
		resp[i] = toUserResponse(user)
	}
	return resp, nil
}

func (u *DefaultUserService) CreateUser(ctx context.Context, req *UserRequest) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if apierr := ValidatePayload(u.Validate, req); apierr != nil {
		return nil, apierr
	}

	found, err := u.UserRepo.ExistsByEmail(ctx, req.Email, 0)
	if err != nil {
		log.Errorf("failed to check if user already exists: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	if found {
		return nil, apierror.UserAlreadyExistsError
	}

	user := &entity.User{Email: req.Email, Name: req.Name}
	if err := u.UserRepo.Create(ctx, user); err != nil {
		return nil, fromStoreError("create user", err)
	}
	return toUserResponse(user), nil
}

func (u *DefaultUserService) ReplaceUser(ctx context.Context, id int64, req *UserRequest) (*UserResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if apierr := ValidatePayload(u.Validate, req); apierr != nil {
		return nil, apierr
	}

	taken, err := u.UserRepo.ExistsByEmail(ctx, req.Email, id)
	if err != nil {
		log.Errorf("failed to check if email is taken: %v", err)
		return nil, apierror.StoreUnavailableError
	}
	if taken {
		return nil, apierror.UserAlreadyExistsError
	}

	found, err := u.UserRepo.Replace(ctx, &entity.User{ID: id, Email: req.Email, Name: req.Name})
	if err != nil {
		return nil, fromStoreError("update user", err)
	}
	if !found {
		return nil, apierror.NotFoundError
	}

	user, err := u.UserRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError("fetch user", err)
	}
	if user == nil {
		return nil, apierror.NotFoundError
	}
	return toUserResponse(user), nil
}

// DeleteUser removes the user together with their clients and appointments.
func (u *DefaultUserService) DeleteUser(ctx context.Context, id int64) apierror.ErrorResponse {
	found, err := u.UserRepo.Delete(ctx, id)
	if err != nil {
		return fromStoreError("delete user", err)
	}
	if !found {
		return apierror.NotFoundError
	}
	return nil
}

func toUserResponse(user *entity.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		CreatedAt: utils.FormatTime(user.CreatedAt),
		UpdatedAt: utils.FormatTime(user.UpdatedAt),
	}
}
