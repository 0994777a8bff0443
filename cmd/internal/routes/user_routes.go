package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"vantay/cmd/internal/service"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

type UserService interface {
	GetUsers(ctx context.Context, limit int) ([]*service.UserResponse, apierror.ErrorResponse)
	CreateUser(ctx context.Context, req *service.UserRequest) (*service.UserResponse, apierror.ErrorResponse)
	ReplaceUser(ctx context.Context, id int64, req *service.UserRequest) (*service.UserResponse, apierror.ErrorResponse)
	DeleteUser(ctx context.Context, id int64) apierror.ErrorResponse
}

type DefaultUserRoute struct {
	UserService UserService
}

func NewUserDefault(userService UserService) *DefaultUserRoute {
	return &DefaultUserRoute{UserService: userService}
}

func (u *DefaultUserRoute) GetUsers(c echo.Context) error {
	limit := utils.ParseLimit(c.QueryParam("limit"))
	users, apierr := u.UserService.GetUsers(c.Request().Context(), limit)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, items(users))
}

func (u *DefaultUserRoute) CreateUser(c echo.Context) error {
	var req service.UserRequest
	if apierr := bindBody(c, &req); apierr != nil {
		return errorJSON(c, apierr)
	}

	user, apierr := u.UserService.CreateUser(c.Request().Context(), &req)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return created(c, user)
}

func (u *DefaultUserRoute) ReplaceUser(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	if apierr := authorize(c, id); apierr != nil {
		return errorJSON(c, apierr)
	}

	var req service.UserRequest
	if apierr := bindBody(c, &req); apierr != nil {
		return errorJSON(c, apierr)
	}

	user, apierr := u.UserService.ReplaceUser(c.Request().Context(), id, &req)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, item(user))
}

func (u *DefaultUserRoute) DeleteUser(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	if apierr := authorize(c, id); apierr != nil {
		return errorJSON(c, apierr)
	}

	if apierr := u.UserService.DeleteUser(c.Request().Context(), id); apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, okResponse)
}
