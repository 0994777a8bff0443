package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"vantay/cmd/internal/service"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

type ClientService interface {
	GetClients(ctx context.Context, userID int64, limit int) ([]*service.ClientResponse, apierror.ErrorResponse)
	GetClient(ctx context.Context, id, userID int64) (*service.ClientResponse, apierror.ErrorResponse)
	CreateClient(ctx context.Context, req *service.ClientRequest) (*service.ClientResponse, apierror.ErrorResponse)
	ReplaceClient(ctx context.Context, id int64, req *service.ClientRequest) (*service.ClientResponse, apierror.ErrorResponse)
	DeleteClient(ctx context.Context, id, userID int64) apierror.ErrorResponse
}

type DefaultClientRoute struct {
	ClientService ClientService
}

func NewClientDefault(clientService ClientService) *DefaultClientRoute {
	return &DefaultClientRoute{ClientService: clientService}
}

func (r *DefaultClientRoute) GetClients(c echo.Context) error {
	userID, apierr := queryUserID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	limit := utils.ParseLimit(c.QueryParam("limit"))
	clients, apierr := r.ClientService.GetClients(c.Request().Context(), userID, limit)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, items(clients))
}

func (r *DefaultClientRoute) GetClient(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	userID, apierr := queryUserID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	client, apierr := r.ClientService.GetClient(c.Request().Context(), id, userID)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, item(client))
}

func (r *DefaultClientRoute) CreateClient(c echo.Context) error {
	var req service.ClientRequest
	if apierr := bindBody(c, &req); apierr != nil {
		return errorJSON(c, apierr)
	}
	if apierr := authorize(c, req.UserID); apierr != nil {
		return errorJSON(c, apierr)
	}

	client, apierr := r.ClientService.CreateClient(c.Request().Context(), &req)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return created(c, client)
}

func (r *DefaultClientRoute) ReplaceClient(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	var req service.ClientRequest
	if apierr := bindBody(c, &req); apierr != nil {
		return errorJSON(c, apierr)
	}
	if apierr := authorize(c, req.UserID); apierr != nil {
		return errorJSON(c, apierr)
	}

	client, apierr := r.ClientService.ReplaceClient(c.Request().Context(), id, &req)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, item(client))
}

func (r *DefaultClientRoute) DeleteClient(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	userID, apierr := queryUserID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	if apierr := r.ClientService.DeleteClient(c.Request().Context(), id, userID); apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, okResponse)
}
