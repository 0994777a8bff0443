package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"vantay/cmd/internal/service"
	"vantay/cmd/internal/utils/apierror"
)

type HealthService interface {
	Health() *service.HealthResponse
	DBCheck(ctx context.Context) (*service.DBCheckResponse, apierror.ErrorResponse)
}

type DefaultHealthRoute struct {
	HealthService HealthService
}

func NewHealthDefault(healthService HealthService) *DefaultHealthRoute {
	return &DefaultHealthRoute{HealthService: healthService}
}

func (h *DefaultHealthRoute) GetHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, h.HealthService.Health())
}

func (h *DefaultHealthRoute) GetDBCheck(c echo.Context) error {
	resp, apierr := h.HealthService.DBCheck(c.Request().Context())
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, resp)
}
