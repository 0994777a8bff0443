package routes

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"vantay/cmd/internal/service"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

type AppointmentService interface {
	GetAppointments(ctx context.Context, q service.AppointmentQuery) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	GetAppointment(ctx context.Context, id, userID int64) (*service.AppointmentResponse, apierror.ErrorResponse)
	CreateAppointment(ctx context.Context, req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	ReplaceAppointment(ctx context.Context, id int64, req *service.AppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	DeleteAppointment(ctx context.Context, id, userID int64) apierror.ErrorResponse
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	userID, apierr := queryUserID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	q := service.AppointmentQuery{
		UserID: userID,
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
		Limit:  utils.ParseLimit(c.QueryParam("limit")),
	}
	appts, apierr := a.AppointmentService.GetAppointments(c.Request().Context(), q)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, items(appts))
}

func (a *DefaultAppointmentRoute) GetAppointment(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	userID, apierr := queryUserID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	appt, apierr := a.AppointmentService.GetAppointment(c.Request().Context(), id, userID)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, item(appt))
}

func (a *DefaultAppointmentRoute) CreateAppointment(c echo.Context) error {
	var req service.AppointmentRequest
	if apierr := bindBody(c, &req); apierr != nil {
		return errorJSON(c, apierr)
	}
	if apierr := authorize(c, req.UserID); apierr != nil {
		return errorJSON(c, apierr)
	}

	appt, apierr := a.AppointmentService.CreateAppointment(c.Request().Context(), &req)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return created(c, appt)
}

func (a *DefaultAppointmentRoute) ReplaceAppointment(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	var req service.AppointmentRequest
	if apierr := bindBody(c, &req); apierr != nil {
		return errorJSON(c, apierr)
	}
	if apierr := authorize(c, req.UserID); apierr != nil {
		return errorJSON(c, apierr)
	}

	appt, apierr := a.AppointmentService.ReplaceAppointment(c.Request().Context(), id, &req)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, item(appt))
}

func (a *DefaultAppointmentRoute) DeleteAppointment(c echo.Context) error {
	id, apierr := pathID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}
	userID, apierr := queryUserID(c)
	if apierr != nil {
		return errorJSON(c, apierr)
	}

	if apierr := a.AppointmentService.DeleteAppointment(c.Request().Context(), id, userID); apierr != nil {
		return errorJSON(c, apierr)
	}
	return c.JSON(http.StatusOK, okResponse)
}
