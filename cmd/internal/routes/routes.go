package routes

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"vantay/cmd/internal/metrics"
	"vantay/cmd/internal/utils"
	"vantay/cmd/internal/utils/apierror"
)

var okResponse = echo.Map{"ok": true}

func item(v any) echo.Map {
	return echo.Map{"ok": true, "item": v}
}

func items[T any](v []T) echo.Map {
	return echo.Map{"items": v}
}

// errorJSON writes apierr and counts it.
func errorJSON(c echo.Context, apierr apierror.ErrorResponse) error {
	metrics.RecordAPIError(apierr.Kind())
	return c.JSON(apierr.Code(), apierr)
}

func pathID(c echo.Context) (int64, apierror.ErrorResponse) {
	id, err := utils.ParseID(c.Param("id"))
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("id", "positive integer")
	}
	return id, nil
}

// queryUserID reads the mandatory user_id query parameter and checks the
// caller may act for that user.
func queryUserID(c echo.Context) (int64, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.QueryParam("user_id"))
	if raw == "" {
		return 0, apierror.NewMissingFieldError("user_id")
	}
	userID, err := utils.ParseID(raw)
	if err != nil {
		return 0, apierror.NewInvalidParamTypeError("user_id", "positive integer")
	}
	if apierr := authorize(c, userID); apierr != nil {
		return 0, apierr
	}
	return userID, nil
}

// authorize rejects callers whose token is bound to a different user. A zero
// userID is left for payload validation to report.
func authorize(c echo.Context, userID int64) apierror.ErrorResponse {
	if userID == 0 {
		return nil
	}
	data, err := utils.ParseTokenDataCtx(c)
	if err != nil {
		return apierror.InvalidAuthTokenError
	}
	if !data.Allows(userID) {
		return apierror.ForbiddenError
	}
	return nil
}

func bindBody(c echo.Context, req any) apierror.ErrorResponse {
	if err := c.Bind(req); err != nil {
		return apierror.MalformedBodyError
	}
	return nil
}

func created(c echo.Context, v any) error {
	return c.JSON(http.StatusCreated, item(v))
}
