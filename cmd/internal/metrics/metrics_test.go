package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAPIError(t *testing.T) {
	before := testutil.ToFloat64(apiErrors.WithLabelValues("not_found"))

	RecordAPIError("not_found")
	RecordAPIError("not_found")

	assert.Equal(t, before+2, testutil.ToFloat64(apiErrors.WithLabelValues("not_found")))
}

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/api/clients/:id", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("boom")
	})

	ok := httpRequests.WithLabelValues(http.MethodGet, "/api/clients/:id", "200")
	failed := httpRequests.WithLabelValues(http.MethodGet, "/boom", "500")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	for _, path := range []string{"/api/clients/1", "/api/clients/2", "/boom"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed), "status is read after the error handler ran")
	assert.Equal(t, 0.0, testutil.ToFloat64(httpInFlight))
}
