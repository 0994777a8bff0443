package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"golang.org/x/time/rate"

	"vantay/cmd/internal/config"
	"vantay/cmd/internal/metrics"
	"vantay/cmd/internal/routes"
	"vantay/cmd/internal/utils/apierror"
)

type Handlers struct {
	Health       *routes.DefaultHealthRoute
	Users        *routes.DefaultUserRoute
	Clients      *routes.DefaultClientRoute
	Appointments *routes.DefaultAppointmentRoute
}

// New builds the echo instance with middleware and the route table.
func New(cfg *config.Config, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(cfg.LogLvl())
	e.HTTPErrorHandler = errorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(requestLogger())
	e.Use(metrics.Middleware())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: []string{
			http.MethodGet, http.MethodHead, http.MethodPut, http.MethodPatch,
			http.MethodPost, http.MethodDelete, http.MethodOptions,
		},
	}))
	if cfg.HTTP.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{Timeout: cfg.HTTP.RequestTimeout}))
	}

	auth := routes.BearerAuth(cfg.Auth.Mode, cfg.APIKey)
	signupLimit := signupLimiter(cfg.RateLimit)

	e.GET("/health", h.Health.GetHealth)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	if cfg.Auth.DBCheck {
		e.GET("/db-check", h.Health.GetDBCheck, auth)
	} else {
		e.GET("/db-check", h.Health.GetDBCheck)
	}

	// Users
	e.GET("/api/users", h.Users.GetUsers)
	e.POST("/api/users", h.Users.CreateUser, signupLimit)
	e.PUT("/api/users/:id", h.Users.ReplaceUser, auth)
	e.DELETE("/api/users/:id", h.Users.DeleteUser, auth)

	// Clients
	e.GET("/api/clients", h.Clients.GetClients, auth)
	e.POST("/api/clients", h.Clients.CreateClient, auth)
	e.GET("/api/clients/:id", h.Clients.GetClient, auth)
	e.PUT("/api/clients/:id", h.Clients.ReplaceClient, auth)
	e.DELETE("/api/clients/:id", h.Clients.DeleteClient, auth)

	// Appointments
	e.GET("/api/appointments", h.Appointments.GetAppointments, auth)
	e.POST("/api/appointments", h.Appointments.CreateAppointment, auth)
	e.GET("/api/appointments/:id", h.Appointments.GetAppointment, auth)
	e.PUT("/api/appointments/:id", h.Appointments.ReplaceAppointment, auth)
	e.DELETE("/api/appointments/:id", h.Appointments.DeleteAppointment, auth)

	return e
}

func signupLimiter(cfg config.RateLimit) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RPS),
		Burst:     cfg.Burst,
		ExpiresIn: cfg.ExpiresIn,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(apierror.InternalServerError.Code(), apierror.InternalServerError)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.RecordAPIError(apierror.TooManyRequestsError.Kind())
			return c.JSON(apierror.TooManyRequestsError.Code(), apierror.TooManyRequestsError)
		},
	})
}

// requestLogger logs every request once the response is written. Handler
// errors have already been rendered by the metrics middleware, so only the
// final status is reported.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infoj(log.JSON{
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency":    v.Latency.String(),
				"request_id": v.RequestID,
			})
			return nil
		},
	})
}

// errorHandler renders errors that reach echo (unknown routes, wrong
// methods, panics) in the same shape as service errors.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := apierror.InternalServerError.Message
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	} else {
		log.Errorf("unhandled error: %v", err)
	}

	apierr := apierror.NewSimple(code, msg)
	metrics.RecordAPIError(apierr.Kind())
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, apierr)
}
