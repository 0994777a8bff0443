package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"vantay/cmd/internal/domain/database"
	"vantay/cmd/internal/domain/database/repository"
	"vantay/cmd/internal/service"
	"vantay/cmd/internal/utils/validators"
)

type services struct {
	users        *service.DefaultUserService
	clients      *service.DefaultClientService
	appointments *service.DefaultAppointmentService
}

func newServices(t *testing.T) services {
	t.Helper()

	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	validate := validators.New()
	clientRepo := repository.NewClientRepository(db)
	return services{
		users:   service.NewUserService(repository.NewUserRepository(db), validate),
		clients: service.NewClientService(clientRepo, validate),
		appointments: service.NewAppointmentService(
			repository.NewAppointmentRepository(db), clientRepo, repository.NewTransactor(db), validate,
		),
	}
}

func (s services) mustUser(t *testing.T, email string) *service.UserResponse {
	t.Helper()
	user, apierr := s.users.CreateUser(context.Background(), &service.UserRequest{Email: email})
	require.Nil(t, apierr)
	return user
}

func (s services) mustClient(t *testing.T, userID int64, name string) *service.ClientResponse {
	t.Helper()
	client, apierr := s.clients.CreateClient(context.Background(), &service.ClientRequest{UserID: userID, Name: name})
	require.Nil(t, apierr)
	return client
}

func ptr[T any](v T) *T {
	return &v
}
