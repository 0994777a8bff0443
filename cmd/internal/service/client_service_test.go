package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vantay/cmd/internal/service"
	"vantay/cmd/internal/utils/apierror"
)

func TestClientService_CreateClient(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	user := s.mustUser(t, "a@x.com")

	client, apierr := s.clients.CreateClient(ctx, &service.ClientRequest{
		UserID: user.ID,
		Name:   " Bob ",
		Email:  ptr(""),
		Phone:  ptr("+55 11 99999-0000"),
	})
	require.Nil(t, apierr)
	assert.Equal(t, "Bob", client.Name)
	assert.Nil(t, client.Email, "blank optional fields are stored as null")
	require.NotNil(t, client.Phone)
	assert.Equal(t, "+55 11 99999-0000", *client.Phone)
}

func TestClientService_CreateClientValidation(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	user := s.mustUser(t, "a@x.com")

	_, apierr := s.clients.CreateClient(ctx, &service.ClientRequest{})
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.KindMissingField, apierr.Kind())
	assert.Equal(t, []string{"user_id", "name"}, apierr.(*apierror.SimpleError).Fields)

	_, apierr = s.clients.CreateClient(ctx, &service.ClientRequest{UserID: user.ID, Name: "Bob", Email: ptr("bob")})
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.KindInvalidField, apierr.Kind())

	_, apierr = s.clients.CreateClient(ctx, &service.ClientRequest{UserID: 999, Name: "Ghost"})
	require.NotNil(t, apierr)
	assert.Equal(t, apierror.KindUnknownReference, apierr.Kind())
}

func TestClientService_Scoping(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	alice := s.mustUser(t, "a@x.com")
	eve := s.mustUser(t, "e@x.com")
	bob := s.mustClient(t, alice.ID, "Bob")
	s.mustClient(t, alice.ID, "Dan")
	s.mustClient(t, eve.ID, "Mallory")

	clients, apierr := s.clients.GetClients(ctx, alice.ID, 100)
	require.Nil(t, apierr)
	require.Len(t, clients, 2)
	assert.Equal(t, "Dan", clients[0].Name, "newest first")
	for _, c := range clients {
		assert.Equal(t, alice.ID, c.UserID)
	}

	_, apierr = s.clients.GetClient(ctx, bob.ID, eve.ID)
	assert.Equal(t, apierror.NotFoundError, apierr)

	_, apierr = s.clients.ReplaceClient(ctx, bob.ID, &service.ClientRequest{UserID: eve.ID, Name: "Stolen"})
	assert.Equal(t, apierror.NotFoundError, apierr)

	assert.Equal(t, apierror.NotFoundError, s.clients.DeleteClient(ctx, bob.ID, eve.ID))

	got, apierr := s.clients.GetClient(ctx, bob.ID, alice.ID)
	require.Nil(t, apierr)
	assert.Equal(t, "Bob", got.Name)
}

func TestClientService_ReplaceClient(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	user := s.mustUser(t, "a@x.com")
	created, apierr := s.clients.CreateClient(ctx, &service.ClientRequest{UserID: user.ID, Name: "Bob", Phone: ptr("123")})
	require.Nil(t, apierr)

	updated, apierr := s.clients.ReplaceClient(ctx, created.ID, &service.ClientRequest{
		UserID: user.ID,
		Name:   "Robert",
		Email:  ptr("bob@x.com"),
	})
	require.Nil(t, apierr)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@x.com", *updated.Email)
	assert.Nil(t, updated.Phone)

	require.Nil(t, s.clients.DeleteClient(ctx, created.ID, user.ID))
	assert.Equal(t, apierror.NotFoundError, s.clients.DeleteClient(ctx, created.ID, user.ID))
}
