package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vantay/cmd/internal/domain/database"
	"vantay/cmd/internal/domain/entity"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(context.Background(), database.Options{
		Driver: database.DriverSQLite,
		DSN:    "file::memory:?_foreign_keys=on",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func mustCreateUser(t *testing.T, db *gorm.DB, email string) *entity.User {
	t.Helper()
	user := &entity.User{Email: email}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	boom := errors.New("boom")

	err := NewTransactor(db).Atomic(ctx, func(ctx context.Context) error {
		require.NoError(t, users.Create(ctx, &entity.User{Email: "a@x.com"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	found, err := users.ExistsByEmail(ctx, "a@x.com", 0)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTransactor_NestedCallsShareTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	tx := NewTransactor(db)

	err := tx.Atomic(ctx, func(ctx context.Context) error {
		return tx.Atomic(ctx, func(ctx context.Context) error {
			return users.Create(ctx, &entity.User{Email: "a@x.com"})
		})
	})
	require.NoError(t, err)

	found, err := users.ExistsByEmail(ctx, "a@x.com", 0)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)

	alice := mustCreateUser(t, db, "a@x.com")
	assert.Equal(t, int64(1), alice.ID)
	assert.False(t, alice.CreatedAt.IsZero())

	err := users.Create(ctx, &entity.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, entity.ErrDuplicateKey)

	got, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	missing, err := users.FindByID(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, missing)

	taken, err := users.ExistsByEmail(ctx, "a@x.com", alice.ID)
	require.NoError(t, err)
	assert.False(t, taken, "own row is excluded")

	name := "Alice"
	ok, err := users.Replace(ctx, &entity.User{ID: alice.ID, Email: "alice@x.com", Name: &name})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = users.Replace(ctx, &entity.User{ID: 42, Email: "z@x.com"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = users.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = users.Delete(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClientRepository_OwnerOf(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := mustCreateUser(t, db, "a@x.com")
	clients := NewClientRepository(db)

	client := &entity.Client{UserID: user.ID, Name: "Bob"}
	require.NoError(t, clients.Create(ctx, client))

	owner, found, err := clients.OwnerOf(ctx, client.ID)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, user.ID, owner)

	_, found, err = clients.OwnerOf(ctx, 999)
	require.NoError(t, err)
	assert.False(t, found)

	err = clients.Create(ctx, &entity.Client{UserID: 999, Name: "Ghost"})
	assert.ErrorIs(t, err, entity.ErrUnknownReference)
}

func TestAppointmentRepository_FindByFilter(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	user := mustCreateUser(t, db, "a@x.com")
	other := mustCreateUser(t, db, "b@x.com")
	client := &entity.Client{UserID: user.ID, Name: "Bob"}
	require.NoError(t, NewClientRepository(db).Create(ctx, client))

	appts := NewAppointmentRepository(db)
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	for i, clientID := range []*int64{&client.ID, nil, nil} {
		start := base.Add(time.Duration(i) * 24 * time.Hour)
		require.NoError(t, appts.Create(ctx, &entity.Appointment{
			UserID:   user.ID,
			ClientID: clientID,
			StartAt:  start,
			EndAt:    start.Add(time.Hour),
			Status:   entity.StatusScheduled,
		}))
	}
	require.NoError(t, appts.Create(ctx, &entity.Appointment{
		UserID: other.ID, StartAt: base, EndAt: base.Add(time.Hour), Status: entity.StatusScheduled,
	}))

	all, err := appts.FindByFilter(ctx, entity.AppointmentFilter{UserID: user.ID, Limit: 100})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].StartAt.Equal(base.Add(48*time.Hour)))
	assert.Nil(t, all[0].ClientName)
	require.NotNil(t, all[2].ClientName)
	assert.Equal(t, "Bob", *all[2].ClientName)

	from := base.Add(24 * time.Hour)
	later, err := appts.FindByFilter(ctx, entity.AppointmentFilter{UserID: user.ID, From: &from, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, later, 2)

	to := base.Add(24 * time.Hour)
	earlier, err := appts.FindByFilter(ctx, entity.AppointmentFilter{UserID: user.ID, To: &to, Limit: 100})
	require.NoError(t, err)
	assert.Len(t, earlier, 1)
}

func TestAppointmentRepository_RejectsEmptyRange(t *testing.T) {
	db := newTestDB(t)
	user := mustCreateUser(t, db, "a@x.com")
	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	err := NewAppointmentRepository(db).Create(context.Background(), &entity.Appointment{
		UserID:  user.ID,
		StartAt: start,
		EndAt:   start,
		Status:  entity.StatusScheduled,
	})
	assert.Error(t, err, "the table check backs up service validation")
}
