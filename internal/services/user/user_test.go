package user

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users  map[int64]models.User
	emails map[string]int64
	nextID int64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]models.User), emails: make(map[string]int64)}
}

func (f *fakeUserStore) SaveUser(_ context.Context, name, email string) (models.User, error) {
	if _, taken := f.emails[email]; taken {
		return models.User{}, storage.ErrEmailTaken
	}

	f.nextID++
	user := models.User{ID: f.nextID, Name: name, Email: email}
	f.users[user.ID] = user
	f.emails[email] = user.ID

	return user, nil
}

func (f *fakeUserStore) UpdateUser(_ context.Context, user models.User) (models.User, error) {
	if ownerID, taken := f.emails[user.Email]; taken && ownerID != user.ID {
		return models.User{}, storage.ErrEmailTaken
	}

	delete(f.emails, f.users[user.ID].Email)
	f.users[user.ID] = user
	f.emails[user.Email] = user.ID

	return user, nil
}

func (f *fakeUserStore) DeleteUser(_ context.Context, userID int64) error {
	if _, ok := f.users[userID]; !ok {
		return storage.ErrUserNotFound
	}

	delete(f.emails, f.users[userID].Email)
	delete(f.users, userID)

	return nil
}

func (f *fakeUserStore) UserByID(_ context.Context, userID int64) (models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return models.User{}, storage.ErrUserNotFound
	}

	return user, nil
}

func (f *fakeUserStore) Users(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}

	return out, nil
}

func newTestService(store *fakeUserStore) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, store, store)
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := newTestService(store)

	email := gofakeit.Email()

	created, err := svc.Create(ctx, gofakeit.Name(), email)
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = svc.Create(ctx, gofakeit.Name(), email)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := newTestService(store)

	created, err := svc.Create(ctx, gofakeit.Name(), gofakeit.Email())
	require.NoError(t, err)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, UpdateRequest{Name: "Renamed"})

		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, created.Email, updated.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		other, err := svc.Create(ctx, gofakeit.Name(), gofakeit.Email())
		require.NoError(t, err)

		_, err = svc.Update(ctx, created.ID, UpdateRequest{Email: other.Email})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Update(ctx, 999, UpdateRequest{Name: "Nobody"})

		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := newTestService(store)

	created, err := svc.Create(ctx, gofakeit.Name(), gofakeit.Email())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.User(ctx, created.ID)
	require.ErrorIs(t, err, ErrUserNotFound)

	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrUserNotFound)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	store := newFakeUserStore()
	svc := newTestService(store)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, gofakeit.Name(), gofakeit.Email())
		require.NoError(t, err)
	}

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 3)
}
