package item

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeStore struct {
	users    map[int64]bool
	items    map[int64]models.Item
	comments []models.Comment
	approved []models.Booking
	finished map[[2]int64]bool
	nextID   int64

	removedFromCache []int64
	searchCalls      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[int64]bool),
		items:    make(map[int64]models.Item),
		finished: make(map[[2]int64]bool),
	}
}

func (f *fakeStore) SaveItem(_ context.Context, item models.Item) (models.Item, error) {
	f.nextID++
	item.ID = f.nextID
	f.items[item.ID] = item

	return item, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, item models.Item) (models.Item, error) {
	f.items[item.ID] = item
	return item, nil
}

func (f *fakeStore) ItemByID(_ context.Context, itemID int64) (models.Item, error) {
	item, ok := f.items[itemID]
	if !ok {
		return models.Item{}, storage.ErrItemNotFound
	}

	return item, nil
}

func (f *fakeStore) ItemsByOwner(_ context.Context, ownerID int64) ([]models.Item, error) {
	var out []models.Item
	for _, it := range f.items {
		if it.OwnerID == ownerID {
			out = append(out, it)
		}
	}

	return out, nil
}

func (f *fakeStore) SearchItems(_ context.Context, text string) ([]models.Item, error) {
	f.searchCalls++

	var out []models.Item
	for _, it := range f.items {
		if it.Available {
			out = append(out, it)
		}
	}

	return out, nil
}

func (f *fakeStore) ApprovedBookingsByItems(_ context.Context, itemIDs []int64) ([]models.Booking, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	var out []models.Booking
	for _, b := range f.approved {
		if wanted[b.Item.ID] {
			out = append(out, b)
		}
	}

	return out, nil
}

func (f *fakeStore) HasFinishedBooking(_ context.Context, itemID, bookerID int64, _ time.Time) (bool, error) {
	return f.finished[[2]int64{itemID, bookerID}], nil
}

func (f *fakeStore) UserExists(_ context.Context, userID int64) (bool, error) {
	return f.users[userID], nil
}

func (f *fakeStore) SaveComment(_ context.Context, comment models.Comment) (models.Comment, error) {
	f.nextID++
	comment.ID = f.nextID
	f.comments = append(f.comments, comment)

	return comment, nil
}

func (f *fakeStore) CommentExists(_ context.Context, itemID, authorID int64) (bool, error) {
	for _, c := range f.comments {
		if c.ItemID == itemID && c.AuthorID == authorID {
			return true, nil
		}
	}

	return false, nil
}

func (f *fakeStore) CommentsByItems(_ context.Context, itemIDs []int64) ([]models.Comment, error) {
	wanted := make(map[int64]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}

	var out []models.Comment
	for _, c := range f.comments {
		if wanted[c.ItemID] {
			out = append(out, c)
		}
	}

	return out, nil
}

func (f *fakeStore) RemoveItem(_ context.Context, itemID int64) error {
	f.removedFromCache = append(f.removedFromCache, itemID)
	return nil
}

const (
	ownerID  = int64(1)
	renterID = int64(2)
)

func newTestService(store *fakeStore, now time.Time) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, store, store, store, store, store, store, store, fixedClock{now: now})
}

func seedItem(t *testing.T, store *fakeStore, svc *Service, available bool) models.Item {
	t.Helper()

	store.users[ownerID] = true
	store.users[renterID] = true

	item, err := svc.Create(context.Background(), ownerID, CreateRequest{
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(5),
		Available:   available,
	})
	require.NoError(t, err)

	return item
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, time.Now())

	t.Run("unknown owner", func(t *testing.T) {
		_, err := svc.Create(ctx, 999, CreateRequest{Name: "drill", Description: "x", Available: true})

		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("item is persisted", func(t *testing.T) {
		item := seedItem(t, store, svc, true)

		assert.NotZero(t, item.ID)
		assert.Equal(t, ownerID, item.OwnerID)
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	item := seedItem(t, store, svc, true)

	t.Run("partial update", func(t *testing.T) {
		available := false
		updated, err := svc.Update(ctx, ownerID, item.ID, UpdateRequest{Available: &available})

		require.NoError(t, err)
		assert.False(t, updated.Available)
		assert.Equal(t, item.Name, updated.Name)
	})

	t.Run("cache entry is invalidated", func(t *testing.T) {
		assert.Contains(t, store.removedFromCache, item.ID)
	})

	t.Run("foreign item looks unknown", func(t *testing.T) {
		_, err := svc.Update(ctx, renterID, item.ID, UpdateRequest{Name: "mine now"})

		require.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.Update(ctx, ownerID, 999, UpdateRequest{Name: "ghost"})

		require.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestItem(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	store := newFakeStore()
	svc := newTestService(store, at(25))
	item := seedItem(t, store, svc, true)

	store.approved = []models.Booking{
		{ID: 1, Start: at(10), End: at(12), Status: models.StatusApproved, Booker: models.User{ID: renterID}, Item: item},
		{ID: 2, Start: at(30), End: at(32), Status: models.StatusApproved, Booker: models.User{ID: renterID}, Item: item},
	}

	t.Run("owner sees nearest bookings", func(t *testing.T) {
		got, err := svc.Item(ctx, item.ID, ownerID)

		require.NoError(t, err)
		require.NotNil(t, got.LastBooking)
		require.NotNil(t, got.NextBooking)
		assert.EqualValues(t, 1, got.LastBooking.ID)
		assert.EqualValues(t, 2, got.NextBooking.ID)
	})

	t.Run("non-owner sees no booking info", func(t *testing.T) {
		got, err := svc.Item(ctx, item.ID, renterID)

		require.NoError(t, err)
		assert.Nil(t, got.LastBooking)
		assert.Nil(t, got.NextBooking)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.Item(ctx, 999, ownerID)

		require.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown caller", func(t *testing.T) {
		_, err := svc.Item(ctx, item.ID, 999)

		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newTestService(store, time.Now())
	seedItem(t, store, svc, true)

	t.Run("blank text short-circuits", func(t *testing.T) {
		items, err := svc.Search(ctx, "   ")

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Zero(t, store.searchCalls)
	})

	t.Run("non-blank text hits storage", func(t *testing.T) {
		items, err := svc.Search(ctx, "drill")

		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 1, store.searchCalls)
	})
}

func TestPostComment(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	store := newFakeStore()
	svc := newTestService(store, base)
	item := seedItem(t, store, svc, true)

	t.Run("requires a finished booking", func(t *testing.T) {
		_, err := svc.PostComment(ctx, item.ID, renterID, "never rented it")

		require.ErrorIs(t, err, ErrCommentNotAllowed)
	})

	t.Run("comment is stamped with the service clock", func(t *testing.T) {
		store.finished[[2]int64{item.ID, renterID}] = true

		comment, err := svc.PostComment(ctx, item.ID, renterID, "good drill")

		require.NoError(t, err)
		assert.Equal(t, base, comment.Created)
		assert.Equal(t, renterID, comment.AuthorID)
	})

	t.Run("one comment per item", func(t *testing.T) {
		_, err := svc.PostComment(ctx, item.ID, renterID, "again")

		require.ErrorIs(t, err, ErrDuplicateComment)
	})

	t.Run("unknown item", func(t *testing.T) {
		_, err := svc.PostComment(ctx, 999, renterID, "ghost")

		require.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestOwnersItems(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	store := newFakeStore()
	svc := newTestService(store, at(25))

	first := seedItem(t, store, svc, true)
	second := seedItem(t, store, svc, true)

	store.approved = []models.Booking{
		{ID: 1, Start: at(10), End: at(12), Status: models.StatusApproved, Booker: models.User{ID: renterID}, Item: first},
		{ID: 2, Start: at(30), End: at(32), Status: models.StatusApproved, Booker: models.User{ID: renterID}, Item: second},
	}
	store.comments = []models.Comment{
		{ID: 10, ItemID: first.ID, AuthorID: renterID, Text: "fine", Created: at(13)},
	}

	items, err := svc.OwnersItems(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byID := make(map[int64]models.ItemWithBookings, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	withLast := byID[first.ID]
	require.NotNil(t, withLast.LastBooking)
	assert.Nil(t, withLast.NextBooking)
	assert.Len(t, withLast.Comments, 1)

	withNext := byID[second.ID]
	require.NotNil(t, withNext.NextBooking)
	assert.Nil(t, withNext.LastBooking)
	assert.Empty(t, withNext.Comments)
}
