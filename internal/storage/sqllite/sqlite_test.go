package sqllite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "shareit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "sqlite", "1_init.up.sql"))
	require.NoError(t, err)

	_, err = s.db.Exec(string(schema))
	require.NoError(t, err)

	return s
}

func createUser(t *testing.T, s *Storage) models.User {
	t.Helper()

	user, err := s.SaveUser(context.Background(), gofakeit.Name(), gofakeit.Email())
	require.NoError(t, err)

	return user
}

func createItem(t *testing.T, s *Storage, ownerID int64) models.Item {
	t.Helper()

	item, err := s.SaveItem(context.Background(), models.Item{
		OwnerID:     ownerID,
		Name:        gofakeit.ProductName(),
		Description: gofakeit.Sentence(5),
		Available:   true,
	})
	require.NoError(t, err)

	return item
}

func createBooking(t *testing.T, s *Storage, bookerID, itemID int64, start, end time.Time, status models.Status) models.Booking {
	t.Helper()

	booking, err := s.SaveBooking(context.Background(), bookerID, itemID, start, end)
	require.NoError(t, err)

	if status != models.StatusWaiting {
		booking, err = s.SetBookingStatus(context.Background(), booking.ID, status)
		require.NoError(t, err)
	}

	return booking
}

func bookingIDs(bookings []models.Booking) []int64 {
	ids := make([]int64, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}

	return ids
}

func assertStartDescending(t *testing.T, bookings []models.Booking) {
	t.Helper()

	for i := 1; i < len(bookings); i++ {
		assert.False(t, bookings[i-1].Start.Before(bookings[i].Start),
			"bookings[%d].Start=%v precedes bookings[%d].Start=%v", i-1, bookings[i-1].Start, i, bookings[i].Start)
	}
}

func TestBookingListingOrdering(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	owner := createUser(t, s)
	booker := createUser(t, s)
	item := createItem(t, s, owner.ID)

	now := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return now.Add(time.Duration(hours) * time.Hour) }

	// inserted out of start order on purpose; listings must reorder
	ongoing := createBooking(t, s, booker.ID, item.ID, at(-1), at(1), models.StatusApproved)
	farFuture := createBooking(t, s, booker.ID, item.ID, at(20), at(22), models.StatusApproved)
	past := createBooking(t, s, booker.ID, item.ID, at(-10), at(-8), models.StatusApproved)
	rejected := createBooking(t, s, booker.ID, item.ID, at(10), at(12), models.StatusRejected)
	waiting := createBooking(t, s, booker.ID, item.ID, at(5), at(7), models.StatusWaiting)

	t.Run("all is ordered by start descending", func(t *testing.T) {
		bookings, err := s.BookingsByBooker(ctx, booker.ID, models.SearchAll, now)

		require.NoError(t, err)
		assertStartDescending(t, bookings)
		assert.Equal(t,
			[]int64{farFuture.ID, rejected.ID, waiting.ID, ongoing.ID, past.ID},
			bookingIDs(bookings))
	})

	t.Run("owner listing keeps the same order", func(t *testing.T) {
		bookings, err := s.BookingsByOwner(ctx, owner.ID, models.SearchAll, now)

		require.NoError(t, err)
		assertStartDescending(t, bookings)
		assert.Equal(t,
			[]int64{farFuture.ID, rejected.ID, waiting.ID, ongoing.ID, past.ID},
			bookingIDs(bookings))
	})

	t.Run("every state filter keeps the ordering", func(t *testing.T) {
		wantByState := map[models.SearchState][]int64{
			models.SearchPast:     {past.ID},
			models.SearchCurrent:  {ongoing.ID},
			models.SearchFuture:   {farFuture.ID, rejected.ID, waiting.ID},
			models.SearchWaiting:  {waiting.ID},
			models.SearchRejected: {rejected.ID},
		}

		for state, want := range wantByState {
			bookings, err := s.BookingsByBooker(ctx, booker.ID, state, now)

			require.NoError(t, err, "state %s", state)
			assertStartDescending(t, bookings)
			assert.Equal(t, want, bookingIDs(bookings), "state %s", state)
		}
	})

	t.Run("time states partition all", func(t *testing.T) {
		all, err := s.BookingsByBooker(ctx, booker.ID, models.SearchAll, now)
		require.NoError(t, err)

		var union []int64
		for _, state := range []models.SearchState{models.SearchFuture, models.SearchCurrent, models.SearchPast} {
			bookings, err := s.BookingsByBooker(ctx, booker.ID, state, now)
			require.NoError(t, err)
			union = append(union, bookingIDs(bookings)...)
		}

		assert.ElementsMatch(t, bookingIDs(all), union)
	})

	t.Run("unknown state errors", func(t *testing.T) {
		_, err := s.BookingsByBooker(ctx, booker.ID, models.SearchState("SOMETIME"), now)

		require.ErrorIs(t, err, models.ErrUnknownSearchState)
	})
}

func TestSaveBookingOverlap(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	owner := createUser(t, s)
	booker := createUser(t, s)
	item := createItem(t, s, owner.ID)

	base := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	createBooking(t, s, booker.ID, item.ID, at(10), at(12), models.StatusApproved)

	t.Run("overlapping approved window is rejected", func(t *testing.T) {
		_, err := s.SaveBooking(ctx, booker.ID, item.ID, at(11), at(13))

		require.ErrorIs(t, err, storage.ErrTimeOverlap)
	})

	t.Run("touching window is allowed", func(t *testing.T) {
		booking, err := s.SaveBooking(ctx, booker.ID, item.ID, at(12), at(14))

		require.NoError(t, err)
		assert.Equal(t, models.StatusWaiting, booking.Status)
	})
}
