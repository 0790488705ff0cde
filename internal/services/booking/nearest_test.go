package booking

import (
	"testing"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func approvedAt(id int64, start, end time.Time) models.Booking {
	return models.Booking{
		ID:     id,
		Start:  start,
		End:    end,
		Status: models.StatusApproved,
		Booker: models.User{ID: id * 100},
	}
}

func TestNearestBookings(t *testing.T) {
	base := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	at := func(hours int) time.Time { return base.Add(time.Duration(hours) * time.Hour) }

	sorted := []models.Booking{
		approvedAt(1, at(10), at(12)),
		approvedAt(2, at(20), at(22)),
		approvedAt(3, at(30), at(32)),
	}

	t.Run("now between bookings", func(t *testing.T) {
		last, next := NearestBookings(sorted, at(25))

		require.NotNil(t, last)
		require.NotNil(t, next)
		assert.EqualValues(t, 2, last.ID)
		assert.EqualValues(t, 3, next.ID)
	})

	t.Run("now before all bookings", func(t *testing.T) {
		last, next := NearestBookings(sorted, at(5))

		assert.Nil(t, last)
		require.NotNil(t, next)
		assert.EqualValues(t, 1, next.ID)
	})

	t.Run("now after all bookings", func(t *testing.T) {
		last, next := NearestBookings(sorted, at(100))

		require.NotNil(t, last)
		assert.Nil(t, next)
		assert.EqualValues(t, 3, last.ID)
	})

	t.Run("ongoing booking counts as last", func(t *testing.T) {
		// now inside [20,22): booking 2 has started, so it is "last"
		last, next := NearestBookings(sorted, at(21))

		require.NotNil(t, last)
		require.NotNil(t, next)
		assert.EqualValues(t, 2, last.ID)
		assert.EqualValues(t, 3, next.ID)
	})

	t.Run("booking starting exactly now is not next", func(t *testing.T) {
		last, next := NearestBookings(sorted, at(20))

		require.NotNil(t, last)
		require.NotNil(t, next)
		assert.EqualValues(t, 2, last.ID)
		assert.EqualValues(t, 3, next.ID)
	})

	t.Run("empty list", func(t *testing.T) {
		last, next := NearestBookings(nil, at(25))

		assert.Nil(t, last)
		assert.Nil(t, next)
	})

	t.Run("info carries booker id", func(t *testing.T) {
		_, next := NearestBookings(sorted, at(5))

		require.NotNil(t, next)
		assert.EqualValues(t, 100, next.BookerID)
	})
}
