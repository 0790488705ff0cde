package booking

import (
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
)

// NearestBookings resolves the single "last" (most recent finished or
// ongoing) and "next" (earliest upcoming) booking of an item relative to now.
// Input must be the item's APPROVED bookings in ascending start order.
func NearestBookings(sorted []models.Booking, now time.Time) (last, next *models.BookingInfo) {
	if len(sorted) == 0 {
		return nil, nil
	}

	nextIdx := nextBookingIndex(sorted, now)

	switch {
	case nextIdx == -1:
		// everything has already started
		last = infoOf(sorted[len(sorted)-1])
	case nextIdx == 0:
		// nothing has started yet
		next = infoOf(sorted[nextIdx])
	default:
		next = infoOf(sorted[nextIdx])
		last = infoOf(sorted[nextIdx-1])
	}

	return last, next
}

// nextBookingIndex returns the index of the first booking starting strictly
// after now, or -1 when every booking has already started.
func nextBookingIndex(sorted []models.Booking, now time.Time) int {
	for i, b := range sorted {
		if b.Start.After(now) {
			return i
		}
	}

	return -1
}

func infoOf(b models.Booking) *models.BookingInfo {
	info := models.ToBookingInfo(b)
	return &info
}
