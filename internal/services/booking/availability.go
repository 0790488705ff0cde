package booking

import (
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
)

// overlaps reports whether the half-open windows [s1,e1) and [s2,e2) share
// any instant: s1 < e2 && s2 < e1. Windows that merely touch do not overlap.
func overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// findOverlap returns the first approved booking occupying any part of the
// candidate window. Callers pass only APPROVED bookings; WAITING and REJECTED
// never count toward a conflict.
func findOverlap(start, end time.Time, approved []models.Booking) (models.Booking, bool) {
	for _, b := range approved {
		if overlaps(start, end, b.Start, b.End) {
			return b, true
		}
	}

	return models.Booking{}, false
}
