package models

import "time"

// Comment is feedback left by a renter after a finished approved booking.
type Comment struct {
	ID         int64
	ItemID     int64
	AuthorID   int64
	AuthorName string
	Text       string
	Created    time.Time
}
