package model

import "time"

// Booking is the bookings row joined with the booked item and the booker,
// so a single read carries everything visibility checks need.
type Booking struct {
	ID          int64     `db:"id"`
	ItemID      int64     `db:"item_id"`
	BookerID    int64     `db:"booker_id"`
	Start       time.Time `db:"start_time"`
	End         time.Time `db:"end_time"`
	Status      string    `db:"status"`
	ItemName    string    `db:"item_name"`
	ItemOwnerID int64     `db:"item_owner_id"`
	BookerName  string    `db:"booker_name"`
}
