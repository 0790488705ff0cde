package models

// Item is a shareable thing listed by its owner.
type Item struct {
	ID          int64
	OwnerID     int64
	Name        string
	Description string
	Available   bool
}

// ItemWithBookings is an item enriched with its nearest approved bookings and
// comments. LastBooking/NextBooking are nil for non-owners and for items
// without approved bookings on the relevant side of now.
type ItemWithBookings struct {
	Item
	LastBooking *BookingInfo
	NextBooking *BookingInfo
	Comments    []Comment
}
