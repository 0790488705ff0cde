package models

import "time"

// Status is the lifecycle state of a booking. A booking is created WAITING
// and moves exactly once to APPROVED or REJECTED; both are terminal.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a reservation of an item for the half-open window [Start, End).
type Booking struct {
	ID     int64
	Start  time.Time
	End    time.Time
	Status Status
	Booker User
	Item   Item
}

// BookingInfo is the short booking form embedded in item views.
type BookingInfo struct {
	ID       int64
	BookerID int64
	Start    time.Time
	End      time.Time
}

func ToBookingInfo(b Booking) BookingInfo {
	return BookingInfo{
		ID:       b.ID,
		BookerID: b.Booker.ID,
		Start:    b.Start,
		End:      b.End,
	}
}
