package booking

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidPeriod   = errors.New("booking end must be after booking start")
	ErrItemUnavailable = errors.New("item is not available for booking")
	ErrOwnItemBooking  = errors.New("owner cannot book their own item")
	ErrNotItemOwner    = errors.New("only the item owner can change the booking status")
	ErrNotParticipant  = errors.New("only the booker and the item owner can view the booking")
	ErrAlreadyDecided  = errors.New("booking status already decided")
	ErrTimeOverlap     = errors.New("time window overlaps an approved booking")
)
