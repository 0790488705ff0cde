package api

const (
	ErrIdentityRequired    = "X-Sharer-User-Id header must carry a positive user id"
	ErrInvalidBookingID    = "bookingId must be a positive integer"
	ErrInvalidItemID       = "itemId must be a positive integer"
	ErrInvalidUserID       = "userId must be a positive integer"
	ErrInvalidApprovedFlag = "approved must be true or false"
	ErrInvalidPeriod       = "end booking date must be after start booking date"
	ErrOwnItemBooking      = "user cannot book their own item"
	ErrNotItemOwner        = "only the item owner can change the booking status"
	ErrAlreadyDecided      = "cannot change booking status twice"
	ErrNotParticipant      = "only the booking author and the item owner can view the booking"
	ErrMalformedBody       = "request body must be valid JSON"
	ErrInternal            = "internal error"
)

const (
	ErrUserNotFoundFmt      = "user with identifier %d not found"
	ErrItemNotFoundFmt      = "item with identifier %d not found"
	ErrBookingNotFoundFmt   = "booking with identifier %d not found"
	ErrItemNotAvailableFmt  = "item with identifier %d is not available for booking"
	ErrTimeOverlapFmt       = "cannot book item %d from %s to %s: the window overlaps an approved booking"
	ErrUnknownStateFmt      = "unknown state: %s"
	ErrEmailTakenFmt        = "email %s already in use"
	ErrCommentNotAllowedFmt = "user %d cannot comment on item %d"
	ErrCommentTwiceFmt      = "user %d already commented on item %d"
	ErrInvalidFieldFmt      = "invalid value for field %s"
)
