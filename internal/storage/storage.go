package storage

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrEventNotFound   = errors.New("event not found")
	ErrEmailTaken      = errors.New("email already in use")
	ErrTimeOverlap     = errors.New("time window overlaps an approved booking")
	ErrAlreadyDecided  = errors.New("booking status already decided")
	ErrItemNotCached   = errors.New("item not cached")
)
