package item

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrItemNotFound      = errors.New("item not found")
	ErrCommentNotAllowed = errors.New("commenting requires a finished approved booking")
	ErrDuplicateComment  = errors.New("item already commented by this user")
)
