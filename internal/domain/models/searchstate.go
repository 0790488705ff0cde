package models

import (
	"errors"
	"fmt"
)

// SearchState selects a subset of a user's bookings, either by position
// relative to the current time or by status.
type SearchState string

const (
	SearchAll      SearchState = "ALL"
	SearchCurrent  SearchState = "CURRENT"
	SearchPast     SearchState = "PAST"
	SearchFuture   SearchState = "FUTURE"
	SearchWaiting  SearchState = "WAITING"
	SearchRejected SearchState = "REJECTED"
)

var ErrUnknownSearchState = errors.New("unknown search state")

// ParseSearchState decodes a raw state token once at the boundary. Unknown
// tokens are rejected here, before any storage is touched.
func ParseSearchState(raw string) (SearchState, error) {
	switch SearchState(raw) {
	case SearchAll, SearchCurrent, SearchPast, SearchFuture, SearchWaiting, SearchRejected:
		return SearchState(raw), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownSearchState, raw)
	}
}
