package api

import (
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
)

type newBookingRequest struct {
	ItemID int64     `json:"itemId" binding:"required,gt=0"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

type newItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

type updateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

type newUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

type updateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" binding:"omitempty,email"`
}

type newCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type itemShortResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type bookingResponse struct {
	ID     int64             `json:"id"`
	Start  time.Time         `json:"start"`
	End    time.Time         `json:"end"`
	Status string            `json:"status"`
	Booker userShortResponse `json:"booker"`
	Item   itemShortResponse `json:"item"`
}

type bookingInfoResponse struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type commentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

type itemWithBookingsResponse struct {
	itemResponse
	LastBooking *bookingInfoResponse `json:"lastBooking"`
	NextBooking *bookingInfoResponse `json:"nextBooking"`
	Comments    []commentResponse    `json:"comments"`
}

func toUserResponse(u models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = toUserResponse(u)
	}

	return out
}

func toBookingResponse(b models.Booking) bookingResponse {
	return bookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Booker: userShortResponse{ID: b.Booker.ID, Name: b.Booker.Name},
		Item:   itemShortResponse{ID: b.Item.ID, Name: b.Item.Name},
	}
}

func toBookingResponses(bookings []models.Booking) []bookingResponse {
	out := make([]bookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = toBookingResponse(b)
	}

	return out
}

func toBookingInfoResponse(info *models.BookingInfo) *bookingInfoResponse {
	if info == nil {
		return nil
	}

	return &bookingInfoResponse{ID: info.ID, BookerID: info.BookerID, Start: info.Start, End: info.End}
}

func toCommentResponse(c models.Comment) commentResponse {
	return commentResponse{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.Created}
}

func toCommentResponses(comments []models.Comment) []commentResponse {
	out := make([]commentResponse, len(comments))
	for i, c := range comments {
		out[i] = toCommentResponse(c)
	}

	return out
}

func toItemResponse(i models.Item) itemResponse {
	return itemResponse{ID: i.ID, Name: i.Name, Description: i.Description, Available: i.Available}
}

func toItemResponses(items []models.Item) []itemResponse {
	out := make([]itemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}

	return out
}

func toItemWithBookingsResponse(i models.ItemWithBookings) itemWithBookingsResponse {
	return itemWithBookingsResponse{
		itemResponse: toItemResponse(i.Item),
		LastBooking:  toBookingInfoResponse(i.LastBooking),
		NextBooking:  toBookingInfoResponse(i.NextBooking),
		Comments:     toCommentResponses(i.Comments),
	}
}

func toItemWithBookingsResponses(items []models.ItemWithBookings) []itemWithBookingsResponse {
	out := make([]itemWithBookingsResponse, len(items))
	for i, it := range items {
		out[i] = toItemWithBookingsResponse(it)
	}

	return out
}
