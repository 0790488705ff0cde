package converter

import (
	"github.com/HaruSatoru/shareit/internal/domain/models"
	storageModel "github.com/HaruSatoru/shareit/internal/storage/model"
)

func ToBookingFromStorage(storageBooking storageModel.Booking) models.Booking {
	return models.Booking{
		ID:     storageBooking.ID,
		Start:  storageBooking.Start,
		End:    storageBooking.End,
		Status: models.Status(storageBooking.Status),
		Booker: models.User{
			ID:   storageBooking.BookerID,
			Name: storageBooking.BookerName,
		},
		Item: models.Item{
			ID:      storageBooking.ItemID,
			OwnerID: storageBooking.ItemOwnerID,
			Name:    storageBooking.ItemName,
		},
	}
}

func ToBookingsFromStorage(storageBookings []storageModel.Booking) []models.Booking {
	bookings := make([]models.Booking, len(storageBookings))
	for i, booking := range storageBookings {
		bookings[i] = ToBookingFromStorage(booking)
	}

	return bookings
}
