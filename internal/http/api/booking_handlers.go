package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	bookingservice "github.com/HaruSatoru/shareit/internal/services/booking"
)

type BookingService interface {
	Create(ctx context.Context, req bookingservice.CreateRequest, requesterID int64) (models.Booking, error)
	SetStatus(ctx context.Context, bookingID, actorID int64, approve bool) (models.Booking, error)
	Retrieve(ctx context.Context, bookingID, actorID int64) (models.Booking, error)
	BookingsByBooker(ctx context.Context, bookerID int64, state models.SearchState) ([]models.Booking, error)
	BookingsByOwner(ctx context.Context, ownerID int64, state models.SearchState) ([]models.Booking, error)
}

type bookingHandler struct {
	log      *slog.Logger
	bookings BookingService
}

func (h *bookingHandler) create(c *gin.Context) {
	var req newBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: bindErrorMessage(err)})
		return
	}

	booking, err := h.bookings.Create(c.Request.Context(), bookingservice.CreateRequest{
		ItemID: req.ItemID,
		Start:  req.Start,
		End:    req.End,
	}, callerID(c))
	if err != nil {
		h.createError(c, err, req)
		return
	}

	c.JSON(http.StatusCreated, toBookingResponse(booking))
}

func (h *bookingHandler) createError(c *gin.Context, err error, req newBookingRequest) {
	userID := callerID(c)

	switch {
	case errors.Is(err, bookingservice.ErrInvalidPeriod):
		c.JSON(http.StatusBadRequest, errorResponse{Error: ErrInvalidPeriod})
	case errors.Is(err, bookingservice.ErrUserNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrUserNotFoundFmt, userID)})
	case errors.Is(err, bookingservice.ErrItemNotFound):
		c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrItemNotFoundFmt, req.ItemID)})
	case errors.Is(err, bookingservice.ErrItemUnavailable):
		c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: fmt.Sprintf(ErrItemNotAvailableFmt, req.ItemID)})
	case errors.Is(err, bookingservice.ErrOwnItemBooking):
		c.JSON(http.StatusForbidden, errorResponse{Error: ErrOwnItemBooking})
	case errors.Is(err, bookingservice.ErrTimeOverlap):
		c.JSON(http.StatusConflict, errorResponse{Error: fmt.Sprintf(
			ErrTimeOverlapFmt, req.ItemID, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339),
		)})
	default:
		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
	}
}

func (h *bookingHandler) setStatus(c *gin.Context) {
	bookingID, ok := pathID(c, "bookingId", ErrInvalidBookingID)
	if !ok {
		return
	}

	approve, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: ErrInvalidApprovedFlag})
		return
	}

	booking, err := h.bookings.SetStatus(c.Request.Context(), bookingID, callerID(c), approve)
	if err != nil {
		switch {
		case errors.Is(err, bookingservice.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrBookingNotFoundFmt, bookingID)})
		case errors.Is(err, bookingservice.ErrNotItemOwner):
			c.JSON(http.StatusForbidden, errorResponse{Error: ErrNotItemOwner})
		case errors.Is(err, bookingservice.ErrAlreadyDecided):
			c.JSON(http.StatusConflict, errorResponse{Error: ErrAlreadyDecided})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		}
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *bookingHandler) retrieve(c *gin.Context) {
	bookingID, ok := pathID(c, "bookingId", ErrInvalidBookingID)
	if !ok {
		return
	}

	booking, err := h.bookings.Retrieve(c.Request.Context(), bookingID, callerID(c))
	if err != nil {
		switch {
		case errors.Is(err, bookingservice.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrBookingNotFoundFmt, bookingID)})
		case errors.Is(err, bookingservice.ErrNotParticipant):
			c.JSON(http.StatusForbidden, errorResponse{Error: ErrNotParticipant})
		default:
			c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		}
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *bookingHandler) listByBooker(c *gin.Context) {
	h.list(c, h.bookings.BookingsByBooker)
}

func (h *bookingHandler) listByOwner(c *gin.Context) {
	h.list(c, h.bookings.BookingsByOwner)
}

func (h *bookingHandler) list(
	c *gin.Context,
	query func(ctx context.Context, userID int64, state models.SearchState) ([]models.Booking, error),
) {
	raw := c.DefaultQuery("state", string(models.SearchAll))

	state, err := models.ParseSearchState(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf(ErrUnknownStateFmt, raw)})
		return
	}

	userID := callerID(c)

	bookings, err := query(c.Request.Context(), userID, state)
	if err != nil {
		if errors.Is(err, bookingservice.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, errorResponse{Error: fmt.Sprintf(ErrUserNotFoundFmt, userID)})
			return
		}

		c.JSON(http.StatusInternalServerError, errorResponse{Error: ErrInternal})
		return
	}

	c.JSON(http.StatusOK, toBookingResponses(bookings))
}

// bindErrorMessage names what actually failed: the window rule, a concrete
// field, or the body itself.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ErrMalformedBody
	}

	for _, fe := range verrs {
		if fe.Field() == "End" && fe.Tag() == "gtfield" {
			return ErrInvalidPeriod
		}
	}

	return fmt.Sprintf(ErrInvalidFieldFmt, verrs[0].Field())
}

func pathID(c *gin.Context, param, message string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorResponse{Error: message})
		return 0, false
	}

	return id, true
}
