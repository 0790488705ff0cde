package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/lib/logger/sl"
	"github.com/HaruSatoru/shareit/internal/storage"
	"github.com/prometheus/client_golang/prometheus"
)

type Service struct {
	log             *slog.Logger
	bookingSaver    BookingSaver
	bookingProvider BookingProvider
	itemProvider    ItemProvider
	userProvider    UserProvider
	itemCache       ItemCache
	clock           Clock
	metrics         Metrics
}

type BookingSaver interface {
	SaveBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (models.Booking, error)
	SetBookingStatus(ctx context.Context, bookingID int64, status models.Status) (models.Booking, error)
}

type BookingProvider interface {
	BookingByID(ctx context.Context, bookingID int64) (models.Booking, error)
	BookingsByBooker(ctx context.Context, bookerID int64, state models.SearchState, now time.Time) ([]models.Booking, error)
	BookingsByOwner(ctx context.Context, ownerID int64, state models.SearchState, now time.Time) ([]models.Booking, error)
	ApprovedBookingsEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]models.Booking, error)
}

type ItemProvider interface {
	ItemByID(ctx context.Context, itemID int64) (models.Item, error)
}

type UserProvider interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type ItemCache interface {
	Item(ctx context.Context, itemID int64) (models.Item, error)
	SaveItem(ctx context.Context, item models.Item) error
}

type Metrics struct {
	Created   prometheus.Counter
	Conflicts prometheus.Counter
	Decisions *prometheus.CounterVec
}

// CreateRequest is a validated request for a new booking of the half-open
// window [Start, End).
type CreateRequest struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// New returns a new instance of the booking service
func New(
	log *slog.Logger,
	bookingSaver BookingSaver,
	bookingProvider BookingProvider,
	itemProvider ItemProvider,
	userProvider UserProvider,
	itemCache ItemCache,
	clock Clock,
	metrics Metrics,
) *Service {
	return &Service{
		log:             log,
		bookingSaver:    bookingSaver,
		bookingProvider: bookingProvider,
		itemProvider:    itemProvider,
		userProvider:    userProvider,
		itemCache:       itemCache,
		clock:           clock,
		metrics:         metrics,
	}
}

// Create persists a new WAITING booking after validating the time window, the
// requester, the item and the absence of an approved overlapping booking.
func (s *Service) Create(ctx context.Context, req CreateRequest, requesterID int64) (models.Booking, error) {
	const op = "booking.Create"
	log := s.log.With(slog.String("op", op), slog.Int64("itemID", req.ItemID), slog.Int64("requesterID", requesterID))

	if !req.Start.Before(req.End) {
		log.Warn("invalid booking period",
			slog.Time("start", req.Start), slog.Time("end", req.End))
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrInvalidPeriod)
	}

	exists, err := s.userProvider.UserExists(ctx, requesterID)
	if err != nil {
		log.Error("failed to check user existence", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("booking attempt by unknown user")
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	item, err := s.item(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			log.Warn("booking attempt for unknown item")
			return models.Booking{}, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}

		log.Error("failed to get item", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if !item.Available {
		log.Warn("booking attempt for unavailable item")
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrItemUnavailable)
	}

	if item.OwnerID == requesterID {
		log.Warn("user attempted to book their own item")
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrOwnItemBooking)
	}

	approved, err := s.bookingProvider.ApprovedBookingsEndingAfter(ctx, req.ItemID, req.Start)
	if err != nil {
		log.Error("failed to get approved bookings", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if conflicting, ok := findOverlap(req.Start, req.End, approved); ok {
		log.Warn("booking window overlaps an approved booking", slog.Int64("conflictingID", conflicting.ID))
		s.metrics.Conflicts.Inc()
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrTimeOverlap)
	}

	booking, err := s.bookingSaver.SaveBooking(ctx, requesterID, req.ItemID, req.Start, req.End)
	if err != nil {
		if errors.Is(err, storage.ErrTimeOverlap) {
			// a concurrent request approved an overlapping booking first
			log.Warn("booking window lost the race to an approved booking")
			s.metrics.Conflicts.Inc()
			return models.Booking{}, fmt.Errorf("%s: %w", op, ErrTimeOverlap)
		}

		log.Error("failed to save booking", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Created.Inc()
	log.Info("booking created", slog.Int64("bookingID", booking.ID))

	return booking, nil
}

// SetStatus performs the one-shot WAITING -> APPROVED|REJECTED transition.
// Only the item owner may decide, and only once per booking.
func (s *Service) SetStatus(ctx context.Context, bookingID, actorID int64, approve bool) (models.Booking, error) {
	const op = "booking.SetStatus"
	log := s.log.With(slog.String("op", op), slog.Int64("bookingID", bookingID), slog.Int64("actorID", actorID))

	current, err := s.bookingProvider.BookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			log.Warn("decision attempt for unknown booking")
			return models.Booking{}, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}

		log.Error("failed to get booking", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if current.Item.OwnerID != actorID {
		log.Warn("decision attempt by non-owner")
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrNotItemOwner)
	}

	if current.Status != models.StatusWaiting {
		log.Warn("decision attempt on already decided booking", slog.String("status", string(current.Status)))
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrAlreadyDecided)
	}

	status := models.StatusRejected
	if approve {
		status = models.StatusApproved
	}

	booking, err := s.bookingSaver.SetBookingStatus(ctx, bookingID, status)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyDecided) {
			// a concurrent decision won the conditional update
			log.Warn("concurrent decision already made")
			return models.Booking{}, fmt.Errorf("%s: %w", op, ErrAlreadyDecided)
		}

		if errors.Is(err, storage.ErrBookingNotFound) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}

		log.Error("failed to update booking status", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.metrics.Decisions.WithLabelValues(string(status)).Inc()
	log.Info("booking decided", slog.String("status", string(status)))

	return booking, nil
}

// Retrieve returns a booking to its booker or to the owner of the booked item.
func (s *Service) Retrieve(ctx context.Context, bookingID, actorID int64) (models.Booking, error) {
	const op = "booking.Retrieve"
	log := s.log.With(slog.String("op", op), slog.Int64("bookingID", bookingID), slog.Int64("actorID", actorID))

	booking, err := s.bookingProvider.BookingByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, storage.ErrBookingNotFound) {
			log.Warn("retrieval attempt for unknown booking")
			return models.Booking{}, fmt.Errorf("%s: %w", op, ErrBookingNotFound)
		}

		log.Error("failed to get booking", sl.Err(err))
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if booking.Booker.ID != actorID && booking.Item.OwnerID != actorID {
		log.Warn("retrieval attempt by non-participant")
		return models.Booking{}, fmt.Errorf("%s: %w", op, ErrNotParticipant)
	}

	return booking, nil
}

// BookingsByBooker lists the user's own bookings filtered by state, ordered
// by start descending.
func (s *Service) BookingsByBooker(ctx context.Context, bookerID int64, state models.SearchState) ([]models.Booking, error) {
	const op = "booking.BookingsByBooker"

	return s.bookings(ctx, op, bookerID, state, s.bookingProvider.BookingsByBooker)
}

// BookingsByOwner lists bookings of every item the user owns, filtered by
// state, ordered by start descending.
func (s *Service) BookingsByOwner(ctx context.Context, ownerID int64, state models.SearchState) ([]models.Booking, error) {
	const op = "booking.BookingsByOwner"

	return s.bookings(ctx, op, ownerID, state, s.bookingProvider.BookingsByOwner)
}

func (s *Service) bookings(
	ctx context.Context,
	op string,
	userID int64,
	state models.SearchState,
	query func(ctx context.Context, userID int64, state models.SearchState, now time.Time) ([]models.Booking, error),
) ([]models.Booking, error) {
	log := s.log.With(slog.String("op", op), slog.Int64("userID", userID), slog.String("state", string(state)))

	exists, err := s.userProvider.UserExists(ctx, userID)
	if err != nil {
		log.Error("failed to check user existence", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("booking listing for unknown user")
		return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	bookings, err := query(ctx, userID, state, s.clock.Now())
	if err != nil {
		log.Error("failed to list bookings", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("bookings listed", slog.Int("count", len(bookings)))

	return bookings, nil
}

// item is a read-through item lookup: cache first, primary store on miss.
// Cache failures are logged and never fail the request.
func (s *Service) item(ctx context.Context, itemID int64) (models.Item, error) {
	cached, err := s.itemCache.Item(ctx, itemID)
	if err == nil {
		return cached, nil
	}

	if !errors.Is(err, storage.ErrItemNotCached) {
		s.log.Warn("item cache read failed", sl.Err(err))
	}

	item, err := s.itemProvider.ItemByID(ctx, itemID)
	if err != nil {
		return models.Item{}, err
	}

	if err := s.itemCache.SaveItem(ctx, item); err != nil {
		s.log.Warn("item cache write failed", sl.Err(err))
	}

	return item, nil
}
