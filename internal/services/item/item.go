package item

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/lib/logger/sl"
	"github.com/HaruSatoru/shareit/internal/services/booking"
	"github.com/HaruSatoru/shareit/internal/storage"
)

type Service struct {
	log             *slog.Logger
	itemSaver       ItemSaver
	itemProvider    ItemProvider
	bookingProvider BookingProvider
	userProvider    UserProvider
	commentSaver    CommentSaver
	commentProvider CommentProvider
	itemCache       ItemCache
	clock           booking.Clock
}

type ItemSaver interface {
	SaveItem(ctx context.Context, item models.Item) (models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)
}

type ItemProvider interface {
	ItemByID(ctx context.Context, itemID int64) (models.Item, error)
	ItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)
}

type BookingProvider interface {
	ApprovedBookingsByItems(ctx context.Context, itemIDs []int64) ([]models.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)
}

type UserProvider interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

type CommentSaver interface {
	SaveComment(ctx context.Context, comment models.Comment) (models.Comment, error)
}

type CommentProvider interface {
	CommentExists(ctx context.Context, itemID, authorID int64) (bool, error)
	CommentsByItems(ctx context.Context, itemIDs []int64) ([]models.Comment, error)
}

type ItemCache interface {
	RemoveItem(ctx context.Context, itemID int64) error
}

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
}

// UpdateRequest carries a partial item update; empty strings and a nil
// Available leave the current value untouched.
type UpdateRequest struct {
	Name        string
	Description string
	Available   *bool
}

// New returns a new instance of the item service
func New(
	log *slog.Logger,
	itemSaver ItemSaver,
	itemProvider ItemProvider,
	bookingProvider BookingProvider,
	userProvider UserProvider,
	commentSaver CommentSaver,
	commentProvider CommentProvider,
	itemCache ItemCache,
	clock booking.Clock,
) *Service {
	return &Service{
		log:             log,
		itemSaver:       itemSaver,
		itemProvider:    itemProvider,
		bookingProvider: bookingProvider,
		userProvider:    userProvider,
		commentSaver:    commentSaver,
		commentProvider: commentProvider,
		itemCache:       itemCache,
		clock:           clock,
	}
}

func (s *Service) Create(ctx context.Context, ownerID int64, req CreateRequest) (models.Item, error) {
	const op = "item.Create"
	log := s.log.With(slog.String("op", op), slog.Int64("ownerID", ownerID))

	exists, err := s.userProvider.UserExists(ctx, ownerID)
	if err != nil {
		log.Error("failed to check user existence", sl.Err(err))
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		log.Warn("item creation by unknown user")
		return models.Item{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	item, err := s.itemSaver.SaveItem(ctx, models.Item{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		log.Error("failed to save item", sl.Err(err))
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("item created", slog.Int64("itemID", item.ID))

	return item, nil
}

// Update applies a partial update to the caller's item. An item owned by
// someone else is reported as not found, never as someone else's.
func (s *Service) Update(ctx context.Context, ownerID, itemID int64, req UpdateRequest) (models.Item, error) {
	const op = "item.Update"
	log := s.log.With(slog.String("op", op), slog.Int64("ownerID", ownerID), slog.Int64("itemID", itemID))

	current, err := s.itemProvider.ItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			log.Warn("update attempt for unknown item")
			return models.Item{}, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}

		log.Error("failed to get item", sl.Err(err))
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	if current.OwnerID != ownerID {
		log.Warn("update attempt for foreign item")
		return models.Item{}, fmt.Errorf("%s: %w", op, ErrItemNotFound)
	}

	if strings.TrimSpace(req.Name) != "" {
		current.Name = req.Name
	}

	if strings.TrimSpace(req.Description) != "" {
		current.Description = req.Description
	}

	if req.Available != nil {
		current.Available = *req.Available
	}

	updated, err := s.itemSaver.UpdateItem(ctx, current)
	if err != nil {
		log.Error("failed to update item", sl.Err(err))
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	// stale cached copies must not outlive the update
	if err := s.itemCache.RemoveItem(ctx, itemID); err != nil {
		log.Warn("item cache invalidation failed", sl.Err(err))
	}

	log.Info("item updated")

	return updated, nil
}

// Item returns one item with its comments. Last/next booking info is
// resolved only when the caller owns the item.
func (s *Service) Item(ctx context.Context, itemID, callerID int64) (models.ItemWithBookings, error) {
	const op = "item.Item"
	log := s.log.With(slog.String("op", op), slog.Int64("itemID", itemID), slog.Int64("callerID", callerID))

	exists, err := s.userProvider.UserExists(ctx, callerID)
	if err != nil {
		log.Error("failed to check user existence", sl.Err(err))
		return models.ItemWithBookings{}, fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return models.ItemWithBookings{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}

	item, err := s.itemProvider.ItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			log.Warn("retrieval attempt for unknown item")
			return models.ItemWithBookings{}, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}

		log.Error("failed to get item", sl.Err(err))
		return models.ItemWithBookings{}, fmt.Errorf("%s: %w", op, err)
	}

	result := models.ItemWithBookings{Item: item}

	if item.OwnerID == callerID {
		approved, err := s.bookingProvider.ApprovedBookingsByItems(ctx, []int64{itemID})
		if err != nil {
			log.Error("failed to get approved bookings", sl.Err(err))
			return models.ItemWithBookings{}, fmt.Errorf("%s: %w", op, err)
		}

		result.LastBooking, result.NextBooking = booking.NearestBookings(approved, s.clock.Now())
	}

	comments, err := s.commentProvider.CommentsByItems(ctx, []int64{itemID})
	if err != nil {
		log.Error("failed to get comments", sl.Err(err))
		return models.ItemWithBookings{}, fmt.Errorf("%s: %w", op, err)
	}
	result.Comments = comments

	return result, nil
}

// OwnersItems lists the caller's items, each enriched with its last/next
// approved booking and comments.
func (s *Service) OwnersItems(ctx context.Context, ownerID int64) ([]models.ItemWithBookings, error) {
	const op = "item.OwnersItems"
	log := s.log.With(slog.String("op", op), slog.Int64("ownerID", ownerID))

	items, err := s.itemProvider.ItemsByOwner(ctx, ownerID)
	if err != nil {
		log.Error("failed to list items", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}

	approved, err := s.bookingProvider.ApprovedBookingsByItems(ctx, ids)
	if err != nil {
		log.Error("failed to get approved bookings", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	bookingsByItem := groupBookings(approved)

	comments, err := s.commentProvider.CommentsByItems(ctx, ids)
	if err != nil {
		log.Error("failed to get comments", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	commentsByItem := groupComments(comments)

	now := s.clock.Now()

	result := make([]models.ItemWithBookings, len(items))
	for i, it := range items {
		enriched := models.ItemWithBookings{Item: it, Comments: commentsByItem[it.ID]}
		enriched.LastBooking, enriched.NextBooking = booking.NearestBookings(bookingsByItem[it.ID], now)
		result[i] = enriched
	}

	log.Info("items listed", slog.Int("count", len(result)))

	return result, nil
}

// Search finds available items whose name or description contains the text.
// Blank text yields an empty list without touching storage.
func (s *Service) Search(ctx context.Context, text string) ([]models.Item, error) {
	const op = "item.Search"
	log := s.log.With(slog.String("op", op))

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	items, err := s.itemProvider.SearchItems(ctx, text)
	if err != nil {
		log.Error("failed to search items", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("items found", slog.Int("count", len(items)), slog.String("text", text))

	return items, nil
}

// PostComment accepts one comment per item from a user whose approved booking
// of that item has already finished.
func (s *Service) PostComment(ctx context.Context, itemID, authorID int64, text string) (models.Comment, error) {
	const op = "item.PostComment"
	log := s.log.With(slog.String("op", op), slog.Int64("itemID", itemID), slog.Int64("authorID", authorID))

	if _, err := s.itemProvider.ItemByID(ctx, itemID); err != nil {
		if errors.Is(err, storage.ErrItemNotFound) {
			log.Warn("comment attempt for unknown item")
			return models.Comment{}, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}

		log.Error("failed to get item", sl.Err(err))
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	now := s.clock.Now()

	rented, err := s.bookingProvider.HasFinishedBooking(ctx, itemID, authorID, now)
	if err != nil {
		log.Error("failed to check booking history", sl.Err(err))
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}
	if !rented {
		log.Warn("comment attempt without a finished booking")
		return models.Comment{}, fmt.Errorf("%s: %w", op, ErrCommentNotAllowed)
	}

	commented, err := s.commentProvider.CommentExists(ctx, itemID, authorID)
	if err != nil {
		log.Error("failed to check existing comments", sl.Err(err))
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}
	if commented {
		log.Warn("second comment attempt")
		return models.Comment{}, fmt.Errorf("%s: %w", op, ErrDuplicateComment)
	}

	comment, err := s.commentSaver.SaveComment(ctx, models.Comment{
		ItemID:   itemID,
		AuthorID: authorID,
		Text:     text,
		Created:  now,
	})
	if err != nil {
		log.Error("failed to save comment", sl.Err(err))
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("comment posted", slog.Int64("commentID", comment.ID))

	return comment, nil
}

func groupBookings(bookings []models.Booking) map[int64][]models.Booking {
	grouped := make(map[int64][]models.Booking, len(bookings))
	for _, b := range bookings {
		grouped[b.Item.ID] = append(grouped[b.Item.ID], b)
	}

	return grouped
}

func groupComments(comments []models.Comment) map[int64][]models.Comment {
	grouped := make(map[int64][]models.Comment, len(comments))
	for _, c := range comments {
		grouped[c.ItemID] = append(grouped[c.ItemID], c)
	}

	return grouped
}
