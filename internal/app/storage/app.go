package storageapp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/HaruSatoru/shareit/internal/config"
	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage/postgres"
	"github.com/HaruSatoru/shareit/internal/storage/sqllite"
	"github.com/google/uuid"
)

// Storage is the full persistence surface shared by the postgres and sqlite
// drivers. Services depend on narrow slices of it, never on this union.
type Storage interface {
	SaveUser(ctx context.Context, name, email string) (models.User, error)
	UserByID(ctx context.Context, userID int64) (models.User, error)
	UserExists(ctx context.Context, userID int64) (bool, error)
	Users(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, user models.User) (models.User, error)
	DeleteUser(ctx context.Context, userID int64) error

	SaveItem(ctx context.Context, item models.Item) (models.Item, error)
	ItemByID(ctx context.Context, itemID int64) (models.Item, error)
	UpdateItem(ctx context.Context, item models.Item) (models.Item, error)
	ItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error)
	SearchItems(ctx context.Context, text string) ([]models.Item, error)

	SaveBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (models.Booking, error)
	SetBookingStatus(ctx context.Context, bookingID int64, status models.Status) (models.Booking, error)
	BookingByID(ctx context.Context, bookingID int64) (models.Booking, error)
	BookingsByBooker(ctx context.Context, bookerID int64, state models.SearchState, now time.Time) ([]models.Booking, error)
	BookingsByOwner(ctx context.Context, ownerID int64, state models.SearchState, now time.Time) ([]models.Booking, error)
	ApprovedBookingsEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]models.Booking, error)
	ApprovedBookingsByItems(ctx context.Context, itemIDs []int64) ([]models.Booking, error)
	HasFinishedBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error)

	SaveComment(ctx context.Context, comment models.Comment) (models.Comment, error)
	CommentExists(ctx context.Context, itemID, authorID int64) (bool, error)
	CommentsByItems(ctx context.Context, itemIDs []int64) ([]models.Comment, error)

	NewEvents(ctx context.Context, limit int) ([]models.Event, error)
	SetEventDone(ctx context.Context, eventID uuid.UUID) (models.Event, error)
}

type App struct {
	Storage Storage
	log     *slog.Logger
	close   func() error
}

// MustCreateApp opens the storage named by cfg.Driver and panics on failure.
func MustCreateApp(cfg config.StorageConfig, log *slog.Logger) *App {
	app, err := New(cfg, log)
	if err != nil {
		panic(err)
	}

	return app
}

func New(cfg config.StorageConfig, log *slog.Logger) (*App, error) {
	const op = "storageapp.New"

	switch cfg.Driver {
	case "postgres":
		pg, err := postgres.New(cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return &App{
			Storage: pg,
			log:     log,
			close: func() error {
				pg.ClosePool()
				return nil
			},
		}, nil
	case "sqlite3":
		lite, err := sqllite.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		return &App{Storage: lite, log: log, close: lite.Close}, nil
	default:
		return nil, fmt.Errorf("%s: unknown storage driver %q", op, cfg.Driver)
	}
}

func (a *App) Stop() error {
	const op = "storageapp.Stop"
	a.log.With(slog.String("op", op)).Info("stopping storage app")

	return a.close()
}
