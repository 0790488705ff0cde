package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/converter"
	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage"
	storageModel "github.com/HaruSatoru/shareit/internal/storage/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

// bookingSelect joins the booked item and the booker so every booking read
// carries the fields ownership checks need.
const bookingSelect = `SELECT b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status,
       i.name AS item_name, i.owner_id AS item_owner_id, u.name AS booker_name
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

type Storage struct {
	dbpool *pgxpool.Pool
}

var (
	pgOnce sync.Once
)

func New(dbAddr string) (*Storage, error) {
	const op = "storage.postgres.New"

	var (
		dbpool *pgxpool.Pool
		err    error
	)

	//single instance of the db
	pgOnce.Do(func() {
		dbpool, err = pgxpool.New(context.Background(), dbAddr)
	})

	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{dbpool: dbpool}, nil
}

func (s *Storage) ClosePool() {
	s.dbpool.Close()
}

// ---- users ----

func (s *Storage) SaveUser(ctx context.Context, name, email string) (models.User, error) {
	const op = "storage.postgres.SaveUser"

	query := "INSERT INTO users(name,email) VALUES(@userName,@userEmail) RETURNING id,name,email"
	args := pgx.NamedArgs{
		"userName":  name,
		"userEmail": email,
	}

	user := storageModel.User{}
	err := s.dbpool.QueryRow(ctx, query, args).Scan(&user.ID, &user.Name, &user.Email)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToUserFromStorage(user), nil
}

func (s *Storage) UserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "storage.postgres.UserByID"

	query := "SELECT id,name,email FROM users WHERE id=$1"
	var user storageModel.User

	err := s.dbpool.QueryRow(ctx, query, userID).Scan(&user.ID, &user.Name, &user.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToUserFromStorage(user), nil
}

func (s *Storage) UserExists(ctx context.Context, userID int64) (bool, error) {
	const op = "storage.postgres.UserExists"

	var exists bool
	err := s.dbpool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)", userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) Users(ctx context.Context) ([]models.User, error) {
	const op = "storage.postgres.Users"

	rows, err := s.dbpool.Query(ctx, "SELECT id,name,email FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []storageModel.User
	for rows.Next() {
		var user storageModel.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToUsersFromStorage(users), nil
}

func (s *Storage) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	const op = "storage.postgres.UpdateUser"

	query := "UPDATE users SET name=$1, email=$2 WHERE id=$3 RETURNING id,name,email"

	var updated storageModel.User
	err := s.dbpool.QueryRow(ctx, query, user.Name, user.Email, user.ID).
		Scan(&updated.ID, &updated.Name, &updated.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToUserFromStorage(updated), nil
}

func (s *Storage) DeleteUser(ctx context.Context, userID int64) error {
	const op = "storage.postgres.DeleteUser"

	ct, err := s.dbpool.Exec(ctx, "DELETE FROM users WHERE id=$1", userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return nil
}

// ---- items ----

func (s *Storage) SaveItem(ctx context.Context, item models.Item) (models.Item, error) {
	const op = "storage.postgres.SaveItem"

	query := `INSERT INTO items(owner_id,name,description,available)
VALUES(@ownerId,@itemName,@itemDescription,@itemAvailable)
RETURNING id,owner_id,name,description,available`
	args := pgx.NamedArgs{
		"ownerId":         item.OwnerID,
		"itemName":        item.Name,
		"itemDescription": item.Description,
		"itemAvailable":   item.Available,
	}

	var saved storageModel.Item
	err := s.dbpool.QueryRow(ctx, query, args).
		Scan(&saved.ID, &saved.OwnerID, &saved.Name, &saved.Description, &saved.Available)
	if err != nil {
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemFromStorage(saved), nil
}

func (s *Storage) ItemByID(ctx context.Context, itemID int64) (models.Item, error) {
	const op = "storage.postgres.ItemByID"

	query := "SELECT id,owner_id,name,description,available FROM items WHERE id=$1"

	var item storageModel.Item
	err := s.dbpool.QueryRow(ctx, query, itemID).
		Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Item{}, fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
		}
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemFromStorage(item), nil
}

func (s *Storage) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	const op = "storage.postgres.UpdateItem"

	query := `UPDATE items SET name=$1, description=$2, available=$3 WHERE id=$4
RETURNING id,owner_id,name,description,available`

	var updated storageModel.Item
	err := s.dbpool.QueryRow(ctx, query, item.Name, item.Description, item.Available, item.ID).
		Scan(&updated.ID, &updated.OwnerID, &updated.Name, &updated.Description, &updated.Available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Item{}, fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
		}
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemFromStorage(updated), nil
}

func (s *Storage) ItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	const op = "storage.postgres.ItemsByOwner"

	query := "SELECT id,owner_id,name,description,available FROM items WHERE owner_id=$1 ORDER BY id"

	rows, err := s.dbpool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemsFromStorage(items), nil
}

func (s *Storage) SearchItems(ctx context.Context, text string) ([]models.Item, error) {
	const op = "storage.postgres.SearchItems"

	query := `SELECT id,owner_id,name,description,available FROM items
WHERE available AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
ORDER BY id`

	rows, err := s.dbpool.Query(ctx, query, text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemsFromStorage(items), nil
}

func collectItems(rows pgx.Rows) ([]storageModel.Item, error) {
	var items []storageModel.Item
	for rows.Next() {
		var item storageModel.Item
		if err := rows.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.Available); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// ---- bookings ----

// SaveBooking re-runs the approved-overlap predicate and inserts inside one
// REPEATABLE READ transaction, so two concurrent requests cannot both observe
// "no overlap" and both insert. A booking_created outbox row is written in the
// same transaction.
func (s *Storage) SaveBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (models.Booking, error) {
	const op = "storage.postgres.SaveBooking"

	tx, err := s.dbpool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	var overlapping int
	err = tx.QueryRow(ctx,
		"SELECT count(*) FROM bookings WHERE item_id=$1 AND status=$2 AND start_time < $3 AND end_time > $4",
		itemID, models.StatusApproved, end, start,
	).Scan(&overlapping)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if overlapping > 0 {
		return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrTimeOverlap)
	}

	query := `INSERT INTO bookings(item_id,booker_id,start_time,end_time,status)
VALUES(@itemId,@bookerId,@startTime,@endTime,@bookingStatus) RETURNING id`
	args := pgx.NamedArgs{
		"itemId":        itemID,
		"bookerId":      bookerID,
		"startTime":     start,
		"endTime":       end,
		"bookingStatus": models.StatusWaiting,
	}

	var bookingID int64
	if err := tx.QueryRow(ctx, query, args).Scan(&bookingID); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	booking, err := bookingInTx(ctx, tx, bookingID)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := insertBookingEvent(ctx, tx, models.EventBookingCreated, booking); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingFromStorage(booking), nil
}

// SetBookingStatus updates conditionally on the WAITING status, so of two
// concurrent decisions exactly one sees a row to update.
func (s *Storage) SetBookingStatus(ctx context.Context, bookingID int64, status models.Status) (models.Booking, error) {
	const op = "storage.postgres.SetBookingStatus"

	tx, err := s.dbpool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	ct, err := tx.Exec(ctx,
		"UPDATE bookings SET status=$1 WHERE id=$2 AND status=$3",
		status, bookingID, models.StatusWaiting,
	)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if ct.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM bookings WHERE id=$1)", bookingID).Scan(&exists); err != nil {
			return models.Booking{}, fmt.Errorf("%s: %w", op, err)
		}

		if !exists {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}

		return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrAlreadyDecided)
	}

	booking, err := bookingInTx(ctx, tx, bookingID)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := insertBookingEvent(ctx, tx, models.EventBookingDecided, booking); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingFromStorage(booking), nil
}

func (s *Storage) BookingByID(ctx context.Context, bookingID int64) (models.Booking, error) {
	const op = "storage.postgres.BookingByID"

	var booking storageModel.Booking
	err := scanBooking(s.dbpool.QueryRow(ctx, bookingSelect+" WHERE b.id=$1", bookingID), &booking)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingFromStorage(booking), nil
}

func (s *Storage) BookingsByBooker(ctx context.Context, bookerID int64, state models.SearchState, now time.Time) ([]models.Booking, error) {
	const op = "storage.postgres.BookingsByBooker"
	return s.bookingsFor(ctx, op, "b.booker_id", bookerID, state, now)
}

func (s *Storage) BookingsByOwner(ctx context.Context, ownerID int64, state models.SearchState, now time.Time) ([]models.Booking, error) {
	const op = "storage.postgres.BookingsByOwner"
	return s.bookingsFor(ctx, op, "i.owner_id", ownerID, state, now)
}

// bookingsFor maps a search state to its SQL predicate. The caller column
// decides whether the booker or the item owner is matched; results are always
// ordered by start descending.
func (s *Storage) bookingsFor(ctx context.Context, op, column string, userID int64, state models.SearchState, now time.Time) ([]models.Booking, error) {
	query := bookingSelect + " WHERE " + column + "=$1"
	args := []any{userID}

	switch state {
	case models.SearchAll:
	case models.SearchPast:
		query += " AND b.end_time < $2"
		args = append(args, now)
	case models.SearchFuture:
		query += " AND b.start_time > $2"
		args = append(args, now)
	case models.SearchCurrent:
		query += " AND b.start_time <= $2 AND b.end_time >= $2"
		args = append(args, now)
	case models.SearchWaiting, models.SearchRejected:
		query += " AND b.status = $2"
		args = append(args, string(state))
	default:
		return nil, fmt.Errorf("%s: %w: %s", op, models.ErrUnknownSearchState, state)
	}

	query += " ORDER BY b.start_time DESC"

	rows, err := s.dbpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingsFromStorage(bookings), nil
}

// ApprovedBookingsEndingAfter feeds the availability check: approved bookings
// of the item that are still running or upcoming at the candidate start.
func (s *Storage) ApprovedBookingsEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]models.Booking, error) {
	const op = "storage.postgres.ApprovedBookingsEndingAfter"

	query := bookingSelect + " WHERE b.item_id=$1 AND b.status=$2 AND b.end_time > $3 ORDER BY b.start_time ASC"

	rows, err := s.dbpool.Query(ctx, query, itemID, models.StatusApproved, after)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingsFromStorage(bookings), nil
}

// ApprovedBookingsByItems returns every approved booking of the given items,
// ascending by start, as input for the nearest-booking resolution.
func (s *Storage) ApprovedBookingsByItems(ctx context.Context, itemIDs []int64) ([]models.Booking, error) {
	const op = "storage.postgres.ApprovedBookingsByItems"

	query := bookingSelect + " WHERE b.item_id = ANY($1) AND b.status=$2 ORDER BY b.item_id, b.start_time ASC"

	rows, err := s.dbpool.Query(ctx, query, itemIDs, models.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingsFromStorage(bookings), nil
}

func (s *Storage) HasFinishedBooking(ctx context.Context, itemID, bookerID int64, before time.Time) (bool, error) {
	const op = "storage.postgres.HasFinishedBooking"

	var exists bool
	err := s.dbpool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM bookings WHERE item_id=$1 AND booker_id=$2 AND status=$3 AND end_time < $4)",
		itemID, bookerID, models.StatusApproved, before,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func bookingInTx(ctx context.Context, tx pgx.Tx, bookingID int64) (storageModel.Booking, error) {
	var booking storageModel.Booking
	err := scanBooking(tx.QueryRow(ctx, bookingSelect+" WHERE b.id=$1", bookingID), &booking)
	return booking, err
}

func scanBooking(row pgx.Row, booking *storageModel.Booking) error {
	return row.Scan(
		&booking.ID,
		&booking.ItemID,
		&booking.BookerID,
		&booking.Start,
		&booking.End,
		&booking.Status,
		&booking.ItemName,
		&booking.ItemOwnerID,
		&booking.BookerName,
	)
}

func collectBookings(rows pgx.Rows) ([]storageModel.Booking, error) {
	var bookings []storageModel.Booking
	for rows.Next() {
		var booking storageModel.Booking
		if err := scanBooking(rows, &booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

type bookingEventPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func insertBookingEvent(ctx context.Context, tx pgx.Tx, eventType string, booking storageModel.Booking) error {
	payload, err := json.Marshal(bookingEventPayload{
		BookingID: booking.ID,
		ItemID:    booking.ItemID,
		BookerID:  booking.BookerID,
		Status:    booking.Status,
		Start:     booking.Start,
		End:       booking.End,
	})
	if err != nil {
		return err
	}

	query := "INSERT INTO events(id,event_type,payload,status) VALUES(@eventId,@eventType,@eventPayload,@eventStatus)"
	args := pgx.NamedArgs{
		"eventId":      uuid.New(),
		"eventType":    eventType,
		"eventPayload": string(payload),
		"eventStatus":  "new",
	}

	_, err = tx.Exec(ctx, query, args)
	return err
}

// ---- comments ----

func (s *Storage) SaveComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	const op = "storage.postgres.SaveComment"

	query := `INSERT INTO comments(item_id,author_id,text,created)
VALUES(@itemId,@authorId,@commentText,@createdAt) RETURNING id`
	args := pgx.NamedArgs{
		"itemId":      comment.ItemID,
		"authorId":    comment.AuthorID,
		"commentText": comment.Text,
		"createdAt":   comment.Created,
	}

	saved := comment
	if err := s.dbpool.QueryRow(ctx, query, args).Scan(&saved.ID); err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.dbpool.QueryRow(ctx, "SELECT name FROM users WHERE id=$1", comment.AuthorID).Scan(&saved.AuthorName); err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *Storage) CommentExists(ctx context.Context, itemID, authorID int64) (bool, error) {
	const op = "storage.postgres.CommentExists"

	var exists bool
	err := s.dbpool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM comments WHERE item_id=$1 AND author_id=$2)",
		itemID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) CommentsByItems(ctx context.Context, itemIDs []int64) ([]models.Comment, error) {
	const op = "storage.postgres.CommentsByItems"

	query := `SELECT c.id, c.item_id, c.author_id, u.name AS author_name, c.text, c.created
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id = ANY($1)
ORDER BY c.id ASC`

	rows, err := s.dbpool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var comments []storageModel.Comment
	for rows.Next() {
		var comment storageModel.Comment
		if err := rows.Scan(&comment.ID, &comment.ItemID, &comment.AuthorID, &comment.AuthorName, &comment.Text, &comment.Created); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToCommentsFromStorage(comments), nil
}

// ---- events ----

func (s *Storage) NewEvents(ctx context.Context, limit int) ([]models.Event, error) {
	const op = "storage.postgres.NewEvents"

	query := "SELECT id,event_type,payload,status,created_at FROM events WHERE status='new' ORDER BY created_at LIMIT $1"

	rows, err := s.dbpool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var events []storageModel.Event
	for rows.Next() {
		var event storageModel.Event
		if err := rows.Scan(&event.ID, &event.Type, &event.Payload, &event.Status, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToEventsFromStorage(events), nil
}

func (s *Storage) SetEventDone(ctx context.Context, eventID uuid.UUID) (models.Event, error) {
	const op = "storage.postgres.SetEventDone"

	query := "UPDATE events SET status='done' WHERE id=$1 RETURNING id,event_type,payload,status,created_at"

	var event storageModel.Event
	err := s.dbpool.QueryRow(ctx, query, eventID).
		Scan(&event.ID, &event.Type, &event.Payload, &event.Status, &event.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToEventFromStorage(event), nil
}
