package sqllite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/HaruSatoru/shareit/internal/domain/converter"
	"github.com/HaruSatoru/shareit/internal/domain/models"
	"github.com/HaruSatoru/shareit/internal/storage"
	storageModel "github.com/HaruSatoru/shareit/internal/storage/model"
	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
)

const bookingSelect = `SELECT b.id, b.item_id, b.booker_id, b.start_time, b.end_time, b.status,
       i.name AS item_name, i.owner_id AS item_owner_id, u.name AS booker_name
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id`

type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.sqlite.New"

	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// ---- users ----

func (s *Storage) SaveUser(ctx context.Context, name, email string) (models.User, error) {
	const op = "storage.sqlite.SaveUser"

	row := s.db.QueryRowContext(ctx, "INSERT INTO users(name,email) VALUES(?,?) RETURNING id,name,email", name, email)

	var user storageModel.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email); err != nil {
		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToUserFromStorage(user), nil
}

func (s *Storage) UserByID(ctx context.Context, userID int64) (models.User, error) {
	const op = "storage.sqlite.UserByID"

	row := s.db.QueryRowContext(ctx, "SELECT id,name,email FROM users WHERE id=?", userID)

	var user storageModel.User
	if err := row.Scan(&user.ID, &user.Name, &user.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToUserFromStorage(user), nil
}

func (s *Storage) UserExists(ctx context.Context, userID int64) (bool, error) {
	const op = "storage.sqlite.UserExists"

	var exists bool
	err := s.db.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id=?)", userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) Users(ctx context.Context) ([]models.User, error) {
	const op = "storage.sqlite.Users"

	rows, err := s.db.QueryContext(ctx, "SELECT id,name,email FROM users ORDER BY id")
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
	const op = "storage.sqlite.UpdateUser"

	row := s.db.QueryRowContext(ctx,
		"UPDATE users SET name=?, email=? WHERE id=? RETURNING id,name,email",
		user.Name, user.Email, user.ID,
	)

	var updated storageModel.User
	if err := row.Scan(&updated.ID, &updated.Name, &updated.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
		}

		if isUniqueViolation(err) {
			return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrEmailTaken)
		}

		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToUserFromStorage(updated), nil
}

func (s *Storage) DeleteUser(ctx context.Context, userID int64) error {
	const op = "storage.sqlite.DeleteUser"

	res, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id=?", userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	return nil
}

// ---- items ----

func (s *Storage) SaveItem(ctx context.Context, item models.Item) (models.Item, error) {
	const op = "storage.sqlite.SaveItem"

	row := s.db.QueryRowContext(ctx,
		"INSERT INTO items(owner_id,name,description,available) VALUES(?,?,?,?) RETURNING id,owner_id,name,description,available",
		item.OwnerID, item.Name, item.Description, item.Available,
	)

	var saved storageModel.Item
	if err := row.Scan(&saved.ID, &saved.OwnerID, &saved.Name, &saved.Description, &saved.Available); err != nil {
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemFromStorage(saved), nil
}

func (s *Storage) ItemByID(ctx context.Context, itemID int64) (models.Item, error) {
	const op = "storage.sqlite.ItemByID"

	row := s.db.QueryRowContext(ctx, "SELECT id,owner_id,name,description,available FROM items WHERE id=?", itemID)

	var item storageModel.Item
	if err := row.Scan(&item.ID, &item.OwnerID, &item.Name, &item.Description, &item.Available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
		}
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemFromStorage(item), nil
}

func (s *Storage) UpdateItem(ctx context.Context, item models.Item) (models.Item, error) {
	const op = "storage.sqlite.UpdateItem"

	row := s.db.QueryRowContext(ctx,
		"UPDATE items SET name=?, description=?, available=? WHERE id=? RETURNING id,owner_id,name,description,available",
		item.Name, item.Description, item.Available, item.ID,
	)

	var updated storageModel.Item
	if err := row.Scan(&updated.ID, &updated.OwnerID, &updated.Name, &updated.Description, &updated.Available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Item{}, fmt.Errorf("%s: %w", op, storage.ErrItemNotFound)
		}
		return models.Item{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToItemFromStorage(updated), nil
}

func (s *Storage) ItemsByOwner(ctx context.Context, ownerID int64) ([]models.Item, error) {
	const op = "storage.sqlite.ItemsByOwner"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id,owner_id,name,description,available FROM items WHERE owner_id=? ORDER BY id", ownerID)
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
	const op = "storage.sqlite.SearchItems"

	// LIKE is case-insensitive for ASCII in sqlite.
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,owner_id,name,description,available FROM items
WHERE available AND (name LIKE '%' || ? || '%' OR description LIKE '%' || ? || '%')
ORDER BY id`,
		text, text,
	)
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

func collectItems(rows *sql.Rows) ([]storageModel.Item, error) {
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

// SaveBooking runs the overlap re-check and the insert in one SERIALIZABLE
// transaction; sqlite serializes writers, so two concurrent creates cannot
// both pass the check.
func (s *Storage) SaveBooking(ctx context.Context, bookerID, itemID int64, start, end time.Time) (models.Booking, error) {
	const op = "storage.sqlite.SaveBooking"

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	var overlapping int
	err = tx.QueryRowContext(ctx,
		"SELECT count(*) FROM bookings WHERE item_id=? AND status=? AND start_time < ? AND end_time > ?",
		itemID, models.StatusApproved, end, start,
	).Scan(&overlapping)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if overlapping > 0 {
		return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrTimeOverlap)
	}

	var bookingID int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO bookings(item_id,booker_id,start_time,end_time,status) VALUES(?,?,?,?,?) RETURNING id",
		itemID, bookerID, start, end, models.StatusWaiting,
	).Scan(&bookingID)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	booking, err := bookingInTx(ctx, tx, bookingID)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := insertBookingEvent(ctx, tx, models.EventBookingCreated, booking); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingFromStorage(booking), nil
}

func (s *Storage) SetBookingStatus(ctx context.Context, bookingID int64, status models.Status) (models.Booking, error) {
	const op = "storage.sqlite.SetBookingStatus"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE bookings SET status=? WHERE id=? AND status=?",
		status, bookingID, models.StatusWaiting,
	)
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM bookings WHERE id=?)", bookingID).Scan(&exists); err != nil {
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

	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingFromStorage(booking), nil
}

func (s *Storage) BookingByID(ctx context.Context, bookingID int64) (models.Booking, error) {
	const op = "storage.sqlite.BookingByID"

	var booking storageModel.Booking
	err := scanBooking(s.db.QueryRowContext(ctx, bookingSelect+" WHERE b.id=?", bookingID), &booking)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, fmt.Errorf("%s: %w", op, storage.ErrBookingNotFound)
		}
		return models.Booking{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToBookingFromStorage(booking), nil
}

func (s *Storage) BookingsByBooker(ctx context.Context, bookerID int64, state models.SearchState, now time.Time) ([]models.Booking, error) {
	const op = "storage.sqlite.BookingsByBooker"
	return s.bookingsFor(ctx, op, "b.booker_id", bookerID, state, now)
}

func (s *Storage) BookingsByOwner(ctx context.Context, ownerID int64, state models.SearchState, now time.Time) ([]models.Booking, error) {
	const op = "storage.sqlite.BookingsByOwner"
	return s.bookingsFor(ctx, op, "i.owner_id", ownerID, state, now)
}

func (s *Storage) bookingsFor(ctx context.Context, op, column string, userID int64, state models.SearchState, now time.Time) ([]models.Booking, error) {
	query := bookingSelect + " WHERE " + column + "=?"
	args := []any{userID}

	switch state {
	case models.SearchAll:
	case models.SearchPast:
		query += " AND b.end_time < ?"
		args = append(args, now)
	case models.SearchFuture:
		query += " AND b.start_time > ?"
		args = append(args, now)
	case models.SearchCurrent:
		query += " AND b.start_time <= ? AND b.end_time >= ?"
		args = append(args, now, now)
	case models.SearchWaiting, models.SearchRejected:
		query += " AND b.status = ?"
		args = append(args, string(state))
	default:
		return nil, fmt.Errorf("%s: %w: %s", op, models.ErrUnknownSearchState, state)
	}

	query += " ORDER BY b.start_time DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
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

func (s *Storage) ApprovedBookingsEndingAfter(ctx context.Context, itemID int64, after time.Time) ([]models.Booking, error) {
	const op = "storage.sqlite.ApprovedBookingsEndingAfter"

	rows, err := s.db.QueryContext(ctx,
		bookingSelect+" WHERE b.item_id=? AND b.status=? AND b.end_time > ? ORDER BY b.start_time ASC",
		itemID, models.StatusApproved, after,
	)
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

func (s *Storage) ApprovedBookingsByItems(ctx context.Context, itemIDs []int64) ([]models.Booking, error) {
	const op = "storage.sqlite.ApprovedBookingsByItems"

	if len(itemIDs) == 0 {
		return nil, nil
	}

	query := bookingSelect + " WHERE b.item_id IN (" + placeholders(len(itemIDs)) + ") AND b.status=? ORDER BY b.item_id, b.start_time ASC"
	args := make([]any, 0, len(itemIDs)+1)
	for _, id := range itemIDs {
		args = append(args, id)
	}
	args = append(args, models.StatusApproved)

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	const op = "storage.sqlite.HasFinishedBooking"

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM bookings WHERE item_id=? AND booker_id=? AND status=? AND end_time < ?)",
		itemID, bookerID, models.StatusApproved, before,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func bookingInTx(ctx context.Context, tx *sql.Tx, bookingID int64) (storageModel.Booking, error) {
	var booking storageModel.Booking
	err := scanBooking(tx.QueryRowContext(ctx, bookingSelect+" WHERE b.id=?", bookingID), &booking)
	return booking, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner, booking *storageModel.Booking) error {
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

func collectBookings(rows *sql.Rows) ([]storageModel.Booking, error) {
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

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

type bookingEventPayload struct {
	BookingID int64     `json:"booking_id"`
	ItemID    int64     `json:"item_id"`
	BookerID  int64     `json:"booker_id"`
	Status    string    `json:"status"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

func insertBookingEvent(ctx context.Context, tx *sql.Tx, eventType string, booking storageModel.Booking) error {
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

	_, err = tx.ExecContext(ctx,
		"INSERT INTO events(id,event_type,payload,status) VALUES(?,?,?,?)",
		uuid.New(), eventType, string(payload), "new",
	)
	return err
}

// ---- comments ----

func (s *Storage) SaveComment(ctx context.Context, comment models.Comment) (models.Comment, error) {
	const op = "storage.sqlite.SaveComment"

	saved := comment
	err := s.db.QueryRowContext(ctx,
		"INSERT INTO comments(item_id,author_id,text,created) VALUES(?,?,?,?) RETURNING id",
		comment.ItemID, comment.AuthorID, comment.Text, comment.Created,
	).Scan(&saved.ID)
	if err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.db.QueryRowContext(ctx, "SELECT name FROM users WHERE id=?", comment.AuthorID).Scan(&saved.AuthorName); err != nil {
		return models.Comment{}, fmt.Errorf("%s: %w", op, err)
	}

	return saved, nil
}

func (s *Storage) CommentExists(ctx context.Context, itemID, authorID int64) (bool, error) {
	const op = "storage.sqlite.CommentExists"

	var exists bool
	err := s.db.QueryRowContext(ctx,
		"SELECT EXISTS(SELECT 1 FROM comments WHERE item_id=? AND author_id=?)",
		itemID, authorID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

func (s *Storage) CommentsByItems(ctx context.Context, itemIDs []int64) ([]models.Comment, error) {
	const op = "storage.sqlite.CommentsByItems"

	if len(itemIDs) == 0 {
		return nil, nil
	}

	query := `SELECT c.id, c.item_id, c.author_id, u.name AS author_name, c.text, c.created
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id IN (` + placeholders(len(itemIDs)) + `)
ORDER BY c.id ASC`

	args := make([]any, len(itemIDs))
	for i, id := range itemIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
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
	const op = "storage.sqlite.NewEvents"

	rows, err := s.db.QueryContext(ctx,
		"SELECT id,event_type,payload,status,created_at FROM events WHERE status='new' ORDER BY created_at LIMIT ?", limit)
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
	const op = "storage.sqlite.SetEventDone"

	row := s.db.QueryRowContext(ctx,
		"UPDATE events SET status='done' WHERE id=? RETURNING id,event_type,payload,status,created_at", eventID)

	var event storageModel.Event
	if err := row.Scan(&event.ID, &event.Type, &event.Payload, &event.Status, &event.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Event{}, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	return converter.ToEventFromStorage(event), nil
}
