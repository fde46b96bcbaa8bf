package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivent/hotel-booking/internal/models"
	"github.com/jmoiron/sqlx"
)

const bookingColumns = `id, user_id, room_id, created_at, updated_at`

// BookingRepository handles booking database operations
type BookingRepository struct {
	db DB
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db DB) *BookingRepository {
	return &BookingRepository{
		db: db,
	}
}

// Create inserts a booking for the user in the given room
func (r *BookingRepository) Create(ctx context.Context, userID, roomID int) (*models.Booking, error) {
	query := `
		INSERT INTO bookings (user_id, room_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING ` + bookingColumns

	booking := &models.Booking{}
	if err := r.db.GetContext(ctx, booking, query, userID, roomID); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// FindByUserID returns the user's most recent booking with its room attached,
// or nil when the user has no booking.
func (r *BookingRepository) FindByUserID(ctx context.Context, userID int) (*models.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.room_id, b.created_at, b.updated_at,
		       r.id, r.name, r.capacity, r.hotel_id, r.created_at, r.updated_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC, b.id DESC
		LIMIT 1
	`

	booking := &models.Booking{Room: &models.Room{}}
	err := r.db.QueryRowxContext(ctx, query, userID).Scan(
		&booking.ID, &booking.UserID, &booking.RoomID, &booking.CreatedAt, &booking.UpdatedAt,
		&booking.Room.ID, &booking.Room.Name, &booking.Room.Capacity, &booking.Room.HotelID,
		&booking.Room.CreatedAt, &booking.Room.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking by user: %w", err)
	}

	return booking, nil
}

// FindByID returns the booking with the given id, or nil when absent
func (r *BookingRepository) FindByID(ctx context.Context, bookingID int) (*models.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking := &models.Booking{}
	err := r.db.GetContext(ctx, booking, query, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking: %w", err)
	}

	return booking, nil
}

// CountByRoomID returns how many bookings reference the room
func (r *BookingRepository) CountByRoomID(ctx context.Context, roomID int) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM bookings WHERE room_id = $1`, roomID); err != nil {
		return 0, fmt.Errorf("failed to count bookings for room: %w", err)
	}
	return count, nil
}

// UpdateRoom moves the booking to another room
func (r *BookingRepository) UpdateRoom(ctx context.Context, bookingID, roomID int) (*models.Booking, error) {
	query := `
		UPDATE bookings SET room_id = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + bookingColumns

	booking := &models.Booking{}
	err := r.db.GetContext(ctx, booking, query, bookingID, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	return booking, nil
}

// CreateWithinCapacity inserts the booking only if the room still has space.
// The room row is locked for the duration of the transaction so concurrent
// writers against the same room are serialized.
func (r *BookingRepository) CreateWithinCapacity(ctx context.Context, userID, roomID int) (*models.Booking, error) {
	booking := &models.Booking{}

	err := withTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		if err := lockRoomWithSpace(ctx, tx, roomID, 0); err != nil {
			return err
		}

		query := `
			INSERT INTO bookings (user_id, room_id, created_at, updated_at)
			VALUES ($1, $2, NOW(), NOW())
			RETURNING ` + bookingColumns
		if err := tx.GetContext(ctx, booking, query, userID, roomID); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// UpdateRoomWithinCapacity moves the booking only if the destination room
// has space, not counting the booking itself.
func (r *BookingRepository) UpdateRoomWithinCapacity(ctx context.Context, bookingID, roomID int) (*models.Booking, error) {
	booking := &models.Booking{}

	err := withTx(ctx, r.db, nil, func(tx *sqlx.Tx) error {
		if err := lockRoomWithSpace(ctx, tx, roomID, bookingID); err != nil {
			return err
		}

		query := `
			UPDATE bookings SET room_id = $2, updated_at = NOW()
			WHERE id = $1
			RETURNING ` + bookingColumns
		err := tx.GetContext(ctx, booking, query, bookingID, roomID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrBookingNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// lockRoomWithSpace takes a row lock on the room and verifies that its
// bookings, excluding excludeBookingID, are below capacity.
func lockRoomWithSpace(ctx context.Context, tx *sqlx.Tx, roomID, excludeBookingID int) error {
	var capacity int
	err := tx.GetContext(ctx, &capacity, `SELECT capacity FROM rooms WHERE id = $1 FOR UPDATE`, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRoomNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock room: %w", err)
	}

	var count int
	err = tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM bookings WHERE room_id = $1 AND id <> $2`,
		roomID, excludeBookingID,
	)
	if err != nil {
		return fmt.Errorf("failed to count bookings for room: %w", err)
	}

	if count >= capacity {
		return ErrRoomFull
	}
	return nil
}
