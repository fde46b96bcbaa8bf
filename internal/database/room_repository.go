package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivent/hotel-booking/internal/models"
)

const roomColumns = `id, name, capacity, hotel_id, created_at, updated_at`

// RoomRepository handles room database operations
type RoomRepository struct {
	db DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db DB) *RoomRepository {
	return &RoomRepository{
		db: db,
	}
}

// FindByID returns the room with the given id, or nil when absent
func (r *RoomRepository) FindByID(ctx context.Context, roomID int) (*models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE id = $1`

	room := &models.Room{}
	err := r.db.GetContext(ctx, room, query, roomID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch room: %w", err)
	}

	return room, nil
}

// ListByHotelID returns the rooms of a hotel ordered by id
func (r *RoomRepository) ListByHotelID(ctx context.Context, hotelID int) ([]models.Room, error) {
	query := `SELECT ` + roomColumns + ` FROM rooms WHERE hotel_id = $1 ORDER BY id`

	rooms := []models.Room{}
	if err := r.db.SelectContext(ctx, &rooms, query, hotelID); err != nil {
		return nil, fmt.Errorf("failed to list rooms for hotel: %w", err)
	}

	return rooms, nil
}
