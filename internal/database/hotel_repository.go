package database

import (
	"context"
	"fmt"

	"github.com/drivent/hotel-booking/internal/models"
)

// HotelRepository handles hotel listing queries
type HotelRepository struct {
	db DB
}

// NewHotelRepository creates a new hotel repository
func NewHotelRepository(db DB) *HotelRepository {
	return &HotelRepository{
		db: db,
	}
}

// List returns every hotel ordered by id
func (r *HotelRepository) List(ctx context.Context) ([]models.Hotel, error) {
	query := `SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY id`

	hotels := []models.Hotel{}
	if err := r.db.SelectContext(ctx, &hotels, query); err != nil {
		return nil, fmt.Errorf("failed to list hotels: %w", err)
	}

	return hotels, nil
}
