package services

import (
	"context"

	"github.com/drivent/hotel-booking/internal/models"
)

// BookingStore is the persistence the booking service depends on.
// Finders return (nil, nil) when nothing matches.
type BookingStore interface {
	Create(ctx context.Context, userID, roomID int) (*models.Booking, error)
	CreateWithinCapacity(ctx context.Context, userID, roomID int) (*models.Booking, error)
	FindByUserID(ctx context.Context, userID int) (*models.Booking, error)
	FindByID(ctx context.Context, bookingID int) (*models.Booking, error)
	CountByRoomID(ctx context.Context, roomID int) (int, error)
	UpdateRoom(ctx context.Context, bookingID, roomID int) (*models.Booking, error)
	UpdateRoomWithinCapacity(ctx context.Context, bookingID, roomID int) (*models.Booking, error)
}

// RoomStore reads rooms
type RoomStore interface {
	FindByID(ctx context.Context, roomID int) (*models.Room, error)
	ListByHotelID(ctx context.Context, hotelID int) ([]models.Room, error)
}

// EnrollmentStore reads enrollments
type EnrollmentStore interface {
	FindByUserID(ctx context.Context, userID int) (*models.Enrollment, error)
}

// TicketStore reads tickets with their type attached
type TicketStore interface {
	FindByEnrollmentID(ctx context.Context, enrollmentID int) (*models.Ticket, error)
}

// HotelStore lists hotels
type HotelStore interface {
	List(ctx context.Context) ([]models.Hotel, error)
}
