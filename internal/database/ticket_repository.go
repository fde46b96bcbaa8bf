package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivent/hotel-booking/internal/models"
)

// TicketRepository handles ticket lookups
type TicketRepository struct {
	db DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db DB) *TicketRepository {
	return &TicketRepository{
		db: db,
	}
}

// FindByEnrollmentID returns the enrollment's ticket with its type attached,
// or nil when no ticket was issued.
func (r *TicketRepository) FindByEnrollmentID(ctx context.Context, enrollmentID int) (*models.Ticket, error) {
	query := `
		SELECT t.id, t.enrollment_id, t.ticket_type_id, t.status, t.created_at, t.updated_at,
		       tt.id, tt.name, tt.price, tt.is_remote, tt.includes_hotel, tt.created_at, tt.updated_at
		FROM tickets t
		JOIN ticket_types tt ON tt.id = t.ticket_type_id
		WHERE t.enrollment_id = $1
		LIMIT 1
	`

	ticket := &models.Ticket{}
	err := r.db.QueryRowxContext(ctx, query, enrollmentID).Scan(
		&ticket.ID, &ticket.EnrollmentID, &ticket.TicketTypeID, &ticket.Status,
		&ticket.CreatedAt, &ticket.UpdatedAt,
		&ticket.TicketType.ID, &ticket.TicketType.Name, &ticket.TicketType.Price,
		&ticket.TicketType.IsRemote, &ticket.TicketType.IncludesHotel,
		&ticket.TicketType.CreatedAt, &ticket.TicketType.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ticket: %w", err)
	}

	return ticket, nil
}
