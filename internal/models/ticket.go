package models

import "time"

// TicketStatus represents the payment status of a ticket
type TicketStatus string

const (
	TicketStatusReserved TicketStatus = "RESERVED"
	TicketStatusPaid     TicketStatus = "PAID"
)

// TicketType is immutable reference data describing a ticket class
type TicketType struct {
	ID            int       `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Price         int       `json:"price" db:"price"`
	IsRemote      bool      `json:"isRemote" db:"is_remote"`
	IncludesHotel bool      `json:"includesHotel" db:"includes_hotel"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// Ticket is a purchase tied to an enrollment and a ticket type
type Ticket struct {
	ID           int          `json:"id" db:"id"`
	EnrollmentID int          `json:"enrollmentId" db:"enrollment_id"`
	TicketTypeID int          `json:"ticketTypeId" db:"ticket_type_id"`
	Status       TicketStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time    `json:"updatedAt" db:"updated_at"`

	TicketType TicketType `json:"TicketType" db:"-"`
}

// IsHotelEligible reports whether the ticket grants access to hotel booking:
// paid, in person, and of a type that includes the hotel.
func (t *Ticket) IsHotelEligible() bool {
	return t.Status == TicketStatusPaid && t.TicketType.IncludesHotel && !t.TicketType.IsRemote
}
