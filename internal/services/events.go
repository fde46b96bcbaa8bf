package services

import (
	"context"
	"time"

	"github.com/drivent/hotel-booking/internal/models"
	"github.com/google/uuid"
)

// Routing keys of the booking events
const (
	EventBookingCreated     = "booking.created"
	EventBookingRoomChanged = "booking.room_changed"
)

// MessagePublisher is the broker side of event publishing, implemented by mq.Publisher
type MessagePublisher interface {
	PublishJSON(ctx context.Context, key, messageID string, v any) error
}

// BookingEvent is the payload published after a booking write
type BookingEvent struct {
	EventID        string    `json:"eventId"`
	Type           string    `json:"type"`
	BookingID      int       `json:"bookingId"`
	UserID         int       `json:"userId"`
	RoomID         int       `json:"roomId"`
	PreviousRoomID int       `json:"previousRoomId,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// BookingEvents turns booking writes into broker messages
type BookingEvents struct {
	publisher MessagePublisher
	now       func() time.Time
}

// NewBookingEvents creates a booking event publisher
func NewBookingEvents(publisher MessagePublisher) *BookingEvents {
	return &BookingEvents{
		publisher: publisher,
		now:       time.Now,
	}
}

// BookingCreated publishes booking.created
func (e *BookingEvents) BookingCreated(ctx context.Context, booking *models.Booking) error {
	return e.publish(ctx, EventBookingCreated, booking, 0)
}

// RoomChanged publishes booking.room_changed
func (e *BookingEvents) RoomChanged(ctx context.Context, booking *models.Booking, previousRoomID int) error {
	return e.publish(ctx, EventBookingRoomChanged, booking, previousRoomID)
}

func (e *BookingEvents) publish(ctx context.Context, eventType string, booking *models.Booking, previousRoomID int) error {
	event := BookingEvent{
		EventID:        uuid.NewString(),
		Type:           eventType,
		BookingID:      booking.ID,
		UserID:         booking.UserID,
		RoomID:         booking.RoomID,
		PreviousRoomID: previousRoomID,
		OccurredAt:     e.now().UTC(),
	}
	return e.publisher.PublishJSON(ctx, eventType, event.EventID, event)
}
