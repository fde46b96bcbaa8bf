package models

import "time"

// Booking associates one user with one room
type Booking struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"userId" db:"user_id"`
	RoomID    int       `json:"roomId" db:"room_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Room is attached only by lookups that join rooms
	Room *Room `json:"Room,omitempty" db:"-"`
}

// BookingWithRoom is the payload returned for a user's current booking
type BookingWithRoom struct {
	ID   int  `json:"id"`
	Room Room `json:"Room"`
}

// BookingRequest is the body accepted by POST /booking and PUT /booking/:bookingId
type BookingRequest struct {
	RoomID int `json:"roomId" binding:"required,min=1"`
}

// BookingIDResponse is returned after a booking is created or moved
type BookingIDResponse struct {
	BookingID int `json:"bookingId"`
}
