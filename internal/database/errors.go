package database

import "errors"

// Sentinel errors returned by the capacity-aware writers. Plain finders report
// absence as a nil result instead.
var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrRoomFull        = errors.New("room is at capacity")
	ErrBookingNotFound = errors.New("booking not found")
)
