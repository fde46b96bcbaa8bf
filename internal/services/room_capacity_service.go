package services

import "context"

// RoomCapacityService checks that a room exists and still has space
type RoomCapacityService struct {
	rooms    RoomStore
	bookings BookingStore
}

// NewRoomCapacityService creates a new room capacity service
func NewRoomCapacityService(rooms RoomStore, bookings BookingStore) *RoomCapacityService {
	return &RoomCapacityService{
		rooms:    rooms,
		bookings: bookings,
	}
}

// VerifyRoom fails with KindNotFound when the room is absent and with
// KindRoomIDInvalid when its bookings already reach capacity.
func (s *RoomCapacityService) VerifyRoom(ctx context.Context, roomID int) error {
	room, err := s.rooms.FindByID(ctx, roomID)
	if err != nil {
		return storeUnavailable(err)
	}
	if room == nil {
		return newError(KindNotFound, ReasonRoomNotFound)
	}

	count, err := s.bookings.CountByRoomID(ctx, roomID)
	if err != nil {
		return storeUnavailable(err)
	}
	if count >= room.Capacity {
		return newError(KindRoomIDInvalid, ReasonRoomFull)
	}

	return nil
}
