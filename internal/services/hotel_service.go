package services

import (
	"context"
	"strconv"
	"time"

	"github.com/drivent/hotel-booking/internal/cache"
	"github.com/drivent/hotel-booking/internal/models"
	"github.com/sirupsen/logrus"
)

// Operation names of the hotel listings
const (
	OpListHotels = "list_hotels"
	OpListRooms  = "list_rooms"
)

// HotelService serves the hotel and room listings
type HotelService struct {
	hotels      HotelStore
	rooms       RoomStore
	eligibility *EligibilityService
	cache       *cache.Cache
	logger      logrus.FieldLogger
}

// NewHotelService creates a new hotel service. listings may be nil.
func NewHotelService(hotels HotelStore, rooms RoomStore, eligibility *EligibilityService, listings *cache.Cache, logger logrus.FieldLogger) *HotelService {
	return &HotelService{
		hotels:      hotels,
		rooms:       rooms,
		eligibility: eligibility,
		cache:       listings,
		logger:      logger,
	}
}

// ListHotels returns every hotel to a user holding a hotel-eligible ticket
func (s *HotelService) ListHotels(ctx context.Context, userID int) (hotels []models.Hotel, err error) {
	defer func(start time.Time) { observe(OpListHotels, start, err) }(time.Now())

	if err := s.eligibility.VerifyTicketOfUser(ctx, userID); err != nil {
		s.logRejection(OpListHotels, userID, err)
		return nil, err
	}

	hotels, err = cache.GetOrLoad(ctx, s.cache, s.cache.Key("all"), func(ctx context.Context) ([]models.Hotel, error) {
		return s.hotels.List(ctx)
	})
	if err != nil {
		s.logger.WithError(err).Error("Failed to list hotels")
		return nil, storeUnavailable(err)
	}

	return hotels, nil
}

// ListRoomsByHotelID returns the rooms of a hotel
func (s *HotelService) ListRoomsByHotelID(ctx context.Context, hotelID int) (rooms []models.Room, err error) {
	defer func(start time.Time) { observe(OpListRooms, start, err) }(time.Now())

	key := s.cache.Key(strconv.Itoa(hotelID), "rooms")
	rooms, err = cache.GetOrLoad(ctx, s.cache, key, func(ctx context.Context) ([]models.Room, error) {
		return s.rooms.ListByHotelID(ctx, hotelID)
	})
	if err != nil {
		s.logger.WithError(err).WithField("hotel_id", hotelID).Error("Failed to list rooms")
		return nil, storeUnavailable(err)
	}

	return rooms, nil
}

func (s *HotelService) logRejection(operation string, userID int, err error) {
	be, ok := AsBookingError(err)
	if !ok || be.Kind == KindStoreUnavailable {
		s.logger.WithError(err).WithField("user_id", userID).Error("Eligibility check failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"operation": operation,
		"user_id":   userID,
		"kind":      be.Kind.String(),
		"reason":    be.Reason,
	}).Info("Hotel request rejected")
}
