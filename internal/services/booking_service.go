package services

import (
	"context"
	"errors"
	"time"

	"github.com/drivent/hotel-booking/internal/config"
	"github.com/drivent/hotel-booking/internal/database"
	"github.com/drivent/hotel-booking/internal/models"
	"github.com/sirupsen/logrus"
)

// Operation names used in metrics, logs and audit details
const (
	OpGetBooking    = "get_booking"
	OpCreateBooking = "create_booking"
	OpUpdateBooking = "update_booking"
)

// BookingEventPublisher is notified after a booking write commits
type BookingEventPublisher interface {
	BookingCreated(ctx context.Context, booking *models.Booking) error
	RoomChanged(ctx context.Context, booking *models.Booking, previousRoomID int) error
}

// BookingAuditor records booking writes and rejections
type BookingAuditor interface {
	LogBookingCreated(ctx context.Context, booking *models.Booking) error
	LogBookingRoomChanged(ctx context.Context, booking *models.Booking, previousRoomID int) error
	LogBookingRejected(ctx context.Context, userID int, operation string, bookingID, roomID int, rejection *BookingError) error
}

// BookingService implements the booking lifecycle: get, create and move to
// another room. Every call re-reads the store.
type BookingService struct {
	bookings     BookingStore
	capacity     *RoomCapacityService
	eligibility  *EligibilityService
	atomicWrites bool
	events       BookingEventPublisher
	auditor      BookingAuditor
	logger       logrus.FieldLogger
}

// NewBookingService creates a new booking service. capacityMode selects
// between the row-locked write (config.CapacityModeAtomic) and a plain write
// after the capacity check (config.CapacityModeCheck).
func NewBookingService(
	bookings BookingStore,
	capacity *RoomCapacityService,
	eligibility *EligibilityService,
	capacityMode string,
	logger logrus.FieldLogger,
) *BookingService {
	return &BookingService{
		bookings:     bookings,
		capacity:     capacity,
		eligibility:  eligibility,
		atomicWrites: capacityMode != config.CapacityModeCheck,
		logger:       logger,
	}
}

// WithEvents sets the publisher notified after successful writes
func (s *BookingService) WithEvents(events BookingEventPublisher) *BookingService {
	s.events = events
	return s
}

// WithAuditor sets the audit recorder
func (s *BookingService) WithAuditor(auditor BookingAuditor) *BookingService {
	s.auditor = auditor
	return s
}

// GetBooking returns the user's current booking with its room
func (s *BookingService) GetBooking(ctx context.Context, userID int) (result *models.BookingWithRoom, err error) {
	defer s.finish(ctx, OpGetBooking, time.Now(), userID, 0, 0, &err)

	booking, err := s.bookings.FindByUserID(ctx, userID)
	if err != nil {
		return nil, storeUnavailable(err)
	}
	if booking == nil || booking.Room == nil {
		return nil, newError(KindNotFound, ReasonBookingNotFound)
	}

	return &models.BookingWithRoom{ID: booking.ID, Room: *booking.Room}, nil
}

// CreateBooking books roomID for the user and returns the new booking id.
// The room is validated before the user's ticket.
func (s *BookingService) CreateBooking(ctx context.Context, userID, roomID int) (bookingID int, err error) {
	defer s.finish(ctx, OpCreateBooking, time.Now(), userID, 0, roomID, &err)

	if err := s.capacity.VerifyRoom(ctx, roomID); err != nil {
		return 0, err
	}

	if err := s.eligibility.VerifyTicketOfUser(ctx, userID); err != nil {
		return 0, err
	}

	var booking *models.Booking
	if s.atomicWrites {
		booking, err = s.bookings.CreateWithinCapacity(ctx, userID, roomID)
	} else {
		booking, err = s.bookings.Create(ctx, userID, roomID)
	}
	if err != nil {
		return 0, writeError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"room_id":    roomID,
		"booking_id": booking.ID,
	}).Info("Booking created")

	if s.auditor != nil {
		if err := s.auditor.LogBookingCreated(ctx, booking); err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("Failed to audit booking creation")
		}
	}
	if s.events != nil {
		if err := s.events.BookingCreated(ctx, booking); err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("Failed to publish booking event")
		}
	}

	return booking.ID, nil
}

// UpdateBooking moves the user's booking to roomID and returns its id.
// Existence and ownership are checked before the destination room.
func (s *BookingService) UpdateBooking(ctx context.Context, userID, bookingID, roomID int) (updatedID int, err error) {
	defer s.finish(ctx, OpUpdateBooking, time.Now(), userID, bookingID, roomID, &err)

	if bookingID <= 0 {
		return 0, newError(KindBookingIDInvalid, "")
	}

	current, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return 0, storeUnavailable(err)
	}
	if current == nil {
		return 0, newError(KindNotFound, ReasonBookingNotFound)
	}
	if current.UserID != userID {
		return 0, newError(KindBookingNotOwned, "")
	}

	if err := s.capacity.VerifyRoom(ctx, roomID); err != nil {
		return 0, err
	}

	var booking *models.Booking
	if s.atomicWrites {
		booking, err = s.bookings.UpdateRoomWithinCapacity(ctx, bookingID, roomID)
	} else {
		booking, err = s.bookings.UpdateRoom(ctx, bookingID, roomID)
	}
	if err != nil {
		return 0, writeError(err)
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":          userID,
		"booking_id":       booking.ID,
		"room_id":          roomID,
		"previous_room_id": current.RoomID,
	}).Info("Booking moved to another room")

	if s.auditor != nil {
		if err := s.auditor.LogBookingRoomChanged(ctx, booking, current.RoomID); err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("Failed to audit booking update")
		}
	}
	if s.events != nil {
		if err := s.events.RoomChanged(ctx, booking, current.RoomID); err != nil {
			s.logger.WithError(err).WithField("booking_id", booking.ID).Warn("Failed to publish booking event")
		}
	}

	return booking.ID, nil
}

// finish records metrics and logs the outcome. Business rejections of writes
// are also audited.
func (s *BookingService) finish(ctx context.Context, operation string, start time.Time, userID, bookingID, roomID int, errp *error) {
	err := *errp
	observe(operation, start, err)
	if err == nil {
		return
	}

	be, ok := AsBookingError(err)
	if !ok {
		be = storeUnavailable(err)
		*errp = be
	}

	fields := logrus.Fields{
		"operation": operation,
		"user_id":   userID,
		"kind":      be.Kind.String(),
	}
	if bookingID != 0 {
		fields["booking_id"] = bookingID
	}
	if roomID != 0 {
		fields["room_id"] = roomID
	}
	if be.Reason != "" {
		fields["reason"] = be.Reason
	}

	if be.Kind == KindStoreUnavailable {
		s.logger.WithFields(fields).WithError(be.Err).Error("Booking store unavailable")
		return
	}
	s.logger.WithFields(fields).Info("Booking request rejected")

	if s.auditor != nil && operation != OpGetBooking {
		if err := s.auditor.LogBookingRejected(ctx, userID, operation, bookingID, roomID, be); err != nil {
			s.logger.WithError(err).Warn("Failed to audit booking rejection")
		}
	}
}

// writeError maps the capacity-aware writers' sentinels onto booking errors
func writeError(err error) error {
	switch {
	case errors.Is(err, database.ErrRoomFull):
		return newError(KindRoomIDInvalid, ReasonRoomFull)
	case errors.Is(err, database.ErrRoomNotFound):
		return newError(KindNotFound, ReasonRoomNotFound)
	case errors.Is(err, database.ErrBookingNotFound):
		return newError(KindNotFound, ReasonBookingNotFound)
	default:
		return storeUnavailable(err)
	}
}
