package handlers

import (
	"context"
	"net/http"

	"github.com/drivent/hotel-booking/internal/models"
	"github.com/drivent/hotel-booking/internal/services"
	"github.com/drivent/hotel-booking/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// BookingService is the booking lifecycle used by the handler
type BookingService interface {
	GetBooking(ctx context.Context, userID int) (*models.BookingWithRoom, error)
	CreateBooking(ctx context.Context, userID, roomID int) (int, error)
	UpdateBooking(ctx context.Context, userID, bookingID, roomID int) (int, error)
}

// BookingHandler handles booking-related HTTP requests
type BookingHandler struct {
	bookingService BookingService
	logger         logrus.FieldLogger
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService BookingService, logger logrus.FieldLogger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// GetBooking handles GET /booking
func (h *BookingHandler) GetBooking(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.GetBooking(requestContext(c), userID)
	if err != nil {
		respondError(c, getBookingStatus(services.KindOf(err)), err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CreateBooking handles POST /booking
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Debug("Invalid booking request body")
		respondBadRequest(c, "roomId must be a positive integer", "INVALID_REQUEST")
		return
	}

	bookingID, err := h.bookingService.CreateBooking(requestContext(c), userID, req.RoomID)
	if err != nil {
		respondError(c, createBookingStatus(services.KindOf(err)), err)
		return
	}

	c.JSON(http.StatusOK, models.BookingIDResponse{BookingID: bookingID})
}

// UpdateBooking handles PUT /booking/:bookingId
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	bookingID, err := validator.ParseID(c.Param("bookingId"))
	if err != nil {
		respondBadRequest(c, "bookingId must be an integer", "BOOKING_ID_INVALID")
		return
	}

	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).WithField("user_id", userID).Debug("Invalid booking request body")
		respondBadRequest(c, "roomId must be a positive integer", "INVALID_REQUEST")
		return
	}

	updatedID, err := h.bookingService.UpdateBooking(requestContext(c), userID, bookingID, req.RoomID)
	if err != nil {
		respondError(c, updateBookingStatus(services.KindOf(err)), err)
		return
	}

	c.JSON(http.StatusOK, models.BookingIDResponse{BookingID: updatedID})
}

func getBookingStatus(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindStoreUnavailable:
		return http.StatusInternalServerError
	case services.KindEnrollmentNotFound, services.KindTicketInvalid, services.KindRoomIDInvalid,
		services.KindBookingIDInvalid, services.KindBookingNotOwned:
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func createBookingStatus(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindRoomIDInvalid, services.KindEnrollmentNotFound, services.KindTicketInvalid:
		return http.StatusForbidden
	case services.KindBookingIDInvalid, services.KindBookingNotOwned, services.KindStoreUnavailable:
		return http.StatusBadRequest
	}
	return http.StatusBadRequest
}

func updateBookingStatus(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindRoomIDInvalid:
		return http.StatusForbidden
	case services.KindBookingNotOwned, services.KindBookingIDInvalid:
		return http.StatusBadRequest
	case services.KindEnrollmentNotFound, services.KindTicketInvalid, services.KindStoreUnavailable:
		return http.StatusBadRequest
	}
	return http.StatusBadRequest
}
