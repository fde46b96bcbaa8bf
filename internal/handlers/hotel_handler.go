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

// HotelService is the hotel listing used by the handler
type HotelService interface {
	ListHotels(ctx context.Context, userID int) ([]models.Hotel, error)
	ListRoomsByHotelID(ctx context.Context, hotelID int) ([]models.Room, error)
}

// HotelHandler handles hotel listing requests
type HotelHandler struct {
	hotelService HotelService
	logger       logrus.FieldLogger
}

// NewHotelHandler creates a new hotel handler
func NewHotelHandler(hotelService HotelService, logger logrus.FieldLogger) *HotelHandler {
	return &HotelHandler{
		hotelService: hotelService,
		logger:       logger,
	}
}

// ListHotels handles GET /hotels
func (h *HotelHandler) ListHotels(c *gin.Context) {
	userID, ok := authenticatedUser(c)
	if !ok {
		return
	}

	hotels, err := h.hotelService.ListHotels(requestContext(c), userID)
	if err != nil {
		respondError(c, listHotelsStatus(err), err)
		return
	}

	c.JSON(http.StatusOK, hotels)
}

// ListRooms handles GET /hotels/:hotelId
func (h *HotelHandler) ListRooms(c *gin.Context) {
	hotelID, err := validator.ParseID(c.Param("hotelId"))
	if err != nil {
		respondBadRequest(c, "hotelId must be an integer", "HOTEL_ID_INVALID")
		return
	}

	rooms, err := h.hotelService.ListRoomsByHotelID(requestContext(c), hotelID)
	if err != nil {
		respondError(c, http.StatusNotFound, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// listHotelsStatus maps eligibility failures: a missing enrollment or ticket
// is 404, a ticket of the wrong kind is 400.
func listHotelsStatus(err error) int {
	be, ok := services.AsBookingError(err)
	if !ok {
		return http.StatusBadRequest
	}

	switch be.Kind {
	case services.KindEnrollmentNotFound:
		return http.StatusNotFound
	case services.KindTicketInvalid:
		if be.Reason == services.ReasonTicketNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadRequest
	case services.KindNotFound, services.KindRoomIDInvalid, services.KindBookingIDInvalid,
		services.KindBookingNotOwned, services.KindStoreUnavailable:
		return http.StatusBadRequest
	}
	return http.StatusBadRequest
}
