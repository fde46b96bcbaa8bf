package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/drivent/hotel-booking/internal/middleware"
	"github.com/drivent/hotel-booking/internal/services"
	"github.com/drivent/hotel-booking/internal/utils"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var kindMessages = map[services.ErrorKind]string{
	services.KindNotFound:           "Resource not found",
	services.KindEnrollmentNotFound: "User has no enrollment",
	services.KindTicketInvalid:      "Ticket does not allow hotel booking",
	services.KindRoomIDInvalid:      "Room is full",
	services.KindBookingIDInvalid:   "Booking id must be a positive integer",
	services.KindBookingNotOwned:    "Booking does not belong to user",
	services.KindStoreUnavailable:   "Service temporarily unavailable",
}

// respondError writes the error body for a service failure
func respondError(c *gin.Context, status int, err error) {
	be, ok := services.AsBookingError(err)
	if !ok {
		c.JSON(status, ErrorResponse{
			Error:   services.KindStoreUnavailable.String(),
			Message: kindMessages[services.KindStoreUnavailable],
			Code:    "STORE_UNAVAILABLE",
		})
		return
	}

	code := strings.ToUpper(be.Kind.String())
	if be.Reason != "" {
		code = strings.ToUpper(be.Reason)
	}
	c.JSON(status, ErrorResponse{
		Error:   be.Kind.String(),
		Message: kindMessages[be.Kind],
		Code:    code,
	})
}

func respondBadRequest(c *gin.Context, message, code string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    code,
	})
}

// authenticatedUser returns the user id set by the auth middleware, writing a
// 401 when it is missing
func authenticatedUser(c *gin.Context) (int, bool) {
	userCtx, ok := middleware.GetUserContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Error:   "unauthorized",
			Message: "User context not found",
			Code:    "MISSING_USER_CONTEXT",
		})
		return 0, false
	}
	return userCtx.UserID, true
}

// requestContext carries the caller's ip and user agent down to the audit log
func requestContext(c *gin.Context) context.Context {
	return services.WithRequestMeta(c.Request.Context(), services.RequestMeta{
		IPAddress: utils.GetRealIP(c),
		UserAgent: utils.GetUserAgent(c),
	})
}
