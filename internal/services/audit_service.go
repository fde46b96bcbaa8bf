package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/drivent/hotel-booking/internal/database"
	"github.com/drivent/hotel-booking/internal/models"
	"github.com/drivent/hotel-booking/internal/utils"
)

// Audit actions
const (
	AuditBookingCreated     = "booking_created"
	AuditBookingRoomChanged = "booking_room_changed"
	AuditBookingRejected    = "booking_rejected"
)

const auditEntityBooking = "booking"

// AuditService handles audit logging for booking events
type AuditService struct {
	db database.DB
}

// NewAuditService creates a new audit service
func NewAuditService(db database.DB) *AuditService {
	return &AuditService{
		db: db,
	}
}

// LogBookingCreated logs a successful booking creation
func (s *AuditService) LogBookingCreated(ctx context.Context, booking *models.Booking) error {
	return s.logEvent(ctx, models.AuditLog{
		UserID:     &booking.UserID,
		Action:     AuditBookingCreated,
		EntityType: auditEntityBooking,
		EntityID:   &booking.ID,
	}, map[string]interface{}{
		"room_id": booking.RoomID,
	})
}

// LogBookingRoomChanged logs a booking being moved to another room
func (s *AuditService) LogBookingRoomChanged(ctx context.Context, booking *models.Booking, previousRoomID int) error {
	return s.logEvent(ctx, models.AuditLog{
		UserID:     &booking.UserID,
		Action:     AuditBookingRoomChanged,
		EntityType: auditEntityBooking,
		EntityID:   &booking.ID,
	}, map[string]interface{}{
		"room_id":          booking.RoomID,
		"previous_room_id": previousRoomID,
	})
}

// LogBookingRejected logs a create or update refused by a business rule.
// bookingID is zero for creations.
func (s *AuditService) LogBookingRejected(ctx context.Context, userID int, operation string, bookingID, roomID int, rejection *BookingError) error {
	entry := models.AuditLog{
		UserID:     &userID,
		Action:     AuditBookingRejected,
		EntityType: auditEntityBooking,
	}
	if bookingID > 0 {
		entry.EntityID = &bookingID
	}

	return s.logEvent(ctx, entry, map[string]interface{}{
		"operation": operation,
		"room_id":   roomID,
		"kind":      rejection.Kind.String(),
		"reason":    rejection.Reason,
	})
}

// logEvent writes one row to the audit_logs table with the caller's device info
func (s *AuditService) logEvent(ctx context.Context, entry models.AuditLog, details map[string]interface{}) error {
	meta := RequestMetaFrom(ctx)
	entry.IPAddress = meta.IPAddress
	entry.UserAgent = meta.UserAgent

	details["device_info"] = utils.ParseUserAgent(meta.UserAgent)
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	entry.Details = payload

	query := `
		INSERT INTO audit_logs (user_id, action, entity_type, entity_id, ip_address, user_agent, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`

	_, err = s.db.ExecContext(ctx, query,
		entry.UserID,
		entry.Action,
		entry.EntityType,
		entry.EntityID,
		entry.IPAddress,
		entry.UserAgent,
		[]byte(entry.Details),
	)
	if err != nil {
		return fmt.Errorf("failed to log audit event: %w", err)
	}

	return nil
}

// CleanupOldAuditLogs removes audit logs older than the specified duration
func (s *AuditService) CleanupOldAuditLogs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoffTime := time.Now().Add(-olderThan)

	result, err := s.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, cutoffTime)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old audit logs: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return rowsAffected, nil
}
