package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/drivent/hotel-booking/internal/database"
	"github.com/drivent/hotel-booking/internal/models"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockAudit(t *testing.T) (*AuditService, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewPostgresDB(sqlx.NewDb(mockDB, "sqlmock"))
	return NewAuditService(db), mock
}

func TestAuditService_LogBookingCreated(t *testing.T) {
	svc, mock := newMockAudit(t)
	ctx := WithRequestMeta(context.Background(), RequestMeta{IPAddress: "203.0.113.7", UserAgent: "curl/8.0"})
	booking := &models.Booking{ID: 9, UserID: 1, RoomID: 3}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(1, AuditBookingCreated, "booking", 9, "203.0.113.7", "curl/8.0", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		assert.NoError(t, svc.LogBookingCreated(ctx, booking))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WillReturnError(fmt.Errorf("database error"))

		err := svc.LogBookingCreated(ctx, booking)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to log audit event")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuditService_LogBookingRoomChanged(t *testing.T) {
	svc, mock := newMockAudit(t)

	mock.ExpectExec(`INSERT INTO audit_logs`).
		WithArgs(1, AuditBookingRoomChanged, "booking", 9, "", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := svc.LogBookingRoomChanged(context.Background(), &models.Booking{ID: 9, UserID: 1, RoomID: 4}, 3)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditService_LogBookingRejected(t *testing.T) {
	svc, mock := newMockAudit(t)
	ctx := context.Background()

	t.Run("Create Has No Entity", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(1, AuditBookingRejected, "booking", nil, "", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := svc.LogBookingRejected(ctx, 1, OpCreateBooking, 0, 3, newError(KindRoomIDInvalid, ReasonRoomFull))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Update Names The Booking", func(t *testing.T) {
		mock.ExpectExec(`INSERT INTO audit_logs`).
			WithArgs(2, AuditBookingRejected, "booking", 9, "", "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err := svc.LogBookingRejected(ctx, 2, OpUpdateBooking, 9, 3, newError(KindBookingNotOwned, ""))
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAuditService_CleanupOldAuditLogs(t *testing.T) {
	svc, mock := newMockAudit(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM audit_logs WHERE created_at`).
			WithArgs(sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 12))

		deleted, err := svc.CleanupOldAuditLogs(ctx, 90*24*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, int64(12), deleted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database Error", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM audit_logs`).
			WillReturnError(fmt.Errorf("database error"))

		_, err := svc.CleanupOldAuditLogs(ctx, time.Hour)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
