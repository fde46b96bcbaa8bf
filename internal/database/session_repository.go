package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/drivent/hotel-booking/internal/models"
)

// SessionRepository handles login session lookups
type SessionRepository struct {
	db DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

// FindByToken returns the session for an issued token, or nil when none exists
func (r *SessionRepository) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `SELECT id, user_id, token, created_at, updated_at FROM sessions WHERE token = $1`

	session := &models.Session{}
	err := r.db.GetContext(ctx, session, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}

	return session, nil
}
