package models

import (
	"encoding/json"
	"time"
)

// AuditLog is one row of the audit_logs table
type AuditLog struct {
	ID         int64           `json:"id" db:"id"`
	UserID     *int            `json:"user_id,omitempty" db:"user_id"`
	Action     string          `json:"action" db:"action"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   *int            `json:"entity_id,omitempty" db:"entity_id"`
	IPAddress  string          `json:"ip_address" db:"ip_address"`
	UserAgent  string          `json:"user_agent" db:"user_agent"`
	Details    json.RawMessage `json:"details" db:"details"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
