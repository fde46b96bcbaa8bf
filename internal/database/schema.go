package database

import (
	"context"
	"fmt"
)

// schemaStatements create the tables the booking service reads and writes.
// Enrollments, tickets and sessions are owned by other services; they are
// created here only so a fresh database is usable.
var schemaStatements = []struct {
	name string
	sql  string
}{
	{"hotels", `
CREATE TABLE IF NOT EXISTS hotels (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	image VARCHAR(1024) NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"rooms", `
CREATE TABLE IF NOT EXISTS rooms (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	capacity INTEGER NOT NULL CHECK (capacity > 0),
	hotel_id INTEGER NOT NULL REFERENCES hotels(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"enrollments", `
CREATE TABLE IF NOT EXISTS enrollments (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL UNIQUE,
	name VARCHAR(255) NOT NULL,
	cpf VARCHAR(32) NOT NULL,
	phone VARCHAR(32) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"ticket_types", `
CREATE TABLE IF NOT EXISTS ticket_types (
	id SERIAL PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	price INTEGER NOT NULL,
	is_remote BOOLEAN NOT NULL,
	includes_hotel BOOLEAN NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"tickets", `
CREATE TABLE IF NOT EXISTS tickets (
	id SERIAL PRIMARY KEY,
	enrollment_id INTEGER NOT NULL REFERENCES enrollments(id),
	ticket_type_id INTEGER NOT NULL REFERENCES ticket_types(id),
	status VARCHAR(16) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"sessions", `
CREATE TABLE IF NOT EXISTS sessions (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL,
	token TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`},
	{"bookings", `
CREATE TABLE IF NOT EXISTS bookings (
	id SERIAL PRIMARY KEY,
	user_id INTEGER NOT NULL,
	room_id INTEGER NOT NULL REFERENCES rooms(id),
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings (user_id, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_bookings_room ON bookings (room_id);`},
	{"audit_logs", `
CREATE TABLE IF NOT EXISTS audit_logs (
	id BIGSERIAL PRIMARY KEY,
	user_id INTEGER,
	action VARCHAR(64) NOT NULL,
	entity_type VARCHAR(64) NOT NULL,
	entity_id INTEGER,
	ip_address VARCHAR(64) NOT NULL DEFAULT '',
	user_agent TEXT NOT NULL DEFAULT '',
	details JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_audit_logs_created ON audit_logs (created_at);`},
}

// InitializeDBSchema creates any missing tables and indexes
func InitializeDBSchema(ctx context.Context, db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt.sql); err != nil {
			return fmt.Errorf("failed to create %s table: %w", stmt.name, err)
		}
	}
	return nil
}
