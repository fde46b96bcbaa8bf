package validator

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrEmptyID indicates the identifier is empty
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrInvalidID indicates the identifier is not an integer
	ErrInvalidID = errors.New("id must be an integer")
)

// ParseID parses a path identifier as a base-10 integer. Range checks are
// left to the caller; zero and negative values are returned as parsed.
func ParseID(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, ErrEmptyID
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidID
	}

	return id, nil
}
