package core

import "github.com/google/uuid"

// NewID returns a fresh record id. UUIDv7 keeps ids roughly time ordered.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return id.String()
}
