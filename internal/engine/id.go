package engine

import "github.com/google/uuid"

// NewSessionID returns a fresh random session id.
func NewSessionID() string {
	return uuid.NewString()
}

// ValidSessionID reports whether id looks like one NewSessionID produced.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
