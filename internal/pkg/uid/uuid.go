package uid

import "github.com/google/uuid"

// UUID generates RFC 4122 UUID strings. V7 is preferred because its
// time-ordered prefix keeps index pages warm; V4 is the fallback when
// the clock-based generator fails.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
