package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID & TOKEN ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}

// ==================== REFERENCES ====================

// GenerateBookingReference returns the user-facing booking code: the first
// 8 hex characters of a random UUID, uppercased. Collisions are rare but the
// caller still checks uniqueness before committing.
func GenerateBookingReference() string {
	return strings.ToUpper(uuid.New().String()[:8])
}

// GenerateTicketReference returns a support ticket code like SUP-3FA8C1.
func GenerateTicketReference() string {
	return fmt.Sprintf("SUP-%s", strings.ToUpper(uuid.New().String()[:6]))
}
