package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateBookingReference(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-F]{8}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		ref := GenerateBookingReference()
		assert.Regexp(t, pattern, ref)
		seen[ref] = true
	}

	// 100 draws from a 16^8 space should not collide
	assert.Len(t, seen, 100)
}

func TestGenerateTicketReference(t *testing.T) {
	pattern := regexp.MustCompile(`^SUP-[0-9A-F]{6}$`)

	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateTicketReference())
	}
}
