package utils

import "github.com/google/uuid"

// UUIDGenerator mints identifiers used in attachment object keys. V7 ids
// keep one note's objects roughly time-ordered in bucket listings.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		// the v7 constructor only fails without a usable clock source
		return uuid.NewString()
	}
	return id.String()
}
