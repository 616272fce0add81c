package postgres

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID transaction IDs. ULIDs sort by creation time,
// which keeps the transaction log index append-friendly.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
