package tokengenerator

import (
	"fullauth/internal/core/domain/token"

	"github.com/google/uuid"
)

// UUID generates token values as random (version 4) UUIDs.
type UUID struct{}

func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) GenerateToken() token.Value {
	return token.Value(uuid.NewString())
}
