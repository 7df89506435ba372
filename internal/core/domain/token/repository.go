package token

import (
	"context"
	c "fullauth/internal/core/domain/common"
	"time"
)

type CreateInput struct {
	Email     c.Email
	Value     Value
	Purpose   Purpose
	ExpiresAt time.Time
}

// Repository stores single-use tokens. Every lookup is scoped by purpose.
type Repository interface {
	GetByValue(ctx context.Context, value Value, purpose Purpose) (Token, error)
	GetByEmail(ctx context.Context, email c.Email, purpose Purpose) (Token, error)
	Create(ctx context.Context, input CreateInput) (Token, error)
	Delete(ctx context.Context, id ID) error
}

type Generator interface {
	GenerateToken() Value
}
