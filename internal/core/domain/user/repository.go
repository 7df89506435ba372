package user

import (
	"context"
	c "fullauth/internal/core/domain/common"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email c.Email) (User, error)
	SetPassword(ctx context.Context, id ID, password PasswordHash) error
}
