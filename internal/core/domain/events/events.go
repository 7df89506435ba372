package events

import (
	"context"
	c "fullauth/internal/core/domain/common"
	"fullauth/internal/core/domain/user"
	"time"
)

type PasswordResetCompleted struct {
	UserID user.ID
	Email  c.Email
	At     time.Time
}

// Publisher delivers security events to other services.
type Publisher interface {
	PublishPasswordResetCompleted(ctx context.Context, event PasswordResetCompleted) error
}

type NopPublisher struct{}

func NewNopPublisher() *NopPublisher {
	return &NopPublisher{}
}

func (p *NopPublisher) PublishPasswordResetCompleted(ctx context.Context, event PasswordResetCompleted) error {
	return nil
}
