package mail

import (
	"context"
	c "fullauth/internal/core/domain/common"
	e "fullauth/internal/core/domain/errors"
)

var ErrDeliveryFailed = e.New(e.ErrDeliveryFailed, "could not send email")

type Message struct {
	To       c.Email
	Subject  string
	HTMLBody string
}

type Sender interface {
	Send(ctx context.Context, message Message) error
}
