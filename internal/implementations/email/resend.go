package email

import (
	"context"
	"fullauth/internal/core/domain/mail"

	"github.com/resend/resend-go/v2"
)

type ResendSender struct {
	client *resend.Client
	sender string
}

func NewResendSender(apiKey string, sender string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		sender: sender,
	}
}

func (s *ResendSender) Send(ctx context.Context, message mail.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.client.Emails.Send(resendRequest(s.sender, message))
	return err
}

func resendRequest(sender string, message mail.Message) *resend.SendEmailRequest {
	return &resend.SendEmailRequest{
		From:    sender,
		To:      []string{string(message.To)},
		Subject: message.Subject,
		Html:    message.HTMLBody,
	}
}
