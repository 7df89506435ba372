package email

import (
	"context"
	"fullauth/internal/core/domain/mail"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

type SESSender struct {
	ses *ses.Client
	// This address must be verified with Amazon SES.
	sender string
}

func NewSESSender(awsConfig aws.Config, sender string) *SESSender {
	return &SESSender{
		ses:    ses.NewFromConfig(awsConfig),
		sender: sender,
	}
}

func (s *SESSender) Send(ctx context.Context, message mail.Message) error {
	_, err := s.ses.SendEmail(ctx, sesInput(s.sender, message))
	return err
}

func sesInput(sender string, message mail.Message) *ses.SendEmailInput {
	return &ses.SendEmailInput{
		Source: aws.String(sender),
		Destination: &types.Destination{
			CcAddresses: []string{},
			ToAddresses: []string{string(message.To)},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String(charset),
				Data:    aws.String(message.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String(charset),
					Data:    aws.String(message.HTMLBody),
				},
			},
		},
	}
}
