package email

import (
	"context"
	e "fullauth/internal/core/domain/errors"
	"fullauth/internal/core/domain/logging"
	"fullauth/internal/core/domain/mail"
)

// LogSender writes messages to the log instead of delivering them.
// Used for local development.
type LogSender struct {
	log logging.Logger
}

func NewLogSender(log logging.Logger) *LogSender {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &LogSender{log: log}
}

func (s *LogSender) Send(ctx context.Context, message mail.Message) error {
	s.log.Info(
		ctx,
		"Email message.",
		logging.Entry("to", message.To),
		logging.Entry("subject", message.Subject),
		logging.Entry("body", message.HTMLBody),
	)
	return nil
}
