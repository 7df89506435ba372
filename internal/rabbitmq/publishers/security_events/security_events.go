package securityevents

import (
	"context"
	e "fullauth/internal/core/domain/errors"
	"fullauth/internal/core/domain/events"
	"fullauth/internal/core/domain/logging"
	"fullauth/internal/rabbitmq/schema"

	"github.com/rabbitmq/amqp091-go"
)

type channel interface {
	PublishWithContext(
		ctx context.Context,
		exchange string,
		key string,
		mandatory bool,
		immediate bool,
		msg amqp091.Publishing,
	) error
}

type RabbitMQ struct {
	log      logging.Logger
	channel  channel
	exchange string
}

func NewRabbitMQ(log logging.Logger, channel channel, exchange string) *RabbitMQ {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if channel == nil {
		panic(e.NewNilArgumentError("channel"))
	}
	return &RabbitMQ{log: log, channel: channel, exchange: exchange}
}

func (p *RabbitMQ) PublishPasswordResetCompleted(ctx context.Context, event events.PasswordResetCompleted) error {
	message := schema.PasswordResetCompleted{
		UserID: int64(event.UserID),
		Email:  string(event.Email),
		At:     event.At.UTC(),
	}
	body, err := message.Marshal()
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		schema.PasswordResetCompletedRoutingKey,
		false,
		false,
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    message.At,
			Body:         body,
		},
	)
	if err != nil {
		return err
	}
	p.log.Info(
		ctx,
		"AMQP message has been successfully published.",
		logging.Entry("exchange", p.exchange),
		logging.Entry("RK", schema.PasswordResetCompletedRoutingKey),
		logging.Entry("userID", event.UserID),
	)
	return nil
}
