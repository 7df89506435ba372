package securityevents

import (
	"context"
	"errors"
	"fullauth/internal/core/domain/events"
	"fullauth/internal/core/domain/logging"
	"fullauth/internal/rabbitmq/schema"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange    string
	key         string
	published   []amqp091.Publishing
	returnError bool
}

func (c *fakeChannel) PublishWithContext(
	ctx context.Context,
	exchange string,
	key string,
	mandatory bool,
	immediate bool,
	msg amqp091.Publishing,
) error {
	if c.returnError {
		return errors.New("channel closed")
	}
	c.exchange = exchange
	c.key = key
	c.published = append(c.published, msg)
	return nil
}

var event = events.PasswordResetCompleted{
	UserID: 42,
	Email:  "a@x.com",
	At:     time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC),
}

func TestPublishPasswordResetCompleted(t *testing.T) {
	assert := require.New(t)
	ch := &fakeChannel{}
	publisher := NewRabbitMQ(logging.NewFakeLogger(), ch, "security")

	err := publisher.PublishPasswordResetCompleted(context.Background(), event)

	assert.Nil(err)
	assert.Equal("security", ch.exchange)
	assert.Equal(schema.PasswordResetCompletedRoutingKey, ch.key)
	assert.Len(ch.published, 1)
	assert.Equal("application/json", ch.published[0].ContentType)

	var message schema.PasswordResetCompleted
	assert.Nil(message.Unmarshal(ch.published[0].Body))
	assert.Equal(int64(42), message.UserID)
	assert.Equal("a@x.com", message.Email)
	assert.True(event.At.Equal(message.At))
}

func TestPublishPasswordResetCompletedError(t *testing.T) {
	log := logging.NewFakeLogger()
	publisher := NewRabbitMQ(log, &fakeChannel{returnError: true}, "security")

	err := publisher.PublishPasswordResetCompleted(context.Background(), event)

	require.NotNil(t, err)
	require.Equal(t, 0, log.CountByLevel(logging.INFO))
}
