package rabbitmq

import (
	"context"
	"fmt"
	"fullauth/internal/core/domain/logging"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Connection re-dials the broker when the underlying connection is lost.
type Connection struct {
	mu   sync.RWMutex
	conn *amqp.Connection
	log  logging.Logger
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{conn: conn, log: log}
	go connection.watch(url)

	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn
}

func (c *Connection) set(conn *amqp.Connection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn = conn
}

func (c *Connection) Close() error {
	return c.current().Close()
}

func (c *Connection) watch(url string) {
	ctx := context.Background()
	for {
		reason, ok := <-c.current().NotifyClose(make(chan *amqp.Error))
		if !ok {
			c.log.Info(ctx, "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(ctx, "RabbitMQ connection lost.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)

			conn, err := amqp.Dial(url)
			if err == nil {
				c.set(conn)
				c.log.Info(ctx, "RabbitMQ reconnect success.")
				break
			}
			c.log.Error(ctx, "RabbitMQ reconnect failed.", logging.Entry("err", err))
		}
	}
}

// Channel opens a channel that is recreated after the broker closes it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{ch: ch}
	go c.watchChannel(channel)

	return channel, nil
}

func (c *Connection) watchChannel(channel *Channel) {
	ctx := context.Background()
	for {
		reason, ok := <-channel.current().NotifyClose(make(chan *amqp.Error))
		if !ok || channel.IsClosed() {
			// sets the closed flag when the connection itself went away
			channel.Close()
			return
		}

		c.log.Warning(ctx, "RabbitMQ channel closed.", logging.Entry("reason", *reason))
		for {
			time.Sleep(reconnectDelay)

			ch, err := c.current().Channel()
			if err == nil {
				c.log.Info(ctx, "RabbitMQ channel recreated.")
				channel.set(ch)
				break
			}
			c.log.Error(ctx, "RabbitMQ channel recreate failed.", logging.Entry("err", err))
		}
	}
}

// Channel is safe for concurrent use while it is being recreated.
type Channel struct {
	mu     sync.RWMutex
	ch     *amqp.Channel
	closed int32
}

func (ch *Channel) current() *amqp.Channel {
	ch.mu.RLock()
	defer ch.mu.RUnlock()
	return ch.ch
}

func (ch *Channel) set(c *amqp.Channel) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.ch = c
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return atomic.LoadInt32(&ch.closed) == 1
}

func (ch *Channel) Close() error {
	if !atomic.CompareAndSwapInt32(&ch.closed, 0, 1) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// DeclareTopicExchange declares a durable topic exchange.
func (ch *Channel) DeclareTopicExchange(name string) error {
	return ch.current().ExchangeDeclare(name, amqp.ExchangeTopic, true, false, false, false, nil)
}

func (ch *Channel) PublishWithContext(
	ctx context.Context,
	exchange string,
	key string,
	mandatory bool,
	immediate bool,
	msg amqp.Publishing,
) error {
	return ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}
