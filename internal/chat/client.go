// Package chat bridges the bot to the chat session gateway over AMQP.
// The gateway owns the actual chat account (auth, QR, socket reconnects)
// and publishes inbound message envelopes to a queue; replies go back out
// through the exchange.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Config struct {
	URL          string
	Exchange     string
	InboundQueue string
	OutboundKey  string

	// Reconnect backoff bounds. The broker being down must not turn
	// into a hot loop.
	MinBackoff time.Duration
	MaxBackoff time.Duration
}

// Handler consumes one inbound envelope. A returned error requeues the
// delivery.
type Handler func(ctx context.Context, msg MessageEnvelope) error

type Client struct {
	cfg Config

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewClient(cfg Config) *Client {
	if cfg.MinBackoff <= 0 {
		cfg.MinBackoff = time.Second
	}
	if cfg.MaxBackoff < cfg.MinBackoff {
		cfg.MaxBackoff = 2 * time.Minute
	}
	return &Client{cfg: cfg}
}

func (c *Client) connect() error {
	conn, err := amqp091.Dial(c.cfg.URL)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	if err := declareTopology(channel, c.cfg); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare topology: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.channel = channel
	c.mu.Unlock()
	return nil
}

func declareTopology(channel *amqp091.Channel, cfg Config) error {
	if err := channel.ExchangeDeclare(
		cfg.Exchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := channel.QueueDeclare(
		cfg.InboundQueue, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	); err != nil {
		return fmt.Errorf("declare inbound queue: %w", err)
	}

	if err := channel.QueueBind(cfg.InboundQueue, cfg.InboundQueue, cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("bind inbound queue: %w", err)
	}

	return nil
}

// SendMessage publishes one reply for the gateway to deliver.
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()
	if channel == nil {
		return errors.New("not connected")
	}

	body, err := Reply{ChatID: chatID, Text: text}.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal reply: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = channel.PublishWithContext(
		ctx,
		c.cfg.Exchange,    // exchange
		c.cfg.OutboundKey, // routing key
		false,             // mandatory
		false,             // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish reply: %w", err)
	}

	slog.InfoContext(ctx, "Reply sent", "chat_id", chatID)
	return nil
}

// consume processes inbound envelopes on the current connection until it
// drops or the context ends. One delivery at a time, in arrival order.
func (c *Client) consume(ctx context.Context, handler Handler) error {
	c.mu.Lock()
	channel := c.channel
	c.mu.Unlock()
	if channel == nil {
		return errors.New("not connected")
	}

	msgs, err := channel.Consume(
		c.cfg.InboundQueue, // queue
		"",                 // consumer
		false,              // auto-ack (manual ack below)
		false,              // exclusive
		false,              // no-local
		false,              // no-wait
		nil,                // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Consuming inbound messages", "queue", c.cfg.InboundQueue)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}

			msg, err := EnvelopeFromJSON(delivery.Body)
			if err != nil {
				slog.ErrorContext(ctx, "Failed to unmarshal envelope", "error", err)
				delivery.Nack(false, false) // reject, don't requeue
				continue
			}

			if err := handler(ctx, msg); err != nil {
				slog.ErrorContext(ctx, "Failed to handle message",
					"error", err,
					"chat_id", msg.ChatID)
				delivery.Nack(false, true) // reject and requeue
				continue
			}

			delivery.Ack(false)
		}
	}
}

// Run connects, consumes, and reconnects with exponential backoff until
// the context is cancelled.
func (c *Client) Run(ctx context.Context, handler Handler) error {
	attempt := 0
	for {
		if err := c.connect(); err != nil {
			slog.ErrorContext(ctx, "Chat bridge connect failed", "error", err, "attempt", attempt)
		} else {
			slog.InfoContext(ctx, "Chat bridge connected")
			attempt = 0
			err := c.consume(ctx, handler)
			c.closeConn()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.WarnContext(ctx, "Chat bridge connection lost", "error", err)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.backoff(attempt)):
		}
		attempt++
	}
}

// backoff doubles the minimum per attempt, capped at the maximum.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.cfg.MinBackoff
	for i := 0; i < attempt; i++ {
		d *= 2
		if d >= c.cfg.MaxBackoff {
			return c.cfg.MaxBackoff
		}
	}
	return d
}

func (c *Client) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.channel != nil {
		c.channel.Close()
		c.channel = nil
	}
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

// Close tears the bridge down outside of Run's own cleanup.
func (c *Client) Close() error {
	c.closeConn()
	return nil
}
