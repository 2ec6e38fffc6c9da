package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"together/internal/domain"
)

const (
	DefaultExchange = "together.notifications"

	confirmTimeout = 5 * time.Second
)

// confirmation resolves to the broker's ack or nack for exactly one publishing.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

// channel is the publishing side of an *amqp.Channel in confirm mode.
type channel interface {
	publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
	Close() error
}

type amqpChannel struct {
	*amqp.Channel
}

func (c amqpChannel) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("channel is not in confirm mode")
	}
	return dc, nil
}

// Publisher publishes notifications to a durable topic exchange with publisher confirms.
// The routing key is the notification type; binding queues is the consumer's job.
type Publisher struct {
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   channel
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enable confirms: %w", err)
	}

	p := newPublisher(amqpChannel{ch}, exchange)
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) *Publisher {
	return &Publisher{exchange: exchange, ch: ch}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

// Publish sends n as JSON and waits for the broker to confirm that publishing.
// Each publishing carries its own confirmation, so a confirm arriving after a timeout
// is never mistaken for the confirm of a later message.
func (p *Publisher) Publish(ctx context.Context, n *domain.Notification) error {
	if n.Type == "" {
		return errors.New("missing notification type")
	}
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	p.mu.Lock()
	ch := p.ch
	p.mu.Unlock()
	if ch == nil {
		return errors.New("publisher channel not ready")
	}

	conf, err := ch.publish(ctx, p.exchange, string(n.Type), amqp.Publishing{
		MessageId:    n.ID,
		Type:         string(n.Type),
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    n.OccurredAt.UTC(),
		Headers:      amqp.Table{"recipient_id": n.RecipientID},
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", n.Type, err)
	}

	waitCtx, cancel := context.WithTimeout(ctx, confirmTimeout)
	defer cancel()
	ack, err := conf.WaitContext(waitCtx)
	if err != nil {
		return fmt.Errorf("publish %s: wait for confirm: %w", n.Type, err)
	}
	if !ack {
		return fmt.Errorf("publish %s: nack", n.Type)
	}
	return nil
}

var _ domain.NotificationPublisher = (*Publisher)(nil)
