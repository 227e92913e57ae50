package events

import (
	"context"
	"fmt"
	"time"

	"budget-core/core/diff"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends change sets to interested consumers.
type Publisher interface {
	PublishChanges(ctx context.Context, topic string, cs diff.ChangeSet) error
	Close() error
}

// channel is the subset of *amqp091.Channel the publisher uses.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// AMQPPublisher publishes change messages over AMQP 0.9.1.
type AMQPPublisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	timeout  time.Duration
	log      *zap.Logger
}

// New returns an AMQP publisher when cfg.URL is set and a Nop otherwise.
func New(cfg *Config, log *zap.Logger) (Publisher, error) {
	if cfg == nil || cfg.URL == "" {
		return Nop{}, nil
	}
	return NewAMQPPublisher(cfg, log)
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(cfg *Config, log *zap.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, cfg, log)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, cfg *Config, log *zap.Logger) (*AMQPPublisher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	timeout := time.Duration(cfg.PublishTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		channel:  ch,
		exchange: cfg.Exchange,
		timeout:  timeout,
		log:      log,
	}, nil
}

// PublishChanges publishes cs under topic. Empty change sets are dropped.
func (p *AMQPPublisher) PublishChanges(ctx context.Context, topic string, cs diff.ChangeSet) error {
	if cs.IsEmpty() {
		return nil
	}

	body, err := NewChangeMessage(topic, cs).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		topic,      // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	p.log.Info("Published change message",
		zap.String("topic", topic),
		zap.String("exchange", p.exchange),
		zap.Int("changes", cs.Len()))
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// Nop discards every change set.
type Nop struct{}

// PublishChanges implements Publisher.
func (Nop) PublishChanges(context.Context, string, diff.ChangeSet) error { return nil }

// Close implements Publisher.
func (Nop) Close() error { return nil }
