package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

// amqpDialer opens a channel with the queue declared. closed receives the
// connection error when the broker drops it and is closed on a clean shutdown.
type amqpDialer func() (ch amqpChannel, closed <-chan *amqp.Error, err error)

// AMQPPublisher sends events as persistent JSON messages to one durable
// queue through the default exchange. A dropped connection is redialed on
// the next publish.
type AMQPPublisher struct {
	queue string
	dial  amqpDialer
	log   *zap.Logger

	mu sync.Mutex
	ch amqpChannel
}

func NewAMQPPublisher(url, queue string, log *zap.Logger) (*AMQPPublisher, error) {
	return newAMQPPublisher(queue, func() (amqpChannel, <-chan *amqp.Error, error) {
		return dialAMQP(url, queue)
	}, log)
}

func newAMQPPublisher(queue string, dial amqpDialer, log *zap.Logger) (*AMQPPublisher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &AMQPPublisher{queue: queue, dial: dial, log: log}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

type amqpSession struct {
	*amqp.Channel
	conn *amqp.Connection
}

func (s *amqpSession) IsClosed() bool { return s.conn.IsClosed() || s.Channel.IsClosed() }

func (s *amqpSession) Close() error {
	_ = s.Channel.Close()
	return s.conn.Close()
}

func dialAMQP(url, queue string) (amqpChannel, <-chan *amqp.Error, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq queue declare: %w", err)
	}

	closed := conn.NotifyClose(make(chan *amqp.Error, 1))
	return &amqpSession{Channel: ch, conn: conn}, closed, nil
}

// connect must be called with mu held or before p is shared.
func (p *AMQPPublisher) connect() error {
	ch, closed, err := p.dial()
	if err != nil {
		return err
	}
	p.ch = ch
	go p.watch(closed)
	return nil
}

func (p *AMQPPublisher) watch(closed <-chan *amqp.Error) {
	if closed == nil {
		return
	}
	for err := range closed {
		if err != nil {
			p.log.Warn("rabbitmq connection closed",
				zap.String("queue", p.queue),
				zap.Int("code", err.Code),
				zap.String("reason", err.Reason),
			)
		}
	}
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         e.Type,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		if err := p.reconnect(); err != nil {
			return err
		}
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg)
	if !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	if err := p.reconnect(); err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg)
}

func (p *AMQPPublisher) reconnect() error {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if err := p.connect(); err != nil {
		p.log.Warn("rabbitmq reconnect failed", zap.String("queue", p.queue), zap.Error(err))
		return err
	}
	p.log.Info("rabbitmq reconnected", zap.String("queue", p.queue))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return nil
	}
	err := p.ch.Close()
	p.ch = nil
	return err
}
