package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-registry-api/config"
	"user-registry-api/internal/interface/api/rest/dto/user"
)

// "Rely on metrics, not guesses."
const bufferSize = 128

const (
	EventUserRegistered      = "UserRegistered"
	RoutingKeyUserRegistered = "user.registered"
)

type (
	InputCh = chan Event
	// publishChannel is the part of *amqp091.Channel the publisher uses.
	publishChannel interface {
		ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
		QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
		QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
		PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
		Close() error
	}
	RabbitMQ struct {
		cfg   config.MQ
		log   *zap.Logger
		conn  *amqp091.Connection
		pubCh publishChannel
		in    InputCh
	}
	Event struct {
		Id      uuid.UUID `json:"event_id"`
		TS      time.Time `json:"time_stamp"`
		Type    string    `json:"event_type"`
		UserID  string    `json:"user_id"`
		Payload user.User `json:"user_payload"`
	}
)

func NewUserRegistered(userID uuid.UUID, payload user.User, ts time.Time) Event {
	return Event{
		Id:      uuid.New(),
		TS:      ts,
		Type:    EventUserRegistered,
		UserID:  userID.String(),
		Payload: payload,
	}
}

func New(cfg config.MQ, logger *zap.Logger) *RabbitMQ {
	return &RabbitMQ{
		cfg: cfg,
		log: logger,
		in:  make(chan Event, bufferSize),
	}
}

func (r *RabbitMQ) Connect(ctx context.Context, dsn string) error {
	dialer := &net.Dialer{Timeout: 10 * time.Second}

	amqpCfg := amqp091.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Properties: amqp091.Table{
			"connection_name": "userregistryapi",
		},
		Dial: func(network, addr string) (net.Conn, error) {
			return dialer.DialContext(ctx, network, addr)
		},
	}

	conn, err := amqp091.DialConfig(dsn, amqpCfg)
	if err != nil {
		return err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return err
	}
	r.conn, r.pubCh = conn, ch

	r.log.Info("rabbitmq connected successfully")

	return nil
}

// Init declares the topology. The publish channel is closed on any failure.
func (r *RabbitMQ) Init() error {
	if err := r.declare(); err != nil {
		_ = r.pubCh.Close()
		return err
	}

	return nil
}

func (r *RabbitMQ) declare() error {
	if err := r.pubCh.ExchangeDeclare(
		r.cfg.Exchange,
		r.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	q, err := r.pubCh.QueueDeclare(
		r.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err = r.pubCh.QueueBind(q.Name, RoutingKeyUserRegistered, r.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("queue bind %s: %w", RoutingKeyUserRegistered, err)
	}

	return nil
}

// Publish enqueues e for the publisher worker without blocking the caller.
// It reports false when the buffer is full and the event was dropped.
func (r *RabbitMQ) Publish(e Event) bool {
	select {
	case r.in <- e:
		return true
	default:
		r.log.Warn("mq buffer full, event dropped",
			zap.String("event_id", e.Id.String()),
			zap.String("event_type", e.Type),
		)
		return false
	}
}

func (r *RabbitMQ) PublisherWorker(ctx context.Context) {
	r.log.Info("starting publisher worker")

	defer func() {
		r.log.Info("publisher worker gracefully stopped")
	}()

	for {
		select {
		case e := <-r.in:
			if err := r.publish(ctx, e); err != nil {
				// alert
				r.log.Error("mq publish error", zap.Error(err), zap.String("event_id", e.Id.String()))
			}
		case <-ctx.Done():
			_ = r.pubCh.Close()
			return
		}
	}
}

func (r *RabbitMQ) publish(ctx context.Context, e Event) error {
	pub, err := newPublishing(e)
	if err != nil {
		return err
	}

	return r.pubCh.PublishWithContext(
		ctx,
		r.cfg.Exchange,
		RoutingKeyUserRegistered,
		true,
		false,
		pub,
	)
}

func newPublishing(e Event) (amqp091.Publishing, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return amqp091.Publishing{}, err
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    e.Id.String(),
		Timestamp:    e.TS,
		Type:         e.Type,
		Body:         b,
	}, nil
}

func (r *RabbitMQ) GetConn() *amqp091.Connection { return r.conn }
