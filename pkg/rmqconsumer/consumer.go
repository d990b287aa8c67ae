package rmqconsumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-registry-api/config"
)

// can scale depends on a parallel worker count
const preFetchCount = 1

const routingKeyUserRegistered = "user.registered"

type (
	Consumer struct {
		cfg        config.MQ
		log        *zap.Logger
		conn       *amqp091.Connection
		chConsume  *amqp091.Channel
		chDelivery <-chan amqp091.Delivery
	}
	userRegistered struct {
		EventID string `json:"event_id"`
		Type    string `json:"event_type"`
		UserID  string `json:"user_id"`
	}
)

func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
	}
}

// Connect reuses the connection handed to New when it is still open and
// dials dsn otherwise.
func (c *Consumer) Connect(dsn string) error {
	if c.conn == nil || c.conn.IsClosed() {
		conn, err := amqp091.Dial(dsn)
		if err != nil {
			return fmt.Errorf("amqp dial: %w", err)
		}
		c.conn = conn
	}

	ch, err := c.conn.Channel()
	if err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.chConsume = ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := c.chConsume.ExchangeDeclare(
		c.cfg.Exchange,
		c.cfg.ExchangeType,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("exchange declare: %w", err)
	}
	if _, err := c.chConsume.QueueDeclare(
		c.cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	if err := c.chConsume.QueueBind(
		c.cfg.QueueName,
		routingKeyUserRegistered,
		c.cfg.Exchange,
		false,
		nil,
	); err != nil {
		return fmt.Errorf("queue bind %s: %w", routingKeyUserRegistered, err)
	}

	if err := c.chConsume.Qos(preFetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	deliveries, err := c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	c.chDelivery = deliveries

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				return
			}
			// we can also use "fan-out" chan here with "worker-pool"
			// in case of heavy logic processing of messages
			if err := c.delivery(msg); err != nil {
				// alert
				c.log.Error("mq read message error", zap.Error(err))
			}
		case <-ctx.Done():
			_ = c.chConsume.Close()
			return
		}
	}
}

// delivery acks events it understood and drops the rest without requeue,
// a malformed body will not parse on the next attempt either.
func (c *Consumer) delivery(msg amqp091.Delivery) error {
	if msg.RoutingKey != routingKeyUserRegistered {
		_ = msg.Nack(false, false)
		return fmt.Errorf("unexpected routing key %q", msg.RoutingKey)
	}

	var e userRegistered
	if err := json.Unmarshal(msg.Body, &e); err != nil {
		_ = msg.Nack(false, false)
		return fmt.Errorf("decode event %s: %w", msg.MessageId, err)
	}

	c.log.Info("UserRegistered",
		zap.String("event_id", e.EventID),
		zap.String("user_id", e.UserID),
	)

	return msg.Ack(false)
}
