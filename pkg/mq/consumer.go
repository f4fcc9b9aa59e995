package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// WatchEventHandler processes one watch event. A non-nil error requeues
// the delivery once; a second failure drops it.
type WatchEventHandler func(ctx context.Context, event *WatchEvent) error

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	if err := ch.Qos(16, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}
	return &Consumer{conn: conn, channel: ch}, nil
}

// ConsumeWatchEvents blocks delivering watch events to handler until ctx
// is canceled.
func (c *Consumer) ConsumeWatchEvents(ctx context.Context, handler WatchEventHandler) error {
	deliveries, err := c.channel.Consume(
		WatchEventQueue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("watch event channel closed")
			}
			var event WatchEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				logrus.Errorf("failed to unmarshal watch event: %v", err)
				_ = delivery.Nack(false, false)
				continue
			}
			if err := handler(ctx, &event); err != nil {
				logrus.Errorf("watch event handler failed (event %s): %v", event.EventID, err)
				_ = delivery.Nack(false, !delivery.Redelivered)
				continue
			}
			_ = delivery.Ack(false)
		}
	}
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
