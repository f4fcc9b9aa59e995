package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{conn: conn, channel: ch}
	if err := producer.setupTopology(); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}
	return producer, nil
}

func (p *Producer) setupTopology() error {
	err := p.channel.ExchangeDeclare(
		WatchEventExchange,
		"direct",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare watch event exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		WatchEventQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare watch event queue: %w", err)
	}

	err = p.channel.QueueBind(WatchEventQueue, "", WatchEventExchange, false, nil)
	if err != nil {
		return fmt.Errorf("failed to bind watch event queue: %w", err)
	}
	return nil
}

func (p *Producer) PublishWatchEvent(ctx context.Context, event *WatchEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal watch event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		WatchEventExchange,
		"",
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish watch event: %w", err)
	}

	logrus.Debugf("published watch event: user=%d video=%d", event.UserID, event.VideoID)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
