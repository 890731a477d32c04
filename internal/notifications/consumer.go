package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventSender доставка уведомлений по событию
type EventSender interface {
	Send(ctx context.Context, ev BookingCreatedEvent) error
}

// Consumer читает события из очереди и отправляет уведомления
type Consumer struct {
	url         string
	queue       string
	sender      EventSender
	sendTimeout time.Duration
	logger      Logger
}

// NewConsumer создает потребителя очереди
func NewConsumer(url, queue string, sender EventSender, sendTimeout time.Duration, logger Logger) *Consumer {
	return &Consumer{
		url:         url,
		queue:       queue,
		sender:      sender,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// Run подключается к брокеру и обрабатывает сообщения до отмены ctx.
// При обрыве соединения переподключается с экспоненциальной задержкой до 30 секунд.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return nil
		}

		conn, err := dialBroker(c.url, DialTimeout)
		if err != nil {
			c.logger.Warn("Run: failed to dial broker: %v; retrying in %s", err, backoff)
			if !sleep(ctx, backoff) {
				return nil
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if err == nil {
			return nil
		}
		c.logger.Warn("Run: consume loop ended: %v; reconnecting", err)
		if !sleep(ctx, 2*time.Second) {
			return nil
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(10, 0, false); err != nil {
		c.logger.Warn("consume: set QoS failed: %v", err)
	}
	if err := declareQueue(ch, c.queue); err != nil {
		return err
	}

	deliveries, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	c.logger.Info("consume: waiting for messages on queue=%s", c.queue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := c.Handle(ctx, d.Body); err != nil {
				c.logger.Error("consume: message=%s rejected: %v", d.MessageId, err)
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Handle обрабатывает одно сообщение.
// Ошибка возвращается только для нечитаемых сообщений: повтор отправки
// продублировал бы уже доставленные письма.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	var ev BookingCreatedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if ev.BookingID == "" {
		return fmt.Errorf("%w: booking id is empty", ErrDecode)
	}

	sendCtx, cancel := context.WithTimeout(ctx, c.sendTimeout)
	defer cancel()

	if err := c.sender.Send(sendCtx, ev); err != nil {
		c.logger.Warn("Handle: notifications for booking=%s incomplete: %v", ev.BookingID, err)
		return nil
	}

	c.logger.Info("Handle: notifications sent for booking=%s", ev.BookingID)
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
