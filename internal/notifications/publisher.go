package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

const (
	// DialTimeout ограничивает TCP-подключение и AMQP-рукопожатие
	DialTimeout = 2 * time.Second

	publisherBuffer     = 256
	publishTimeout      = 5 * time.Second
	maxPublisherBackoff = 30 * time.Second
)

// QueuePublisher кладёт событие о новой записи в очередь RabbitMQ.
// Письма и SMS отправляет cmd/notifier.
//
// BookingCreated только ставит событие в буфер; подключение к брокеру
// и публикация выполняются фоновой горутиной.
type QueuePublisher struct {
	url         string
	queue       string
	dialTimeout time.Duration
	logger      Logger

	events  chan BookingCreatedEvent
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	// conn и ch принадлежат фоновой горутине
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewQueuePublisher создает издателя и запускает фоновую публикацию.
// Подключение открывается при первом событии.
func NewQueuePublisher(url, queue string, logger Logger) *QueuePublisher {
	return newQueuePublisher(url, queue, publisherBuffer, DialTimeout, logger)
}

func newQueuePublisher(url, queue string, buffer int, dialTimeout time.Duration, logger Logger) *QueuePublisher {
	ctx, cancel := context.WithCancel(context.Background())
	p := &QueuePublisher{
		url:         url,
		queue:       queue,
		dialTimeout: dialTimeout,
		logger:      logger,
		events:      make(chan BookingCreatedEvent, buffer),
		cancel:      cancel,
		stopped:     make(chan struct{}),
	}
	go p.run(ctx)
	return p
}

// BookingCreated ставит событие в очередь публикации и сразу возвращается.
// Если буфер заполнен (брокер недоступен), событие отбрасывается с предупреждением.
func (p *QueuePublisher) BookingCreated(_ context.Context, b *domain.Booking) error {
	ev := NewBookingCreatedEvent(b, uuid.NewString())

	select {
	case p.events <- ev:
		return nil
	default:
		p.logger.Warn("BookingCreated: publish buffer is full, event dropped booking=%s message=%s", ev.BookingID, ev.MessageID)
		return nil
	}
}

// Close останавливает фоновую публикацию. Накопленные события отправляются,
// только если подключение к брокеру уже открыто.
func (p *QueuePublisher) Close() error {
	var err error
	p.once.Do(func() {
		p.cancel()
		<-p.stopped
		err = p.closeConn()
	})
	return err
}

func (p *QueuePublisher) run(ctx context.Context) {
	defer close(p.stopped)

	for {
		select {
		case <-ctx.Done():
			p.drain()
			return
		case ev := <-p.events:
			p.deliver(ctx, ev)
		}
	}
}

// deliver публикует событие, переподключаясь с экспоненциальной задержкой до отмены ctx
func (p *QueuePublisher) deliver(ctx context.Context, ev BookingCreatedEvent) {
	backoff := time.Second
	for {
		err := p.publish(ctx, ev)
		if err == nil {
			p.logger.Info("BookingCreated: published booking=%s message=%s", ev.BookingID, ev.MessageID)
			return
		}

		p.logger.Warn("BookingCreated: %v; retrying in %s", err, backoff)
		if !sleep(ctx, backoff) {
			// Событие вернётся в буфер и попадёт в drain
			select {
			case p.events <- ev:
			default:
				p.logger.Warn("BookingCreated: event dropped on shutdown booking=%s", ev.BookingID)
			}
			return
		}
		if backoff < maxPublisherBackoff {
			backoff *= 2
		}
	}
}

// drain отправляет оставшиеся события, если соединение живо, иначе отбрасывает их
func (p *QueuePublisher) drain() {
	pending := len(p.events)
	if pending == 0 {
		return
	}
	if !p.connected() {
		p.logger.Warn("Close: broker unavailable, %d events dropped", pending)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	for i := 0; i < pending; i++ {
		ev := <-p.events
		if err := p.publish(ctx, ev); err != nil {
			p.logger.Warn("Close: %v, %d events dropped", err, pending-i)
			return
		}
	}
}

func (p *QueuePublisher) publish(ctx context.Context, ev BookingCreatedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("%w: marshal event: %v", ErrPublish, err)
	}

	ch, err := p.channel()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = ch.PublishWithContext(pubCtx,
		"",      // exchange по умолчанию
		p.queue, // routing key = имя очереди
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    ev.MessageID,
			Timestamp:    time.Now().UTC(),
			Type:         "booking.created",
			Body:         body,
		},
	)
	if err != nil {
		_ = p.closeConn()
		return fmt.Errorf("%w: publish booking=%s: %v", ErrPublish, ev.BookingID, err)
	}
	return nil
}

func (p *QueuePublisher) connected() bool {
	return p.ch != nil && !p.ch.IsClosed() && p.conn != nil && !p.conn.IsClosed()
}

// channel открытый канал, при необходимости переподключается
func (p *QueuePublisher) channel() (*amqp.Channel, error) {
	if p.connected() {
		return p.ch, nil
	}
	_ = p.closeConn()

	conn, err := dialBroker(p.url, p.dialTimeout)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := declareQueue(ch, p.queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}

	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *QueuePublisher) closeConn() error {
	var err error
	if p.ch != nil && !p.ch.IsClosed() {
		err = p.ch.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	p.ch, p.conn = nil, nil
	return err
}

// dialBroker подключается к брокеру с ограничением времени на рукопожатие
func dialBroker(url string, timeout time.Duration) (*amqp.Connection, error) {
	return amqp.DialConfig(url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
}

// declareQueue durable очередь, объявление идемпотентно
func declareQueue(ch *amqp.Channel, queue string) error {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return nil
}
