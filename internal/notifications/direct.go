package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/StudioBookingService/internal/domain"
)

// DirectDispatcher отправляет уведомления в фоне из процесса API
type DirectDispatcher struct {
	sender  *Sender
	timeout time.Duration
	logger  Logger
	wg      sync.WaitGroup
}

// NewDirectDispatcher создает диспетчер прямой отправки
func NewDirectDispatcher(sender *Sender, timeout time.Duration, logger Logger) *DirectDispatcher {
	return &DirectDispatcher{sender: sender, timeout: timeout, logger: logger}
}

// BookingCreated запускает отправку и сразу возвращается.
// Отправка не зависит от отмены контекста запроса.
func (d *DirectDispatcher) BookingCreated(ctx context.Context, b *domain.Booking) error {
	ev := NewBookingCreatedEvent(b, uuid.NewString())

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()

		if err := d.sender.Send(sendCtx, ev); err != nil {
			d.logger.Warn("BookingCreated: notifications for booking=%s incomplete: %v", ev.BookingID, err)
		}
	}()

	return nil
}

// Wait ждёт завершения начатых отправок (graceful shutdown)
func (d *DirectDispatcher) Wait() {
	d.wg.Wait()
}

// Disabled уведомления выключены
type Disabled struct {
	logger Logger
}

// NewDisabled создает выключенный диспетчер
func NewDisabled(logger Logger) *Disabled {
	return &Disabled{logger: logger}
}

// BookingCreated только пишет в лог
func (d *Disabled) BookingCreated(_ context.Context, b *domain.Booking) error {
	d.logger.Info("BookingCreated: notifications disabled, booking=%s", b.ID)
	return nil
}
