package notifications

import (
	"context"
	"errors"
	"fmt"
)

// Каналы уведомлений (метка метрики)
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Sender отправляет письмо клиенту и SMS оператору.
// Каналы независимы: ошибка одного не мешает другому.
type Sender struct {
	email         EmailSender
	sms           SMSSender
	operatorPhone string
	metrics       Metrics
	logger        Logger
}

// NewSender создает отправителя уведомлений
func NewSender(email EmailSender, sms SMSSender, operatorPhone string, metrics Metrics, logger Logger) *Sender {
	return &Sender{
		email:         email,
		sms:           sms,
		operatorPhone: operatorPhone,
		metrics:       metrics,
		logger:        logger,
	}
}

// Send доставляет уведомления о новой записи.
// Ненастроенный канал только пишет текст в лог.
func (s *Sender) Send(ctx context.Context, ev BookingCreatedEvent) error {
	var errs []error

	if err := s.sendEmail(ctx, ev); err != nil {
		errs = append(errs, err)
	}
	if err := s.sendSMS(ctx, ev); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: booking=%s: %v", ErrSend, ev.BookingID, errors.Join(errs...))
	}
	return nil
}

func (s *Sender) sendEmail(ctx context.Context, ev BookingCreatedEvent) error {
	params := EmailParams(ev)
	if s.email == nil || !s.email.Configured() {
		s.logger.Warn("Send: email not configured, skipping confirmation for booking=%s to %s", ev.BookingID, ev.CustomerEmail)
		return nil
	}

	err := s.email.Send(ctx, params)
	s.metrics.NotificationSent(ChannelEmail, err)
	if err != nil {
		s.logger.Error("Send: confirmation email for booking=%s failed: %v", ev.BookingID, err)
		return fmt.Errorf("email: %w", err)
	}
	return nil
}

func (s *Sender) sendSMS(ctx context.Context, ev BookingCreatedEvent) error {
	message := OperatorSMS(ev)
	if s.sms == nil || !s.sms.Configured() {
		s.logger.Warn("Send: sms not configured, message for %s:\n%s", s.operatorPhone, message)
		return nil
	}

	_, err := s.sms.Send(ctx, s.operatorPhone, message)
	s.metrics.NotificationSent(ChannelSMS, err)
	if err != nil {
		s.logger.Error("Send: operator sms for booking=%s failed: %v", ev.BookingID, err)
		return fmt.Errorf("sms: %w", err)
	}
	return nil
}
