package bookings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	bookingRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/booking"
	"github.com/m04kA/StudioBookingService/internal/service/bookings/models"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo     BookingRepository
	slotRepo        SlotRepository
	metrics         Metrics
	timeProvider    TimeProvider
	location        *time.Location
	defaultCapacity int
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	slotRepo SlotRepository,
	metrics Metrics,
	location *time.Location,
	defaultCapacity int,
	logger Logger,
) *Service {
	if location == nil {
		location = time.Local
	}
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultClassCapacity
	}
	return &Service{
		bookingRepo:     bookingRepo,
		slotRepo:        slotRepo,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		location:        location,
		defaultCapacity: defaultCapacity,
		logger:          logger,
	}
}

// today текущая дата студии
func (s *Service) today() types.Date {
	return types.DateOf(s.timeProvider.Now().In(s.location))
}

// GetByID получает бронирование по ID.
// Клиент видит только своё бронирование, администратор любое.
func (s *Service) GetByID(ctx context.Context, id string, requester models.Requester) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%s for user=%s", id, requester.UserID)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !requester.IsAdmin && !requester.Owns(booking) {
		s.logger.Warn("GetByID: access denied for user=%s to booking id=%s", requester.UserID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainBooking(booking)
	return &resp, nil
}

// ListMine записи клиента по email, разделённые на предстоящие и прошедшие.
// Клиент может запросить только свой email.
func (s *Service) ListMine(ctx context.Context, email string, requester models.Requester) (*models.MyBookingsResponse, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		email = requester.Email
	}
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if !requester.IsAdmin && !strings.EqualFold(email, requester.Email) {
		s.logger.Warn("ListMine: user=%s requested bookings of another email", requester.UserID)
		return nil, ErrAccessDenied
	}

	s.logger.Info("ListMine: fetching bookings for email=%s", email)

	bookings, err := s.bookingRepo.ListByEmail(ctx, email)
	if err != nil {
		s.logger.Error("ListMine: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: ListMine - repository error: %v", ErrInternal, err)
	}

	today := s.today()
	resp := &models.MyBookingsResponse{
		Email:    email,
		Upcoming: make([]models.BookingCard, 0),
		Past:     make([]models.BookingCard, 0),
	}
	for _, b := range bookings {
		card := models.NewBookingCard(b, today)
		if b.IsUpcoming(today) {
			resp.Upcoming = append(resp.Upcoming, card)
		} else {
			resp.Past = append(resp.Past, card)
		}
	}

	s.logger.Info("ListMine: email=%s, %d upcoming, %d past", email, len(resp.Upcoming), len(resp.Past))
	return resp, nil
}

// CancelByCustomer отмена клиентом. В день занятия отмена запрещена.
func (s *Service) CancelByCustomer(ctx context.Context, id string, requester models.Requester) error {
	s.logger.Info("CancelByCustomer: cancelling booking id=%s by user=%s", id, requester.UserID)

	booking, err := s.getBooking(ctx, "CancelByCustomer", id)
	if err != nil {
		return err
	}

	if !requester.Owns(booking) {
		s.logger.Warn("CancelByCustomer: access denied for user=%s to booking id=%s", requester.UserID, id)
		return ErrAccessDenied
	}

	today := s.today()
	if !booking.CanBeCancelledByCustomer(today) {
		if booking.IsActive() && booking.IsSameDay(today) {
			s.logger.Warn("CancelByCustomer: booking id=%s is today, same-day cancellation rejected", id)
			return ErrSameDayCancellation
		}
		s.logger.Warn("CancelByCustomer: booking id=%s cannot be cancelled, status=%s date=%s", id, booking.Status, booking.BookingDate)
		return ErrCannotCancel
	}

	if err := s.cancel(ctx, "CancelByCustomer", id); err != nil {
		return err
	}

	s.metrics.BookingsCancelled("customer", 1)
	s.logger.Info("CancelByCustomer: successfully cancelled booking id=%s", id)
	return nil
}

// CancelByAdmin отмена администратором, ограничений по дате нет
func (s *Service) CancelByAdmin(ctx context.Context, id string) error {
	s.logger.Info("CancelByAdmin: cancelling booking id=%s", id)

	booking, err := s.getBooking(ctx, "CancelByAdmin", id)
	if err != nil {
		return err
	}
	if !booking.IsActive() {
		s.logger.Info("CancelByAdmin: booking id=%s is already cancelled", id)
		return nil
	}

	if err := s.cancel(ctx, "CancelByAdmin", id); err != nil {
		return err
	}

	s.metrics.BookingsCancelled("admin", 1)
	s.logger.Info("CancelByAdmin: successfully cancelled booking id=%s", id)
	return nil
}

// CancelOccurrence отменяет все записи на слот в указанную дату
func (s *Service) CancelOccurrence(ctx context.Context, slotID string, date types.Date) (*models.CancelOccurrenceResponse, error) {
	s.logger.Info("CancelOccurrence: slot=%s, date=%s", slotID, date)

	if slotID == "" {
		return nil, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	n, err := s.bookingRepo.CancelOccurrence(ctx, slotID, date)
	if err != nil {
		s.logger.Error("CancelOccurrence: repository error for slot=%s date=%s: %v", slotID, date, err)
		return nil, fmt.Errorf("%w: CancelOccurrence - repository error: %v", ErrInternal, err)
	}

	s.metrics.BookingsCancelled("admin_occurrence", n)
	s.logger.Info("CancelOccurrence: cancelled %d bookings of slot=%s on %s", n, slotID, date)
	return &models.CancelOccurrenceResponse{SlotID: slotID, Date: date.String(), Cancelled: n}, nil
}

// MarkPaid админ отмечает оплату на месте
func (s *Service) MarkPaid(ctx context.Context, id string) (*models.BookingResponse, error) {
	s.logger.Info("MarkPaid: booking id=%s", id)

	booking, err := s.getBooking(ctx, "MarkPaid", id)
	if err != nil {
		return nil, err
	}
	if booking.IsPaid() {
		s.logger.Warn("MarkPaid: booking id=%s is already paid", id)
		return nil, ErrAlreadyPaid
	}

	reference := domain.AdminPaymentReferencePrefix + strconv.FormatInt(s.timeProvider.Now().UnixMilli(), 10)
	if err := s.bookingRepo.MarkPaid(ctx, id, reference); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("MarkPaid: repository error for booking id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: MarkPaid - repository error: %v", ErrInternal, err)
	}

	booking.PaymentStatus = domain.PaymentPaid
	booking.PaymentReference = ptr.Ptr(reference)

	s.logger.Info("MarkPaid: booking id=%s marked paid, reference=%s", id, reference)
	resp := models.FromDomainBooking(booking)
	return &resp, nil
}

// Roster слоты дня недели даты с активными записями на каждый
func (s *Service) Roster(ctx context.Context, date types.Date) (*models.RosterResponse, error) {
	s.logger.Info("Roster: date=%s", date)

	if err := date.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 1. Активные записи на дату
	bookings, err := s.bookingRepo.ListByDate(ctx, date, false)
	if err != nil {
		s.logger.Error("Roster: bookings repository error for date=%s: %v", date, err)
		return nil, fmt.Errorf("%w: Roster - bookings repository error: %v", ErrInternal, err)
	}

	// 2. Слоты этого дня недели
	all, err := s.slotRepo.ListWithClass(ctx, true)
	if err != nil {
		s.logger.Error("Roster: slots repository error: %v", err)
		return nil, fmt.Errorf("%w: Roster - slots repository error: %v", ErrInternal, err)
	}

	weekday := types.WeekdayOf(date)
	daySlots := make([]domain.ScheduledSlot, 0)
	for _, slot := range all {
		if slot.Slot.DayOfWeek == weekday {
			daySlots = append(daySlots, slot)
		}
	}
	sort.SliceStable(daySlots, func(i, j int) bool {
		return daySlots[i].Slot.StartTime < daySlots[j].Slot.StartTime
	})

	// 3. Группируем записи по слотам
	bySlot := make(map[string][]*domain.Booking)
	for _, b := range bookings {
		if b.TimeSlotID != nil {
			bySlot[*b.TimeSlotID] = append(bySlot[*b.TimeSlotID], b)
		}
	}

	resp := &models.RosterResponse{
		Date:        date.String(),
		DisplayDate: date.LongDisplay(),
		Slots:       make([]models.RosterSlot, 0, len(daySlots)),
	}
	assigned := make(map[string]bool)
	for _, slot := range daySlots {
		slotBookings := bySlot[slot.Slot.ID]
		for _, b := range slotBookings {
			assigned[b.ID] = true
		}
		resp.Slots = append(resp.Slots, models.RosterSlot{
			SlotID:      slot.Slot.ID,
			ClassName:   slot.Class.Name,
			StartTime:   slot.Slot.StartTime.String(),
			EndTime:     slot.Slot.EndTime.String(),
			DisplayTime: slot.Slot.StartTime.Display() + " – " + slot.Slot.EndTime.Display(),
			Instructor:  slot.Slot.Instructor,
			Capacity:    slot.Capacity(s.defaultCapacity),
			Bookings:    models.FromDomainBookings(slotBookings),
		})
	}

	unassigned := make([]*domain.Booking, 0)
	for _, b := range bookings {
		if !assigned[b.ID] {
			unassigned = append(unassigned, b)
		}
	}
	resp.Unassigned = models.FromDomainBookings(unassigned)

	s.logger.Info("Roster: date=%s, %d slots, %d bookings", date, len(resp.Slots), len(bookings))
	return resp, nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, op, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) cancel(ctx context.Context, op, id string) error {
	if err := s.bookingRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%s not found during cancellation", op, id)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return nil
}
