package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/StudioBookingService/internal/domain"
	classRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/class"
	slotRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/slot"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	classRepo    ClassRepository
	slotRepo     SlotRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	opts         Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	classRepo ClassRepository,
	slotRepo SlotRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.DefaultCapacity <= 0 {
		opts.DefaultCapacity = domain.DefaultClassCapacity
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		classRepo:    classRepo,
		slotRepo:     slotRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		opts:         opts,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка мест и запись не атомарны, если не включён StrictCapacity.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: class=%s, slot=%v, date=%s, time=%s, admin=%t",
		req.ClassRef, req.TimeSlotID, req.Date, req.Time, req.ByAdmin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Дата не в прошлом (по времени студии)
	today := types.DateOf(uc.timeProvider.Now().In(uc.opts.Location))
	if !req.ByAdmin && req.Date.Before(today) {
		uc.logger.Warn("CreateBooking: date %s is before today %s", req.Date, today)
		return nil, ErrDateInPast
	}

	// 3. Слот (если указан)
	var slot *domain.ScheduledSlot
	if req.TimeSlotID != nil && *req.TimeSlotID != "" {
		var err error
		slot, err = uc.slotRepo.GetByID(ctx, *req.TimeSlotID)
		if err != nil && !errors.Is(err, slotRepo.ErrSlotNotFound) {
			uc.logger.Error("CreateBooking: failed to get slot id=%s: %v", *req.TimeSlotID, err)
			return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		if slot == nil && !req.ByAdmin {
			uc.logger.Warn("CreateBooking: slot id=%s not found", *req.TimeSlotID)
			return nil, ErrSlotNotFound
		}
		if slot != nil && slot.Slot.DayOfWeek != types.WeekdayOf(req.Date) {
			uc.logger.Warn("CreateBooking: slot id=%s runs on weekday %d, date %s is weekday %d",
				slot.Slot.ID, slot.Slot.DayOfWeek, req.Date, types.WeekdayOf(req.Date))
			return nil, fmt.Errorf("%w: time slot does not run on %s", ErrInvalidInput, req.Date)
		}
	}

	// 4. Класс по ID или по названию
	class, err := uc.resolveClass(ctx, req.ClassRef)
	if err != nil {
		return nil, err
	}
	if slot != nil && slot.Slot.ClassID != class.ID {
		uc.logger.Warn("CreateBooking: slot id=%s belongs to class %s, not %s", slot.Slot.ID, slot.Slot.ClassID, class.ID)
		return nil, fmt.Errorf("%w: time slot belongs to another class", ErrInvalidInput)
	}

	// 5. Собираем бронирование, цена вычисляется на сервере
	booking := uc.buildBooking(req, class, slot)

	// 6. Проверка мест и запись
	var created *domain.Booking
	write := func(txCtx context.Context) error {
		if slot != nil {
			if err := uc.checkCapacity(txCtx, slot, req.Date); err != nil {
				return err
			}
		}

		var err error
		created, err = uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		return nil
	}

	if uc.opts.StrictCapacity && slot != nil {
		err = uc.txManager.DoSerializable(ctx, write)
	} else {
		err = write(ctx)
	}
	if err != nil {
		if errors.Is(err, ErrSlotFull) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.BookingCreated(string(created.PackageType), string(created.PaymentStatus))
	if created.NeedsPriceFollowUp() {
		uc.logger.Warn("CreateBooking: booking id=%s has no price for package %s of class %s, follow up manually",
			created.ID, created.PackageType, created.ClassName)
	}
	uc.logger.Info("CreateBooking: successfully created booking id=%s", created.ID)

	// 7. Уведомления после записи, их ошибки не возвращаются
	if err := uc.notifier.BookingCreated(ctx, created); err != nil {
		uc.logger.Warn("CreateBooking: notification for booking id=%s not dispatched: %v", created.ID, err)
	}

	return toResponse(created), nil
}

func (uc *UseCase) resolveClass(ctx context.Context, ref string) (*domain.ClassOffering, error) {
	var (
		class *domain.ClassOffering
		err   error
	)
	if isClassID(ref) {
		class, err = uc.classRepo.GetByID(ctx, ref)
	} else {
		class, err = uc.classRepo.GetByName(ctx, ref)
	}

	if errors.Is(err, classRepo.ErrClassNotFound) {
		uc.logger.Warn("CreateBooking: class %q not found", ref)
		return nil, ErrClassNotFound
	}
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get class %q: %v", ref, err)
		return nil, fmt.Errorf("%w: failed to get class: %v", ErrInternal, err)
	}
	return class, nil
}

func (uc *UseCase) checkCapacity(ctx context.Context, slot *domain.ScheduledSlot, date types.Date) error {
	count, err := uc.bookingRepo.CountActive(ctx, slot.Slot.ID, date)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to count bookings for slot id=%s: %v", slot.Slot.ID, err)
		return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	capacity := slot.Capacity(uc.opts.DefaultCapacity)
	if count >= capacity {
		uc.logger.Warn("CreateBooking: slot id=%s on %s is full, %d/%d", slot.Slot.ID, date, count, capacity)
		return ErrSlotFull
	}

	uc.logger.Info("CreateBooking: slot id=%s on %s has %d/%d taken", slot.Slot.ID, date, count, capacity)
	return nil
}

func (uc *UseCase) buildBooking(req *Request, class *domain.ClassOffering, slot *domain.ScheduledSlot) *domain.Booking {
	tier := domain.PackageTier(req.PackageType)
	if tier == "" {
		tier = domain.TierSingle
	}

	bookingTime := req.Time
	if req.ByAdmin {
		bookingTime = types.TimeString(domain.DefaultAdminBookingTime)
		if slot != nil {
			bookingTime = slot.Slot.StartTime
		}
	}

	booking := &domain.Booking{
		UserID:        req.UserID,
		ClassID:       class.ID,
		ClassName:     class.Name,
		BookingDate:   req.Date,
		BookingTime:   bookingTime,
		PackageType:   tier,
		Price:         domain.ResolvePrice(class, tier),
		Status:        domain.StatusConfirmed,
		PaymentStatus: domain.PaymentPending,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
	}

	if slot != nil {
		booking.TimeSlotID = &slot.Slot.ID
	}

	if req.ByAdmin && req.MarkPaid {
		booking.PaymentStatus = domain.PaymentPaid
		booking.PaymentReference = ptr.Ptr(domain.AdminPaymentReferencePrefix + strconv.FormatInt(uc.timeProvider.Now().UnixMilli(), 10))
	}

	return booking
}
