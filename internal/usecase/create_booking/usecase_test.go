package create_booking

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/StudioBookingService/internal/domain"
	classRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/class"
	slotRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/slot"
	"github.com/m04kA/StudioBookingService/pkg/ptr"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

const classUUID = "6f1c2a84-5f57-4c61-9d6c-2f1a0c6e9b11"

type fakeBookings struct {
	count     int
	countErr  error
	createErr error
	created   []*domain.Booking
}

func (f *fakeBookings) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	b.ID = "booking-1"
	b.CreatedAt = time.Now()
	f.created = append(f.created, b)
	return b, nil
}

func (f *fakeBookings) CountActive(_ context.Context, _ string, _ types.Date) (int, error) {
	return f.count, f.countErr
}

type fakeClasses struct {
	byID   map[string]*domain.ClassOffering
	byName map[string]*domain.ClassOffering
}

func (f *fakeClasses) GetByID(_ context.Context, id string) (*domain.ClassOffering, error) {
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, classRepo.ErrClassNotFound
}

func (f *fakeClasses) GetByName(_ context.Context, name string) (*domain.ClassOffering, error) {
	if c, ok := f.byName[name]; ok {
		return c, nil
	}
	return nil, classRepo.ErrClassNotFound
}

type fakeSlots struct {
	slots map[string]*domain.ScheduledSlot
}

func (f *fakeSlots) GetByID(_ context.Context, id string) (*domain.ScheduledSlot, error) {
	if s, ok := f.slots[id]; ok {
		return s, nil
	}
	return nil, slotRepo.ErrSlotNotFound
}

type fakeTx struct{ calls int }

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeNotifier struct {
	sent []*domain.Booking
	err  error
}

func (f *fakeNotifier) BookingCreated(_ context.Context, b *domain.Booking) error {
	f.sent = append(f.sent, b)
	return f.err
}

type fakeMetrics struct{ created int }

func (f *fakeMetrics) BookingCreated(string, string) { f.created++ }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type env struct {
	uc       *UseCase
	bookings *fakeBookings
	tx       *fakeTx
	notifier *fakeNotifier
	metrics  *fakeMetrics
}

func newEnv(t *testing.T, strict bool) *env {
	t.Helper()

	pilates := &domain.ClassOffering{
		ID:          classUUID,
		Name:        "Hot Pilates",
		MaxCapacity: ptr.Ptr(2),
		Active:      true,
		Prices: map[domain.PackageTier]float64{
			domain.TierSingle:  1500,
			domain.TierMonthly: 12000,
		},
	}
	unpriced := &domain.ClassOffering{ID: "class-2", Name: "Sound Bath", Active: true}

	slots := &fakeSlots{slots: map[string]*domain.ScheduledSlot{
		"slot-mon": {
			Slot:  domain.TimeSlot{ID: "slot-mon", ClassID: classUUID, DayOfWeek: 1, StartTime: "17:30", EndTime: "18:30", Active: true},
			Class: *pilates,
		},
	}}

	e := &env{
		bookings: &fakeBookings{},
		tx:       &fakeTx{},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
	}
	e.uc = NewUseCase(
		e.bookings,
		&fakeClasses{
			byID:   map[string]*domain.ClassOffering{classUUID: pilates, "class-2": unpriced},
			byName: map[string]*domain.ClassOffering{"Hot Pilates": pilates, "Sound Bath": unpriced},
		},
		slots,
		e.tx,
		e.notifier,
		e.metrics,
		nopLogger{},
		Options{StrictCapacity: strict, Location: time.UTC},
	)
	// Воскресенье, 1 марта 2026
	e.uc.timeProvider = fixedTime{t: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
	return e
}

func validRequest() *Request {
	return &Request{
		UserID:        ptr.Ptr("user-1"),
		ClassRef:      classUUID,
		TimeSlotID:    ptr.Ptr("slot-mon"),
		Date:          "2026-03-02",
		Time:          "17:30",
		PackageType:   "monthly",
		CustomerName:  " Jane Doe ",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "0712345678",
	}
}

func TestExecute_Success(t *testing.T) {
	e := newEnv(t, false)

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "booking-1", resp.ID)
	assert.Equal(t, "Hot Pilates", resp.ClassName)
	assert.Equal(t, 12000.0, resp.Price)
	assert.False(t, resp.PriceUnknown)
	assert.Equal(t, domain.StatusConfirmed, resp.Status)
	assert.Equal(t, domain.PaymentPending, resp.PaymentStatus)
	assert.Equal(t, "Jane Doe", resp.CustomerName)
	assert.Equal(t, "slot-mon", *resp.TimeSlotID)
	assert.Nil(t, resp.PaymentReference)

	assert.Len(t, e.notifier.sent, 1)
	assert.Equal(t, 1, e.metrics.created)
	assert.Equal(t, 0, e.tx.calls)
}

func TestExecute_MissingRequiredFields(t *testing.T) {
	cases := map[string]func(r *Request){
		"name":  func(r *Request) { r.CustomerName = "  " },
		"email": func(r *Request) { r.CustomerEmail = "" },
		"phone": func(r *Request) { r.CustomerPhone = "" },
		"class": func(r *Request) { r.ClassRef = "" },
		"date":  func(r *Request) { r.Date = "" },
		"time":  func(r *Request) { r.Time = "" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t, false)
			req := validRequest()
			mutate(req)

			_, err := e.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, e.bookings.created)
			assert.Empty(t, e.notifier.sent)
		})
	}
}

func TestExecute_InvalidFormats(t *testing.T) {
	e := newEnv(t, false)

	req := validRequest()
	req.CustomerEmail = "not-an-email"
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Date = "02/03/2026"
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = validRequest()
	req.Time = "25:00"
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PackageTypeFitsColumn(t *testing.T) {
	e := newEnv(t, false)

	req := validRequest()
	req.PackageType = strings.Repeat("x", 33)
	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, e.bookings.created)

	// Неизвестный тариф допустимой длины тарифицируется как single
	req = validRequest()
	req.PackageType = strings.Repeat("x", 32)
	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, resp.Price)
}

func TestExecute_DateInPast(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.Date = "2026-02-23"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_ClassByName(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.ClassRef = "Hot Pilates"
	req.PackageType = ""

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, classUUID, resp.ClassID)
	assert.Equal(t, domain.TierSingle, resp.PackageType)
	assert.Equal(t, 1500.0, resp.Price)
}

func TestExecute_UnknownClass(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.ClassRef = "Aerial Silks"
	req.TimeSlotID = nil

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrClassNotFound)
}

func TestExecute_MissingTierPriceFallsBackToSingle(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.PackageType = "pack_5"

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, resp.Price)
}

func TestExecute_NoPriceIsFlagged(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.ClassRef = "Sound Bath"
	req.TimeSlotID = nil

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, resp.Price)
	assert.True(t, resp.PriceUnknown)
}

func TestExecute_SlotFull(t *testing.T) {
	e := newEnv(t, false)
	e.bookings.count = 2

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Empty(t, e.bookings.created)
}

func TestExecute_StrictCapacityUsesSerializableTx(t *testing.T) {
	e := newEnv(t, true)

	_, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, e.tx.calls)

	e.bookings.count = 2
	_, err = e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Equal(t, 2, e.tx.calls)
}

func TestExecute_CountFailureIsInternal(t *testing.T) {
	e := newEnv(t, false)
	e.bookings.countErr = errors.New("db down")

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecute_SlotNotFound(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.TimeSlotID = ptr.Ptr("hp1")

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotWeekdayMismatch(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.Date = "2026-03-03"

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_PersistenceFailure(t *testing.T) {
	e := newEnv(t, false)
	e.bookings.createErr = errors.New("insert failed")

	_, err := e.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, e.notifier.sent)
}

func TestExecute_NotificationFailureIsSwallowed(t *testing.T) {
	e := newEnv(t, false)
	e.notifier.err = errors.New("queue down")

	resp, err := e.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestExecute_AdminMarkPaid(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.UserID = nil
	req.Time = ""
	req.ByAdmin = true
	req.MarkPaid = true

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("17:30"), resp.BookingTime)
	assert.Equal(t, domain.PaymentPaid, resp.PaymentStatus)
	require.NotNil(t, resp.PaymentReference)
	assert.Equal(t, "admin_1772359200000", *resp.PaymentReference)
}

func TestExecute_AdminUnknownSlotUsesDefaultTime(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.Time = ""
	req.TimeSlotID = ptr.Ptr("deleted-slot")
	req.ByAdmin = true

	resp, err := e.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("09:00"), resp.BookingTime)
	assert.Nil(t, resp.TimeSlotID)
	assert.Equal(t, domain.PaymentPending, resp.PaymentStatus)
}

func TestExecute_AdminRequiresSlot(t *testing.T) {
	e := newEnv(t, false)
	req := validRequest()
	req.TimeSlotID = nil
	req.ByAdmin = true

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
