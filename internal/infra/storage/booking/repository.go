package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/StudioBookingService/internal/domain"
	"github.com/m04kA/StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/StudioBookingService/pkg/psqlbuilder"
	"github.com/m04kA/StudioBookingService/pkg/types"
)

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

var bookingColumns = []string{
	"id",
	"user_id",
	"class_id",
	"time_slot_id",
	"class_name",
	"booking_date",
	"booking_time",
	"package_type",
	"price_paid",
	"status",
	"payment_status",
	"payment_reference",
	"customer_name",
	"customer_email",
	"customer_phone",
	"special_requests",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	query, args, err := r.qb.Insert("bookings").
		Columns(bookingColumns...).
		Values(
			booking.ID,
			booking.UserID,
			booking.ClassID,
			booking.TimeSlotID,
			booking.ClassName,
			booking.BookingDate,
			booking.BookingTime,
			string(booking.PackageType),
			booking.Price,
			string(booking.Status),
			string(booking.PaymentStatus),
			booking.PaymentReference,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Notes,
			booking.CancelledAt,
			booking.CreatedAt,
			booking.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if !isUUID(id) {
		return nil, ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByEmail бронирования клиента, сначала самые поздние даты
func (r *Repository) ListByEmail(ctx context.Context, email string) ([]*domain.Booking, error) {
	query, args, err := r.qb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"customer_email": email}).
		OrderBy("booking_date DESC", "booking_time DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByEmail - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, "ListByEmail", query, args)
}

// ListByDate бронирования на дату, упорядоченные по времени.
// includeCancelled=false исключает отменённые.
func (r *Repository) ListByDate(ctx context.Context, date types.Date, includeCancelled bool) ([]*domain.Booking, error) {
	builder := r.qb.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		OrderBy("booking_time ASC", "created_at ASC")
	if !includeCancelled {
		builder = builder.Where(squirrel.NotEq{"status": string(domain.StatusCancelled)})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryBookings(ctx, "ListByDate", query, args)
}

// CountActive количество неотменённых бронирований слота на дату
func (r *Repository) CountActive(ctx context.Context, slotID string, date types.Date) (int, error) {
	if !isUUID(slotID) {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"time_slot_id": slotID, "booking_date": date}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// Cancel переводит бронирование в статус cancelled. Запись не удаляется.
func (r *Repository) Cancel(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.qb.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CancelOccurrence отменяет все активные бронирования слота на дату.
// Возвращает количество отменённых бронирований.
func (r *Repository) CancelOccurrence(ctx context.Context, slotID string, date types.Date) (int, error) {
	if !isUUID(slotID) {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	now := time.Now().UTC()
	query, args, err := r.qb.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("cancelled_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"time_slot_id": slotID, "booking_date": date}).
		Where(squirrel.NotEq{"status": string(domain.StatusCancelled)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelOccurrence - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: CancelOccurrence - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelOccurrence - get rows affected: %v", ErrExecQuery, err)
	}

	return int(rowsAffected), nil
}

// MarkPaid записывает успешную оплату
func (r *Repository) MarkPaid(ctx context.Context, id string, reference string) error {
	if !isUUID(id) {
		return ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update("bookings").
		Set("payment_status", string(domain.PaymentPaid)).
		Set("payment_reference", reference).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkPaid - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// GetPaymentStatus текущий статус оплаты (опрашивается при подтверждении M-Pesa)
func (r *Repository) GetPaymentStatus(ctx context.Context, id string) (domain.PaymentStatus, error) {
	if !isUUID(id) {
		return "", ErrBookingNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("payment_status").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: GetPaymentStatus - build select query: %v", ErrBuildQuery, err)
	}

	var raw string
	err = executor.QueryRowContext(ctx, query, args...).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrBookingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: GetPaymentStatus - scan: %v", ErrScanRow, err)
	}

	status, err := domain.ParsePaymentStatus(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	return status, nil
}

func (r *Repository) queryBookings(ctx context.Context, op, query string, args []interface{}) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

// scanBooking сканирует строку с колонками bookingColumns
func scanBooking(row Scanner) (*domain.Booking, error) {
	var (
		b                                domain.Booking
		userID, slotID, reference, notes sql.NullString
		packageType, status, payment     string
		cancelledAt                      sql.NullTime
	)

	err := row.Scan(
		&b.ID,
		&userID,
		&b.ClassID,
		&slotID,
		&b.ClassName,
		&b.BookingDate,
		&b.BookingTime,
		&packageType,
		&b.Price,
		&status,
		&payment,
		&reference,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&notes,
		&cancelledAt,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if b.Status, err = domain.ParseBookingStatus(status); err != nil {
		return nil, err
	}
	if b.PaymentStatus, err = domain.ParsePaymentStatus(payment); err != nil {
		return nil, err
	}
	b.PackageType = domain.PackageTier(packageType)

	if userID.Valid {
		b.UserID = &userID.String
	}
	if slotID.Valid {
		b.TimeSlotID = &slotID.String
	}
	if reference.Valid {
		b.PaymentReference = &reference.String
	}
	if notes.Valid {
		b.Notes = &notes.String
	}
	if cancelledAt.Valid {
		b.CancelledAt = &cancelledAt.Time
	}

	return &b, nil
}

// isUUID колонки id в Postgres имеют тип UUID; другой формат не найдётся
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
