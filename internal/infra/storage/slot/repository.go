package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/StudioBookingService/internal/domain"
	classRepo "github.com/m04kA/StudioBookingService/internal/infra/storage/class"
	"github.com/m04kA/StudioBookingService/pkg/dbmetrics"
	"github.com/m04kA/StudioBookingService/pkg/psqlbuilder"
)

// Repository репозиторий повторяющихся слотов расписания
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

var slotColumns = []string{
	"id",
	"class_id",
	"day_of_week",
	"start_time",
	"end_time",
	"instructor_name",
	"active",
	"created_at",
	"updated_at",
}

func prefixed(prefix string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = prefix + "." + c
	}
	return out
}

// Create создает слот
func (r *Repository) Create(ctx context.Context, s *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	s.CreatedAt = now
	s.UpdatedAt = now

	query, args, err := r.qb.Insert("time_slots").
		Columns(slotColumns...).
		Values(
			s.ID,
			s.ClassID,
			s.DayOfWeek,
			s.StartTime,
			s.EndTime,
			s.Instructor,
			s.Active,
			s.CreatedAt,
			s.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return s, nil
}

// Update обновляет слот
func (r *Repository) Update(ctx context.Context, s *domain.TimeSlot) error {
	if !isUUID(s.ID) {
		return ErrSlotNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	s.UpdatedAt = time.Now().UTC()

	query, args, err := r.qb.Update("time_slots").
		Set("class_id", s.ClassID).
		Set("day_of_week", s.DayOfWeek).
		Set("start_time", s.StartTime).
		Set("end_time", s.EndTime).
		Set("instructor_name", s.Instructor).
		Set("active", s.Active).
		Set("updated_at", s.UpdatedAt).
		Where(squirrel.Eq{"id": s.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// GetByID получает слот вместе с классом
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ScheduledSlot, error) {
	if !isUUID(id) {
		return nil, ErrSlotNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.joinedSelect().
		Where(squirrel.Eq{"ts.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanScheduledSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// ListWithClass возвращает слоты с классами, упорядоченные по дню недели и времени начала.
// activeOnly оставляет только активные слоты активных классов.
func (r *Repository) ListWithClass(ctx context.Context, activeOnly bool) ([]domain.ScheduledSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.joinedSelect().OrderBy("ts.day_of_week ASC", "ts.start_time ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"ts.active": true, "c.active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithClass - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithClass - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.ScheduledSlot, 0)
	for rows.Next() {
		slot, err := scanScheduledSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWithClass - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, *slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWithClass - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

func (r *Repository) joinedSelect() squirrel.SelectBuilder {
	columns := append(prefixed("ts", slotColumns), classRepo.Columns("c")...)
	return r.qb.Select(columns...).
		From("time_slots ts").
		Join("classes c ON c.id = ts.class_id")
}

func scanScheduledSlot(row classRepo.Scanner) (*domain.ScheduledSlot, error) {
	var (
		s          domain.TimeSlot
		instructor sql.NullString
	)

	classDest, buildClass := classRepo.ScanDest()
	dest := append([]interface{}{
		&s.ID,
		&s.ClassID,
		&s.DayOfWeek,
		&s.StartTime,
		&s.EndTime,
		&instructor,
		&s.Active,
		&s.CreatedAt,
		&s.UpdatedAt,
	}, classDest...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if instructor.Valid {
		s.Instructor = &instructor.String
	}

	return &domain.ScheduledSlot{Slot: s, Class: *buildClass()}, nil
}

// isUUID колонки id в Postgres имеют тип UUID; другой формат не найдётся
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
