package class

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
)

// Repository репозиторий классов студии
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория классов
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Columns колонки таблицы classes в порядке сканирования ScanClass.
// Используется репозиторием слотов для JOIN с префиксом таблицы.
func Columns(prefix string) []string {
	cols := []string{"id", "name", "description", "max_capacity", "active"}
	for _, tier := range domain.PackageTiers {
		cols = append(cols, tier.PriceColumn())
	}
	cols = append(cols, "created_at", "updated_at")

	if prefix == "" {
		return cols
	}
	for i, c := range cols {
		cols[i] = prefix + "." + c
	}
	return cols
}

// ScanDest возвращает приёмники для Scan и функцию сборки класса после него
func ScanDest() ([]interface{}, func() *domain.ClassOffering) {
	var (
		c           domain.ClassOffering
		description sql.NullString
		capacity    sql.NullInt64
		prices      = make([]sql.NullFloat64, len(domain.PackageTiers))
	)

	dest := []interface{}{&c.ID, &c.Name, &description, &capacity, &c.Active}
	for i := range prices {
		dest = append(dest, &prices[i])
	}
	dest = append(dest, &c.CreatedAt, &c.UpdatedAt)

	build := func() *domain.ClassOffering {
		if description.Valid {
			c.Description = &description.String
		}
		if capacity.Valid {
			v := int(capacity.Int64)
			c.MaxCapacity = &v
		}
		c.Prices = make(map[domain.PackageTier]float64)
		for i, tier := range domain.PackageTiers {
			if prices[i].Valid {
				c.Prices[tier] = prices[i].Float64
			}
		}
		return &c
	}

	return dest, build
}

// ScanClass сканирует строку с колонками Columns
func ScanClass(row Scanner) (*domain.ClassOffering, error) {
	dest, build := ScanDest()
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return build(), nil
}

// Create создает класс. ID генерируется, если не задан.
func (r *Repository) Create(ctx context.Context, c *domain.ClassOffering) (*domain.ClassOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	values := []interface{}{c.ID, c.Name, c.Description, c.MaxCapacity, c.Active}
	values = append(values, priceValues(c)...)
	values = append(values, c.CreatedAt, c.UpdatedAt)

	query, args, err := r.qb.Insert("classes").
		Columns(Columns("")...).
		Values(values...).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return c, nil
}

// Update обновляет все редактируемые поля класса
func (r *Repository) Update(ctx context.Context, c *domain.ClassOffering) error {
	if !isUUID(c.ID) {
		return ErrClassNotFound
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	c.UpdatedAt = time.Now().UTC()

	builder := r.qb.Update("classes").
		Set("name", c.Name).
		Set("description", c.Description).
		Set("max_capacity", c.MaxCapacity).
		Set("active", c.Active).
		Set("updated_at", c.UpdatedAt).
		Where(squirrel.Eq{"id": c.ID})

	prices := priceValues(c)
	for i, tier := range domain.PackageTiers {
		builder = builder.Set(tier.PriceColumn(), prices[i])
	}

	query, args, err := builder.ToSql()
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
		return ErrClassNotFound
	}

	return nil
}

// GetByID получает класс по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.ClassOffering, error) {
	if !isUUID(id) {
		return nil, ErrClassNotFound
	}
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает класс по точному названию
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.ClassOffering, error) {
	return r.getOne(ctx, "GetByName", squirrel.Eq{"name": name})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.ClassOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(Columns("")...).
		From("classes").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	c, err := ScanClass(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan class: %v", ErrScanRow, op, err)
	}

	return c, nil
}

// List возвращает классы, отсортированные по названию
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.ClassOffering, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.qb.Select(Columns("")...).
		From("classes").
		OrderBy("name ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	classes := make([]*domain.ClassOffering, 0)
	for rows.Next() {
		c, err := ScanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return classes, nil
}

// priceValues значения цен в порядке domain.PackageTiers, nil для отсутствующих
func priceValues(c *domain.ClassOffering) []interface{} {
	values := make([]interface{}, len(domain.PackageTiers))
	for i, tier := range domain.PackageTiers {
		if p, ok := c.Prices[tier]; ok {
			values[i] = p
		}
	}
	return values
}

// isUUID колонки id в Postgres имеют тип UUID; другой формат не найдётся
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
