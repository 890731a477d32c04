package psqlbuilder

import (
	"github.com/Masterminds/squirrel"
)

// Builder конструктор SQL-запросов с форматом плейсхолдеров под драйвер
type Builder struct {
	sb squirrel.StatementBuilderType
}

// New билдер для Postgres ($1, $2, ...)
func New() Builder {
	return Builder{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

// ForDriver билдер для имени драйвера database/sql.
// Для sqlite3 используются плейсхолдеры "?", для остальных "$n".
func ForDriver(driver string) Builder {
	if driver == "sqlite3" || driver == "sqlite" {
		return Builder{sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)}
	}
	return New()
}

func (b Builder) Select(columns ...string) squirrel.SelectBuilder {
	return b.sb.Select(columns...)
}

func (b Builder) Insert(table string) squirrel.InsertBuilder {
	return b.sb.Insert(table)
}

func (b Builder) Update(table string) squirrel.UpdateBuilder {
	return b.sb.Update(table)
}

func (b Builder) Delete(table string) squirrel.DeleteBuilder {
	return b.sb.Delete(table)
}

var postgres = New()

// Select SELECT с плейсхолдерами Postgres
func Select(columns ...string) squirrel.SelectBuilder {
	return postgres.Select(columns...)
}

// Insert INSERT с плейсхолдерами Postgres
func Insert(table string) squirrel.InsertBuilder {
	return postgres.Insert(table)
}

// Update UPDATE с плейсхолдерами Postgres
func Update(table string) squirrel.UpdateBuilder {
	return postgres.Update(table)
}

// Delete DELETE с плейсхолдерами Postgres
func Delete(table string) squirrel.DeleteBuilder {
	return postgres.Delete(table)
}
