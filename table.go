package norm

import (
	"context"
	"database/sql"
)

// Table is a Database bound to one table name. Methods that would take
// a table argument on Database use the bound name instead.
type Table struct {
	db   *Database
	name string
}

func (t *Table) Name() string {
	return t.name
}

// Database returns the Database this table builds on.
func (t *Table) Database() *Database {
	return t.db
}

// With calls fn with t and returns fn's error unchanged.
func (t *Table) With(fn func(*Table) error) error {
	return fn(t)
}

// Select appends SELECT columns FROM the table.
func (t *Table) Select(columns ...string) *Table {
	t.db.Select(columns...).From(t.name)
	return t
}

func (t *Table) Insert(columns ...string) *Table {
	t.db.Insert(t.name, columns...)
	return t
}

func (t *Table) Values(values ...string) *Table {
	t.db.Values(values...)
	return t
}

func (t *Table) Update() *Table {
	t.db.Update(t.name)
	return t
}

func (t *Table) Set(assignments ...string) *Table {
	t.db.Set(t.name, assignments...)
	return t
}

func (t *Table) Delete() *Table {
	t.db.Delete(t.name)
	return t
}

func (t *Table) Where(parts ...string) *Table {
	t.db.Where(parts...)
	return t
}

func (t *Table) OrderBy(columns ...string) *Table {
	t.db.OrderBy(columns...)
	return t
}

func (t *Table) Join(table string) *Table {
	t.db.Join(table)
	return t
}

func (t *Table) On(left, right string) *Table {
	t.db.On(left, right)
	return t
}

func (t *Table) GroupBy(columns ...string) *Table {
	t.db.GroupBy(columns...)
	return t
}

func (t *Table) Having(parts ...string) *Table {
	t.db.Having(parts...)
	return t
}

// Create appends CREATE TABLE for the bound table.
func (t *Table) Create(fields ...any) *Table {
	t.db.CreateTable(t.name, fields...)
	return t
}

// Drop appends DROP TABLE for the bound table.
func (t *Table) Drop() *Table {
	t.db.DropTable(t.name)
	return t
}

func (t *Table) SQL() (string, error) {
	return t.db.SQL()
}

func (t *Table) Exec(ctx context.Context) (sql.Result, error) {
	return t.db.Exec(ctx)
}

func (t *Table) Query(ctx context.Context) (*sql.Rows, error) {
	return t.db.Query(ctx)
}
