// Package norm builds SQL statements from fluent calls and renders them
// for one of several backends.
package norm

import (
	"context"
	"database/sql"
	"strings"

	"go.uber.org/multierr"
)

// State is where a builder is in its statement cycle.
type State int

const (
	StateIdle State = iota
	StateAccumulating
	StateRendered
)

func (s State) String() string {
	switch s {
	case StateAccumulating:
		return "accumulating"
	case StateRendered:
		return "rendered"
	default:
		return "idle"
	}
}

// Database builds one statement at a time for an engine. Every clause
// method appends a fragment and returns the same Database; SQL renders
// and resets. The first error of a chain is kept and returned by SQL.
//
// A Database is not safe for concurrent use. Build concurrent statements
// with separate Databases sharing one Engine.
type Database struct {
	name     string
	engine   *Engine
	parts    *Parts
	conn     *connection
	logger   Logger
	err      error
	rendered bool
}

func New(engine *Engine) *Database {
	logger := NopLogger()
	return &Database{
		name:   engine.Name(),
		engine: engine,
		parts:  NewParts(engine.Accepts()...),
		conn:   &connection{engine: engine, logger: logger},
		logger: logger,
	}
}

func (d *Database) WithLogger(l Logger) *Database {
	d.logger = l
	d.conn.logger = l
	return d
}

// WithName sets the name used in logs.
func (d *Database) WithName(name string) *Database {
	d.name = name
	return d
}

func (d *Database) Name() string {
	return d.name
}

func (d *Database) Engine() *Engine {
	return d.engine
}

// Table returns a view of d bound to one table name. It shares d's buffer.
func (d *Database) Table(name string) *Table {
	return &Table{db: d, name: name}
}

// With calls fn with d and returns fn's error unchanged.
func (d *Database) With(fn func(*Database) error) error {
	return fn(d)
}

// Connect opens the backend connection. It is a no-op when already connected.
func (d *Database) Connect(ctx context.Context) error {
	return d.conn.connect(ctx)
}

// Attach makes d run statements on db instead of opening its own connection.
func (d *Database) Attach(db *sql.DB) *Database {
	d.conn.attach(db)
	return d
}

// Disconnect closes a connection opened by Connect. Safe to call repeatedly.
func (d *Database) Disconnect() error {
	return d.conn.disconnect()
}

func (d *Database) Close() error {
	return d.Disconnect()
}

func (d *Database) State() State {
	switch {
	case !d.parts.Empty() || d.err != nil:
		return StateAccumulating
	case d.rendered:
		return StateRendered
	default:
		return StateIdle
	}
}

// Err returns the first error raised since the last SQL or Reset.
func (d *Database) Err() error {
	return d.err
}

// Reset drops the buffered fragments and any pending error.
func (d *Database) Reset() *Database {
	d.parts.Flush()
	d.err = nil
	d.rendered = false
	return d
}

func (d *Database) fail(err error) *Database {
	if d.err == nil {
		d.err = err
		d.logger.Warnf("%s: %s", d.name, err)
	}
	return d
}

func (d *Database) push(kind Clause, args ...string) *Database {
	if d.err != nil {
		return d
	}
	if err := d.parts.Push(NewFragment(kind, args...)); err != nil {
		return d.fail(err)
	}
	d.rendered = false
	return d
}

// Append adds a raw (kind, args...) fragment.
func (d *Database) Append(parts ...string) *Database {
	if d.err != nil {
		return d
	}
	if err := d.parts.Append(parts...); err != nil {
		return d.fail(err)
	}
	d.rendered = false
	return d
}

// Select appends a SELECT clause; no columns means "*".
func (d *Database) Select(columns ...string) *Database {
	if len(columns) == 0 {
		columns = []string{"*"}
	}
	return d.push(ClauseSelect, columns...)
}

func (d *Database) From(tables ...string) *Database {
	if len(tables) == 0 {
		return d.fail(&EmptyArgumentError{Op: "from"})
	}
	return d.push(ClauseFrom, tables...)
}

// Where appends a WHERE clause made of parts joined by spaces.
func (d *Database) Where(parts ...string) *Database {
	if len(parts) == 0 {
		return d.fail(&EmptyArgumentError{Op: "where"})
	}
	return d.push(ClauseWhere, strings.Join(parts, " "))
}

func (d *Database) Insert(table string, columns ...string) *Database {
	if table == "" {
		return d.fail(&EmptyArgumentError{Op: "insert"})
	}
	return d.push(ClauseInsert, table, strings.Join(columns, ", "))
}

func (d *Database) Values(values ...string) *Database {
	if len(values) == 0 {
		return d.fail(&EmptyArgumentError{Op: "values"})
	}
	return d.push(ClauseValues, strings.Join(values, ", "))
}

func (d *Database) Update(table string) *Database {
	if table == "" {
		return d.fail(&EmptyArgumentError{Op: "update"})
	}
	return d.push(ClauseUpdate, table)
}

// Set appends the assignments of an UPDATE on table.
func (d *Database) Set(table string, assignments ...string) *Database {
	if len(assignments) == 0 {
		return d.fail(&EmptyArgumentError{Op: "set"})
	}
	return d.push(ClauseSet, table, strings.Join(assignments, ", "))
}

func (d *Database) Delete(table string) *Database {
	if table == "" {
		return d.fail(&EmptyArgumentError{Op: "delete"})
	}
	return d.push(ClauseDelete, table)
}

func (d *Database) OrderBy(columns ...string) *Database {
	if len(columns) == 0 {
		return d.fail(&EmptyArgumentError{Op: "order by"})
	}
	return d.push(ClauseOrderBy, strings.Join(columns, ", "))
}

func (d *Database) Join(table string) *Database {
	if table == "" {
		return d.fail(&EmptyArgumentError{Op: "join"})
	}
	return d.push(ClauseJoin, table)
}

// On appends a join condition left=right.
func (d *Database) On(left, right string) *Database {
	if left == "" || right == "" {
		return d.fail(&EmptyArgumentError{Op: "on"})
	}
	return d.push(ClauseOn, left, right)
}

func (d *Database) GroupBy(columns ...string) *Database {
	if len(columns) == 0 {
		return d.fail(&EmptyArgumentError{Op: "group by"})
	}
	return d.push(ClauseGroupBy, strings.Join(columns, ", "))
}

func (d *Database) Having(parts ...string) *Database {
	if len(parts) == 0 {
		return d.fail(&EmptyArgumentError{Op: "having"})
	}
	return d.push(ClauseHaving, strings.Join(parts, " "))
}

// CreateTable appends a CREATE TABLE for table. Each field is a Field or
// its "<type>::<name>" string form. Foreign keys add their constraint
// after the column definitions. Nothing is appended if any field fails.
func (d *Database) CreateTable(table string, fields ...any) *Database {
	if d.err != nil {
		return d
	}
	if table == "" {
		return d.fail(&EmptyArgumentError{Op: "create table"})
	}
	columns, err := d.columns(fields)
	if err != nil {
		return d.fail(err)
	}
	return d.push(ClauseCreateTable, table, strings.Join(columns, ", "))
}

func (d *Database) columns(fields []any) ([]string, error) {
	if len(fields) == 0 {
		return nil, &EmptyArgumentError{Op: "create table fields"}
	}
	ft := d.engine.Fields()
	var (
		errs    error
		columns []string
		refs    []string
	)
	for _, v := range fields {
		f, err := toField(v)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		def, err := ft.Expand(f)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		columns = append(columns, def)
		ref, err := ft.Reference(f)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if ref != "" {
			refs = append(refs, ref)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return append(columns, refs...), nil
}

func (d *Database) DropTable(table string) *Database {
	if table == "" {
		return d.fail(&EmptyArgumentError{Op: "drop table"})
	}
	return d.push(ClauseDropTable, table)
}

// SQL flushes the buffer and renders it. The Database is ready for the
// next statement afterwards, whether or not rendering failed.
func (d *Database) SQL() (string, error) {
	fragments := d.parts.Flush()
	err := d.err
	d.err = nil
	d.rendered = true
	if err != nil {
		return "", err
	}
	s, err := d.engine.Render(fragments)
	if err != nil {
		d.logger.Errorf("%s: %s", d.name, err)
		return "", err
	}
	d.logger.Debugf("%s: %s", d.name, s)
	return s, nil
}

// Exec renders the statement and runs it on the connection.
func (d *Database) Exec(ctx context.Context) (sql.Result, error) {
	s, err := d.SQL()
	if err != nil {
		return nil, err
	}
	return d.conn.exec(ctx, s)
}

// Query renders the statement and runs it on the connection.
func (d *Database) Query(ctx context.Context) (*sql.Rows, error) {
	s, err := d.SQL()
	if err != nil {
		return nil, err
	}
	return d.conn.query(ctx, s)
}
