package norm

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// connection runs rendered statements. It is the only part of the
// package that does I/O.
type connection struct {
	engine *Engine
	logger Logger
	db     *sql.DB
	owned  bool
}

// connect opens the engine's driver. Calling it while connected is a no-op.
func (c *connection) connect(ctx context.Context) error {
	if c.db != nil {
		return nil
	}
	dsn, err := c.engine.DSN()
	if err != nil {
		return err
	}
	db, err := sql.Open(c.engine.DriverName(), dsn)
	if err != nil {
		return fmt.Errorf("norm: open %s: %w", c.engine.Name(), err)
	}
	if c.engine.DriverName() == Dialects.SQLite.DriverName {
		// every new connection to an in-memory database is a fresh database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return fmt.Errorf("norm: connect %s: %w", c.engine.Name(), err)
	}
	c.db = db
	c.owned = true
	c.logger.Infof("connected to %s", c.engine.Name())
	return nil
}

// attach uses an already open handle. It is not closed on disconnect.
func (c *connection) attach(db *sql.DB) {
	c.db = db
	c.owned = false
}

func (c *connection) disconnect() error {
	if c.db == nil {
		return nil
	}
	db, owned := c.db, c.owned
	c.db, c.owned = nil, false
	if !owned {
		return nil
	}
	c.logger.Infof("disconnected from %s", c.engine.Name())
	return db.Close()
}

func (c *connection) exec(ctx context.Context, q string) (sql.Result, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	c.logger.Infof("exec %s", q)
	res, err := c.db.ExecContext(ctx, q)
	if err != nil {
		c.logger.Errorf("exec %s: %s", q, err)
		return nil, err
	}
	return res, nil
}

func (c *connection) query(ctx context.Context, q string) (*sql.Rows, error) {
	if c.db == nil {
		return nil, ErrNotConnected
	}
	c.logger.Infof("query %s", q)
	rows, err := c.db.QueryContext(ctx, q)
	if err != nil {
		c.logger.Errorf("query %s: %s", q, err)
		return nil, err
	}
	return rows, nil
}
