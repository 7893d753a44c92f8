// Package pgxutil reaches the native pgx connection behind a database/sql pool.
package pgxutil

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
)

// ErrNilDB is returned when a helper is handed a nil pool.
var ErrNilDB = errors.New("database handle is nil")

// WithConn borrows a connection from db and calls fn with its *pgx.Conn.
func WithConn(ctx context.Context, db *sql.DB, fn func(*pgx.Conn) error) error {
	if db == nil {
		return ErrNilDB
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("get conn from pool: %w", err)
	}
	defer func() { _ = conn.Close() }()

	return conn.Raw(func(dc any) error {
		std, ok := dc.(*stdlib.Conn)
		if !ok {
			return fmt.Errorf("unexpected driver connection %T", dc)
		}
		return fn(std.Conn())
	})
}

// WithTx runs fn in a pgx transaction. It commits when fn returns nil and
// rolls back otherwise.
func WithTx(ctx context.Context, db *sql.DB, opts pgx.TxOptions, fn func(pgx.Tx) error) error {
	return WithConn(ctx, db, func(conn *pgx.Conn) error {
		tx, err := conn.BeginTx(ctx, opts)
		if err != nil {
			return fmt.Errorf("begin tx: %w", err)
		}
		defer func() { _ = tx.Rollback(ctx) }()
		if err := fn(tx); err != nil {
			return err
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit tx: %w", err)
		}
		return nil
	})
}
