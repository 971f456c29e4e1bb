// this package provides "mock" implementations of the pool interfaces for testing.
package mock

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	kpool "github.com/vetstoria/k9facts/pkg/db/postgres/pool"
)

type CallLog[T any] []T

func (l CallLog[T]) Times() uint {
	return uint(len(l))
}

// Query records a statement sent to the database.
type Query struct {
	Sql  string
	Args []interface{}
}

type Pool struct {
	Impl struct {
		Begin   func(context.Context) (kpool.Tx, error)
		Acquire func(context.Context) (kpool.Conn, error)
		Ping    func(context.Context) error
	}
	Calls struct {
		Begin   CallLog[struct{}]
		Acquire CallLog[struct{}]
		Ping    CallLog[struct{}]
	}
}

func NewPool() *Pool {
	return &Pool{}
}

var _ kpool.Pool = &Pool{}

func (p *Pool) Begin(ctx context.Context) (kpool.Tx, error) {
	p.Calls.Begin = append(p.Calls.Begin, struct{}{})
	if p.Impl.Begin != nil {
		return p.Impl.Begin(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (p *Pool) Acquire(ctx context.Context) (kpool.Conn, error) {
	p.Calls.Acquire = append(p.Calls.Acquire, struct{}{})
	if p.Impl.Acquire != nil {
		return p.Impl.Acquire(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (p *Pool) Ping(ctx context.Context) error {
	p.Calls.Ping = append(p.Calls.Ping, struct{}{})
	if p.Impl.Ping != nil {
		return p.Impl.Ping(ctx)
	}
	panic(errors.New("it should not be called"))
}

type Conn struct {
	Impl struct {
		Begin    func(context.Context) (kpool.Tx, error)
		Exec     func(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
		Query    func(context.Context, string, ...interface{}) (pgx.Rows, error)
		QueryRow func(context.Context, string, ...interface{}) pgx.Row
		Ping     func(context.Context) error
	}
	Calls struct {
		Begin    CallLog[struct{}]
		Exec     CallLog[Query]
		Query    CallLog[Query]
		QueryRow CallLog[Query]
		Ping     CallLog[struct{}]
		Release  CallLog[struct{}]
	}
}

func NewConn() *Conn {
	return &Conn{}
}

var _ kpool.Conn = &Conn{}

func (c *Conn) Begin(ctx context.Context) (kpool.Tx, error) {
	c.Calls.Begin = append(c.Calls.Begin, struct{}{})
	if c.Impl.Begin != nil {
		return c.Impl.Begin(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	c.Calls.Exec = append(c.Calls.Exec, Query{Sql: sql, Args: args})
	if c.Impl.Exec != nil {
		return c.Impl.Exec(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

func (c *Conn) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	c.Calls.Query = append(c.Calls.Query, Query{Sql: sql, Args: args})
	if c.Impl.Query != nil {
		return c.Impl.Query(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

func (c *Conn) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	c.Calls.QueryRow = append(c.Calls.QueryRow, Query{Sql: sql, Args: args})
	if c.Impl.QueryRow != nil {
		return c.Impl.QueryRow(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

func (c *Conn) Ping(ctx context.Context) error {
	c.Calls.Ping = append(c.Calls.Ping, struct{}{})
	if c.Impl.Ping != nil {
		return c.Impl.Ping(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (c *Conn) Release() {
	c.Calls.Release = append(c.Calls.Release, struct{}{})
}

type Tx struct {
	Impl struct {
		Begin    func(context.Context) (kpool.Tx, error)
		Exec     func(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
		Query    func(context.Context, string, ...interface{}) (pgx.Rows, error)
		QueryRow func(context.Context, string, ...interface{}) pgx.Row
		Commit   func(context.Context) error
		Rollback func(context.Context) error
	}
	Calls struct {
		Begin    CallLog[struct{}]
		Exec     CallLog[Query]
		Query    CallLog[Query]
		QueryRow CallLog[Query]
		Commit   CallLog[struct{}]
		Rollback CallLog[struct{}]
	}
}

func NewTx() *Tx {
	return &Tx{}
}

var _ kpool.Tx = &Tx{}

func (tx *Tx) Begin(ctx context.Context) (kpool.Tx, error) {
	tx.Calls.Begin = append(tx.Calls.Begin, struct{}{})
	if tx.Impl.Begin != nil {
		return tx.Impl.Begin(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (tx *Tx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	tx.Calls.Exec = append(tx.Calls.Exec, Query{Sql: sql, Args: args})
	if tx.Impl.Exec != nil {
		return tx.Impl.Exec(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

func (tx *Tx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	tx.Calls.Query = append(tx.Calls.Query, Query{Sql: sql, Args: args})
	if tx.Impl.Query != nil {
		return tx.Impl.Query(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

func (tx *Tx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	tx.Calls.QueryRow = append(tx.Calls.QueryRow, Query{Sql: sql, Args: args})
	if tx.Impl.QueryRow != nil {
		return tx.Impl.QueryRow(ctx, sql, args...)
	}
	panic(errors.New("it should not be called"))
}

// Commit is allowed by default so "defer tx.Rollback" patterns can run
// against a bare mock.
func (tx *Tx) Commit(ctx context.Context) error {
	tx.Calls.Commit = append(tx.Calls.Commit, struct{}{})
	if tx.Impl.Commit != nil {
		return tx.Impl.Commit(ctx)
	}
	return nil
}

func (tx *Tx) Rollback(ctx context.Context) error {
	tx.Calls.Rollback = append(tx.Calls.Rollback, struct{}{})
	if tx.Impl.Rollback != nil {
		return tx.Impl.Rollback(ctx)
	}
	return nil
}

// Row is a pgx.Row answering with ScanFn.
type Row struct {
	ScanFn func(dest ...interface{}) error
}

var _ pgx.Row = Row{}

func (r Row) Scan(dest ...interface{}) error {
	if r.ScanFn == nil {
		panic(errors.New("it should not be called"))
	}
	return r.ScanFn(dest...)
}
