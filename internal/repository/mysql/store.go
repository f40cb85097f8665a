// Package mysql implements repository.Store on MySQL.  Queries are
// built with goqu's mysql dialect and scanned with sqlx; every
// repository runs against either the pool or the transaction opened by
// InTx.
package mysql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/shareit/internal/repository"
)

var dialect = goqu.Dialect("mysql")

// MySQL server error numbers translated into repository errors.
const (
	errRowIsReferenced  = 1217
	errDupEntry         = 1062
	errRowIsReferenced2 = 1451
	errNoReferencedRow2 = 1452
)

// Store is a repository.Store backed by a MySQL pool or, inside InTx,
// by a single transaction.
type Store struct {
	db *sqlx.DB         // nil when bound to a transaction
	q  sqlx.ExtContext // pool or tx
}

var _ repository.Store = (*Store)(nil)

// New wraps an open pool.
func New(db *sqlx.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Users() repository.Users       { return userRepo{s.q} }
func (s *Store) Items() repository.Items       { return itemRepo{s.q} }
func (s *Store) Bookings() repository.Bookings { return bookingRepo{s.q} }
func (s *Store) Requests() repository.Requests { return requestRepo{s.q} }
func (s *Store) Comments() repository.Comments { return commentRepo{s.q} }

// InTx opens a transaction, runs fn against it and commits when fn
// succeeds.  Calls on a Store already bound to a transaction reuse it.
func (s *Store) InTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&Store{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// Close releases the pool.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// sqlBuilder is satisfied by every goqu dataset.
type sqlBuilder interface {
	ToSQL() (string, []interface{}, error)
}

func from(table interface{}) *goqu.SelectDataset { return dialect.From(table).Prepared(true) }

func insertInto(table string) *goqu.InsertDataset { return dialect.Insert(table).Prepared(true) }

func update(table string) *goqu.UpdateDataset { return dialect.Update(table).Prepared(true) }

func deleteFrom(table string) *goqu.DeleteDataset { return dialect.Delete(table).Prepared(true) }

func get(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b sqlBuilder) error {
	query, args, err := b.ToSQL()
	if err != nil {
		return err
	}
	return translate(sqlx.GetContext(ctx, q, dest, query, args...))
}

func selectAll(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b sqlBuilder) error {
	query, args, err := b.ToSQL()
	if err != nil {
		return err
	}
	return translate(sqlx.SelectContext(ctx, q, dest, query, args...))
}

func exec(ctx context.Context, q sqlx.ExecerContext, b sqlBuilder) (sql.Result, error) {
	query, args, err := b.ToSQL()
	if err != nil {
		return nil, err
	}
	res, err := q.ExecContext(ctx, query, args...)
	return res, translate(err)
}

// insertID runs an INSERT and returns the generated key.
func insertID(ctx context.Context, q sqlx.ExecerContext, b sqlBuilder) (int64, error) {
	res, err := exec(ctx, q, b)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, q sqlx.ExecerContext, b sqlBuilder) error {
	res, err := exec(ctx, q, b)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// translate maps driver errors onto repository sentinels.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case errDupEntry:
			return repository.ErrEmailExists
		case errRowIsReferenced, errRowIsReferenced2:
			return repository.ErrReferenced
		case errNoReferencedRow2:
			return repository.ErrNotFound
		}
	}
	return err
}
