package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// ErrTxNotSupported исполнитель не умеет начинать транзакции
var ErrTxNotSupported = errors.New("dbmetrics: transactions are not supported by executor")

// DBExecutor общий интерфейс выполнения запросов
// Реализуется *sql.DB, *sql.Tx и *DB
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Observer получатель длительностей запросов (pkg/metrics.Metrics)
type Observer interface {
	ObserveDBQuery(operation string, duration time.Duration, err error)
}

// DB обертка над DBExecutor, замеряющая длительность каждого запроса
type DB struct {
	db       DBExecutor
	observer Observer
	now      func() time.Time
}

// Wrap оборачивает исполнитель запросов сбором метрик
func Wrap(db DBExecutor, observer Observer) *DB {
	return &DB{
		db:       db,
		observer: observer,
		now:      time.Now,
	}
}

// ExecContext выполняет запрос без результата
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := d.now()
	res, err := d.db.ExecContext(ctx, query, args...)
	d.observe(query, start, err)
	return res, err
}

// QueryContext выполняет запрос, возвращающий строки
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := d.now()
	rows, err := d.db.QueryContext(ctx, query, args...)
	d.observe(query, start, err)
	return rows, err
}

// QueryRowContext выполняет запрос, возвращающий одну строку
// Ошибка строки доступна только через Row.Err, поэтому фиксируем её оттуда
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := d.now()
	row := d.db.QueryRowContext(ctx, query, args...)
	var err error
	if row != nil {
		err = row.Err()
	}
	d.observe(query, start, err)
	return row
}

func (d *DB) observe(query string, start time.Time, err error) {
	if d.observer == nil {
		return
	}
	if err == sql.ErrNoRows {
		err = nil
	}
	d.observer.ObserveDBQuery(OperationFromQuery(query), d.now().Sub(start), err)
}

// OperationFromQuery возвращает тип SQL операции в нижнем регистре (select, insert, ...)
func OperationFromQuery(query string) string {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}

// TxExecutor транзакция, через которую выполняются запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

// BeginTx начинает транзакцию; запросы внутри нее тоже замеряются
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	beginner, ok := d.db.(interface {
		BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
	})
	if !ok {
		return nil, ErrTxNotSupported
	}

	tx, err := beginner.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}

	return &measuredTx{
		DB: &DB{db: tx, observer: d.observer, now: d.now},
		tx: tx,
	}, nil
}

type measuredTx struct {
	*DB
	tx *sql.Tx
}

func (t *measuredTx) Commit() error   { return t.tx.Commit() }
func (t *measuredTx) Rollback() error { return t.tx.Rollback() }

// SqlTxWrapper адаптирует *sql.Tx к TxExecutor без метрик
type SqlTxWrapper struct {
	*sql.Tx
}

type txKey struct{}

// WithTx кладет транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return db
}
