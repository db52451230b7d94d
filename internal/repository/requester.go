package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"
)

var (
	// ErrQueryFailed is matched by every error the Requester returns.
	ErrQueryFailed = errors.New("query failed")
	// ErrArgCount is returned when placeholders and arguments do not line up.
	ErrArgCount = errors.New("placeholder and argument counts differ")
)

type Kind string

const (
	KindRead  Kind = "read"
	KindWrite Kind = "write"
)

// QueryError carries the statement class and the underlying driver error.
type QueryError struct {
	Kind  Kind
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("sql %s failed: %v", e.Kind, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryFailed, e.Err}
}

// Executor is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Executor interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Row is a single record keyed by column name.
type Row = map[string]any

type Rows []Row

// Result describes the outcome of a write statement.
type Result struct {
	// Inserted holds the rows produced by the statement's RETURNING clause.
	Inserted     Rows
	RowsAffected int64
}

// InsertedID returns the id column of the first returned row.
func (r *Result) InsertedID() (int64, bool) {
	if r == nil || len(r.Inserted) == 0 {
		return 0, false
	}
	switch id := r.Inserted[0]["id"].(type) {
	case int64:
		return id, true
	case int32:
		return int64(id), true
	case int16:
		return int64(id), true
	case int:
		return int64(id), true
	}
	return 0, false
}

// Requester runs positional-placeholder SQL against a pooled connection.
// It never panics on driver failures: they are logged and returned as
// *QueryError.
type Requester struct {
	db  Executor
	log *logrus.Logger
}

func NewRequester(db Executor, log *logrus.Logger) *Requester {
	return &Requester{db: db, log: log}
}

// Query runs a read statement. On success the returned Rows is never nil.
func (r *Requester) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, _, err := r.run(ctx, KindRead, query, args)
	return rows, err
}

// Exec runs a write statement. Statements that create rows are expected to
// request the generated id with RETURNING id.
func (r *Requester) Exec(ctx context.Context, query string, args ...any) (*Result, error) {
	rows, affected, err := r.run(ctx, KindWrite, query, args)
	if err != nil {
		return nil, err
	}
	return &Result{Inserted: rows, RowsAffected: affected}, nil
}

func (r *Requester) run(ctx context.Context, kind Kind, query string, args []any) (Rows, int64, error) {
	sql, named, err := Bind(query, args)
	if err != nil {
		return nil, 0, r.fail(kind, query, err)
	}

	var bound []any
	if named != nil {
		bound = []any{named}
	}

	rows, err := r.db.Query(ctx, sql, bound...)
	if err != nil {
		return nil, 0, r.fail(kind, sql, err)
	}

	records, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, 0, r.fail(kind, sql, err)
	}
	if records == nil {
		records = []map[string]any{}
	}

	return Rows(records), rows.CommandTag().RowsAffected(), nil
}

func (r *Requester) fail(kind Kind, query string, err error) error {
	if r.log != nil {
		r.log.WithFields(logrus.Fields{
			"kind":  kind,
			"query": query,
		}).WithError(err).Error("sql request failed")
	}
	return &QueryError{Kind: kind, Query: query, Err: err}
}
