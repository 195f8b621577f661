package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ConnectionError means the backend could not be reached or refused the credentials.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("catalog connection failed during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// QueryError carries the backend's message for a statement that failed.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("catalog query failed during %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// Message is the backend diagnostic without the operation prefix.
func (e *QueryError) Message() string {
	var pgErr *pgconn.PgError
	if errors.As(e.Err, &pgErr) {
		return pgErr.Message
	}
	return e.Err.Error()
}

// ExtensionUnavailableError is reported when an optional extension cannot be
// enabled. It never leaves EnsureSchema.
type ExtensionUnavailableError struct {
	Extension string
	Err       error
}

func (e *ExtensionUnavailableError) Error() string {
	return fmt.Sprintf("extension %s unavailable: %v", e.Extension, e.Err)
}

func (e *ExtensionUnavailableError) Unwrap() error { return e.Err }

// classify maps a raw driver error onto the store's error taxonomy.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isConnectionFailure(err) {
		return &ConnectionError{Op: op, Err: err}
	}
	return &QueryError{Op: op, Err: err}
}

const errDatabaseClosed = "sql: database is closed"

func isConnectionFailure(err error) bool {
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 08xxx connection exceptions, 28xxx invalid authorization
		return len(pgErr.Code) == 5 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "28")
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) ||
		errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	// database/sql does not export the closed-pool error
	return strings.Contains(err.Error(), errDatabaseClosed)
}
