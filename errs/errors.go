// Package errs defines the error taxonomy surfaced by the persistence
// core. Callers classify failures with errors.Is against these sentinels.
package errs

import "errors"

var (
	// ErrConnection means the underlying database connection could not be
	// opened or used.
	ErrConnection = errors.New("database connection failure")

	// ErrNotConnected means an operation was attempted without an active
	// connection.
	ErrNotConnected = errors.New("not connected to database")

	// ErrPersistence means a read or write statement failed. For
	// multi-statement operations the enclosing transaction has been
	// rolled back by the time this is returned.
	ErrPersistence = errors.New("persistence failure")

	// ErrNotFound means an operation targeted a row that does not exist.
	ErrNotFound = errors.New("record not found")
)
