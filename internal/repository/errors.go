package repository

import "errors"

// ErrNotFound marks a single-row lookup that matched zero rows. Callers test
// with errors.Is.
var ErrNotFound = errors.New("not found")

// QueryError wraps a store failure with the operation that issued it. Reads
// never retry and never return partial results; the wrapped error propagates
// to the caller as-is.
type QueryError struct {
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return "query " + e.Op + ": " + e.Err.Error()
}

func (e *QueryError) Unwrap() error { return e.Err }

func queryErr(op string, err error) error {
	return &QueryError{Op: op, Err: err}
}
