package repository

import "context"

// Querier is the read subset of *sqlx.DB the repositories depend on.
// Repositories take it at construction so tests can substitute doubles.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}
