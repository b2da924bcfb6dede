package repository

import "context"

// fakeDB is a test double for Querier; each test wires the behavior it needs.
type fakeDB struct {
	get func(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	sel func(ctx context.Context, dest interface{}, query string, args ...interface{}) error
}

func (f *fakeDB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return f.get(ctx, dest, query, args...)
}

func (f *fakeDB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return f.sel(ctx, dest, query, args...)
}
