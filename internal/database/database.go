package database

import (
	"context"
	"errors"
)

// Errors returned by Database implementations; match them with errors.Is.
// ErrDuplicate means a unique index was hit, such as a taken nickname.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("duplicate record")
	ErrConnection = errors.New("database connection error")
	ErrQuery      = errors.New("query error")
)

// Database runs SurrealQL for the repositories
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query returns one {status, result} map per statement
	Query(ctx context.Context, query string, vars map[string]any) ([]any, error)
	// QueryOne returns the first record of the first statement, or ErrNotFound
	QueryOne(ctx context.Context, query string, vars map[string]any) (any, error)
	Execute(ctx context.Context, query string, vars map[string]any) error
}

// Config locates one namespace/database pair on a SurrealDB server
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
