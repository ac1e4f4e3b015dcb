// Package database provides the storage engine abstraction for Directory.
//
// The Database interface exposes plain document operations (Create, Get,
// Update, Delete, Find, FindOne, Count) over string-keyed documents, plus a
// structured Query type for filtering. Engines translate Query into whatever
// their store understands; callers never see engine query syntax. Two engines
// ship with the server:
//
//   - SurrealDB: renders Query to parameterized SurrealQL and runs it over
//     the websocket client
//   - Memory: a mutex-guarded map-of-maps store that evaluates Query in
//     process, used by unit tests and for running the server without a
//     database
//
// # Record IDs
//
// Every document carries an "id" field of the form "<table>:<key>". Engines
// treat the id as opaque apart from splitting off the table prefix.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
package database

import (
	"context"
	"errors"
)

// Standard errors for database operations.
// Use errors.Is() to check these error types in calling code.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint violation (e.g., duplicate email).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the engine interface for document operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Create stores a new document and returns it as persisted.
	// The document must carry an "id" field.
	Create(ctx context.Context, table string, doc map[string]interface{}) (map[string]interface{}, error)

	// Get retrieves a document by its full id ("table:key")
	Get(ctx context.Context, id string) (map[string]interface{}, error)

	// Update replaces the document stored under id and returns it as persisted
	Update(ctx context.Context, id string, doc map[string]interface{}) (map[string]interface{}, error)

	// Delete removes the document stored under id
	Delete(ctx context.Context, id string) error

	// Find returns all documents in table matching the query
	Find(ctx context.Context, table string, q Query) ([]map[string]interface{}, error)

	// FindOne returns the first document in table matching the query
	FindOne(ctx context.Context, table string, q Query) (map[string]interface{}, error)

	// Count returns the number of documents in table matching the query
	Count(ctx context.Context, table string, q Query) (int, error)
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
