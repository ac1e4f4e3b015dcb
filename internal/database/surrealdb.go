package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// SurrealDB implements the Database interface for SurrealDB
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates a new SurrealDB engine
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Connect establishes a connection to SurrealDB
func (s *SurrealDB) Connect(ctx context.Context) error {
	endpoint := fmt.Sprintf("ws://%s:%s", s.config.Host, s.config.Port)

	db, err := surrealdb.FromEndpointURLString(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	// Sign in as root user
	_, err = db.SignIn(ctx, &surrealdb.Auth{
		Username: s.config.User,
		Password: s.config.Password,
	})
	if err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
	}

	// Use namespace and database
	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

// Close closes the database connection
func (s *SurrealDB) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping checks the database connection
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	_, err := s.db.Version(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Create stores a new document under the id carried in doc["id"]
func (s *SurrealDB) Create(ctx context.Context, table string, doc map[string]interface{}) (map[string]interface{}, error) {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: document has no id", ErrQuery)
	}

	rows, err := s.query(ctx, `CREATE type::record($id) CONTENT $content`, map[string]interface{}{
		"id":      id,
		"content": withoutID(doc),
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: create returned no rows", ErrQuery)
	}
	return rows[0], nil
}

// Get retrieves a document by id
func (s *SurrealDB) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	rows, err := s.query(ctx, `SELECT * FROM type::record($id)`, map[string]interface{}{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Update replaces the document stored under id
func (s *SurrealDB) Update(ctx context.Context, id string, doc map[string]interface{}) (map[string]interface{}, error) {
	rows, err := s.query(ctx, `UPDATE type::record($id) CONTENT $content`, map[string]interface{}{
		"id":      id,
		"content": withoutID(doc),
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return nil, fmt.Errorf("%w: %v", ErrDuplicate, err)
		}
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Delete removes the document stored under id
func (s *SurrealDB) Delete(ctx context.Context, id string) error {
	rows, err := s.query(ctx, `DELETE type::record($id) RETURN BEFORE`, map[string]interface{}{"id": id})
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	return nil
}

// Find returns all documents in table matching the query
func (s *SurrealDB) Find(ctx context.Context, table string, q Query) ([]map[string]interface{}, error) {
	stmt, vars := renderSelect(table, q)
	return s.query(ctx, stmt, vars)
}

// FindOne returns the first document in table matching the query
func (s *SurrealDB) FindOne(ctx context.Context, table string, q Query) (map[string]interface{}, error) {
	rows, err := s.Find(ctx, table, q.WithLimit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Count returns the number of documents in table matching the query
func (s *SurrealDB) Count(ctx context.Context, table string, q Query) (int, error) {
	where, vars := renderWhere(q)
	stmt := fmt.Sprintf("SELECT count() AS count FROM %s%s GROUP ALL", table, where)

	rows, err := s.query(ctx, stmt, vars)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return toInt(rows[0]["count"]), nil
}

// query executes a SurrealQL statement and returns the result rows with
// SurrealDB value types normalized to plain strings and maps.
func (s *SurrealDB) query(ctx context.Context, stmt string, vars map[string]interface{}) ([]map[string]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, stmt, vars)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	if results == nil {
		return nil, nil
	}

	var rows []map[string]interface{}
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, fmt.Errorf("%w: %s", ErrQuery, r.Error.Message)
			}
			return nil, ErrQuery
		}
		switch res := r.Result.(type) {
		case []interface{}:
			for _, item := range res {
				if doc, ok := normalizeValue(item).(map[string]interface{}); ok {
					rows = append(rows, doc)
				}
			}
		case map[string]interface{}:
			if doc, ok := normalizeValue(res).(map[string]interface{}); ok {
				rows = append(rows, doc)
			}
		}
	}
	return rows, nil
}

// renderSelect builds a parameterized SELECT for the query. Table and field
// names come from dao code, never from request input, so interpolating them
// into the statement is safe.
func renderSelect(table string, q Query) (string, map[string]interface{}) {
	where, vars := renderWhere(q)

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT * FROM %s%s", table, where)
	if q.OrderField != "" {
		fmt.Fprintf(&b, " ORDER BY %s", q.OrderField)
		if q.OrderDesc {
			b.WriteString(" DESC")
		}
	}
	if q.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", q.Limit)
	}
	return b.String(), vars
}

// renderWhere builds the WHERE clause and its bind variables
func renderWhere(q Query) (string, map[string]interface{}) {
	vars := make(map[string]interface{})
	var parts []string

	for i, c := range q.Conditions {
		name := fmt.Sprintf("p%d", i)
		switch c.Op {
		case OpContains:
			parts = append(parts, fmt.Sprintf("%s CONTAINS $%s", c.Field, name))
		case OpNotEq:
			parts = append(parts, fmt.Sprintf("%s != $%s", c.Field, name))
		default:
			parts = append(parts, fmt.Sprintf("%s = $%s", c.Field, name))
		}
		vars[name] = c.Value
	}
	if q.ExcludedID != "" {
		parts = append(parts, "id != type::record($excluded)")
		vars["excluded"] = q.ExcludedID
	}

	if len(parts) == 0 {
		return "", vars
	}
	return " WHERE " + strings.Join(parts, " AND "), vars
}

// normalizeValue converts SurrealDB client types (record ids, datetimes)
// into the plain string forms the dao layer works with
func normalizeValue(v interface{}) interface{} {
	switch t := v.(type) {
	case models.RecordID:
		return fmt.Sprintf("%s:%v", t.Table, t.ID)
	case *models.RecordID:
		if t != nil {
			return fmt.Sprintf("%s:%v", t.Table, t.ID)
		}
		return nil
	case models.CustomDateTime:
		return t.Time.UTC().Format(time.RFC3339Nano)
	case *models.CustomDateTime:
		if t != nil {
			return t.Time.UTC().Format(time.RFC3339Nano)
		}
		return nil
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = normalizeValue(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, item := range t {
			out[k] = normalizeValue(item)
		}
		return out
	default:
		return v
	}
}

// withoutID copies doc minus the id field; SurrealDB carries the id in the
// record itself, and CONTENT bodies must not repeat it
func withoutID(doc map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(doc))
	for k, v := range doc {
		if k == "id" {
			continue
		}
		out[k] = v
	}
	return out
}

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// toInt converts the numeric types SurrealDB may return for counts
func toInt(v interface{}) int {
	switch c := v.(type) {
	case float64:
		return int(c)
	case float32:
		return int(c)
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	}
	return 0
}
