package database

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
)

// Memory is an in-memory implementation of the Database interface.
// It backs unit tests and lets the server run without a database.
// All documents are deep-copied on the way in and out, so callers can
// never mutate stored state through shared maps.
type Memory struct {
	mu     sync.RWMutex
	tables map[string]map[string]map[string]interface{}
	closed bool
}

// NewMemory creates a new in-memory engine
func NewMemory() *Memory {
	return &Memory{
		tables: make(map[string]map[string]map[string]interface{}),
	}
}

// Connect is a no-op for the memory engine
func (m *Memory) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = false
	return nil
}

// Close marks the engine closed
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Ping reports whether the engine is usable
func (m *Memory) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return ErrConnection
	}
	return nil
}

// Create stores a new document under the id carried in doc["id"]
func (m *Memory) Create(ctx context.Context, table string, doc map[string]interface{}) (map[string]interface{}, error) {
	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: document has no id", ErrQuery)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrConnection
	}

	docs := m.tables[table]
	if docs == nil {
		docs = make(map[string]map[string]interface{})
		m.tables[table] = docs
	}
	if _, exists := docs[id]; exists {
		return nil, fmt.Errorf("%w: id %s", ErrDuplicate, id)
	}

	stored, err := cloneDoc(doc)
	if err != nil {
		return nil, err
	}
	docs[id] = stored
	return cloneDoc(stored)
}

// Get retrieves a document by id
func (m *Memory) Get(ctx context.Context, id string) (map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrConnection
	}

	doc, ok := m.tables[tableOf(id)][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDoc(doc)
}

// Update replaces the document stored under id
func (m *Memory) Update(ctx context.Context, id string, doc map[string]interface{}) (map[string]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrConnection
	}

	docs := m.tables[tableOf(id)]
	if _, ok := docs[id]; !ok {
		return nil, ErrNotFound
	}

	stored, err := cloneDoc(doc)
	if err != nil {
		return nil, err
	}
	stored["id"] = id
	docs[id] = stored
	return cloneDoc(stored)
}

// Delete removes the document stored under id
func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrConnection
	}

	docs := m.tables[tableOf(id)]
	if _, ok := docs[id]; !ok {
		return ErrNotFound
	}
	delete(docs, id)
	return nil
}

// Find returns all documents in table matching the query
func (m *Memory) Find(ctx context.Context, table string, q Query) ([]map[string]interface{}, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return nil, ErrConnection
	}

	var out []map[string]interface{}
	for _, doc := range m.tables[table] {
		if !matches(doc, q) {
			continue
		}
		clone, err := cloneDoc(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, clone)
	}

	field := q.OrderField
	if field == "" {
		// Map iteration order is random; fall back to id so results are stable
		field = "id"
	}
	sort.SliceStable(out, func(i, j int) bool {
		if q.OrderDesc {
			return lessValue(out[j][field], out[i][field])
		}
		return lessValue(out[i][field], out[j][field])
	})

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// FindOne returns the first document in table matching the query
func (m *Memory) FindOne(ctx context.Context, table string, q Query) (map[string]interface{}, error) {
	rows, err := m.Find(ctx, table, q.WithLimit(1))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// Count returns the number of documents in table matching the query
func (m *Memory) Count(ctx context.Context, table string, q Query) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return 0, ErrConnection
	}

	n := 0
	for _, doc := range m.tables[table] {
		if matches(doc, q) {
			n++
		}
	}
	return n, nil
}

// matches evaluates a query against a document
func matches(doc map[string]interface{}, q Query) bool {
	if q.ExcludedID != "" {
		if id, _ := doc["id"].(string); id == q.ExcludedID {
			return false
		}
	}
	for _, c := range q.Conditions {
		val := doc[c.Field]
		switch c.Op {
		case OpEq:
			if !equalValues(val, c.Value) {
				return false
			}
		case OpNotEq:
			if equalValues(val, c.Value) {
				return false
			}
		case OpContains:
			arr, ok := val.([]interface{})
			if !ok {
				return false
			}
			found := false
			for _, item := range arr {
				if equalValues(item, c.Value) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// equalValues compares loosely across the numeric types a JSON round trip
// produces (stored values are float64; query values may be int)
func equalValues(a, b interface{}) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func lessValue(a, b interface{}) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af < bf
		}
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// tableOf extracts the table prefix from a record id
func tableOf(id string) string {
	if i := strings.Index(id, ":"); i > 0 {
		return id[:i]
	}
	return id
}

// cloneDoc deep-copies a document through a JSON round trip, keeping stored
// values in the same shape the dao layer produces
func cloneDoc(doc map[string]interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrQuery, err)
	}
	return out, nil
}
