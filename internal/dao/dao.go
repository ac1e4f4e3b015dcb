package dao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// Record is the contract entities must satisfy to go through the shared
// persistence lifecycle. model.Meta provides Metadata; each entity provides
// its own Validate.
type Record interface {
	Metadata() *model.Meta
	Validate() []model.FieldError
}

// ErrMissingID is returned by Update when the record was never inserted
var ErrMissingID = errors.New("dao: record has no id")

// timeResolution keeps timestamps stable across the JSON round trip every
// engine write goes through
const timeResolution = time.Millisecond

// ValidationError aggregates field-level validation failures
type ValidationError struct {
	Errors []model.FieldError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	msg := fmt.Sprintf("%s: %s", e.Errors[0].Field, e.Errors[0].Message)
	if len(e.Errors) > 1 {
		msg = fmt.Sprintf("%s (and %d more errors)", msg, len(e.Errors)-1)
	}
	return msg
}

// DAO is the generic base for all entity DAOs. It owns ids, timestamps, and
// the insert/update lifecycle; entity DAOs contribute a table name, a
// factory, and an optional uniqueness filter.
type DAO[T Record] struct {
	db      database.Database
	table   string
	factory func() T
	// unique builds the query a record must NOT match for a write to
	// proceed. nil means the entity has no uniqueness rule.
	unique func(T) *database.Query

	// Overridable for tests
	now   func() time.Time
	newID func() string
}

// New creates a DAO for one entity table
func New[T Record](db database.Database, table string, factory func() T, unique func(T) *database.Query) *DAO[T] {
	return &DAO[T]{
		db:      db,
		table:   table,
		factory: factory,
		unique:  unique,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
	}
}

// Table returns the entity table name
func (d *DAO[T]) Table() string {
	return d.table
}

// Insert runs the full insert lifecycle: validate, uniqueness probe, id and
// timestamp assignment, persist, rehydrate. On success rec reflects the
// document as stored by the engine.
func (d *DAO[T]) Insert(ctx context.Context, rec T) error {
	if errs := rec.Validate(); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	if err := d.checkUnique(ctx, rec, ""); err != nil {
		return err
	}

	meta := rec.Metadata()
	if meta.ID == "" {
		meta.ID = d.table + ":" + d.newID()
	}
	now := d.now().Truncate(timeResolution)
	meta.CreatedOn = now
	meta.UpdatedOn = now

	doc, err := toDoc(rec)
	if err != nil {
		return err
	}
	stored, err := d.db.Create(ctx, d.table, doc)
	if err != nil {
		return err
	}
	return fromDoc(stored, rec)
}

// Update runs the update lifecycle: validate, existence check, uniqueness
// probe excluding the record itself, timestamp bump, persist, rehydrate.
// created_on is immutable and always taken from the stored document.
func (d *DAO[T]) Update(ctx context.Context, rec T) error {
	meta := rec.Metadata()
	if meta.ID == "" {
		return ErrMissingID
	}
	if errs := rec.Validate(); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}

	existing, err := d.db.Get(ctx, meta.ID)
	if err != nil {
		return err
	}
	if err := d.checkUnique(ctx, rec, meta.ID); err != nil {
		return err
	}

	if t, ok := parseTime(existing["created_on"]); ok {
		meta.CreatedOn = t
	}
	meta.UpdatedOn = d.now().Truncate(timeResolution)

	doc, err := toDoc(rec)
	if err != nil {
		return err
	}
	stored, err := d.db.Update(ctx, meta.ID, doc)
	if err != nil {
		return err
	}
	return fromDoc(stored, rec)
}

// Get retrieves a record by id, returning (nil, nil) when it does not exist
func (d *DAO[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	doc, err := d.db.Get(ctx, id)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return zero, nil
		}
		return zero, err
	}

	rec := d.factory()
	if err := fromDoc(doc, rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// List returns all records matching the query
func (d *DAO[T]) List(ctx context.Context, q database.Query) ([]T, error) {
	docs, err := d.db.Find(ctx, d.table, q)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		rec := d.factory()
		if err := fromDoc(doc, rec); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// Delete removes a record by id
func (d *DAO[T]) Delete(ctx context.Context, id string) error {
	return d.db.Delete(ctx, id)
}

// Count returns the number of records matching the query
func (d *DAO[T]) Count(ctx context.Context, q database.Query) (int, error) {
	return d.db.Count(ctx, d.table, q)
}

// checkUnique runs the entity's uniqueness filter, failing with ErrDuplicate
// when another record already matches it
func (d *DAO[T]) checkUnique(ctx context.Context, rec T, excludeID string) error {
	if d.unique == nil {
		return nil
	}
	q := d.unique(rec)
	if q == nil {
		return nil
	}

	probe := *q
	if excludeID != "" {
		probe = probe.ExcludeID(excludeID)
	}

	_, err := d.db.FindOne(ctx, d.table, probe)
	if err == nil {
		return fmt.Errorf("%w: %s already exists", database.ErrDuplicate, d.table)
	}
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	return err
}

// toDoc converts an entity to the document form engines store, via a JSON
// round trip so the json tags on the model stay the single source of truth
// for field names
func toDoc(rec interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("dao: marshal record: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dao: marshal record: %w", err)
	}
	return doc, nil
}

// fromDoc rehydrates an entity from a stored document
func fromDoc(doc map[string]interface{}, rec interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("dao: rehydrate record: %w", err)
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return fmt.Errorf("dao: rehydrate record: %w", err)
	}
	return nil
}

// parseTime parses the timestamp forms documents carry
func parseTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed, true
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
