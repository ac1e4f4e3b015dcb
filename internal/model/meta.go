package model

import "time"

// Meta carries the record identity and timestamps shared by all entities.
// The dao layer owns these fields: ids are generated on insert, created_on
// is set once, updated_on is bumped on every write.
type Meta struct {
	ID        string    `json:"id,omitempty"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// Metadata returns the embedded Meta, giving the dao layer uniform access
// to identity and timestamps across entity types.
func (m *Meta) Metadata() *Meta { return m }

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// requireString appends a FieldError when a required string field is empty.
func requireString(errs []FieldError, field, value string) []FieldError {
	if value == "" {
		errs = append(errs, FieldError{Field: field, Message: field + " is required"})
	}
	return errs
}
