package model

import "strings"

// ContactKind represents the channel of a contact method
type ContactKind string

const (
	ContactKindEmail ContactKind = "email"
	ContactKindPhone ContactKind = "phone"
)

// IsValid returns true if the kind is a known contact kind
func (k ContactKind) IsValid() bool {
	switch k {
	case ContactKindEmail, ContactKindPhone:
		return true
	default:
		return false
	}
}

// ContactMethod represents a way to reach a party.
// A party may not carry the same value twice for the same kind.
type ContactMethod struct {
	Meta
	PartyID string      `json:"party_id"`
	Kind    ContactKind `json:"kind"`
	Value   string      `json:"value"`
	Primary bool        `json:"primary"`
}

// Validate checks the contact method shape
func (c *ContactMethod) Validate() []FieldError {
	var errs []FieldError
	errs = requireString(errs, "party_id", c.PartyID)
	if !c.Kind.IsValid() {
		errs = append(errs, FieldError{Field: "kind", Message: "kind must be 'email' or 'phone'"})
	}
	errs = requireString(errs, "value", c.Value)
	if c.Kind == ContactKindEmail && c.Value != "" && !strings.Contains(c.Value, "@") {
		errs = append(errs, FieldError{Field: "value", Message: "email value must contain '@'"})
	}
	return errs
}
