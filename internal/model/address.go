package model

// AddressKind represents the use of a postal address
type AddressKind string

const (
	AddressKindPostal   AddressKind = "postal"
	AddressKindBilling  AddressKind = "billing"
	AddressKindShipping AddressKind = "shipping"
)

// IsValid returns true if the kind is a known address kind
func (k AddressKind) IsValid() bool {
	switch k {
	case AddressKindPostal, AddressKindBilling, AddressKindShipping:
		return true
	default:
		return false
	}
}

// Address represents a postal address attached to a party
type Address struct {
	Meta
	PartyID    string      `json:"party_id"`
	Kind       AddressKind `json:"kind"`
	Line1      string      `json:"line1"`
	Line2      *string     `json:"line2,omitempty"`
	City       string      `json:"city"`
	Region     string      `json:"region,omitempty"`
	PostalCode string      `json:"postal_code,omitempty"`
	Country    string      `json:"country"`
}

// Validate checks the address shape
func (a *Address) Validate() []FieldError {
	var errs []FieldError
	errs = requireString(errs, "party_id", a.PartyID)
	if !a.Kind.IsValid() {
		errs = append(errs, FieldError{Field: "kind", Message: "kind must be 'postal', 'billing', or 'shipping'"})
	}
	errs = requireString(errs, "line1", a.Line1)
	errs = requireString(errs, "city", a.City)
	errs = requireString(errs, "country", a.Country)
	return errs
}
