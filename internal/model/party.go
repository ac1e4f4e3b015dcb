package model

// PartyKind distinguishes person parties from organization parties
type PartyKind string

const (
	PartyKindPerson       PartyKind = "person"
	PartyKindOrganization PartyKind = "organization"
)

// IsValid returns true if the kind is a known party kind
func (k PartyKind) IsValid() bool {
	switch k {
	case PartyKindPerson, PartyKindOrganization:
		return true
	default:
		return false
	}
}

// Party represents a person or organization the directory knows about.
// Addresses and contact methods reference the party by id.
type Party struct {
	Meta
	Kind       PartyKind `json:"kind"`
	Name       string    `json:"name"`
	GivenName  *string   `json:"given_name,omitempty"`
	FamilyName *string   `json:"family_name,omitempty"`
}

// Validate checks the party shape
func (p *Party) Validate() []FieldError {
	var errs []FieldError
	if !p.Kind.IsValid() {
		errs = append(errs, FieldError{Field: "kind", Message: "kind must be 'person' or 'organization'"})
	}
	errs = requireString(errs, "name", p.Name)
	return errs
}

// IsOrganization returns true for organization parties
func (p *Party) IsOrganization() bool {
	return p.Kind == PartyKindOrganization
}
