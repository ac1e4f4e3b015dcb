package model

// Role represents a named bundle of permissions that can be attached to
// accounts. The permission_ids array emulates a role/permission join table;
// the dao layer keeps it deduplicated and free of dangling references.
type Role struct {
	Meta
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	PermissionIDs []string `json:"permission_ids"`
}

// Validate checks the role shape
func (r *Role) Validate() []FieldError {
	var errs []FieldError
	errs = requireString(errs, "code", r.Code)
	errs = requireString(errs, "name", r.Name)
	return errs
}

// HasPermission returns true if the role carries the given permission id
func (r *Role) HasPermission(permissionID string) bool {
	for _, id := range r.PermissionIDs {
		if id == permissionID {
			return true
		}
	}
	return false
}

// Permission represents a single grantable capability
type Permission struct {
	Meta
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate checks the permission shape
func (p *Permission) Validate() []FieldError {
	var errs []FieldError
	errs = requireString(errs, "code", p.Code)
	errs = requireString(errs, "name", p.Name)
	return errs
}

// MembershipRequest represents a request to grant or replace an id set on an
// association endpoint (role permissions, account roles).
type MembershipRequest struct {
	IDs []string `json:"ids"`
}

// Validate checks the membership request shape
func (r *MembershipRequest) Validate() []FieldError {
	var errs []FieldError
	if len(r.IDs) == 0 {
		errs = append(errs, FieldError{Field: "ids", Message: "ids must contain at least one entry"})
	}
	return errs
}
