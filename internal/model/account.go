package model

import (
	"strings"
	"time"
)

// AccountStatus represents the lifecycle state of an account
type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active" // Default state
	AccountStatusLocked AccountStatus = "locked" // Login disabled by an administrator
	AccountStatusClosed AccountStatus = "closed" // Retired, kept for audit
)

// IsValid returns true if the status is a known account status
func (s AccountStatus) IsValid() bool {
	switch s {
	case AccountStatusActive, AccountStatusLocked, AccountStatusClosed:
		return true
	default:
		return false
	}
}

// Account represents a login account, optionally linked to a party
type Account struct {
	Meta
	Email    string        `json:"email"`
	Username *string       `json:"username,omitempty"`
	Hash     string        `json:"hash,omitempty"`
	Status   AccountStatus `json:"status"`
	PartyID  *string       `json:"party_id,omitempty"`
	RoleIDs  []string      `json:"role_ids"`
	LoginOn  *time.Time    `json:"login_on,omitempty"`
}

// Validate checks the account shape
func (a *Account) Validate() []FieldError {
	var errs []FieldError
	errs = requireString(errs, "email", a.Email)
	if a.Email != "" && !strings.Contains(a.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "email must contain '@'"})
	}
	if a.Status != "" && !a.Status.IsValid() {
		errs = append(errs, FieldError{Field: "status", Message: "status must be 'active', 'locked', or 'closed'"})
	}
	return errs
}

// IsActive returns true if the account may log in
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// AccountPublic is the account representation returned by the API.
// The credential hash never leaves the server.
type AccountPublic struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	Username  *string       `json:"username,omitempty"`
	Status    AccountStatus `json:"status"`
	PartyID   *string       `json:"party_id,omitempty"`
	RoleIDs   []string      `json:"role_ids"`
	LoginOn   *time.Time    `json:"login_on,omitempty"`
	CreatedOn time.Time     `json:"created_on"`
	UpdatedOn time.Time     `json:"updated_on"`
}

// ToPublic converts an Account to its public representation
func (a *Account) ToPublic() *AccountPublic {
	roleIDs := a.RoleIDs
	if roleIDs == nil {
		roleIDs = []string{}
	}
	return &AccountPublic{
		ID:        a.ID,
		Email:     a.Email,
		Username:  a.Username,
		Status:    a.Status,
		PartyID:   a.PartyID,
		RoleIDs:   roleIDs,
		LoginOn:   a.LoginOn,
		CreatedOn: a.CreatedOn,
		UpdatedOn: a.UpdatedOn,
	}
}

// CreateAccountRequest represents a request to create an account
type CreateAccountRequest struct {
	Email    string  `json:"email"`
	Username *string `json:"username,omitempty"`
	Password string  `json:"password"`
	PartyID  *string `json:"party_id,omitempty"`
}

// Password constraints, matched against raw (pre-hash) input
const (
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

// Validate checks the create request shape
func (r *CreateAccountRequest) Validate() []FieldError {
	var errs []FieldError
	errs = requireString(errs, "email", r.Email)
	if r.Email != "" && !strings.Contains(r.Email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "email must contain '@'"})
	}
	if len(r.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(r.Password) > MaxPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at most 128 characters"})
	}
	return errs
}

// ChangePasswordRequest represents a request to replace an account's password
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks the change-password request shape
func (r *ChangePasswordRequest) Validate() []FieldError {
	var errs []FieldError
	if len(r.Password) < MinPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at least 8 characters"})
	}
	if len(r.Password) > MaxPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: "password must be at most 128 characters"})
	}
	return errs
}
