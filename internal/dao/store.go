package dao

import (
	"context"

	"github.com/forgo/directory/api/internal/database"
)

// Store composes the entity DAOs over a single engine and carries the
// cross-entity cascades that keep association arrays free of dangling ids
type Store struct {
	Accounts    *Accounts
	Roles       *Roles
	Permissions *Permissions
	Parties     *Parties
	Addresses   *Addresses
	Contacts    *Contacts
}

// NewStore wires the entity DAOs over one engine
func NewStore(db database.Database) *Store {
	permissions := NewPermissions(db)
	roles := NewRoles(db, permissions)
	return &Store{
		Accounts:    NewAccounts(db, roles),
		Roles:       roles,
		Permissions: permissions,
		Parties:     NewParties(db),
		Addresses:   NewAddresses(db),
		Contacts:    NewContacts(db),
	}
}

// DeletePermission removes a permission and detaches its id from every role
func (s *Store) DeletePermission(ctx context.Context, permissionID string) error {
	if err := s.Permissions.Delete(ctx, permissionID); err != nil {
		return err
	}
	return s.Roles.DetachPermission(ctx, permissionID)
}

// DeleteRole removes a role and detaches its id from every account
func (s *Store) DeleteRole(ctx context.Context, roleID string) error {
	if err := s.Roles.Delete(ctx, roleID); err != nil {
		return err
	}
	return s.Accounts.DetachRole(ctx, roleID)
}

// DeleteParty removes a party along with its addresses and contact methods
func (s *Store) DeleteParty(ctx context.Context, partyID string) error {
	if err := s.Parties.Delete(ctx, partyID); err != nil {
		return err
	}
	if err := s.Addresses.DeleteByParty(ctx, partyID); err != nil {
		return err
	}
	return s.Contacts.DeleteByParty(ctx, partyID)
}
