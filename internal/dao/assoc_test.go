package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

func TestUnionIDs(t *testing.T) {
	t.Parallel()

	got := unionIDs([]string{"a", "b"}, []string{"b", "c", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)

	got = unionIDs(nil, []string{"a"})
	assert.Equal(t, []string{"a"}, got)

	got = unionIDs([]string{"a"}, nil)
	assert.Equal(t, []string{"a"}, got)
}

func TestSubtractIDs(t *testing.T) {
	t.Parallel()

	got := subtractIDs([]string{"a", "b", "c"}, []string{"b"})
	assert.Equal(t, []string{"a", "c"}, got)

	got = subtractIDs([]string{"a"}, []string{"x"})
	assert.Equal(t, []string{"a"}, got)

	got = subtractIDs(nil, []string{"a"})
	assert.Equal(t, []string{}, got)
}

func TestDiffIDs(t *testing.T) {
	t.Parallel()

	added, removed := diffIDs([]string{"a", "b"}, []string{"b", "c"})
	assert.Equal(t, []string{"c"}, added)
	assert.Equal(t, []string{"a"}, removed)

	added, removed = diffIDs([]string{"a"}, []string{"a"})
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

// seedRolePermissions inserts two permissions and a role carrying the first
func seedRolePermissions(t *testing.T, store *Store) (*model.Role, *model.Permission, *model.Permission) {
	t.Helper()
	ctx := context.Background()

	read := &model.Permission{Code: "accounts.read", Name: "Read accounts"}
	write := &model.Permission{Code: "accounts.write", Name: "Write accounts"}
	require.NoError(t, store.Permissions.Insert(ctx, read))
	require.NoError(t, store.Permissions.Insert(ctx, write))

	role := &model.Role{Code: "auditor", Name: "Auditor", PermissionIDs: []string{read.ID}}
	require.NoError(t, store.Roles.Insert(ctx, role))

	return role, read, write
}

func TestRoles_GrantPermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, read, write := seedRolePermissions(t, store)

	// Granting an already-held permission is a no-op, not an error
	updated, err := store.Roles.GrantPermissions(ctx, role.ID, write.ID, read.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{read.ID, write.ID}, updated.PermissionIDs)

	// Persisted, not just returned
	got, err := store.Roles.Get(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{read.ID, write.ID}, got.PermissionIDs)
}

func TestRoles_GrantUnknownPermission(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, _, _ := seedRolePermissions(t, store)

	_, err := store.Roles.GrantPermissions(ctx, role.ID, "permission:bogus")
	assert.ErrorIs(t, err, database.ErrNotFound)

	// A failed grant must not change the stored role
	got, err := store.Roles.Get(ctx, role.ID)
	require.NoError(t, err)
	assert.Len(t, got.PermissionIDs, 1)
}

func TestRoles_RevokePermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, read, write := seedRolePermissions(t, store)

	// Revoking an unheld id is a no-op
	updated, err := store.Roles.RevokePermissions(ctx, role.ID, write.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{read.ID}, updated.PermissionIDs)

	updated, err = store.Roles.RevokePermissions(ctx, role.ID, read.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.PermissionIDs)
}

func TestRoles_ReplacePermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, read, write := seedRolePermissions(t, store)

	updated, err := store.Roles.ReplacePermissions(ctx, role.ID, []string{write.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{write.ID}, updated.PermissionIDs)

	// Replacing with the empty set clears the association
	updated, err = store.Roles.ReplacePermissions(ctx, role.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.PermissionIDs)
	_ = read
}

func TestRoles_ResolvePermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, read, write := seedRolePermissions(t, store)

	_, err := store.Roles.GrantPermissions(ctx, role.ID, write.ID)
	require.NoError(t, err)

	perms, err := store.Roles.Permissions(ctx, role.ID)
	require.NoError(t, err)
	require.Len(t, perms, 2)
	assert.Equal(t, read.Code, perms[0].Code)
	assert.Equal(t, write.Code, perms[1].Code)
}

func TestStore_DeletePermissionDetachesFromRoles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, read, write := seedRolePermissions(t, store)

	other := &model.Role{Code: "admin", Name: "Administrator", PermissionIDs: []string{read.ID, write.ID}}
	require.NoError(t, store.Roles.Insert(ctx, other))

	require.NoError(t, store.DeletePermission(ctx, read.ID))

	got, err := store.Roles.Get(ctx, role.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.PermissionIDs)

	got, err = store.Roles.Get(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{write.ID}, got.PermissionIDs)
}

func TestAccounts_AssignAndWithdrawRoles(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, _, _ := seedRolePermissions(t, store)

	acct := &model.Account{Email: "ada@example.com"}
	require.NoError(t, store.Accounts.Insert(ctx, acct))

	updated, err := store.Accounts.AssignRoles(ctx, acct.ID, role.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{role.ID}, updated.RoleIDs)

	_, err = store.Accounts.AssignRoles(ctx, acct.ID, "role:bogus")
	assert.ErrorIs(t, err, database.ErrNotFound)

	updated, err = store.Accounts.WithdrawRoles(ctx, acct.ID, role.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, updated.RoleIDs)
}

func TestAccounts_EffectivePermissions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	auditor, read, write := seedRolePermissions(t, store)

	// Second role overlaps on read, adds write
	operator := &model.Role{Code: "operator", Name: "Operator", PermissionIDs: []string{read.ID, write.ID}}
	require.NoError(t, store.Roles.Insert(ctx, operator))

	acct := &model.Account{Email: "ada@example.com"}
	require.NoError(t, store.Accounts.Insert(ctx, acct))
	_, err := store.Accounts.ReplaceRoles(ctx, acct.ID, []string{auditor.ID, operator.ID})
	require.NoError(t, err)

	perms, err := store.Accounts.EffectivePermissions(ctx, acct.ID)
	require.NoError(t, err)
	require.Len(t, perms, 2)
	assert.Equal(t, read.ID, perms[0].ID)
	assert.Equal(t, write.ID, perms[1].ID)
}

func TestStore_DeleteRoleDetachesFromAccounts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)
	role, _, _ := seedRolePermissions(t, store)

	acct := &model.Account{Email: "ada@example.com"}
	require.NoError(t, store.Accounts.Insert(ctx, acct))
	_, err := store.Accounts.AssignRoles(ctx, acct.ID, role.ID)
	require.NoError(t, err)

	require.NoError(t, store.DeleteRole(ctx, role.ID))

	got, err := store.Accounts.Get(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.RoleIDs)
}

func TestStore_DeletePartyCascades(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newTestStore(t)

	party := &model.Party{Kind: model.PartyKindPerson, Name: "Ada"}
	require.NoError(t, store.Parties.Insert(ctx, party))

	addr := &model.Address{PartyID: party.ID, Kind: model.AddressKindPostal, Line1: "12 St James's Square", City: "London", Country: "GB"}
	require.NoError(t, store.Addresses.Insert(ctx, addr))
	cm := &model.ContactMethod{PartyID: party.ID, Kind: model.ContactKindEmail, Value: "ada@example.com"}
	require.NoError(t, store.Contacts.Insert(ctx, cm))

	require.NoError(t, store.DeleteParty(ctx, party.ID))

	addrs, err := store.Addresses.ListByParty(ctx, party.ID)
	require.NoError(t, err)
	assert.Empty(t, addrs)
	methods, err := store.Contacts.ListByParty(ctx, party.ID)
	require.NoError(t, err)
	assert.Empty(t, methods)
}
