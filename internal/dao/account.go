package dao

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// Accounts provides data access for login accounts and manages the
// account/role association arrays
type Accounts struct {
	*DAO[*model.Account]
	roles *Roles
}

// NewAccounts creates an account DAO. Account emails are unique.
func NewAccounts(db database.Database, roles *Roles) *Accounts {
	unique := func(a *model.Account) *database.Query {
		q := database.NewQuery().Where("email", a.Email)
		return &q
	}
	return &Accounts{
		DAO:   New(db, "account", func() *model.Account { return &model.Account{} }, unique),
		roles: roles,
	}
}

// Insert applies defaults then runs the shared lifecycle
func (d *Accounts) Insert(ctx context.Context, acct *model.Account) error {
	if acct.Status == "" {
		acct.Status = model.AccountStatusActive
	}
	if acct.RoleIDs == nil {
		acct.RoleIDs = []string{}
	}
	acct.RoleIDs = dedupeIDs(acct.RoleIDs)
	return d.DAO.Insert(ctx, acct)
}

// GetByEmail retrieves an account by email
func (d *Accounts) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	doc, err := d.db.FindOne(ctx, d.table, database.NewQuery().Where("email", email))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	acct := &model.Account{}
	if err := fromDoc(doc, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// ListByParty returns all accounts linked to a party
func (d *Accounts) ListByParty(ctx context.Context, partyID string) ([]*model.Account, error) {
	return d.List(ctx, database.NewQuery().Where("party_id", partyID).OrderBy("email"))
}

// SetPassword hashes and stores a new password for the account
func (d *Accounts) SetPassword(ctx context.Context, accountID, password string) (*model.Account, error) {
	acct, err := d.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: account %s", database.ErrNotFound, accountID)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	acct.Hash = hash
	if err := d.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// RecordLogin stamps the account's last login time
func (d *Accounts) RecordLogin(ctx context.Context, accountID string) (*model.Account, error) {
	acct, err := d.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: account %s", database.ErrNotFound, accountID)
	}

	now := d.now().Truncate(timeResolution)
	acct.LoginOn = &now
	if err := d.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// AssignRoles adds role ids to an account, verifying each referenced role
// exists. Already-assigned ids are ignored.
func (d *Accounts) AssignRoles(ctx context.Context, accountID string, roleIDs ...string) (*model.Account, error) {
	acct, err := d.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: account %s", database.ErrNotFound, accountID)
	}

	if err := d.verifyRoleIDs(ctx, roleIDs); err != nil {
		return nil, err
	}

	acct.RoleIDs = unionIDs(acct.RoleIDs, roleIDs)
	if err := d.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// WithdrawRoles removes role ids from an account. Ids the account does not
// carry are ignored.
func (d *Accounts) WithdrawRoles(ctx context.Context, accountID string, roleIDs ...string) (*model.Account, error) {
	acct, err := d.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: account %s", database.ErrNotFound, accountID)
	}

	acct.RoleIDs = subtractIDs(acct.RoleIDs, roleIDs)
	if err := d.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// ReplaceRoles reconciles an account's role set against the desired ids,
// verifying every desired role exists
func (d *Accounts) ReplaceRoles(ctx context.Context, accountID string, roleIDs []string) (*model.Account, error) {
	acct, err := d.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: account %s", database.ErrNotFound, accountID)
	}

	if err := d.verifyRoleIDs(ctx, roleIDs); err != nil {
		return nil, err
	}

	added, removed := diffIDs(acct.RoleIDs, roleIDs)
	acct.RoleIDs = subtractIDs(unionIDs(acct.RoleIDs, added), removed)
	if err := d.Update(ctx, acct); err != nil {
		return nil, err
	}
	return acct, nil
}

// EffectivePermissions resolves the union of permissions granted through all
// of an account's roles, deduplicated by permission id
func (d *Accounts) EffectivePermissions(ctx context.Context, accountID string) ([]*model.Permission, error) {
	acct, err := d.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, fmt.Errorf("%w: account %s", database.ErrNotFound, accountID)
	}

	var permissionIDs []string
	for _, roleID := range acct.RoleIDs {
		role, err := d.roles.Get(ctx, roleID)
		if err != nil {
			return nil, err
		}
		if role == nil {
			continue
		}
		permissionIDs = unionIDs(permissionIDs, role.PermissionIDs)
	}
	return d.roles.permissions.GetMany(ctx, permissionIDs)
}

// DetachRole removes a role id from every account carrying it.
// Called when a role is deleted so no account keeps a dangling reference.
func (d *Accounts) DetachRole(ctx context.Context, roleID string) error {
	accounts, err := d.List(ctx, database.NewQuery().WhereContains("role_ids", roleID))
	if err != nil {
		return err
	}
	for _, acct := range accounts {
		acct.RoleIDs = subtractIDs(acct.RoleIDs, []string{roleID})
		if err := d.Update(ctx, acct); err != nil {
			return err
		}
	}
	return nil
}

// verifyRoleIDs fails when any id does not resolve to a role
func (d *Accounts) verifyRoleIDs(ctx context.Context, ids []string) error {
	for _, id := range dedupeIDs(ids) {
		role, err := d.roles.Get(ctx, id)
		if err != nil {
			return err
		}
		if role == nil {
			return fmt.Errorf("%w: role %s", database.ErrNotFound, id)
		}
	}
	return nil
}

// HashPassword hashes a raw password with bcrypt
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("dao: hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether a raw password matches a stored hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
