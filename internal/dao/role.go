package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/directory/api/internal/database"
	"github.com/forgo/directory/api/internal/model"
)

// Roles provides data access for roles and manages the role/permission
// association arrays
type Roles struct {
	*DAO[*model.Role]
	permissions *Permissions
}

// NewRoles creates a role DAO. Role codes are unique.
func NewRoles(db database.Database, permissions *Permissions) *Roles {
	unique := func(r *model.Role) *database.Query {
		q := database.NewQuery().Where("code", r.Code)
		return &q
	}
	return &Roles{
		DAO:         New(db, "role", func() *model.Role { return &model.Role{} }, unique),
		permissions: permissions,
	}
}

// Insert applies defaults then runs the shared lifecycle
func (d *Roles) Insert(ctx context.Context, role *model.Role) error {
	if role.PermissionIDs == nil {
		role.PermissionIDs = []string{}
	}
	role.PermissionIDs = dedupeIDs(role.PermissionIDs)
	return d.DAO.Insert(ctx, role)
}

// GetByCode retrieves a role by its code
func (d *Roles) GetByCode(ctx context.Context, code string) (*model.Role, error) {
	doc, err := d.db.FindOne(ctx, d.table, database.NewQuery().Where("code", code))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	role := &model.Role{}
	if err := fromDoc(doc, role); err != nil {
		return nil, err
	}
	return role, nil
}

// GrantPermissions adds permission ids to a role, verifying each referenced
// permission exists. Already-granted ids are ignored.
func (d *Roles) GrantPermissions(ctx context.Context, roleID string, permissionIDs ...string) (*model.Role, error) {
	role, err := d.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role %s", database.ErrNotFound, roleID)
	}

	if err := d.verifyPermissionIDs(ctx, permissionIDs); err != nil {
		return nil, err
	}

	role.PermissionIDs = unionIDs(role.PermissionIDs, permissionIDs)
	if err := d.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// RevokePermissions removes permission ids from a role. Ids the role does
// not carry are ignored.
func (d *Roles) RevokePermissions(ctx context.Context, roleID string, permissionIDs ...string) (*model.Role, error) {
	role, err := d.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role %s", database.ErrNotFound, roleID)
	}

	role.PermissionIDs = subtractIDs(role.PermissionIDs, permissionIDs)
	if err := d.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// ReplacePermissions reconciles a role's permission set against the desired
// ids, verifying every desired permission exists
func (d *Roles) ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) (*model.Role, error) {
	role, err := d.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role %s", database.ErrNotFound, roleID)
	}

	if err := d.verifyPermissionIDs(ctx, permissionIDs); err != nil {
		return nil, err
	}

	added, removed := diffIDs(role.PermissionIDs, permissionIDs)
	role.PermissionIDs = subtractIDs(unionIDs(role.PermissionIDs, added), removed)
	if err := d.Update(ctx, role); err != nil {
		return nil, err
	}
	return role, nil
}

// Permissions resolves a role's permission ids to permission records
func (d *Roles) Permissions(ctx context.Context, roleID string) ([]*model.Permission, error) {
	role, err := d.Get(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, fmt.Errorf("%w: role %s", database.ErrNotFound, roleID)
	}
	return d.permissions.GetMany(ctx, role.PermissionIDs)
}

// DetachPermission removes a permission id from every role carrying it.
// Called when a permission is deleted so no role keeps a dangling reference.
func (d *Roles) DetachPermission(ctx context.Context, permissionID string) error {
	roles, err := d.List(ctx, database.NewQuery().WhereContains("permission_ids", permissionID))
	if err != nil {
		return err
	}
	for _, role := range roles {
		role.PermissionIDs = subtractIDs(role.PermissionIDs, []string{permissionID})
		if err := d.Update(ctx, role); err != nil {
			return err
		}
	}
	return nil
}

// verifyPermissionIDs fails when any id does not resolve to a permission
func (d *Roles) verifyPermissionIDs(ctx context.Context, ids []string) error {
	for _, id := range dedupeIDs(ids) {
		perm, err := d.permissions.Get(ctx, id)
		if err != nil {
			return err
		}
		if perm == nil {
			return fmt.Errorf("%w: permission %s", database.ErrNotFound, id)
		}
	}
	return nil
}
